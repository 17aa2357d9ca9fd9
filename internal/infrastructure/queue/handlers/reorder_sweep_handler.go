package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	reorderModel "shopdesk-backend/internal/domains/reorder/model"
	"shopdesk-backend/internal/domains/reorder/repository"
	"shopdesk-backend/internal/domains/reorder/service"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/logger"
)

// ReorderSweepHandler runs the auto-reorder executor for every tenant with
// at least one enabled rule. The idempotency key is bucketed to the sweep
// window, so a retried task replays as a no-op instead of double-ordering.
func ReorderSweepHandler(rules repository.RepositoryInterface, executor service.ExecutorInterface) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.SweepPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		window := p.Window
		if window == "" {
			window = time.Now().UTC().Format("2006-01-02T15")
		}

		var tenants []uuid.UUID
		if p.TenantID != "" {
			tenantID, err := uuid.Parse(p.TenantID)
			if err != nil {
				return asynq.SkipRetry
			}
			tenants = []uuid.UUID{tenantID}
		} else {
			var err error
			tenants, err = rules.ListTenantsWithEnabledRules(ctx)
			if err != nil {
				return err
			}
		}

		var failed int
		for _, tenantID := range tenants {
			key := fmt.Sprintf("sweep:%s:%s", tenantID, window)
			summary, err := executor.Execute(ctx, tenantID, key)
			if err != nil {
				if reorderModel.IsConflictError(err) {
					// Already handled by a previous attempt of this sweep.
					continue
				}
				failed++
				logger.Error("sweep execution failed for tenant "+tenantID.String(), err)
				continue
			}
			if summary.OrdersCreated > 0 {
				logger.Info("sweep created purchase order", map[string]interface{}{
					"tenant_id":   tenantID.String(),
					"lines":       summary.OrdersCreated,
					"total_value": summary.TotalValue.String(),
				})
			}
		}

		if failed > 0 {
			return fmt.Errorf("sweep failed for %d of %d tenants", failed, len(tenants))
		}
		return nil
	}
}
