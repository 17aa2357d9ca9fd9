package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	invService "shopdesk-backend/internal/domains/inventory/service"
	"shopdesk-backend/internal/domains/reorder/repository"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/logger"
)

// WarmSnapshotHandler refetches inventory for active tenants so interactive
// reads land inside the freshness window. Failures are logged per tenant and
// never fail the task; the next interactive read falls back to stale-while-error.
func WarmSnapshotHandler(rules repository.RepositoryInterface, inventory invService.ServiceInterface) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.WarmSnapshotPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
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

		for _, tenantID := range tenants {
			if _, err := inventory.Refetch(ctx, tenantID); err != nil {
				logger.Warn("snapshot warm failed", map[string]interface{}{
					"tenant_id": tenantID.String(),
					"error":     err.Error(),
				})
			}
		}
		return nil
	}
}
