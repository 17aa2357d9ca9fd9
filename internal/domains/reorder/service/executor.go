package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invModel "shopdesk-backend/internal/domains/inventory/model"
	poModel "shopdesk-backend/internal/domains/purchasing/model"
	"shopdesk-backend/internal/domains/reorder/model"
	"shopdesk-backend/internal/domains/reorder/repository"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/cache"
	"shopdesk-backend/pkg/logger"
)

// SnapshotRefetcher forces a fresh inventory read. The executor never
// orders from a potentially stale snapshot.
type SnapshotRefetcher interface {
	Refetch(ctx context.Context, tenantID uuid.UUID) (*invModel.Snapshot, error)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// OrderWriter is the slice of the purchasing repository the executor needs.
type OrderWriter interface {
	CreateOrder(ctx context.Context, order *poModel.PurchaseOrder) error
}

type Executor struct {
	rules     repository.RepositoryInterface
	inventory SnapshotRefetcher
	orders    OrderWriter
	cache     cache.Cache

	defaultUnitCost decimal.Decimal

	mu      sync.Mutex
	running map[uuid.UUID]*sync.Mutex
}

// NewExecutor creates the auto-reorder executor
func NewExecutor(rules repository.RepositoryInterface, inventory SnapshotRefetcher, orders OrderWriter, cache cache.Cache, defaultUnitCost float64) ExecutorInterface {
	return &Executor{
		rules:           rules,
		inventory:       inventory,
		orders:          orders,
		cache:           cache,
		defaultUnitCost: decimal.NewFromFloat(defaultUnitCost),
		running:         make(map[uuid.UUID]*sync.Mutex),
	}
}

func (e *Executor) tenantLock(tenantID uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.running[tenantID]
	if !ok {
		lock = &sync.Mutex{}
		e.running[tenantID] = lock
	}
	return lock
}

// Execute implements Executor.Execute
func (e *Executor) Execute(ctx context.Context, tenantID uuid.UUID, idempotencyKey string) (*model.ExecutionSummary, error) {
	if idempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key is required")
	}

	lock := e.tenantLock(tenantID)
	if !lock.TryLock() {
		return nil, model.ErrExecutionInProgress
	}
	defer lock.Unlock()

	// Cache invalidation happens even when nothing is ordered, so the UI
	// reflects the post-execution state either way.
	defer e.invalidate(ctx, tenantID)

	rules, err := e.rules.ListEnabledRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := &model.ExecutionSummary{
		TenantID:   tenantID,
		ExecutedAt: time.Now(),
		TotalValue: decimal.Zero,
	}
	if len(rules) == 0 {
		return summary, nil
	}

	snapshot, err := e.inventory.Refetch(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to refetch inventory for execution: %w", err)
	}

	itemsByID := make(map[uuid.UUID]*invModel.InventoryItem, len(snapshot.Items))
	for i := range snapshot.Items {
		itemsByID[snapshot.Items[i].ID] = &snapshot.Items[i]
	}

	order := &poModel.PurchaseOrder{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Status:         poModel.StatusSubmitted,
		Source:         poModel.SourceAuto,
		Supplier:       "Multiple",
		IdempotencyKey: &idempotencyKey,
	}

	for _, rule := range rules {
		item, ok := itemsByID[rule.ItemID]
		if !ok {
			logger.Warn("enabled rule references missing item, skipping", map[string]interface{}{
				"tenant_id": tenantID.String(),
				"item_id":   rule.ItemID.String(),
			})
			continue
		}
		summary.Executed++

		if item.Quantity > rule.ReorderPoint {
			continue
		}

		unitCost := e.defaultUnitCost
		if item.UnitCost != nil {
			unitCost = *item.UnitCost
		}

		line := poModel.PurchaseOrderLine{
			ID:       uuid.New(),
			ItemID:   item.ID,
			ItemName: item.Name,
			Quantity: rule.ReorderQuantity,
			UnitCost: unitCost,
		}
		order.Lines = append(order.Lines, line)
		summary.OrdersCreated++
		summary.TotalValue = summary.TotalValue.Add(line.LineTotal())
	}

	if len(order.Lines) == 0 {
		return summary, nil
	}

	if len(order.Lines) == 1 {
		if item, ok := itemsByID[order.Lines[0].ItemID]; ok {
			order.Supplier = item.Supplier
		}
	}

	if err := e.orders.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, poModel.ErrDuplicateOrder) {
			return nil, fmt.Errorf("%w: key=%s", model.ErrDuplicateExecution, idempotencyKey)
		}
		return nil, err
	}

	summary.OrderID = &order.ID
	logger.Info("auto-reorder execution created purchase order", map[string]interface{}{
		"tenant_id":   tenantID.String(),
		"order_id":    order.ID.String(),
		"lines":       len(order.Lines),
		"total_value": summary.TotalValue.String(),
	})
	return summary, nil
}

func (e *Executor) invalidate(ctx context.Context, tenantID uuid.UUID) {
	keys := []string{shared.CacheKeyRules + tenantID.String()}
	if err := e.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("failed to invalidate rule cache after execution", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
	if err := e.cache.DeletePattern(ctx, shared.CacheKeyOrders+tenantID.String()+"*"); err != nil {
		logger.Warn("failed to invalidate order cache after execution", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
	e.inventory.Invalidate(ctx, tenantID)
}
