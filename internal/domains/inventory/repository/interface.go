package repository

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/inventory/model"
)

// RepositoryInterface defines data access for inventory items and their
// movement history. All queries are tenant-scoped.
type RepositoryInterface interface {
	ListItems(ctx context.Context, tenantID uuid.UUID) ([]model.InventoryItem, error)
	GetItemByID(ctx context.Context, tenantID, id uuid.UUID) (*model.InventoryItem, error)
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	UpdateItem(ctx context.Context, item *model.InventoryItem) error
	DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error

	// RecordMovement appends an audit row and applies the quantity delta to
	// the item atomically.
	RecordMovement(ctx context.Context, movement *model.StockMovement) error

	// DailyUsageRates returns average units consumed per day per item, from
	// outbound movements over the trailing window. Items without outbound
	// history are absent from the map.
	DailyUsageRates(ctx context.Context, tenantID uuid.UUID, windowDays int) (map[uuid.UUID]float64, error)
}
