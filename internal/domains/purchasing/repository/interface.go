package repository

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/purchasing/model"
)

// RepositoryInterface defines purchase order persistence operations
type RepositoryInterface interface {
	// CreateOrder inserts the order and its lines atomically. Returns
	// model.ErrDuplicateOrder when the idempotency key is already used.
	CreateOrder(ctx context.Context, order *model.PurchaseOrder) error

	// ListOrders returns the tenant's orders, newest first, with lines
	ListOrders(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.PurchaseOrder, int, error)

	// GetOrderByID returns one order with its lines
	GetOrderByID(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error)

	// UpdateStatus sets the order's status
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
}
