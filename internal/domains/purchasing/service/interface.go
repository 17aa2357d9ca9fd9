package service

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/purchasing/model"
)

// OrderPage is one page of a tenant's purchase orders.
type OrderPage struct {
	Orders []model.PurchaseOrder `json:"orders"`
	Total  int                   `json:"total"`
	Page   int                   `json:"page"`
	Limit  int                   `json:"limit"`
}

// ServiceInterface defines purchase order operations
type ServiceInterface interface {
	// ListOrders returns a page of the tenant's orders, newest first
	ListOrders(ctx context.Context, tenantID uuid.UUID, page, limit int) (*OrderPage, error)

	// GetOrder returns one order with lines
	GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error)

	// SubmitOrder moves a draft order to submitted
	SubmitOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error)
}
