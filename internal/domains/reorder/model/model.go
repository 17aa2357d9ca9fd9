package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReorderRule configures automatic reordering for a single item. A tenant
// holds at most one rule per item.
type ReorderRule struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TenantID        uuid.UUID `json:"tenantId" db:"tenant_id"`
	ItemID          uuid.UUID `json:"itemId" db:"item_id"`
	Enabled         bool      `json:"enabled" db:"enabled"`
	ReorderPoint    int       `json:"reorderPoint" db:"reorder_point"`
	ReorderQuantity int       `json:"reorderQuantity" db:"reorder_quantity"`
	LeadTimeDays    int       `json:"leadTimeDays" db:"lead_time_days"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// MaxStock is the ceiling the rule restocks toward.
func (r *ReorderRule) MaxStock() int {
	return 2 * r.ReorderQuantity
}

// ExecutionSummary reports the outcome of one auto-reorder run. Executed
// counts the enabled rules evaluated; OrdersCreated counts the order lines
// actually written.
type ExecutionSummary struct {
	TenantID      uuid.UUID       `json:"tenantId"`
	ExecutedAt    time.Time       `json:"executedAt"`
	Executed      int             `json:"executed"`
	OrdersCreated int             `json:"ordersCreated"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	OrderID       *uuid.UUID      `json:"orderId,omitempty"`
}
