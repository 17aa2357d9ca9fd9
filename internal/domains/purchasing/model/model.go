package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Order source
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// PurchaseOrder is a restock order, created by hand or by the auto-reorder
// engine. Auto orders carry an idempotency key so a repeated sweep cannot
// create the same order twice.
type PurchaseOrder struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	TenantID       uuid.UUID           `json:"tenantId" db:"tenant_id"`
	Status         string              `json:"status" db:"status"`
	Source         string              `json:"source" db:"source"`
	Supplier       string              `json:"supplier" db:"supplier"`
	TotalCost      decimal.Decimal     `json:"totalCost" db:"total_cost"`
	IdempotencyKey *string             `json:"-" db:"idempotency_key"`
	Lines          []PurchaseOrderLine `json:"lines"`
	CreatedAt      time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" db:"updated_at"`
}

// PurchaseOrderLine is a single item on an order.
type PurchaseOrderLine struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	OrderID  uuid.UUID       `json:"orderId" db:"order_id"`
	ItemID   uuid.UUID       `json:"itemId" db:"item_id"`
	ItemName string          `json:"itemName" db:"item_name"`
	Quantity int             `json:"quantity" db:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost" db:"unit_cost"`
}

// LineTotal is the line's extended cost.
func (l *PurchaseOrderLine) LineTotal() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RecalculateTotal sums the line totals into TotalCost.
func (o *PurchaseOrder) RecalculateTotal() {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].LineTotal())
	}
	o.TotalCost = total
}
