package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopdesk-backend/internal/shared/utils"
)

// Sentinel classifications for items saved without one.
const (
	DefaultCategory = "Uncategorized"
	DefaultSupplier = "Unknown"
	DefaultLocation = "Unknown"
)

// InventoryItem represents one row of the inventory_items table. The reorder
// engine only ever reads these; writes go through the item CRUD endpoints.
type InventoryItem struct {
	ID       uuid.UUID `db:"id"`
	TenantID uuid.UUID `db:"tenant_id"`

	Name string `db:"name"`
	SKU  string `db:"sku"`

	// Quantity can arrive negative from bad imports; derived computations
	// clamp it, the model stores what the row says.
	Quantity int `db:"quantity"`

	// ReorderPoint of 0 means the item has no reorder policy.
	ReorderPoint int `db:"reorder_point"`

	UnitPrice decimal.Decimal  `db:"unit_price"`
	UnitCost  *decimal.Decimal `db:"unit_cost"`

	Category string `db:"category"`
	Supplier string `db:"supplier"`
	Location string `db:"location"`

	CreatedAt *time.Time `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Normalize fills sentinel classifications in place.
func (i *InventoryItem) Normalize() {
	i.Category = utils.StringOrDefault(i.Category, DefaultCategory)
	i.Supplier = utils.StringOrDefault(i.Supplier, DefaultSupplier)
	i.Location = utils.StringOrDefault(i.Location, DefaultLocation)
}

// Movement directions.
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
)

// StockMovement is the consumption/replenishment audit trail. Outbound
// movements drive the average-usage computation behind stockout estimates.
type StockMovement struct {
	ID         uuid.UUID `db:"id"`
	TenantID   uuid.UUID `db:"tenant_id"`
	ItemID     uuid.UUID `db:"item_id"`
	Direction  string    `db:"direction"`
	Quantity   int       `db:"quantity"`
	Note       *string   `db:"note"`
	OccurredAt time.Time `db:"occurred_at"`
}

// Snapshot is the cached copy of a tenant's inventory used for all derived
// computation. It is replaced atomically, never merged.
type Snapshot struct {
	TenantID  uuid.UUID       `json:"tenant_id"`
	Items     []InventoryItem `json:"items"`
	FetchedAt time.Time       `json:"fetched_at"`

	// Stale marks a snapshot served after a failed refresh.
	Stale bool `json:"stale,omitempty"`
}
