package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================================
// REQUEST DTOs
// ===================================

// CreateItemRequest represents the payload for creating an inventory item
type CreateItemRequest struct {
	Name         string   `json:"name"`
	SKU          string   `json:"sku"`
	Quantity     int      `json:"quantity"`
	ReorderPoint int      `json:"reorder_point"`
	UnitPrice    float64  `json:"unit_price"`
	UnitCost     *float64 `json:"unit_cost,omitempty"`
	Category     string   `json:"category,omitempty"`
	Supplier     string   `json:"supplier,omitempty"`
	Location     string   `json:"location,omitempty"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.SKU,
			validation.Required.Error("sku is required"),
			validation.Length(1, 64),
		),
		validation.Field(&r.Quantity, validation.Min(0).Error("quantity cannot be negative")),
		validation.Field(&r.ReorderPoint, validation.Min(0).Error("reorder point cannot be negative")),
		validation.Field(&r.UnitPrice, validation.Min(0.0).Error("unit price cannot be negative")),
	)
}

// UpdateItemRequest represents a partial item update
type UpdateItemRequest struct {
	Name         *string  `json:"name,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	ReorderPoint *int     `json:"reorder_point,omitempty"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	UnitCost     *float64 `json:"unit_cost,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Supplier     *string  `json:"supplier,omitempty"`
	Location     *string  `json:"location,omitempty"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.By(minIntPtr(0, "quantity cannot be negative"))),
		validation.Field(&r.ReorderPoint, validation.By(minIntPtr(0, "reorder point cannot be negative"))),
	)
}

func minIntPtr(min int, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		v, ok := value.(*int)
		if !ok || v == nil {
			return nil
		}
		if *v < min {
			return validation.NewError("validation_min", msg)
		}
		return nil
	}
}

// RecordMovementRequest represents a stock movement to record
type RecordMovementRequest struct {
	ItemID    uuid.UUID `json:"item_id"`
	Direction string    `json:"direction"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
}

func (r RecordMovementRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID, validation.Required.Error("item_id is required")),
		validation.Field(&r.Direction,
			validation.Required,
			validation.In(MovementInbound, MovementOutbound).Error("direction must be inbound or outbound"),
		),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1).Error("quantity must be positive")),
	)
}

// ===================================
// RESPONSE DTOs
// ===================================

// ItemResponse represents the response payload for an inventory item
type ItemResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	SKU          string           `json:"sku"`
	Quantity     int              `json:"quantity"`
	ReorderPoint int              `json:"reorder_point"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Category     string           `json:"category"`
	Supplier     string           `json:"supplier"`
	Location     string           `json:"location"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SnapshotResponse wraps the item list with its freshness metadata
type SnapshotResponse struct {
	Items     []ItemResponse `json:"items"`
	FetchedAt time.Time      `json:"fetched_at"`
	Stale     bool           `json:"stale"`
}

// ===================================
// MAPPERS (Model <-> DTO)
// ===================================

// ToResponse converts an InventoryItem to its response DTO
func (i *InventoryItem) ToResponse() ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		SKU:          i.SKU,
		Quantity:     i.Quantity,
		ReorderPoint: i.ReorderPoint,
		UnitPrice:    i.UnitPrice,
		UnitCost:     i.UnitCost,
		Category:     i.Category,
		Supplier:     i.Supplier,
		Location:     i.Location,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToSnapshotResponse converts a Snapshot to its response DTO
func (s *Snapshot) ToSnapshotResponse() SnapshotResponse {
	items := make([]ItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = item.ToResponse()
	}
	return SnapshotResponse{
		Items:     items,
		FetchedAt: s.FetchedAt,
		Stale:     s.Stale,
	}
}
