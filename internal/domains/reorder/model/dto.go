package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ===================================
// REQUEST DTOs
// ===================================

// SaveRuleRequest creates or replaces the rule for an item
type SaveRuleRequest struct {
	ItemID          uuid.UUID `json:"item_id"`
	Enabled         bool      `json:"enabled"`
	ReorderPoint    int       `json:"reorder_point"`
	ReorderQuantity int       `json:"reorder_quantity"`
	LeadTimeDays    *int      `json:"lead_time_days,omitempty"`
}

func (r SaveRuleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID, validation.Required.Error("item_id is required")),
		validation.Field(&r.ReorderPoint,
			validation.Required,
			validation.Min(1).Error("reorder point must be at least 1"),
		),
		validation.Field(&r.ReorderQuantity,
			validation.Required,
			validation.Min(1).Error("reorder quantity must be at least 1"),
		),
		validation.Field(&r.LeadTimeDays, validation.By(minIntPtr(0, "lead time cannot be negative"))),
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

// ===================================
// RESPONSE DTOs
// ===================================

// RuleResponse represents the response payload for a reorder rule
type RuleResponse struct {
	ID              uuid.UUID `json:"id"`
	ItemID          uuid.UUID `json:"item_id"`
	Enabled         bool      `json:"enabled"`
	ReorderPoint    int       `json:"reorder_point"`
	ReorderQuantity int       `json:"reorder_quantity"`
	MaxStock        int       `json:"max_stock"`
	LeadTimeDays    int       `json:"lead_time_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts a ReorderRule to its response DTO
func (r *ReorderRule) ToResponse() RuleResponse {
	return RuleResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		Enabled:         r.Enabled,
		ReorderPoint:    r.ReorderPoint,
		ReorderQuantity: r.ReorderQuantity,
		MaxStock:        r.MaxStock(),
		LeadTimeDays:    r.LeadTimeDays,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
