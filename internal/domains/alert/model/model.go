package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Priority levels for reorder alerts.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort weight (high first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ReorderAlert is derived from the inventory snapshot and never persisted.
// It is recomputed whenever the snapshot changes.
type ReorderAlert struct {
	// ID is deterministic per item so dismissals survive recomputation.
	ID string `json:"id"`

	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`

	CurrentStock int `json:"current_stock"`
	ReorderPoint int `json:"reorder_point"`

	// SuggestedQuantity = ceil(2*reorderPoint - currentStock), never negative.
	SuggestedQuantity int `json:"suggested_quantity"`

	Priority Priority `json:"priority"`

	// AverageUsage is units/day from outbound movement history. Nil when the
	// item has no history; no estimate is fabricated in that case.
	AverageUsage *float64 `json:"average_usage,omitempty"`

	// EstimatedStockoutDate is nil whenever AverageUsage is nil.
	EstimatedStockoutDate *time.Time `json:"estimated_stockout_date,omitempty"`
}

// AlertID builds the deterministic alert identifier for an item.
func AlertID(itemID uuid.UUID) string {
	return "alert-" + itemID.String()
}

// DismissedAlert is the per-user, server-persisted dismissal record.
type DismissedAlert struct {
	TenantID    uuid.UUID `db:"tenant_id"`
	UserID      uuid.UUID `db:"user_id"`
	AlertID     string    `db:"alert_id"`
	DismissedAt time.Time `db:"dismissed_at"`
}

// Insights summarizes the reorder posture for the dashboard.
type Insights struct {
	TotalAlerts           int             `json:"total_alerts"`
	HighPriorityAlerts    int             `json:"high_priority_alerts"`
	EstimatedReorderValue decimal.Decimal `json:"estimated_reorder_value"`
	ActiveRules           int             `json:"active_rules"`

	// AutomationCoverage = activeRules / totalItems * 100.
	AutomationCoverage float64 `json:"automation_coverage"`
}
