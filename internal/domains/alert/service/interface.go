package service

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/alert/model"
)

// AlertList is the derived alert view handed to the UI.
type AlertList struct {
	Alerts []model.ReorderAlert `json:"alerts"`

	// Stale is true when the underlying snapshot could not be refreshed.
	Stale bool `json:"stale"`
}

// ServiceInterface exposes the derived reorder-alert view, per-user
// dismissals and the dashboard insights.
type ServiceInterface interface {
	// GetAlerts recomputes the alert list from the current snapshot and
	// filters the caller's dismissed alerts.
	GetAlerts(ctx context.Context, tenantID, userID uuid.UUID) (*AlertList, error)

	// DismissAlert hides an alert for this user across sessions.
	DismissAlert(ctx context.Context, tenantID, userID uuid.UUID, alertID string) error

	// RestoreDismissed clears the user's dismissal list.
	RestoreDismissed(ctx context.Context, tenantID, userID uuid.UUID) error

	// GetInsights summarizes alerts, rule coverage and estimated reorder spend.
	GetInsights(ctx context.Context, tenantID, userID uuid.UUID) (*model.Insights, error)
}
