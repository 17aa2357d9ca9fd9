package service

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/analytics/model"
)

// ServiceInterface exposes the analytics read surface
type ServiceInterface interface {
	// GetAnalytics recomputes the analytics snapshot from current inventory.
	// A stale inventory snapshot is tolerated and flagged in the result.
	GetAnalytics(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error)
}
