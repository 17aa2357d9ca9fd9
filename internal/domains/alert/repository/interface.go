package repository

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/alert/model"
)

// RepositoryInterface stores per-user alert dismissals. Dismissals used to
// live only in browser storage; persisting them here makes them visible
// across sessions and devices.
type RepositoryInterface interface {
	Dismiss(ctx context.Context, record *model.DismissedAlert) error
	ListDismissed(ctx context.Context, tenantID, userID uuid.UUID) ([]string, error)
	ClearDismissed(ctx context.Context, tenantID, userID uuid.UUID) error
}
