package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/analytics/model"
	invModel "shopdesk-backend/internal/domains/inventory/model"
)

// SnapshotSource is the inventory read the aggregator runs over.
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, tenantID uuid.UUID) (*invModel.Snapshot, error)
}

type AnalyticsService struct {
	snapshots SnapshotSource
}

// NewService creates a new analytics service
func NewService(snapshots SnapshotSource) ServiceInterface {
	return &AnalyticsService{snapshots: snapshots}
}

// GetAnalytics implements Service.GetAnalytics
func (s *AnalyticsService) GetAnalytics(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error) {
	snapshot, err := s.snapshots.GetSnapshot(ctx, tenantID)
	if err != nil && snapshot == nil {
		return nil, err
	}

	result := ComputeAnalytics(snapshot.Items, time.Now())
	result.Stale = snapshot.Stale
	return result, nil
}
