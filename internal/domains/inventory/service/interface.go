package service

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/inventory/model"
)

// ServiceInterface exposes the inventory snapshot provider plus the item
// write side that keeps it honest.
type ServiceInterface interface {
	// GetSnapshot returns the tenant's inventory snapshot, serving the cached
	// copy inside the freshness window. On refresh failure it returns the
	// previous snapshot marked stale together with ErrSnapshotStale; the
	// error is nil only for a fresh snapshot.
	GetSnapshot(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error)

	// Refetch bypasses the freshness window and atomically replaces the
	// cached snapshot.
	Refetch(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error)

	// UsageRates returns average daily consumption per item over the
	// configured trailing window.
	UsageRates(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]float64, error)

	// Invalidate drops the tenant's cached snapshot so the next read refetches.
	Invalidate(ctx context.Context, tenantID uuid.UUID)

	CreateItem(ctx context.Context, tenantID uuid.UUID, req model.CreateItemRequest) (*model.ItemResponse, error)
	UpdateItem(ctx context.Context, tenantID, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error)
	DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error
	RecordMovement(ctx context.Context, tenantID uuid.UUID, req model.RecordMovementRequest) error
}
