package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"shopdesk-backend/internal/config"
	"shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/inventory/repository"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/internal/shared/utils"
	"shopdesk-backend/pkg/cache"
	"shopdesk-backend/pkg/logger"
)

// snapshotEntry is one tenant's cached snapshot. lastAccess drives eviction
// of snapshots nobody has read for a while.
type snapshotEntry struct {
	snapshot   *model.Snapshot
	lastAccess time.Time
}

type InventoryService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
	cfg   config.ReorderConfig

	mu      sync.RWMutex
	entries map[uuid.UUID]*snapshotEntry

	// group coalesces concurrent refetches for the same tenant into one
	// storage round trip.
	group singleflight.Group
}

// NewService creates a new inventory snapshot service
func NewService(repo repository.RepositoryInterface, c cache.Cache, cfg config.ReorderConfig) ServiceInterface {
	return &InventoryService{
		repo:    repo,
		cache:   c,
		cfg:     cfg,
		entries: make(map[uuid.UUID]*snapshotEntry),
	}
}

// GetSnapshot implements Service.GetSnapshot
func (s *InventoryService) GetSnapshot(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error) {
	s.evictDisused()

	s.mu.RLock()
	entry, ok := s.entries[tenantID]
	s.mu.RUnlock()

	now := time.Now()
	if ok && now.Sub(entry.snapshot.FetchedAt) < s.cfg.SnapshotTTL && !entry.snapshot.Stale {
		s.touch(tenantID)
		return entry.snapshot, nil
	}

	return s.refresh(ctx, tenantID)
}

// Refetch implements Service.Refetch
func (s *InventoryService) Refetch(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error) {
	s.Invalidate(ctx, tenantID)
	return s.refresh(ctx, tenantID)
}

// refresh fetches the item list and replaces the cached snapshot atomically.
// Concurrent callers share one fetch. On failure the previous snapshot is
// served marked stale, so a flaky backend never blanks the UI.
func (s *InventoryService) refresh(ctx context.Context, tenantID uuid.UUID) (*model.Snapshot, error) {
	v, err, _ := s.group.Do(tenantID.String(), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()

		items, err := s.repo.ListItems(fetchCtx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch inventory: %w", err)
		}

		snapshot := &model.Snapshot{
			TenantID:  tenantID,
			Items:     items,
			FetchedAt: time.Now(),
		}

		s.mu.Lock()
		s.entries[tenantID] = &snapshotEntry{snapshot: snapshot, lastAccess: time.Now()}
		s.mu.Unlock()

		// Best effort: mirror into the shared cache so the worker's warmer
		// and other processes see the same view.
		if cacheErr := s.cache.Set(ctx, shared.CacheKeyItems+tenantID.String(), snapshot, s.cfg.SnapshotTTL); cacheErr != nil {
			logger.Warn("failed to mirror snapshot to cache", map[string]interface{}{
				"tenant_id": tenantID.String(),
				"error":     cacheErr.Error(),
			})
		}

		return snapshot, nil
	})

	if err != nil {
		// stale-while-error: keep serving the last good snapshot and surface
		// the failure to the caller as a non-fatal notice
		s.mu.Lock()
		entry, ok := s.entries[tenantID]
		if ok {
			stale := *entry.snapshot
			stale.Stale = true
			entry.snapshot = &stale
			entry.lastAccess = time.Now()
		}
		s.mu.Unlock()

		if ok {
			logger.Warn("serving stale inventory snapshot", map[string]interface{}{
				"tenant_id":  tenantID.String(),
				"fetched_at": entry.snapshot.FetchedAt,
			})
			return entry.snapshot, fmt.Errorf("%w: %v", model.ErrSnapshotStale, err)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrSnapshotUnavailable, err)
	}

	return v.(*model.Snapshot), nil
}

// Invalidate implements Service.Invalidate
func (s *InventoryService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	s.mu.Lock()
	delete(s.entries, tenantID)
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, shared.CacheKeyItems+tenantID.String()); err != nil {
		logger.Warn("failed to invalidate snapshot cache key", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
}

// UsageRates implements Service.UsageRates
func (s *InventoryService) UsageRates(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	rates, err := s.repo.DailyUsageRates(ctx, tenantID, s.cfg.UsageWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage rates: %w", err)
	}
	return rates, nil
}

func (s *InventoryService) touch(tenantID uuid.UUID) {
	s.mu.Lock()
	if entry, ok := s.entries[tenantID]; ok {
		entry.lastAccess = time.Now()
	}
	s.mu.Unlock()
}

// evictDisused drops snapshots nobody has accessed within the GC window.
func (s *InventoryService) evictDisused() {
	cutoff := time.Now().Add(-s.cfg.SnapshotGC)

	s.mu.Lock()
	for tenantID, entry := range s.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(s.entries, tenantID)
		}
	}
	s.mu.Unlock()
}

// ===================================
// ITEM WRITE SIDE
// ===================================

// CreateItem implements Service.CreateItem
func (s *InventoryService) CreateItem(ctx context.Context, tenantID uuid.UUID, req model.CreateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         req.Name,
		SKU:          req.SKU,
		Quantity:     req.Quantity,
		ReorderPoint: req.ReorderPoint,
		UnitPrice:    decimal.NewFromFloat(req.UnitPrice),
		Category:     req.Category,
		Supplier:     req.Supplier,
		Location:     req.Location,
	}
	item.UnitCost = utils.ParseFloatToDecimal(req.UnitCost)
	item.Normalize()

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, tenantID)

	resp := item.ToResponse()
	return &resp, nil
}

// UpdateItem implements Service.UpdateItem
func (s *InventoryService) UpdateItem(ctx context.Context, tenantID, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetItemByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Quantity != nil {
		current.Quantity = *req.Quantity
	}
	if req.ReorderPoint != nil {
		current.ReorderPoint = *req.ReorderPoint
	}
	if req.UnitPrice != nil {
		current.UnitPrice = decimal.NewFromFloat(*req.UnitPrice)
	}
	if req.UnitCost != nil {
		current.UnitCost = utils.ParseFloatToDecimal(req.UnitCost)
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.Supplier != nil {
		current.Supplier = *req.Supplier
	}
	if req.Location != nil {
		current.Location = *req.Location
	}
	current.Normalize()

	if err := s.repo.UpdateItem(ctx, current); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, tenantID)

	resp := current.ToResponse()
	return &resp, nil
}

// DeleteItem implements Service.DeleteItem
func (s *InventoryService) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, tenantID, id); err != nil {
		return err
	}
	s.Invalidate(ctx, tenantID)
	return nil
}

// RecordMovement implements Service.RecordMovement
func (s *InventoryService) RecordMovement(ctx context.Context, tenantID uuid.UUID, req model.RecordMovementRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	movement := &model.StockMovement{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ItemID:     req.ItemID,
		Direction:  req.Direction,
		Quantity:   req.Quantity,
		OccurredAt: time.Now(),
	}
	if req.Note != "" {
		movement.Note = &req.Note
	}

	if err := s.repo.RecordMovement(ctx, movement); err != nil {
		return err
	}

	s.Invalidate(ctx, tenantID)
	return nil
}
