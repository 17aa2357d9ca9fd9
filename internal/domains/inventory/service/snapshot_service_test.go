package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk-backend/internal/config"
	"shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/inventory/service"
)

// fakeRepo is a map-backed inventory repository that can be flipped into
// a failing state to exercise stale-while-error.
type fakeRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID][]model.InventoryItem
	usage     map[uuid.UUID]float64
	failing   bool
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: make(map[uuid.UUID][]model.InventoryItem),
		usage: make(map[uuid.UUID]float64),
	}
}

func (r *fakeRepo) ListItems(ctx context.Context, tenantID uuid.UUID) ([]model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.failing {
		return nil, errors.New("backend unreachable")
	}
	return r.items[tenantID], nil
}

func (r *fakeRepo) GetItemByID(ctx context.Context, tenantID, id uuid.UUID) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items[tenantID] {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, model.NewItemNotFoundError(id)
}

func (r *fakeRepo) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items[item.TenantID] {
		if existing.SKU == item.SKU {
			return model.ErrSKUAlreadyExists
		}
	}
	item.UpdatedAt = time.Now()
	r.items[item.TenantID] = append(r.items[item.TenantID], *item)
	return nil
}

func (r *fakeRepo) UpdateItem(ctx context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[item.TenantID]
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = *item
			return nil
		}
	}
	return model.NewItemNotFoundError(item.ID)
}

func (r *fakeRepo) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[tenantID]
	for i := range list {
		if list[i].ID == id {
			r.items[tenantID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return model.NewItemNotFoundError(id)
}

func (r *fakeRepo) RecordMovement(ctx context.Context, movement *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[movement.TenantID]
	for i := range list {
		if list[i].ID == movement.ItemID {
			delta := movement.Quantity
			if movement.Direction == model.MovementOutbound {
				delta = -delta
			}
			list[i].Quantity += delta
			return nil
		}
	}
	return model.NewItemNotFoundError(movement.ItemID)
}

func (r *fakeRepo) DailyUsageRates(ctx context.Context, tenantID uuid.UUID, windowDays int) (map[uuid.UUID]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errors.New("backend unreachable")
	}
	return r.usage, nil
}

// noopCache satisfies cache.Cache without any cross-process state.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

func testConfig() config.ReorderConfig {
	return config.ReorderConfig{
		DefaultUnitCost:     25.0,
		DefaultLeadTimeDays: 7,
		SnapshotTTL:         5 * time.Minute,
		SnapshotGC:          10 * time.Minute,
		UsageWindowDays:     30,
		RequestTimeout:      time.Second,
	}
}

func seedItem(repo *fakeRepo, tenantID uuid.UUID, sku string, quantity int) uuid.UUID {
	item := model.InventoryItem{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     sku,
		SKU:      sku,
		Quantity: quantity,
	}
	item.Normalize()
	repo.items[tenantID] = append(repo.items[tenantID], item)
	return item.ID
}

func TestGetSnapshotCachesWithinFreshnessWindow(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	seedItem(repo, tenantID, "SKU-1", 5)

	svc := service.NewService(repo, noopCache{}, testConfig())

	first, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestRefetchBypassesFreshnessWindow(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	seedItem(repo, tenantID, "SKU-1", 5)

	svc := service.NewService(repo, noopCache{}, testConfig())

	_, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)

	snapshot, err := svc.Refetch(ctx, tenantID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 2, repo.listCalls)
}

func TestGetSnapshotStaleWhileError(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	seedItem(repo, tenantID, "SKU-1", 5)

	// A zero freshness window forces every read through a refresh, so the
	// second read hits the failing backend with a prior snapshot on hand.
	cfg := testConfig()
	cfg.SnapshotTTL = 0

	svc := service.NewService(repo, noopCache{}, cfg)

	fresh, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, fresh.Stale)

	repo.mu.Lock()
	repo.failing = true
	repo.mu.Unlock()

	stale, err := svc.GetSnapshot(ctx, tenantID)
	require.Error(t, err)
	assert.True(t, model.IsStaleError(err))
	require.NotNil(t, stale)
	assert.True(t, stale.Stale)
	assert.Len(t, stale.Items, 1)
	assert.Equal(t, fresh.FetchedAt, stale.FetchedAt)
}

func TestGetSnapshotUnavailableWithoutHistory(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	repo.failing = true

	svc := service.NewService(repo, noopCache{}, testConfig())

	snapshot, err := svc.GetSnapshot(ctx, tenantID)

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, model.ErrSnapshotUnavailable)
}

func TestWriteSideInvalidatesSnapshot(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	svc := service.NewService(repo, noopCache{}, testConfig())

	_, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)

	created, err := svc.CreateItem(ctx, tenantID, model.CreateItemRequest{
		Name: "Widget", SKU: "W-1", Quantity: 3, ReorderPoint: 5, UnitPrice: 2.5,
	})
	require.NoError(t, err)

	snapshot, err := svc.GetSnapshot(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, created.ID, snapshot.Items[0].ID)
}

func TestCreateItemValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewService(newFakeRepo(), noopCache{}, testConfig())

	cases := []struct {
		name string
		req  model.CreateItemRequest
	}{
		{"missing name", model.CreateItemRequest{SKU: "S", UnitPrice: 1}},
		{"missing sku", model.CreateItemRequest{Name: "N", UnitPrice: 1}},
		{"negative quantity", model.CreateItemRequest{Name: "N", SKU: "S", Quantity: -1}},
		{"negative price", model.CreateItemRequest{Name: "N", SKU: "S", UnitPrice: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, uuid.New(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestRecordMovementValidation(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := newFakeRepo()
	itemID := seedItem(repo, tenantID, "SKU-1", 10)

	svc := service.NewService(repo, noopCache{}, testConfig())

	t.Run("rejects bad direction", func(t *testing.T) {
		err := svc.RecordMovement(ctx, tenantID, model.RecordMovementRequest{
			ItemID: itemID, Direction: "sideways", Quantity: 1,
		})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		err := svc.RecordMovement(ctx, tenantID, model.RecordMovementRequest{
			ItemID: itemID, Direction: model.MovementOutbound, Quantity: 0,
		})
		assert.Error(t, err)
	})

	t.Run("outbound movement reduces stock", func(t *testing.T) {
		err := svc.RecordMovement(ctx, tenantID, model.RecordMovementRequest{
			ItemID: itemID, Direction: model.MovementOutbound, Quantity: 4,
		})
		require.NoError(t, err)

		snapshot, err := svc.GetSnapshot(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 6, snapshot.Items[0].Quantity)
	})
}

func TestNormalizeFillsSentinels(t *testing.T) {
	item := model.InventoryItem{ID: uuid.New(), Name: "n", SKU: "s"}
	item.Normalize()

	assert.Equal(t, "Uncategorized", item.Category)
	assert.Equal(t, "Unknown", item.Supplier)
}
