package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/reorder/model"
	"shopdesk-backend/internal/domains/reorder/service"
)

// servingCache really stores and serves entries, unlike memCache which is a
// pure miss-through. Needed to observe cache-vs-store divergence.
type servingCache struct {
	entries map[string][]byte
}

func newServingCache() *servingCache {
	return &servingCache{entries: make(map[string][]byte)}
}

func (c *servingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *servingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *servingCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *servingCache) DeletePattern(ctx context.Context, pattern string) error {
	c.entries = make(map[string][]byte)
	return nil
}

func (c *servingCache) Ping(ctx context.Context) error { return nil }

type fakeItemChecker struct {
	items map[uuid.UUID]struct{}
}

func (f *fakeItemChecker) GetItemByID(ctx context.Context, tenantID, id uuid.UUID) (*invModel.InventoryItem, error) {
	if _, ok := f.items[id]; !ok {
		return nil, invModel.NewItemNotFoundError(id)
	}
	return &invModel.InventoryItem{ID: id, TenantID: tenantID}, nil
}

func checkerWith(ids ...uuid.UUID) *fakeItemChecker {
	f := &fakeItemChecker{items: make(map[uuid.UUID]struct{})}
	for _, id := range ids {
		f.items[id] = struct{}{}
	}
	return f
}

func TestSaveRuleUpsert(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	itemID := uuid.New()

	repo := newFakeRuleRepo()
	svc := service.NewRuleService(repo, checkerWith(itemID), newMemCache(), 7)

	first, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
		ItemID: itemID, Enabled: true, ReorderPoint: 5, ReorderQuantity: 10,
	})
	require.NoError(t, err)

	second, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
		ItemID: itemID, Enabled: true, ReorderPoint: 5, ReorderQuantity: 30,
	})
	require.NoError(t, err)

	// Saving twice for the same item replaces; it never duplicates.
	rules, err := svc.ListRules(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 30, rules[0].ReorderQuantity)
	assert.Equal(t, first.ID, second.ID)
}

func TestRefetchRulesDropsCachedList(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	itemID := uuid.New()

	repo := newFakeRuleRepo()
	repo.put(model.ReorderRule{
		ID: uuid.New(), TenantID: tenantID, ItemID: itemID,
		Enabled: true, ReorderPoint: 5, ReorderQuantity: 10, LeadTimeDays: 7,
	})

	svc := service.NewRuleService(repo, checkerWith(itemID), newServingCache(), 7)

	rules, err := svc.ListRules(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, 10, rules[0].ReorderQuantity)

	// A write that bypasses this process leaves the cached list behind.
	changed := repo.rules[tenantID][itemID]
	changed.ReorderQuantity = 40
	repo.put(changed)

	cached, err := svc.ListRules(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 10, cached[0].ReorderQuantity)

	fresh, err := svc.RefetchRules(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 40, fresh[0].ReorderQuantity)
}

func TestSaveRuleDefaultsAndDerived(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	itemID := uuid.New()

	svc := service.NewRuleService(newFakeRuleRepo(), checkerWith(itemID), newMemCache(), 7)

	t.Run("lead time defaults when omitted", func(t *testing.T) {
		rule, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
			ItemID: itemID, Enabled: true, ReorderPoint: 5, ReorderQuantity: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, 7, rule.LeadTimeDays)
		assert.Equal(t, 20, rule.MaxStock())
	})

	t.Run("per rule override wins", func(t *testing.T) {
		lead := 14
		rule, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
			ItemID: itemID, Enabled: true, ReorderPoint: 5, ReorderQuantity: 10,
			LeadTimeDays: &lead,
		})

		require.NoError(t, err)
		assert.Equal(t, 14, rule.LeadTimeDays)
	})
}

func TestSaveRuleValidation(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	itemID := uuid.New()

	svc := service.NewRuleService(newFakeRuleRepo(), checkerWith(itemID), newMemCache(), 7)

	cases := []struct {
		name string
		req  model.SaveRuleRequest
	}{
		{"missing item", model.SaveRuleRequest{Enabled: true, ReorderPoint: 5, ReorderQuantity: 10}},
		{"zero reorder point", model.SaveRuleRequest{ItemID: itemID, ReorderPoint: 0, ReorderQuantity: 10}},
		{"negative reorder point", model.SaveRuleRequest{ItemID: itemID, ReorderPoint: -3, ReorderQuantity: 10}},
		{"zero quantity", model.SaveRuleRequest{ItemID: itemID, ReorderPoint: 5, ReorderQuantity: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveRule(ctx, tenantID, &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestSaveRuleUnknownItem(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	svc := service.NewRuleService(newFakeRuleRepo(), checkerWith(), newMemCache(), 7)

	_, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
		ItemID: uuid.New(), Enabled: true, ReorderPoint: 5, ReorderQuantity: 10,
	})

	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestDeleteRule(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	itemID := uuid.New()

	repo := newFakeRuleRepo()
	svc := service.NewRuleService(repo, checkerWith(itemID), newMemCache(), 7)

	_, err := svc.SaveRule(ctx, tenantID, &model.SaveRuleRequest{
		ItemID: itemID, Enabled: true, ReorderPoint: 5, ReorderQuantity: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(ctx, tenantID, itemID))

	rules, err := svc.ListRules(ctx, tenantID)
	require.NoError(t, err)
	assert.Empty(t, rules)

	assert.ErrorIs(t, svc.DeleteRule(ctx, tenantID, itemID), model.ErrRuleNotFound)
}
