package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk-backend/internal/domains/alert/model"
	"shopdesk-backend/internal/domains/alert/service"
	invModel "shopdesk-backend/internal/domains/inventory/model"
)

type fakeSnapshots struct {
	snapshot *invModel.Snapshot
	snapErr  error
	usage    map[uuid.UUID]float64
	usageErr error
}

func (f *fakeSnapshots) GetSnapshot(ctx context.Context, tenantID uuid.UUID) (*invModel.Snapshot, error) {
	return f.snapshot, f.snapErr
}

func (f *fakeSnapshots) UsageRates(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]float64, error) {
	return f.usage, f.usageErr
}

type fakeDismissals struct {
	records map[string]struct{}
	err     error
}

func newFakeDismissals() *fakeDismissals {
	return &fakeDismissals{records: make(map[string]struct{})}
}

func (f *fakeDismissals) Dismiss(ctx context.Context, record *model.DismissedAlert) error {
	if f.err != nil {
		return f.err
	}
	f.records[record.AlertID] = struct{}{}
	return nil
}

func (f *fakeDismissals) ListDismissed(ctx context.Context, tenantID, userID uuid.UUID) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(f.records))
	for id := range f.records {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeDismissals) ClearDismissed(ctx context.Context, tenantID, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.records = make(map[string]struct{})
	return nil
}

type fakeRuleCounter struct {
	count int
	err   error
}

func (f *fakeRuleCounter) CountEnabled(ctx context.Context, tenantID uuid.UUID) (int, error) {
	return f.count, f.err
}

func freshSnapshot(items ...invModel.InventoryItem) *invModel.Snapshot {
	return &invModel.Snapshot{
		TenantID:  uuid.New(),
		Items:     items,
		FetchedAt: time.Now(),
	}
}

func TestGetAlerts(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("dismissed alerts are filtered for the caller", func(t *testing.T) {
		hidden := makeItem("hidden", 1, 10, 5)
		visible := makeItem("visible", 2, 10, 5)

		dismissals := newFakeDismissals()
		dismissals.records[model.AlertID(hidden.ID)] = struct{}{}

		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot(hidden, visible)},
			dismissals,
			&fakeRuleCounter{},
		)

		list, err := svc.GetAlerts(ctx, tenantID, userID)

		require.NoError(t, err)
		require.Len(t, list.Alerts, 1)
		assert.Equal(t, visible.ID, list.Alerts[0].ItemID)
		assert.False(t, list.Stale)
	})

	t.Run("stale snapshot still yields alerts", func(t *testing.T) {
		item := makeItem("item", 1, 10, 5)
		snapshot := freshSnapshot(item)
		snapshot.Stale = true

		svc := service.NewService(
			&fakeSnapshots{snapshot: snapshot, snapErr: invModel.ErrSnapshotStale},
			newFakeDismissals(),
			&fakeRuleCounter{},
		)

		list, err := svc.GetAlerts(ctx, tenantID, userID)

		require.NoError(t, err)
		require.Len(t, list.Alerts, 1)
		assert.True(t, list.Stale)
	})

	t.Run("unavailable snapshot fails", func(t *testing.T) {
		svc := service.NewService(
			&fakeSnapshots{snapErr: invModel.ErrSnapshotUnavailable},
			newFakeDismissals(),
			&fakeRuleCounter{},
		)

		_, err := svc.GetAlerts(ctx, tenantID, userID)

		assert.ErrorIs(t, err, invModel.ErrSnapshotUnavailable)
	})

	t.Run("dismissal read failure serves unfiltered", func(t *testing.T) {
		item := makeItem("item", 1, 10, 5)
		dismissals := newFakeDismissals()
		dismissals.err = errors.New("storage down")

		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot(item)},
			dismissals,
			&fakeRuleCounter{},
		)

		list, err := svc.GetAlerts(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Len(t, list.Alerts, 1)
	})

	t.Run("usage failure omits stockout estimates only", func(t *testing.T) {
		item := makeItem("item", 1, 10, 5)

		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot(item), usageErr: errors.New("query failed")},
			newFakeDismissals(),
			&fakeRuleCounter{},
		)

		list, err := svc.GetAlerts(ctx, tenantID, userID)

		require.NoError(t, err)
		require.Len(t, list.Alerts, 1)
		assert.Nil(t, list.Alerts[0].EstimatedStockoutDate)
	})
}

func TestDismissAlert(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("valid id is persisted", func(t *testing.T) {
		dismissals := newFakeDismissals()
		svc := service.NewService(&fakeSnapshots{snapshot: freshSnapshot()}, dismissals, &fakeRuleCounter{})

		alertID := model.AlertID(uuid.New())
		err := svc.DismissAlert(ctx, tenantID, userID, alertID)

		require.NoError(t, err)
		assert.Contains(t, dismissals.records, alertID)
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		svc := service.NewService(&fakeSnapshots{snapshot: freshSnapshot()}, newFakeDismissals(), &fakeRuleCounter{})

		for _, bad := range []string{"", "alert-", "alert-not-a-uuid", uuid.NewString()} {
			err := svc.DismissAlert(ctx, tenantID, userID, bad)
			assert.ErrorIs(t, err, model.ErrInvalidAlertID, "id %q", bad)
		}
	})
}

func TestRestoreDismissed(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	item := makeItem("item", 1, 10, 5)
	dismissals := newFakeDismissals()
	svc := service.NewService(&fakeSnapshots{snapshot: freshSnapshot(item)}, dismissals, &fakeRuleCounter{})

	require.NoError(t, svc.DismissAlert(ctx, tenantID, userID, model.AlertID(item.ID)))

	list, err := svc.GetAlerts(ctx, tenantID, userID)
	require.NoError(t, err)
	assert.Empty(t, list.Alerts)

	require.NoError(t, svc.RestoreDismissed(ctx, tenantID, userID))

	list, err = svc.GetAlerts(ctx, tenantID, userID)
	require.NoError(t, err)
	assert.Len(t, list.Alerts, 1)
}

func TestGetInsights(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("aggregates alerts, rules and reorder spend", func(t *testing.T) {
		urgent := makeItem("urgent", 0, 5, 4)
		watch := makeItem("watch", 9, 10, 2)
		healthy := makeItem("healthy", 50, 5, 1)

		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot(urgent, watch, healthy)},
			newFakeDismissals(),
			&fakeRuleCounter{count: 2},
		)

		insights, err := svc.GetInsights(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Equal(t, 2, insights.TotalAlerts)
		assert.Equal(t, 1, insights.HighPriorityAlerts)
		assert.Equal(t, 2, insights.ActiveRules)
		// urgent suggests 10 at price 4, watch suggests 11 at price 2
		assert.True(t, insights.EstimatedReorderValue.Equal(decimal.NewFromInt(62)),
			"got %s", insights.EstimatedReorderValue)
		assert.InDelta(t, 2.0/3.0*100, insights.AutomationCoverage, 1e-9)
	})

	t.Run("rule count failure surfaces", func(t *testing.T) {
		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot()},
			newFakeDismissals(),
			&fakeRuleCounter{err: errors.New("db down")},
		)

		_, err := svc.GetInsights(ctx, tenantID, userID)

		assert.Error(t, err)
	})

	t.Run("empty inventory yields zero coverage", func(t *testing.T) {
		svc := service.NewService(
			&fakeSnapshots{snapshot: freshSnapshot()},
			newFakeDismissals(),
			&fakeRuleCounter{count: 0},
		)

		insights, err := svc.GetInsights(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Zero(t, insights.AutomationCoverage)
		assert.True(t, insights.EstimatedReorderValue.IsZero())
	})
}
