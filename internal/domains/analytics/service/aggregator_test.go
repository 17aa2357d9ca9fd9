package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk-backend/internal/domains/analytics/service"
	invModel "shopdesk-backend/internal/domains/inventory/model"
)

func makeItem(quantity int, unitPrice float64, category, supplier string, createdAt *time.Time) invModel.InventoryItem {
	item := invModel.InventoryItem{
		ID:        uuid.New(),
		Name:      "item",
		Quantity:  quantity,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Category:  category,
		Supplier:  supplier,
		CreatedAt: createdAt,
	}
	return item
}

func TestComputeAnalyticsEmptyInput(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	snap := service.ComputeAnalytics(nil, now)

	assert.Zero(t, snap.TotalItems)
	assert.True(t, snap.TotalValue.IsZero())
	assert.True(t, snap.AverageItemValue.IsZero())
	assert.Zero(t, snap.LowStockItems)
	assert.Zero(t, snap.OutOfStockItems)
	assert.Empty(t, snap.TopCategories)
	assert.Empty(t, snap.TopSuppliers)
	assert.Zero(t, snap.TurnoverRate)

	require.Len(t, snap.StockTrends, 12)
	require.Len(t, snap.MonthlyMovement, 6)
	assert.Equal(t, "2025-09", snap.StockTrends[0].Date)
	assert.Equal(t, "2026-08", snap.StockTrends[11].Date)
	assert.Equal(t, "2026-03", snap.MonthlyMovement[0].Month)
	assert.Equal(t, "2026-08", snap.MonthlyMovement[5].Month)
}

func TestComputeAnalyticsScalars(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	items := []invModel.InventoryItem{
		makeItem(10, 5, "tools", "acme", nil),
		makeItem(0, 3, "tools", "acme", nil),
		makeItem(2, 10, "paint", "brush", nil),
	}
	items[2].ReorderPoint = 5

	snap := service.ComputeAnalytics(items, now)

	assert.Equal(t, 3, snap.TotalItems)
	assert.True(t, snap.TotalValue.Equal(decimal.NewFromInt(70)), "got %s", snap.TotalValue)
	assert.True(t, snap.AverageItemValue.Round(4).Equal(decimal.NewFromFloat(23.3333)),
		"got %s", snap.AverageItemValue)
	assert.Equal(t, 1, snap.OutOfStockItems)
	assert.Equal(t, 1, snap.LowStockItems)
}

func TestComputeAnalyticsGroups(t *testing.T) {
	now := time.Now()

	t.Run("groups ranked by aggregate value", func(t *testing.T) {
		items := []invModel.InventoryItem{
			makeItem(1, 100, "big", "s1", nil),
			makeItem(1, 10, "small", "s2", nil),
			makeItem(1, 20, "small", "s2", nil),
		}

		snap := service.ComputeAnalytics(items, now)

		require.Len(t, snap.TopCategories, 2)
		assert.Equal(t, "big", snap.TopCategories[0].Key)
		assert.Equal(t, 1, snap.TopCategories[0].Count)
		assert.Equal(t, "small", snap.TopCategories[1].Key)
		assert.Equal(t, 2, snap.TopCategories[1].Count)
		assert.True(t, snap.TopCategories[1].Value.Equal(decimal.NewFromInt(30)))
	})

	t.Run("capped at ten groups", func(t *testing.T) {
		var items []invModel.InventoryItem
		for i := 0; i < 15; i++ {
			items = append(items, makeItem(1, float64(i+1), fmt.Sprintf("cat-%d", i), "s", nil))
		}

		snap := service.ComputeAnalytics(items, now)

		assert.Len(t, snap.TopCategories, 10)
		// Highest-value categories survive the cut.
		assert.Equal(t, "cat-14", snap.TopCategories[0].Key)
	})
}

func TestComputeAnalyticsTrends(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	created := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []invModel.InventoryItem{
		makeItem(4, 2, "c", "s", &created), // inside both windows
		makeItem(1, 1, "c", "s", &old),     // predates both windows
		makeItem(7, 3, "c", "s", nil),      // no timestamp, excluded from trends
	}

	snap := service.ComputeAnalytics(items, now)

	require.Len(t, snap.StockTrends, 12)

	// The old item counts from the first bucket; the June item joins later.
	first := snap.StockTrends[0]
	assert.Equal(t, "2025-09", first.Date)
	assert.Equal(t, 1, first.TotalStock)

	var june, august *int
	for i := range snap.StockTrends {
		switch snap.StockTrends[i].Date {
		case "2026-06":
			june = &snap.StockTrends[i].TotalStock
		case "2026-08":
			august = &snap.StockTrends[i].TotalStock
		}
	}
	require.NotNil(t, june)
	require.NotNil(t, august)
	assert.Equal(t, 5, *june)
	assert.Equal(t, 5, *august)

	// Movement only counts creations inside the six-month window.
	var added int
	for _, bucket := range snap.MonthlyMovement {
		added += bucket.Added
		assert.Zero(t, bucket.Removed)
	}
	assert.Equal(t, 1, added)
}

func TestComputeAnalyticsTurnover(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("zero without creation timestamps", func(t *testing.T) {
		snap := service.ComputeAnalytics([]invModel.InventoryItem{
			makeItem(1, 1, "c", "s", nil),
		}, now)

		assert.Zero(t, snap.TurnoverRate)
	})

	t.Run("one year average age gives rate one", func(t *testing.T) {
		created := now.AddDate(-1, 0, 0)
		snap := service.ComputeAnalytics([]invModel.InventoryItem{
			makeItem(1, 1, "c", "s", &created),
		}, now)

		assert.InDelta(t, 1.0, snap.TurnoverRate, 0.01)
	})

	t.Run("younger stock turns over faster", func(t *testing.T) {
		young := now.AddDate(0, -1, 0)
		older := now.AddDate(-2, 0, 0)

		fast := service.ComputeAnalytics([]invModel.InventoryItem{makeItem(1, 1, "c", "s", &young)}, now)
		slow := service.ComputeAnalytics([]invModel.InventoryItem{makeItem(1, 1, "c", "s", &older)}, now)

		assert.Greater(t, fast.TurnoverRate, slow.TurnoverRate)
	})
}
