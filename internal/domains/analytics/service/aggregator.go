package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"shopdesk-backend/internal/domains/analytics/model"
	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/shared/utils"
)

const (
	trendMonths    = 12
	movementMonths = 6
	topN           = 10

	daysPerYear = 365.25
)

// ComputeAnalytics derives the full analytics snapshot from the item list.
// It never errors: empty input yields the all-zero snapshot with its fixed
// monthly buckets.
func ComputeAnalytics(items []invModel.InventoryItem, now time.Time) *model.Snapshot {
	snap := &model.Snapshot{
		TotalValue:       decimal.Zero,
		AverageItemValue: decimal.Zero,
		TotalItems:       len(items),
		StockTrends:      emptyTrends(now),
		MonthlyMovement:  emptyMovement(now),
	}

	categories := make(map[string]*model.GroupStat)
	suppliers := make(map[string]*model.GroupStat)

	var ageDaysSum float64
	var agedItems int

	for i := range items {
		item := &items[i]
		qty := utils.ClampQuantity(item.Quantity)
		itemValue := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		snap.TotalValue = snap.TotalValue.Add(itemValue)

		if item.Quantity <= 0 {
			snap.OutOfStockItems++
		} else if item.ReorderPoint > 0 && item.Quantity <= item.ReorderPoint {
			snap.LowStockItems++
		}

		accumulate(categories, item.Category, itemValue)
		accumulate(suppliers, item.Supplier, itemValue)

		if item.CreatedAt != nil {
			age := now.Sub(*item.CreatedAt)
			if age < 0 {
				age = 0
			}
			ageDaysSum += age.Hours() / 24
			agedItems++

			addToTrends(snap.StockTrends, *item.CreatedAt, qty, itemValue)
			addToMovement(snap.MonthlyMovement, *item.CreatedAt)
		}
	}

	if snap.TotalItems > 0 {
		snap.AverageItemValue = snap.TotalValue.Div(decimal.NewFromInt(int64(snap.TotalItems)))
	}

	snap.TopCategories = topByValue(categories)
	snap.TopSuppliers = topByValue(suppliers)

	if agedItems > 0 {
		avgAgeYears := ageDaysSum / float64(agedItems) / daysPerYear
		if avgAgeYears > 0 {
			snap.TurnoverRate = 1 / avgAgeYears
		}
	}

	return snap
}

func accumulate(groups map[string]*model.GroupStat, key string, value decimal.Decimal) {
	stat, ok := groups[key]
	if !ok {
		stat = &model.GroupStat{Key: key, Value: decimal.Zero}
		groups[key] = stat
	}
	stat.Count++
	stat.Value = stat.Value.Add(value)
}

func topByValue(groups map[string]*model.GroupStat) []model.GroupStat {
	out := make([]model.GroupStat, 0, len(groups))
	for _, stat := range groups {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func emptyTrends(now time.Time) []model.TrendBucket {
	buckets := make([]model.TrendBucket, trendMonths)
	start := monthStart(now).AddDate(0, -(trendMonths - 1), 0)
	for i := range buckets {
		buckets[i] = model.TrendBucket{
			Date:       start.AddDate(0, i, 0).Format("2006-01"),
			TotalValue: decimal.Zero,
		}
	}
	return buckets
}

func emptyMovement(now time.Time) []model.MovementBucket {
	buckets := make([]model.MovementBucket, movementMonths)
	start := monthStart(now).AddDate(0, -(movementMonths - 1), 0)
	for i := range buckets {
		buckets[i] = model.MovementBucket{Month: start.AddDate(0, i, 0).Format("2006-01")}
	}
	return buckets
}

// addToTrends counts the item in every bucket from its creation month
// forward, so each point reflects the stock that existed by that month.
func addToTrends(buckets []model.TrendBucket, createdAt time.Time, qty int, value decimal.Decimal) {
	created := monthStart(createdAt).Format("2006-01")
	for i := range buckets {
		if buckets[i].Date >= created {
			buckets[i].TotalStock += qty
			buckets[i].TotalValue = buckets[i].TotalValue.Add(value)
		}
	}
}

func addToMovement(buckets []model.MovementBucket, createdAt time.Time) {
	month := monthStart(createdAt).Format("2006-01")
	for i := range buckets {
		if buckets[i].Month == month {
			buckets[i].Added++
			return
		}
	}
}
