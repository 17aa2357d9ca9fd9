package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/alert/model"
	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/shared/utils"
)

// ComputeAlerts derives reorder alerts from an inventory snapshot. Pure:
// no I/O, never fails, malformed rows are coerced rather than rejected.
//
// An item alerts when it has a reorder policy (reorderPoint > 0) and its
// stock is at or below that point. Out-of-stock items (quantity <= 0)
// always alert; they are the most urgent case, not an exclusion.
func ComputeAlerts(items []invModel.InventoryItem, usage map[uuid.UUID]float64, now time.Time) []model.ReorderAlert {
	alerts := make([]model.ReorderAlert, 0)

	for _, item := range items {
		if item.ReorderPoint <= 0 {
			continue
		}

		stock := utils.ClampQuantity(item.Quantity)
		if stock > item.ReorderPoint {
			continue
		}

		alert := model.ReorderAlert{
			ID:                model.AlertID(item.ID),
			ItemID:            item.ID,
			ItemName:          item.Name,
			CurrentStock:      stock,
			ReorderPoint:      item.ReorderPoint,
			SuggestedQuantity: suggestedQuantity(item.ReorderPoint, stock),
			Priority:          priorityFor(stock, item.ReorderPoint),
		}

		if rate, ok := usage[item.ID]; ok && rate > 0 {
			alert.AverageUsage = &rate
			stockout := estimateStockout(stock, rate, now)
			alert.EstimatedStockoutDate = &stockout
		}

		alerts = append(alerts, alert)
	}

	// Stable: equal priorities keep snapshot order.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
	})

	return alerts
}

// priorityFor applies the decision rules in order; first match wins.
func priorityFor(stock, reorderPoint int) model.Priority {
	switch {
	case stock == 0:
		return model.PriorityHigh
	case float64(stock) <= float64(reorderPoint)*0.5:
		return model.PriorityHigh
	case float64(stock) <= float64(reorderPoint)*0.8:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// suggestedQuantity targets twice the reorder point, clamped at zero.
func suggestedQuantity(reorderPoint, stock int) int {
	return utils.CeilNonNegative(float64(reorderPoint)*2 - float64(stock))
}

// estimateStockout projects the date stock runs out at the observed usage
// rate, clamped to now when usage already covers the remaining stock.
func estimateStockout(stock int, dailyUsage float64, now time.Time) time.Time {
	if dailyUsage >= float64(stock) {
		return now
	}
	days := math.Floor(float64(stock) / dailyUsage)
	return now.AddDate(0, 0, int(days))
}
