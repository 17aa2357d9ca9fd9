package model

import "github.com/shopspring/decimal"

// GroupStat is one category or supplier bucket.
type GroupStat struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// TrendBucket is one month of the stock trend series.
type TrendBucket struct {
	Date       string          `json:"date"` // YYYY-MM
	TotalStock int             `json:"totalStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// MovementBucket is one month of item additions. Removed stays 0: the
// derived view has no deletion history to count.
type MovementBucket struct {
	Month   string `json:"month"` // YYYY-MM
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// Snapshot is the full analytics payload, recomputed from the inventory
// snapshot on every request.
type Snapshot struct {
	TotalValue       decimal.Decimal  `json:"totalValue"`
	TotalItems       int              `json:"totalItems"`
	AverageItemValue decimal.Decimal  `json:"averageItemValue"`
	LowStockItems    int              `json:"lowStockItems"`
	OutOfStockItems  int              `json:"outOfStockItems"`
	TopCategories    []GroupStat      `json:"topCategories"`
	TopSuppliers     []GroupStat      `json:"topSuppliers"`
	StockTrends      []TrendBucket    `json:"stockTrends"`
	MonthlyMovement  []MovementBucket `json:"monthlyMovement"`
	TurnoverRate     float64          `json:"turnoverRate"`
	Stale            bool             `json:"stale"`
}
