package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard is the overview widget payload.
type Dashboard struct {
	LowStockCount         int     `json:"lowStockCount"`
	ExpiringItemsCount    int     `json:"expiringItemsCount"`
	OpenOrdersCount       int     `json:"openOrdersCount"`
	WeeklyFoodCostPercent float64 `json:"weeklyFoodCostPercent"`
}

// Inventory is the inventory tab's summary.
type Inventory struct {
	BelowReorderCount     int     `json:"belowReorderCount"`
	ExpiringThisWeek      int     `json:"expiringThisWeek"`
	TopUsedIngredient     string  `json:"topUsedIngredient"`
	InventoryTurnoverRate float64 `json:"inventoryTurnoverRate"`
}

// Orders summarizes purchase-order state.
type Orders struct {
	PendingOrdersValue     float64 `json:"pendingOrdersValue"`
	OverdueDeliveriesCount int     `json:"overdueDeliveriesCount"`
	TopSupplierName        string  `json:"topSupplierName"`
	AvgFulfillmentDays     int     `json:"avgFulfillmentDays"`
}

// Receiving summarizes inbound deliveries.
type Receiving struct {
	PendingShipmentsCount int `json:"pendingShipmentsCount"`
	ReceivedTodayCount    int `json:"receivedTodayCount"`
	QualityIssuesCount    int `json:"qualityIssuesCount"`
	OnTimeDeliveryPercent int `json:"onTimeDeliveryPercent"`
}

// MenuItems aggregates costing across the whole active menu.
type MenuItems struct {
	TotalMenuItems      int     `json:"totalMenuItems"`
	ItemsWithoutRecipes int     `json:"itemsWithoutRecipes"`
	AvgMenuPrice        float64 `json:"avgMenuPrice"`
	AvgRecipeCost       float64 `json:"avgRecipeCost"`
	AvgFoodCostPercent  float64 `json:"avgFoodCostPercent"`
	WorstFoodCostItem   string  `json:"worstFoodCostItem"`
	HighestPricedItem   string  `json:"highestPricedItem"`
}

// Waste summarizes logged waste over a period.
type Waste struct {
	Period              string  `json:"period"`
	TotalWasteValue     float64 `json:"totalWasteValue"`
	WasteIncidentCount  int     `json:"wasteIncidentCount"`
	TopWasteReason      *string `json:"topWasteReason"`
	AvgWastePerIncident float64 `json:"avgWastePerIncident"`
}

// StockRow is the quantity/threshold pair low-stock counting reads.
type StockRow struct {
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
}

// DeliveryRow is a delivered order's expected vs actual dates.
type DeliveryRow struct {
	Expected time.Time
	Actual   time.Time
}

// OrderSpan is a completed order's lifetime.
type OrderSpan struct {
	Ordered   time.Time
	Delivered time.Time
}

// RecipeLine is one recipe ingredient as the menu-wide aggregate sees it.
type RecipeLine struct {
	IngredientID   string
	Quantity       decimal.Decimal
	Unit           string
	PrepLossFactor decimal.Decimal
}

// CostedMenuItem is a menu item plus its recipe lines for aggregation.
type CostedMenuItem struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Lines []RecipeLine
}

// WasteRow is one waste-log entry.
type WasteRow struct {
	CostValue decimal.Decimal
	Reason    string
}
