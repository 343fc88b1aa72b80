package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/THuebbe/pantrypro/internal/recipe"
	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/shopspring/decimal"
)

// MVP placeholders until sales and usage tracking land. The dashboard
// renders these verbatim.
const (
	mvpWeeklyFoodCostPercent = 28.5
	mvpInventoryTurnoverRate = 2.3
	mvpQualityIssuesCount    = 1

	fallbackTopIngredient = "Chicken Breast"
	fallbackTopSupplier   = "Sysco"
	fallbackFulfillDays   = 3
	fallbackOnTimePercent = 87
	completedOrderWindow  = 50
	ingredientSampleLimit = 100
	expiringWindowDays    = 7
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------
func (s *Service) DashboardMetrics(
	ctx context.Context,
	restaurantID string,
) (*Dashboard, error) {

	lowStock, err := s.lowStockCount(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	expiring, err := s.repo.ExpiringCount(
		ctx, restaurantID, today, today.AddDate(0, 0, expiringWindowDays),
	)
	if err != nil {
		return nil, err
	}

	openOrders, err := s.repo.OpenOrdersCount(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		LowStockCount:         lowStock,
		ExpiringItemsCount:    expiring,
		OpenOrdersCount:       openOrders,
		WeeklyFoodCostPercent: mvpWeeklyFoodCostPercent,
	}, nil
}

func (s *Service) lowStockCount(
	ctx context.Context,
	restaurantID string,
) (int, error) {

	stockRows, err := s.repo.StockRows(ctx, restaurantID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range stockRows {
		if row.Quantity.LessThanOrEqual(row.MinimumQuantity) {
			count++
		}
	}
	return count, nil
}

// --------------------------------------------------
// Inventory
// --------------------------------------------------
func (s *Service) InventoryMetrics(
	ctx context.Context,
	restaurantID string,
) (*Inventory, error) {

	belowReorder, err := s.lowStockCount(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	expiring, err := s.repo.ExpiringCount(
		ctx, restaurantID, today, today.AddDate(0, 0, expiringWindowDays),
	)
	if err != nil {
		return nil, err
	}

	names, err := s.repo.InventoryIngredientNames(
		ctx, restaurantID, ingredientSampleLimit,
	)
	if err != nil {
		return nil, err
	}

	return &Inventory{
		BelowReorderCount:     belowReorder,
		ExpiringThisWeek:      expiring,
		TopUsedIngredient:     mostFrequent(names, fallbackTopIngredient),
		InventoryTurnoverRate: mvpInventoryTurnoverRate,
	}, nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------
func (s *Service) OrderMetrics(
	ctx context.Context,
	restaurantID string,
) (*Orders, error) {

	totals, err := s.repo.PendingOrderTotals(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	var pendingValue decimal.Decimal
	for _, total := range totals {
		pendingValue = pendingValue.Add(total)
	}

	overdue, err := s.repo.OverdueDeliveriesCount(ctx, restaurantID, s.today())
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	suppliers, err := s.repo.SupplierNamesSince(ctx, restaurantID, monthStart)
	if err != nil {
		return nil, err
	}

	spans, err := s.repo.CompletedOrderSpans(ctx, restaurantID, completedOrderWindow)
	if err != nil {
		return nil, err
	}

	avgDays := fallbackFulfillDays
	if len(spans) > 0 {
		totalDays := 0
		for _, span := range spans {
			days := int(span.Delivered.Sub(span.Ordered).Hours() / 24)
			if days > 0 {
				totalDays += days
			}
		}
		avgDays = roundDiv(totalDays, len(spans))
	}

	return &Orders{
		PendingOrdersValue:     pendingValue.Round(2).InexactFloat64(),
		OverdueDeliveriesCount: overdue,
		TopSupplierName:        mostFrequent(suppliers, fallbackTopSupplier),
		AvgFulfillmentDays:     avgDays,
	}, nil
}

// --------------------------------------------------
// Receiving
// --------------------------------------------------
func (s *Service) ReceivingMetrics(
	ctx context.Context,
	restaurantID string,
) (*Receiving, error) {

	pending, err := s.repo.PendingShipmentsCount(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	receivedToday, err := s.repo.ReceivedOnCount(ctx, restaurantID, s.today())
	if err != nil {
		return nil, err
	}

	deliveries, err := s.repo.DeliveryRows(ctx, restaurantID, completedOrderWindow)
	if err != nil {
		return nil, err
	}

	onTimePercent := fallbackOnTimePercent
	if len(deliveries) > 0 {
		onTime := 0
		for _, row := range deliveries {
			if !row.Actual.After(row.Expected) {
				onTime++
			}
		}
		onTimePercent = roundDiv(onTime*100, len(deliveries))
	}

	return &Receiving{
		PendingShipmentsCount: pending,
		ReceivedTodayCount:    receivedToday,
		QualityIssuesCount:    mvpQualityIssuesCount,
		OnTimeDeliveryPercent: onTimePercent,
	}, nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

// MenuItemsMetrics aggregates costing across every active menu item.
// Unlike per-recipe costing, the aggregate normalizes oz quantities to
// pounds before combining with pound-based costs.
func (s *Service) MenuItemsMetrics(
	ctx context.Context,
	restaurantID string,
) (*MenuItems, error) {

	total, err := s.repo.ActiveMenuItemCount(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.CostedMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	costs, err := s.repo.IngredientCosts(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	result := &MenuItems{
		TotalMenuItems:    total,
		WorstFoodCostItem: "N/A",
		HighestPricedItem: "N/A",
	}

	var (
		totalPrice       decimal.Decimal
		totalRecipeCost  decimal.Decimal
		itemsWithRecipes int
		worstFoodCostPct float64
		highestPrice     decimal.Decimal
	)

	for _, item := range items {
		if len(item.Lines) == 0 {
			result.ItemsWithoutRecipes++
		} else {
			recipeCost := aggregateRecipeCost(item.Lines, costs)
			totalRecipeCost = totalRecipeCost.Add(recipeCost)
			itemsWithRecipes++

			if item.Price.IsPositive() {
				pct := recipe.FoodCostPercent(recipeCost, item.Price)
				if pct > worstFoodCostPct {
					worstFoodCostPct = pct
					result.WorstFoodCostItem = item.Name
				}
			}
		}

		totalPrice = totalPrice.Add(item.Price)
		if item.Price.GreaterThan(highestPrice) {
			highestPrice = item.Price
			result.HighestPricedItem = fmt.Sprintf(
				"%s ($%.2f)", item.Name, item.Price.InexactFloat64(),
			)
		}
	}

	var avgPrice, avgRecipeCost decimal.Decimal
	if len(items) > 0 {
		avgPrice = totalPrice.Div(decimal.NewFromInt(int64(len(items))))
	}
	if itemsWithRecipes > 0 {
		avgRecipeCost = totalRecipeCost.Div(decimal.NewFromInt(int64(itemsWithRecipes)))
	}

	result.AvgMenuPrice = avgPrice.Round(2).InexactFloat64()
	result.AvgRecipeCost = avgRecipeCost.Round(2).InexactFloat64()
	if avgPrice.IsPositive() {
		result.AvgFoodCostPercent = avgRecipeCost.Div(avgPrice).
			Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}

	return result, nil
}

// aggregateRecipeCost totals one recipe with oz quantities converted to
// pounds, since inventory costs here are treated as per-pound.
func aggregateRecipeCost(
	lines []RecipeLine,
	costs map[string]decimal.Decimal,
) decimal.Decimal {

	var total decimal.Decimal
	for _, line := range lines {
		qty := line.Quantity.InexactFloat64()
		qty = units.ToPounds(qty, units.Unit(line.Unit))

		adjusted := recipe.AdjustedQuantity(
			decimal.NewFromFloat(qty), line.PrepLossFactor,
		)
		total = total.Add(adjusted.Mul(costs[line.IngredientID]))
	}
	return total
}

// --------------------------------------------------
// Waste
// --------------------------------------------------

// WasteMetrics summarizes waste-log entries for "today", "week" (since
// the start of the current week), or "month". Unknown periods fall back
// to the weekly window.
func (s *Service) WasteMetrics(
	ctx context.Context,
	restaurantID string,
	period string,
) (*Waste, error) {

	if period == "" {
		period = "week"
	}

	now := s.now()
	var since time.Time
	switch period {
	case "today":
		since = s.today()
	case "month":
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "week":
		since = startOfWeek(now)
	default:
		period = "week"
		since = startOfWeek(now)
	}

	rows, err := s.repo.WasteRows(ctx, restaurantID, since)
	if err != nil {
		return nil, err
	}

	var totalValue decimal.Decimal
	reasons := make([]string, 0, len(rows))
	for _, row := range rows {
		totalValue = totalValue.Add(row.CostValue)
		reasons = append(reasons, row.Reason)
	}

	result := &Waste{
		Period:             period,
		TotalWasteValue:    totalValue.Round(2).InexactFloat64(),
		WasteIncidentCount: len(rows),
	}

	if len(rows) > 0 {
		top := mostFrequent(reasons, "")
		result.TopWasteReason = &top
		result.AvgWastePerIncident = totalValue.
			Div(decimal.NewFromInt(int64(len(rows)))).
			Round(2).InexactFloat64()
	}

	return result, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// mostFrequent returns the value appearing most often, breaking ties by
// first appearance; fallback covers the empty slice.
func mostFrequent(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}

	counts := map[string]int{}
	first := map[string]int{}
	for i, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			first[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return fallback
	}

	type entry struct {
		value string
		count int
		idx   int
	}
	entries := make([]entry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, entry{v, c, first[v]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].idx < entries[j].idx
	})

	return entries[0].value
}

func roundDiv(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(float64(numerator)/float64(denominator) + 0.5)
}
