package recipe

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func line(id, name string, quantity, prepLoss float64) Ingredient {
	return Ingredient{
		IngredientID:   id,
		IngredientName: name,
		Quantity:       d(quantity),
		Unit:           "lbs",
		PrepLossFactor: d(prepLoss),
	}
}

func TestAdjustedQuantity(t *testing.T) {
	got := AdjustedQuantity(d(2.0), d(10))
	if !got.Equal(d(2.2)) {
		t.Errorf("expected 2.2, got %s", got)
	}

	// zero prep loss leaves quantity untouched
	got = AdjustedQuantity(d(3.5), decimal.Zero)
	if !got.Equal(d(3.5)) {
		t.Errorf("expected 3.5, got %s", got)
	}
}

func TestComputeCost_PrepLossAndTotals(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Chicken Breast", 0.5, 10),
		line("ing-2", "Breadcrumbs", 0.25, 0),
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: d(20), CostPerUnit: d(4.00)},
		"ing-2": {Quantity: d(5), CostPerUnit: d(1.20)},
	}

	breakdown := ComputeCost(ingredients, stock)

	// 0.5 * 1.10 * 4.00 = 2.20, plus 0.25 * 1.20 = 0.30
	if breakdown.TotalCost != 2.50 {
		t.Errorf("expected total 2.50, got %v", breakdown.TotalCost)
	}
	if len(breakdown.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", breakdown.Warnings)
	}

	first := breakdown.Ingredients[0]
	if first.AdjustedQuantity != 0.55 {
		t.Errorf("expected adjusted quantity 0.55, got %v", first.AdjustedQuantity)
	}
	if first.IngredientCost != 2.20 {
		t.Errorf("expected ingredient cost 2.20, got %v", first.IngredientCost)
	}
	if !first.InStock {
		t.Error("expected first ingredient in stock")
	}
}

func TestComputeCost_OuncePricedLine(t *testing.T) {
	ingredients := []Ingredient{
		{
			IngredientID:   "ing-1",
			IngredientName: "Ground Beef",
			Quantity:       d(8),
			Unit:           "oz",
			PrepLossFactor: d(5),
		},
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: d(64), CostPerUnit: d(0.50)},
	}

	breakdown := ComputeCost(ingredients, stock)

	got := breakdown.Ingredients[0]
	if got.AdjustedQuantity != 8.4 {
		t.Errorf("expected adjusted quantity 8.4, got %v", got.AdjustedQuantity)
	}
	if got.IngredientCost != 4.20 {
		t.Errorf("expected ingredient cost 4.20, got %v", got.IngredientCost)
	}
	if breakdown.TotalCost != 4.20 {
		t.Errorf("expected total 4.20, got %v", breakdown.TotalCost)
	}

	if pct := FoodCostPercent(d(breakdown.TotalCost), d(12.00)); pct != 35.0 {
		t.Errorf("expected food cost percent 35.0, got %v", pct)
	}
	if profit := GrossProfit(d(breakdown.TotalCost), d(12.00)); profit != 7.80 {
		t.Errorf("expected gross profit 7.80, got %v", profit)
	}
}

func TestComputeCost_EmptyRecipe(t *testing.T) {
	breakdown := ComputeCost(nil, nil)

	if breakdown.TotalCost != 0 {
		t.Errorf("expected zero total, got %v", breakdown.TotalCost)
	}
	if len(breakdown.Ingredients) != 0 {
		t.Errorf("expected no ingredient lines, got %d", len(breakdown.Ingredients))
	}
	if len(breakdown.Warnings) != 1 ||
		breakdown.Warnings[0] != "No recipe defined for this menu item" {
		t.Errorf("expected the no-recipe warning, got %v", breakdown.Warnings)
	}
}

func TestComputeCost_MissingInventoryRecord(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Saffron", 0.01, 0),
	}

	breakdown := ComputeCost(ingredients, map[string]StockLevel{})

	if len(breakdown.Warnings) != 1 ||
		breakdown.Warnings[0] != "Saffron not found in inventory" {
		t.Errorf("expected exactly one not-found warning, got %v", breakdown.Warnings)
	}

	got := breakdown.Ingredients[0]
	if got.IngredientCost != 0 {
		t.Errorf("expected zero cost for missing record, got %v", got.IngredientCost)
	}
	if got.InStock {
		t.Error("missing record should not read as in stock")
	}
	if breakdown.TotalCost != 0 {
		t.Errorf("expected zero total, got %v", breakdown.TotalCost)
	}
}

func TestComputeCost_OutOfStockStillCosts(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Butter", 0.2, 0),
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: decimal.Zero, CostPerUnit: d(3.00)},
	}

	breakdown := ComputeCost(ingredients, stock)

	if len(breakdown.Warnings) != 1 ||
		breakdown.Warnings[0] != "Butter is out of stock" {
		t.Errorf("expected out-of-stock warning, got %v", breakdown.Warnings)
	}
	// a zero-stock ingredient still contributes its cost
	if breakdown.TotalCost != 0.60 {
		t.Errorf("expected total 0.60, got %v", breakdown.TotalCost)
	}
	if breakdown.Ingredients[0].InStock {
		t.Error("zero stock should not read as in stock")
	}
}

func TestComputeCost_ZeroCostWarning(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Water", 1, 0),
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: d(100), CostPerUnit: decimal.Zero},
	}

	breakdown := ComputeCost(ingredients, stock)

	if len(breakdown.Warnings) != 1 ||
		breakdown.Warnings[0] != "Water has no cost defined - cost calculation may be inaccurate" {
		t.Errorf("expected no-cost warning, got %v", breakdown.Warnings)
	}
}

func TestComputeCost_AccumulatesBeforeRounding(t *testing.T) {
	// per-line rounding would total 1.02; the engine rounds the sum once
	ingredients := []Ingredient{
		line("ing-1", "A", 1, 0),
		line("ing-2", "B", 1, 0),
		line("ing-3", "C", 1, 0),
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: d(1), CostPerUnit: d(0.335)},
		"ing-2": {Quantity: d(1), CostPerUnit: d(0.335)},
		"ing-3": {Quantity: d(1), CostPerUnit: d(0.335)},
	}

	breakdown := ComputeCost(ingredients, stock)

	if breakdown.TotalCost != 1.01 {
		t.Errorf("expected total rounded once at 1.01, got %v", breakdown.TotalCost)
	}
}

func TestComputeCost_Pure(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Chicken Breast", 0.5, 10),
	}
	stock := map[string]StockLevel{
		"ing-1": {Quantity: d(20), CostPerUnit: d(4.00)},
	}

	first := ComputeCost(ingredients, stock)
	second := ComputeCost(ingredients, stock)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for identical inputs")
	}
}

func TestFoodCostPercent(t *testing.T) {
	got := FoodCostPercent(d(2.50), d(10.00))
	if got != 25.0 {
		t.Errorf("expected 25.0, got %v", got)
	}

	// zero and negative prices never divide
	if FoodCostPercent(d(2.50), decimal.Zero) != 0 {
		t.Error("expected 0 for zero price")
	}
	if FoodCostPercent(d(2.50), d(-1)) != 0 {
		t.Error("expected 0 for negative price")
	}
}

func TestGrossProfit(t *testing.T) {
	if got := GrossProfit(d(2.50), d(10.00)); got != 7.50 {
		t.Errorf("expected 7.50, got %v", got)
	}
}

func TestDeductions(t *testing.T) {
	ingredients := []Ingredient{
		line("ing-1", "Chicken Breast", 0.5, 10),
		line("ing-2", "Breadcrumbs", 0.25, 0),
	}

	deductions := Deductions(ingredients, d(4))

	if len(deductions) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(deductions))
	}
	// 0.5 * 1.10 * 4 = 2.2
	if math.Abs(deductions[0].Quantity-2.2) > 1e-9 {
		t.Errorf("expected 2.2, got %v", deductions[0].Quantity)
	}
	if deductions[1].Quantity != 1.0 {
		t.Errorf("expected 1.0, got %v", deductions[1].Quantity)
	}
}
