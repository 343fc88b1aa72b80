package recipe

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockLevel is the slice of an inventory record the costing math needs:
// current quantity on hand and cost per unit. Costing never converts
// units, so the cost must be expressed in the recipe line's unit.
type StockLevel struct {
	Quantity    decimal.Decimal
	CostPerUnit decimal.Decimal
}

// IngredientCost is the costing result for one recipe line.
type IngredientCost struct {
	IngredientID     string  `json:"ingredient_id"`
	IngredientName   string  `json:"ingredient_name"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit"`
	PrepLossFactor   float64 `json:"prep_loss_factor"`
	AdjustedQuantity float64 `json:"adjusted_quantity"`
	CostPerUnit      float64 `json:"cost_per_unit"`
	IngredientCost   float64 `json:"ingredient_cost"`
	InStock          bool    `json:"in_stock"`
	CurrentStock     float64 `json:"current_stock"`
}

// CostBreakdown is the full theoretical food cost of a menu item.
type CostBreakdown struct {
	TotalCost   float64          `json:"total_cost"`
	Ingredients []IngredientCost `json:"ingredients"`
	Warnings    []string         `json:"warnings"`
}

var hundred = decimal.NewFromInt(100)

// AdjustedQuantity grosses a recipe quantity up for prep loss:
// quantity * (1 + prepLossFactor/100).
func AdjustedQuantity(quantity, prepLossFactor decimal.Decimal) decimal.Decimal {
	return quantity.Mul(decimal.NewFromInt(1).Add(prepLossFactor.Div(hundred)))
}

// ComputeCost joins recipe lines to current stock and totals the
// theoretical cost of one serving. stock is keyed by ingredient id; a
// missing key means the ingredient has no inventory record at all.
// Missing records, zero stock, and zero cost each produce a warning but
// never an error — the line still contributes (possibly zero) cost.
// Rounding happens once per output field, after all accumulation.
func ComputeCost(ingredients []Ingredient, stock map[string]StockLevel) CostBreakdown {
	if len(ingredients) == 0 {
		return CostBreakdown{
			TotalCost:   0,
			Ingredients: []IngredientCost{},
			Warnings:    []string{"No recipe defined for this menu item"},
		}
	}

	var (
		total    decimal.Decimal
		lines    = make([]IngredientCost, 0, len(ingredients))
		warnings = []string{}
	)

	for _, ing := range ingredients {
		level, found := stock[ing.IngredientID]

		adjusted := AdjustedQuantity(ing.Quantity, ing.PrepLossFactor)
		cost := adjusted.Mul(level.CostPerUnit)
		total = total.Add(cost)

		switch {
		case !found:
			warnings = append(warnings,
				fmt.Sprintf("%s not found in inventory", ing.IngredientName))
		case level.Quantity.IsZero():
			warnings = append(warnings,
				fmt.Sprintf("%s is out of stock", ing.IngredientName))
		case level.CostPerUnit.IsZero():
			warnings = append(warnings,
				fmt.Sprintf("%s has no cost defined - cost calculation may be inaccurate", ing.IngredientName))
		}

		lines = append(lines, IngredientCost{
			IngredientID:     ing.IngredientID,
			IngredientName:   ing.IngredientName,
			Quantity:         ing.Quantity.InexactFloat64(),
			Unit:             string(ing.Unit),
			PrepLossFactor:   ing.PrepLossFactor.InexactFloat64(),
			AdjustedQuantity: adjusted.Round(4).InexactFloat64(),
			CostPerUnit:      level.CostPerUnit.InexactFloat64(),
			IngredientCost:   cost.Round(2).InexactFloat64(),
			InStock:          level.Quantity.IsPositive(),
			CurrentStock:     level.Quantity.InexactFloat64(),
		})
	}

	return CostBreakdown{
		TotalCost:   total.Round(2).InexactFloat64(),
		Ingredients: lines,
		Warnings:    warnings,
	}
}

// FoodCostPercent is recipe cost as a share of menu price. Zero or
// negative prices yield 0 rather than a division error.
func FoodCostPercent(recipeCost, price decimal.Decimal) float64 {
	if !price.IsPositive() {
		return 0
	}
	return recipeCost.Div(price).Mul(hundred).Round(2).InexactFloat64()
}

// GrossProfit is menu price minus recipe cost.
func GrossProfit(recipeCost, price decimal.Decimal) float64 {
	return price.Sub(recipeCost).Round(2).InexactFloat64()
}

// Deduction is how much of one ingredient to subtract from stock when
// menu items are sold.
type Deduction struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// Deductions scales each recipe line's prep-loss-adjusted quantity by
// the number of items sold.
func Deductions(ingredients []Ingredient, sold decimal.Decimal) []Deduction {
	out := make([]Deduction, 0, len(ingredients))
	for _, ing := range ingredients {
		adjusted := AdjustedQuantity(ing.Quantity, ing.PrepLossFactor)
		out = append(out, Deduction{
			IngredientID: ing.IngredientID,
			Quantity:     adjusted.Mul(sold).Round(4).InexactFloat64(),
			Unit:         string(ing.Unit),
		})
	}
	return out
}
