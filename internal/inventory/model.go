package inventory

import (
	"time"

	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/shopspring/decimal"
)

// Ingredient is a row in the shared ingredient library. Ingredients are
// global; per-restaurant stock lives in Record.
type Ingredient struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Unit     units.Unit `json:"unit"`
}

// Record is one restaurant's stock for one ingredient. Costing code only
// reads CostPerUnit and Quantity; it never mutates inventory.
type Record struct {
	ID              string
	RestaurantID    string
	IngredientID    string
	IngredientName  string
	Category        string
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	CostPerUnit     decimal.Decimal
	Unit            units.Unit
	ExpirationDate  *time.Time
	UpdatedAt       time.Time
}

// LowStock reports whether current quantity has fallen to or below the
// reorder threshold.
func (r *Record) LowStock() bool {
	return r.Quantity.LessThanOrEqual(r.MinimumQuantity)
}
