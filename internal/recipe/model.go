package recipe

import (
	"time"

	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/shopspring/decimal"
)

// Ingredient is one line of a menu item's recipe: how much of which
// library ingredient goes into a single serving. PrepLossFactor is a
// percentage (5 means 5% trim/prep loss).
type Ingredient struct {
	ID                 string
	MenuItemID         string
	IngredientID       string
	IngredientName     string
	IngredientCategory string
	Quantity           decimal.Decimal
	Unit               units.Unit
	PrepLossFactor     decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Detail is a full recipe read: all lines for one menu item.
type Detail struct {
	MenuItemID      string               `json:"menu_item_id"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	IngredientCount int                  `json:"ingredient_count"`
}

// IngredientResponse is the JSON shape of one recipe line.
type IngredientResponse struct {
	ID                 string  `json:"id"`
	IngredientID       string  `json:"ingredient_id"`
	IngredientName     string  `json:"ingredient_name"`
	IngredientCategory string  `json:"ingredient_category"`
	Quantity           float64 `json:"quantity"`
	Unit               string  `json:"unit"`
	PrepLossFactor     float64 `json:"prep_loss_factor"`
}

func (i Ingredient) toResponse() IngredientResponse {
	return IngredientResponse{
		ID:                 i.ID,
		IngredientID:       i.IngredientID,
		IngredientName:     i.IngredientName,
		IngredientCategory: i.IngredientCategory,
		Quantity:           i.Quantity.InexactFloat64(),
		Unit:               string(i.Unit),
		PrepLossFactor:     i.PrepLossFactor.InexactFloat64(),
	}
}
