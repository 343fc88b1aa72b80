package recipe

import "context"

type Repository interface {
	ListByMenuItem(ctx context.Context, menuItemID string) ([]Ingredient, error)
	GetLine(ctx context.Context, lineID string) (*Ingredient, error)
	// Replace swaps the whole recipe for a menu item in one transaction.
	Replace(ctx context.Context, menuItemID string, lines []Ingredient) ([]Ingredient, error)
	// Add fails with a conflict when the ingredient is already in the recipe.
	Add(ctx context.Context, line *Ingredient) error
	UpdateLine(ctx context.Context, lineID string, update LineUpdate) (*Ingredient, error)
	RemoveLine(ctx context.Context, lineID string) error
}

// LineUpdate is a partial mutation of one recipe line.
type LineUpdate struct {
	Quantity       *float64
	Unit           *string
	PrepLossFactor *float64
}
