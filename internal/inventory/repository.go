package inventory

import "context"

type Repository interface {
	ListIngredients(ctx context.Context) ([]Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*Ingredient, error)
	CreateIngredient(ctx context.Context, ing *Ingredient) error

	ListByRestaurant(ctx context.Context, restaurantID string) ([]Record, error)
	GetByIngredient(ctx context.Context, restaurantID, ingredientID string) (*Record, error)
	Upsert(ctx context.Context, rec *Record) error
}
