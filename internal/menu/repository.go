package menu

import "context"

type Repository interface {
	// List applies Filters semantics: nil IsActive restricts to active items.
	List(ctx context.Context, restaurantID string, f Filters) ([]Item, error)
	// ListAll returns every item for the restaurant, active or not.
	ListAll(ctx context.Context, restaurantID string) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Exists(ctx context.Context, id string, restaurantID string) (bool, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, id string, update Update) (*Item, error)
	Deactivate(ctx context.Context, id string) (*Item, error)
	Categories(ctx context.Context, restaurantID string) ([]string, error)
}
