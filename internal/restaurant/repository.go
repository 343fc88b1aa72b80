package restaurant

import "context"

type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	GetByID(ctx context.Context, id string) (*Restaurant, error)
	GetByOwner(ctx context.Context, ownerID string) (*Restaurant, error)
	SavePOSCredentials(
		ctx context.Context,
		restaurantID string,
		posSystem string,
		credentials map[string]string,
	) error
}
