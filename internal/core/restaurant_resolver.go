package core

import "context"

// RestaurantResolver maps an authenticated owner to their restaurant row.
// Domain handlers depend on this instead of the restaurant package.
type RestaurantResolver interface {
	RestaurantForOwner(ctx context.Context, ownerID string) (string, error)
}
