package restaurant

import (
	"context"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/pos"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(
	ctx context.Context,
	name string,
	ownerID string,
) (*Restaurant, error) {

	if name == "" {
		return nil, core.Validation("restaurant name is required")
	}

	restaurant := &Restaurant{
		Name:    name,
		OwnerID: ownerID,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// --------------------------------------------------
// Tenant resolution (core.RestaurantResolver)
// --------------------------------------------------
func (s *Service) RestaurantForOwner(
	ctx context.Context,
	ownerID string,
) (string, error) {

	rest, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return rest.ID, nil
}

func (s *Service) GetMyRestaurant(
	ctx context.Context,
	ownerID string,
) (*Restaurant, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// --------------------------------------------------
// POS credentials
// --------------------------------------------------
func (s *Service) SavePOSCredentials(
	ctx context.Context,
	restaurantID string,
	posSystem string,
	credentials map[string]string,
) (pos.System, error) {

	system, err := pos.ParseSystem(posSystem)
	if err != nil {
		return "", err
	}

	if len(credentials) == 0 {
		return "", core.Validation("credentials are required")
	}

	if err := s.repo.SavePOSCredentials(
		ctx,
		restaurantID,
		string(system),
		credentials,
	); err != nil {
		return "", err
	}

	return system, nil
}

// POSCredentials returns the configured system and stored credentials.
func (s *Service) POSCredentials(
	ctx context.Context,
	restaurantID string,
) (pos.System, pos.Credentials, error) {

	rest, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return "", nil, err
	}

	if rest.POSSystem == nil || len(rest.POSIntegrationData) == 0 {
		return "", nil, core.Validation("POS integration not configured for this restaurant")
	}

	system, err := pos.ParseSystem(*rest.POSSystem)
	if err != nil {
		return "", nil, err
	}

	return system, pos.Credentials(rest.POSIntegrationData), nil
}
