package menu

import (
	"context"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/recipe"

	"github.com/shopspring/decimal"
)

// RecipeCoster supplies the recipe detail and costing for a menu item.
type RecipeCoster interface {
	GetRecipe(ctx context.Context, menuItemID string) (*recipe.Detail, error)
	ComputeRecipeCost(ctx context.Context, menuItemID, restaurantID string) (*recipe.CostBreakdown, error)
}

type Service struct {
	repo   Repository
	coster RecipeCoster
}

func NewService(repo Repository, coster RecipeCoster) *Service {
	return &Service{repo: repo, coster: coster}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------
func (s *Service) ListItems(
	ctx context.Context,
	restaurantID string,
	f Filters,
) ([]Item, error) {
	return s.repo.List(ctx, restaurantID, f)
}

func (s *Service) Categories(
	ctx context.Context,
	restaurantID string,
) ([]string, error) {
	return s.repo.Categories(ctx, restaurantID)
}

// --------------------------------------------------
// Item with cost
// --------------------------------------------------

// ItemWithCost is a menu item joined to its recipe and theoretical cost.
type ItemWithCost struct {
	Item            *Item
	Recipe          []recipe.IngredientCost
	RecipeCost      float64
	FoodCostPercent float64
	GrossProfit     float64
}

// GetItemWithCost loads one menu item plus its costed recipe. The item
// must belong to the caller's restaurant.
func (s *Service) GetItemWithCost(
	ctx context.Context,
	id string,
	restaurantID string,
) (*ItemWithCost, error) {

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, core.NotFound("menu item not found")
	}

	breakdown, err := s.coster.ComputeRecipeCost(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}

	cost := decimal.NewFromFloat(breakdown.TotalCost)

	return &ItemWithCost{
		Item:            item,
		Recipe:          breakdown.Ingredients,
		RecipeCost:      breakdown.TotalCost,
		FoodCostPercent: recipe.FoodCostPercent(cost, item.Price),
		GrossProfit:     recipe.GrossProfit(cost, item.Price),
	}, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

// NewItem is caller input for creating a menu item.
type NewItem struct {
	Name          string
	Category      string
	Price         float64
	POSMenuItemID *string
	IsActive      *bool
}

func (s *Service) CreateItem(
	ctx context.Context,
	restaurantID string,
	input NewItem,
) (*Item, error) {

	if input.Name == "" {
		return nil, core.Validation("menu item name is required")
	}
	if input.Category == "" {
		return nil, core.Validation("category is required")
	}
	if input.Price < 0 {
		return nil, core.Validation("price cannot be negative")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	item := &Item{
		RestaurantID:  restaurantID,
		Name:          input.Name,
		Category:      input.Category,
		Price:         decimal.NewFromFloat(input.Price),
		POSMenuItemID: input.POSMenuItemID,
		IsActive:      active,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) UpdateItem(
	ctx context.Context,
	id string,
	restaurantID string,
	update Update,
) (*Item, error) {

	if update.Price != nil && update.Price.IsNegative() {
		return nil, core.Validation("price cannot be negative")
	}

	if err := s.requireOwnership(ctx, id, restaurantID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

// DeactivateItem is the soft delete: items are never removed, only
// flagged inactive.
func (s *Service) DeactivateItem(
	ctx context.Context,
	id string,
	restaurantID string,
) (*Item, error) {

	if err := s.requireOwnership(ctx, id, restaurantID); err != nil {
		return nil, err
	}

	return s.repo.Deactivate(ctx, id)
}

func (s *Service) requireOwnership(
	ctx context.Context,
	id string,
	restaurantID string,
) error {

	exists, err := s.repo.Exists(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	if !exists {
		return core.NotFound("menu item not found")
	}
	return nil
}
