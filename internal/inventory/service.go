package inventory

import (
	"context"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Ingredient library
// --------------------------------------------------
func (s *Service) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *Service) CreateIngredient(
	ctx context.Context,
	name string,
	category string,
	unit string,
) (*Ingredient, error) {

	if name == "" {
		return nil, core.Validation("ingredient name is required")
	}

	u := units.Unit(unit)
	if !u.IsValid() {
		return nil, core.Validationf("invalid unit: %s", unit)
	}

	if category == "" {
		category = "uncategorized"
	}

	ing := &Ingredient{
		Name:     name,
		Category: category,
		Unit:     u,
	}

	if err := s.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
}

// --------------------------------------------------
// Stock records
// --------------------------------------------------
func (s *Service) ListInventory(
	ctx context.Context,
	restaurantID string,
) ([]Record, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// StockUpdate carries one upsert for a restaurant's stock of an ingredient.
type StockUpdate struct {
	IngredientID    string
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	CostPerUnit     decimal.Decimal
	Unit            string
	ExpirationDate  *time.Time
}

func (s *Service) UpsertStock(
	ctx context.Context,
	restaurantID string,
	update StockUpdate,
) (*Record, error) {

	if update.IngredientID == "" {
		return nil, core.Validation("ingredient id is required")
	}
	if update.Quantity.IsNegative() {
		return nil, core.Validation("quantity cannot be negative")
	}
	if update.CostPerUnit.IsNegative() {
		return nil, core.Validation("cost per unit cannot be negative")
	}

	ing, err := s.repo.GetIngredient(ctx, update.IngredientID)
	if err != nil {
		return nil, err
	}

	unit := units.Unit(update.Unit)
	if update.Unit == "" {
		unit = ing.Unit
	} else if !unit.IsValid() {
		return nil, core.Validationf("invalid unit: %s", update.Unit)
	}

	rec := &Record{
		RestaurantID:    restaurantID,
		IngredientID:    update.IngredientID,
		IngredientName:  ing.Name,
		Category:        ing.Category,
		Quantity:        update.Quantity,
		MinimumQuantity: update.MinimumQuantity,
		CostPerUnit:     update.CostPerUnit,
		Unit:            unit,
		ExpirationDate:  update.ExpirationDate,
	}

	// Keep the existing record's id so upsert updates in place.
	if existing, err := s.repo.GetByIngredient(
		ctx, restaurantID, update.IngredientID,
	); err == nil {
		rec.ID = existing.ID
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// LowStock returns records at or below their minimum quantity.
func (s *Service) LowStock(
	ctx context.Context,
	restaurantID string,
) ([]Record, error) {

	records, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	low := []Record{}
	for _, rec := range records {
		if rec.LowStock() {
			low = append(low, rec)
		}
	}

	return low, nil
}
