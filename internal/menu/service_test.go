package menu

import (
	"context"
	"testing"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/recipe"

	"github.com/shopspring/decimal"
)

type stubCoster struct {
	breakdown recipe.CostBreakdown
}

func (s *stubCoster) GetRecipe(_ context.Context, menuItemID string) (*recipe.Detail, error) {
	return &recipe.Detail{MenuItemID: menuItemID}, nil
}

func (s *stubCoster) ComputeRecipeCost(
	_ context.Context, _, _ string,
) (*recipe.CostBreakdown, error) {
	b := s.breakdown
	return &b, nil
}

func TestCreateItem_Validation(t *testing.T) {
	service := NewService(NewInMemoryRepository(), &stubCoster{})

	cases := []struct {
		name  string
		input NewItem
	}{
		{"missing name", NewItem{Category: "Mains", Price: 10}},
		{"missing category", NewItem{Name: "Burger", Price: 10}},
		{"negative price", NewItem{Name: "Burger", Category: "Mains", Price: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateItem(context.Background(), "rest-1", tc.input)
			if core.KindOf(err) != core.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestListItems_DefaultsToActive(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &stubCoster{})

	_, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Burger", Category: "Mains", Price: 12.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inactive := false
	_, err = service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Retired Special", Category: "Mains", Price: 9, IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := service.ListItems(context.Background(), "rest-1", Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Burger" {
		t.Errorf("expected only the active item, got %+v", items)
	}

	showInactive := false
	items, err = service.ListItems(context.Background(), "rest-1", Filters{IsActive: &showInactive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Retired Special" {
		t.Errorf("expected only the inactive item, got %+v", items)
	}
}

func TestGetItemWithCost(t *testing.T) {
	repo := NewInMemoryRepository()
	coster := &stubCoster{breakdown: recipe.CostBreakdown{
		TotalCost: 2.50,
		Ingredients: []recipe.IngredientCost{
			{IngredientName: "Chicken Breast", IngredientCost: 2.50},
		},
		Warnings: []string{},
	}}
	service := NewService(repo, coster)

	item, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Chicken Sandwich", Category: "Mains", Price: 10.00,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := service.GetItemWithCost(context.Background(), item.ID, "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RecipeCost != 2.50 {
		t.Errorf("expected recipe cost 2.50, got %v", result.RecipeCost)
	}
	if result.FoodCostPercent != 25.0 {
		t.Errorf("expected food cost 25%%, got %v", result.FoodCostPercent)
	}
	if result.GrossProfit != 7.50 {
		t.Errorf("expected gross profit 7.50, got %v", result.GrossProfit)
	}
}

func TestGetItemWithCost_ZeroPrice(t *testing.T) {
	repo := NewInMemoryRepository()
	coster := &stubCoster{breakdown: recipe.CostBreakdown{TotalCost: 2.50}}
	service := NewService(repo, coster)

	item, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Comp Meal", Category: "Mains", Price: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := service.GetItemWithCost(context.Background(), item.ID, "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FoodCostPercent != 0 {
		t.Errorf("expected 0 food cost percent for free item, got %v", result.FoodCostPercent)
	}
}

func TestGetItemWithCost_ForeignRestaurant(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &stubCoster{})

	item, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Burger", Category: "Mains", Price: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.GetItemWithCost(context.Background(), item.ID, "rest-2")
	if core.KindOf(err) != core.KindNotFound {
		t.Errorf("expected not-found for foreign restaurant, got %v", err)
	}
}

func TestDeactivateItem(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &stubCoster{})

	item, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Burger", Category: "Mains", Price: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deactivated, err := service.DeactivateItem(context.Background(), item.ID, "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deactivated.IsActive {
		t.Error("expected item to be inactive after delete")
	}

	// still present when listing everything
	all, _ := repo.ListAll(context.Background(), "rest-1")
	if len(all) != 1 {
		t.Errorf("soft delete should keep the row, got %d items", len(all))
	}
}

func TestUpdateItem_PartialFields(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &stubCoster{})

	item, err := service.CreateItem(context.Background(), "rest-1", NewItem{
		Name: "Burger", Category: "Mains", Price: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := decimal.NewFromFloat(13.50)
	updated, err := service.UpdateItem(context.Background(), item.ID, "rest-1", Update{
		Price: &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Burger" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}
	if !updated.Price.Equal(price) {
		t.Errorf("expected price 13.50, got %s", updated.Price)
	}
}
