package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func seedIngredient(t *testing.T, repo *InMemoryRepository, name string) *Ingredient {
	t.Helper()

	ing := &Ingredient{Name: name, Category: "produce", Unit: "lbs"}
	if err := repo.CreateIngredient(context.Background(), ing); err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func TestUpsertStock_CreatesRecord(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)
	ing := seedIngredient(t, repo, "Tomatoes")

	rec, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID: ing.ID,
		Quantity:     decimal.NewFromFloat(10),
		CostPerUnit:  decimal.NewFromFloat(2.50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.IngredientName != "Tomatoes" {
		t.Errorf("expected ingredient name resolved, got %q", rec.IngredientName)
	}
	if rec.Unit != "lbs" {
		t.Errorf("expected unit defaulted from library, got %q", rec.Unit)
	}
}

func TestUpsertStock_UpdatesInPlace(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)
	ing := seedIngredient(t, repo, "Onions")

	first, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID: ing.ID,
		Quantity:     decimal.NewFromFloat(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID: ing.ID,
		Quantity:     decimal.NewFromFloat(8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same record id on re-upsert, got %s vs %s", first.ID, second.ID)
	}

	records, _ := service.ListInventory(context.Background(), "rest-1")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].Quantity.Equal(decimal.NewFromFloat(8)) {
		t.Errorf("expected quantity 8, got %s", records[0].Quantity)
	}
}

func TestUpsertStock_RejectsUnknownIngredient(t *testing.T) {
	service := NewService(NewInMemoryRepository())

	_, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID: "missing",
		Quantity:     decimal.NewFromFloat(1),
	})
	if err == nil {
		t.Fatal("expected error for unknown ingredient")
	}
}

func TestUpsertStock_RejectsNegativeQuantity(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)
	ing := seedIngredient(t, repo, "Flour")

	_, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID: ing.ID,
		Quantity:     decimal.NewFromFloat(-1),
	})
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestLowStock(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)
	low := seedIngredient(t, repo, "Basil")
	ok := seedIngredient(t, repo, "Salt")

	_, err := service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID:    low.ID,
		Quantity:        decimal.NewFromFloat(1),
		MinimumQuantity: decimal.NewFromFloat(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.UpsertStock(context.Background(), "rest-1", StockUpdate{
		IngredientID:    ok.ID,
		Quantity:        decimal.NewFromFloat(50),
		MinimumQuantity: decimal.NewFromFloat(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := service.LowStock(context.Background(), "rest-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 low-stock record, got %d", len(records))
	}
	if records[0].IngredientName != "Basil" {
		t.Errorf("expected Basil, got %s", records[0].IngredientName)
	}
}
