package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests that don't want a database.
type InMemoryRepository struct {
	mu          sync.RWMutex
	ingredients map[string]Ingredient
	records     map[string]Record // keyed by restaurantID + "/" + ingredientID
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		ingredients: make(map[string]Ingredient),
		records:     make(map[string]Record),
	}
}

func (r *InMemoryRepository) ListIngredients(
	_ context.Context,
) ([]Ingredient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *InMemoryRepository) GetIngredient(
	_ context.Context,
	id string,
) (*Ingredient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	ing, ok := r.ingredients[id]
	if !ok {
		return nil, core.NotFound("ingredient not found")
	}
	return &ing, nil
}

func (r *InMemoryRepository) CreateIngredient(
	_ context.Context,
	ing *Ingredient,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	r.ingredients[ing.ID] = *ing

	return nil
}

func (r *InMemoryRepository) ListByRestaurant(
	_ context.Context,
	restaurantID string,
) ([]Record, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, rec := range r.records {
		if rec.RestaurantID == restaurantID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].IngredientName < out[j].IngredientName
	})

	return out, nil
}

func (r *InMemoryRepository) GetByIngredient(
	_ context.Context,
	restaurantID string,
	ingredientID string,
) (*Record, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[restaurantID+"/"+ingredientID]
	if !ok {
		return nil, core.NotFound("inventory record not found")
	}
	return &rec, nil
}

func (r *InMemoryRepository) Upsert(
	_ context.Context,
	rec *Record,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.UpdatedAt = time.Now()

	if ing, ok := r.ingredients[rec.IngredientID]; ok {
		rec.IngredientName = ing.Name
		rec.Category = ing.Category
	}

	r.records[rec.RestaurantID+"/"+rec.IngredientID] = *rec

	return nil
}
