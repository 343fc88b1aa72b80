package recipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	lines map[string]Ingredient
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lines: make(map[string]Ingredient)}
}

func (r *InMemoryRepository) ListByMenuItem(
	_ context.Context,
	menuItemID string,
) ([]Ingredient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Ingredient{}
	for _, line := range r.lines {
		if line.MenuItemID == menuItemID {
			out = append(out, line)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *InMemoryRepository) GetLine(
	_ context.Context,
	lineID string,
) (*Ingredient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	line, ok := r.lines[lineID]
	if !ok {
		return nil, core.NotFound("recipe ingredient not found")
	}
	return &line, nil
}

func (r *InMemoryRepository) Replace(
	ctx context.Context,
	menuItemID string,
	lines []Ingredient,
) ([]Ingredient, error) {

	r.mu.Lock()
	for id, line := range r.lines {
		if line.MenuItemID == menuItemID {
			delete(r.lines, id)
		}
	}

	now := time.Now()
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].MenuItemID = menuItemID
		// Preserve insertion order under a same-timestamp clock.
		lines[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		lines[i].UpdatedAt = lines[i].CreatedAt
		r.lines[lines[i].ID] = lines[i]
	}
	r.mu.Unlock()

	return r.ListByMenuItem(ctx, menuItemID)
}

func (r *InMemoryRepository) Add(
	_ context.Context,
	line *Ingredient,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.lines {
		if existing.MenuItemID == line.MenuItemID &&
			existing.IngredientID == line.IngredientID {
			return core.Conflict("ingredient already exists in this recipe")
		}
	}

	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.CreatedAt = time.Now()
	line.UpdatedAt = line.CreatedAt
	r.lines[line.ID] = *line

	return nil
}

func (r *InMemoryRepository) UpdateLine(
	_ context.Context,
	lineID string,
	update LineUpdate,
) (*Ingredient, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[lineID]
	if !ok {
		return nil, core.NotFound("recipe ingredient not found")
	}

	if update.Quantity != nil {
		line.Quantity = decimal.NewFromFloat(*update.Quantity)
	}
	if update.Unit != nil {
		line.Unit = units.Unit(*update.Unit)
	}
	if update.PrepLossFactor != nil {
		line.PrepLossFactor = decimal.NewFromFloat(*update.PrepLossFactor)
	}
	line.UpdatedAt = time.Now()
	r.lines[lineID] = line

	return &line, nil
}

func (r *InMemoryRepository) RemoveLine(
	_ context.Context,
	lineID string,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, lineID)

	return nil
}
