package menu

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]Item)}
}

func (r *InMemoryRepository) List(
	_ context.Context,
	restaurantID string,
	f Filters,
) ([]Item, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}

	out := []Item{}
	for _, item := range r.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if item.IsActive != active {
			continue
		}
		out = append(out, item)
	}
	sortByName(out)

	return out, nil
}

func (r *InMemoryRepository) ListAll(
	_ context.Context,
	restaurantID string,
) ([]Item, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Item{}
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	sortByName(out)

	return out, nil
}

func (r *InMemoryRepository) GetByID(
	_ context.Context,
	id string,
) (*Item, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, core.NotFound("menu item not found")
	}
	return &item, nil
}

func (r *InMemoryRepository) Exists(
	_ context.Context,
	id string,
	restaurantID string,
) (bool, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return ok && item.RestaurantID == restaurantID, nil
}

func (r *InMemoryRepository) Create(
	_ context.Context,
	item *Item,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	r.items[item.ID] = *item

	return nil
}

func (r *InMemoryRepository) Update(
	_ context.Context,
	id string,
	update Update,
) (*Item, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, core.NotFound("menu item not found")
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.POSMenuItemID != nil {
		item.POSMenuItemID = update.POSMenuItemID
	}
	if update.IsActive != nil {
		item.IsActive = *update.IsActive
	}
	item.UpdatedAt = time.Now()

	r.items[id] = item

	return &item, nil
}

func (r *InMemoryRepository) Deactivate(
	_ context.Context,
	id string,
) (*Item, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, core.NotFound("menu item not found")
	}

	item.IsActive = false
	item.UpdatedAt = time.Now()
	r.items[id] = item

	return &item, nil
}

func (r *InMemoryRepository) Categories(
	_ context.Context,
	restaurantID string,
) ([]string, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	for _, item := range r.items {
		if item.RestaurantID == restaurantID && item.IsActive && item.Category != "" {
			seen[item.Category] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return categories, nil
}

func sortByName(items []Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
