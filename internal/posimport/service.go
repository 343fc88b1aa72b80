package posimport

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/menu"
	"github.com/THuebbe/pantrypro/internal/pos"
)

// MenuStore is the slice of menu persistence an import needs.
type MenuStore interface {
	ListAll(ctx context.Context, restaurantID string) ([]menu.Item, error)
	Create(ctx context.Context, item *menu.Item) error
	Update(ctx context.Context, id string, update menu.Update) (*menu.Item, error)
	Deactivate(ctx context.Context, id string) (*menu.Item, error)
}

// CredentialSource resolves a restaurant's configured POS system and
// stored credentials.
type CredentialSource interface {
	POSCredentials(ctx context.Context, restaurantID string) (pos.System, pos.Credentials, error)
}

type Service struct {
	store    MenuStore
	creds    CredentialSource
	registry *pos.Registry
}

func NewService(store MenuStore, creds CredentialSource, registry *pos.Registry) *Service {
	return &Service{store: store, creds: creds, registry: registry}
}

// Stats counts what an applied import did. Deactivations are reported in
// the per-item results but not counted here.
type Stats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ItemResult is one line of the import log.
type ItemResult struct {
	Action   Action   `json:"action"`
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// ImportResult is the full outcome of one applied import.
type ImportResult struct {
	Success   bool         `json:"success"`
	Stats     Stats        `json:"stats"`
	Results   []ItemResult `json:"results"`
	Timestamp time.Time    `json:"timestamp"`
}

func (s *Service) fetchFeed(
	ctx context.Context,
	restaurantID string,
	posSystem string,
) ([]pos.MenuItem, error) {

	storedSystem, creds, err := s.creds.POSCredentials(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	system := storedSystem
	if posSystem != "" {
		system, err = pos.ParseSystem(posSystem)
		if err != nil {
			return nil, err
		}
	}

	adapter, err := s.registry.Get(system)
	if err != nil {
		return nil, err
	}

	return adapter.FetchMenuItems(ctx, creds)
}

// ImportFromPOS fetches the POS menu, reconciles it against local items,
// and applies the result. Failures on individual items are recorded and
// counted; they never abort the batch, which always runs over the whole
// feed.
func (s *Service) ImportFromPOS(
	ctx context.Context,
	restaurantID string,
	posSystem string,
	opts Options,
) (*ImportResult, error) {

	posItems, err := s.fetchFeed(ctx, restaurantID, posSystem)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListAll(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(posItems, existing, opts.UpdateExisting)

	result := &ImportResult{
		Success:   true,
		Stats:     Stats{Total: len(posItems)},
		Results:   []ItemResult{},
		Timestamp: time.Now().UTC(),
	}

	for _, posItem := range plan.Creates {
		s.applyCreate(ctx, restaurantID, posItem, result)
	}
	for _, pair := range plan.Updates {
		// Apply shares preview's diff: identical items are reported as
		// no-change and never re-persisted, so an unchanged feed leaves
		// the store (and updated_at) untouched.
		if _, changed := Diff(pair); !changed {
			result.Results = append(result.Results, ItemResult{
				Action: ActionNoChange,
				ID:     pair.Local.ID,
				Name:   pair.Local.Name,
			})
			continue
		}
		s.applyUpdate(ctx, pair, result)
	}
	for _, posItem := range plan.Skips {
		result.Stats.Skipped++
		result.Results = append(result.Results, ItemResult{
			Action: ActionSkipped,
			Name:   posItem.Name,
			Reason: "Already exists and updateExisting=false",
		})
	}

	if opts.DeactivateMissing {
		for _, item := range plan.Missing {
			if !item.IsActive {
				continue
			}
			if _, err := s.store.Deactivate(ctx, item.ID); err != nil {
				log.Printf("deactivate %s failed: %v", item.Name, err)
				continue
			}
			result.Results = append(result.Results, ItemResult{
				Action: ActionDeactivated,
				ID:     item.ID,
				Name:   item.Name,
				Reason: "Not found in POS menu",
			})
		}
	}

	return result, nil
}

func (s *Service) applyCreate(
	ctx context.Context,
	restaurantID string,
	posItem pos.MenuItem,
	result *ImportResult,
) {

	posID := posItem.POSMenuItemID
	item := &menu.Item{
		RestaurantID:  restaurantID,
		Name:          posItem.Name,
		Category:      posItem.Category,
		Price:         posItem.Price,
		POSMenuItemID: &posID,
		IsActive:      posItem.IsActive,
	}

	if err := s.store.Create(ctx, item); err != nil {
		result.Stats.Errors++
		result.Results = append(result.Results, ItemResult{
			Action: ActionError,
			Name:   posItem.Name,
			Error:  err.Error(),
		})
		return
	}

	price := item.Price.InexactFloat64()
	result.Stats.Created++
	result.Results = append(result.Results, ItemResult{
		Action:   ActionCreated,
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    &price,
	})
}

func (s *Service) applyUpdate(
	ctx context.Context,
	pair MatchedPair,
	result *ImportResult,
) {

	updated, err := s.store.Update(ctx, pair.Local.ID, menu.Update{
		Name:     &pair.Incoming.Name,
		Category: &pair.Incoming.Category,
		Price:    &pair.Incoming.Price,
		IsActive: &pair.Incoming.IsActive,
	})
	if err != nil {
		result.Stats.Errors++
		result.Results = append(result.Results, ItemResult{
			Action: ActionError,
			Name:   pair.Incoming.Name,
			Error:  err.Error(),
		})
		return
	}

	price := updated.Price.InexactFloat64()
	result.Stats.Updated++
	result.Results = append(result.Results, ItemResult{
		Action:   ActionUpdated,
		ID:       updated.ID,
		Name:     updated.Name,
		Category: updated.Category,
		Price:    &price,
	})
}

// --------------------------------------------------
// Preview (dry run)
// --------------------------------------------------

// PreviewEntry is one item in a preview bucket.
type PreviewEntry struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// PreviewUpdate is an item that would change, with its field diffs.
type PreviewUpdate struct {
	PreviewEntry
	Changes Changes `json:"changes"`
}

type Preview struct {
	Total      int             `json:"total"`
	ToCreate   []PreviewEntry  `json:"toCreate"`
	ToUpdate   []PreviewUpdate `json:"toUpdate"`
	Existing   []PreviewEntry  `json:"existing"`
	Categories []string        `json:"categories"`
}

type PreviewStats struct {
	Total     int `json:"total"`
	ToCreate  int `json:"toCreate"`
	ToUpdate  int `json:"toUpdate"`
	NoChanges int `json:"noChanges"`
}

type PreviewResult struct {
	Preview Preview      `json:"preview"`
	Stats   PreviewStats `json:"stats"`
}

// PreviewImport reports what an import would do without writing anything.
// Unlike apply, preview always diffs matched items regardless of options.
func (s *Service) PreviewImport(
	ctx context.Context,
	restaurantID string,
	posSystem string,
) (*PreviewResult, error) {

	posItems, err := s.fetchFeed(ctx, restaurantID, posSystem)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListAll(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(posItems, existing, true)

	preview := Preview{
		Total:      len(posItems),
		ToCreate:   []PreviewEntry{},
		ToUpdate:   []PreviewUpdate{},
		Existing:   []PreviewEntry{},
		Categories: []string{},
	}

	seen := map[string]bool{}
	for _, posItem := range posItems {
		if posItem.Category != "" && !seen[posItem.Category] {
			seen[posItem.Category] = true
			preview.Categories = append(preview.Categories, posItem.Category)
		}
	}
	sort.Strings(preview.Categories)

	for _, posItem := range plan.Creates {
		preview.ToCreate = append(preview.ToCreate, toPreviewEntry(posItem))
	}

	for _, pair := range plan.Updates {
		changes, changed := Diff(pair)
		if changed {
			preview.ToUpdate = append(preview.ToUpdate, PreviewUpdate{
				PreviewEntry: toPreviewEntry(pair.Incoming),
				Changes:      changes,
			})
		} else {
			preview.Existing = append(preview.Existing, toPreviewEntry(pair.Incoming))
		}
	}

	return &PreviewResult{
		Preview: preview,
		Stats: PreviewStats{
			Total:     preview.Total,
			ToCreate:  len(preview.ToCreate),
			ToUpdate:  len(preview.ToUpdate),
			NoChanges: len(preview.Existing),
		},
	}, nil
}

func toPreviewEntry(posItem pos.MenuItem) PreviewEntry {
	return PreviewEntry{
		Name:     posItem.Name,
		Category: posItem.Category,
		Price:    posItem.Price.InexactFloat64(),
	}
}

// --------------------------------------------------
// Connection check
// --------------------------------------------------

// ConnectionStatus reports whether the stored POS credentials still work.
type ConnectionStatus struct {
	Connected bool      `json:"connected"`
	POSSystem string    `json:"posSystem,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// VerifyConnection never returns an error to the caller; failures fold
// into the status payload.
func (s *Service) VerifyConnection(
	ctx context.Context,
	restaurantID string,
	posSystem string,
) *ConnectionStatus {

	status := &ConnectionStatus{Timestamp: time.Now().UTC()}

	storedSystem, creds, err := s.creds.POSCredentials(ctx, restaurantID)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	system := storedSystem
	if posSystem != "" {
		system, err = pos.ParseSystem(posSystem)
		if err != nil {
			status.Error = err.Error()
			return status
		}
	}

	adapter, err := s.registry.Get(system)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	connected, err := adapter.VerifyConnection(ctx, creds)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.Connected = connected
	status.POSSystem = string(system)
	return status
}

// SquareLocations lists the Square locations reachable with the stored
// token, so the dashboard can let an owner pick one.
func (s *Service) SquareLocations(
	ctx context.Context,
	restaurantID string,
) ([]pos.SquareLocation, error) {

	_, creds, err := s.creds.POSCredentials(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	adapter, err := s.registry.Get(pos.SystemSquare)
	if err != nil {
		return nil, err
	}

	square, ok := adapter.(*pos.SquareAdapter)
	if !ok {
		return nil, core.Internal("square adapter unavailable", nil)
	}

	return square.Locations(ctx, creds["accessToken"])
}
