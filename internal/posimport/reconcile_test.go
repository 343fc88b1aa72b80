package posimport

import (
	"context"
	"testing"
	"time"

	"github.com/THuebbe/pantrypro/internal/menu"
	"github.com/THuebbe/pantrypro/internal/pos"

	"github.com/shopspring/decimal"
)

type fakeAdapter struct {
	items []pos.MenuItem
	err   error
}

func (f *fakeAdapter) FetchMenuItems(_ context.Context, _ pos.Credentials) ([]pos.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeAdapter) VerifyConnection(_ context.Context, _ pos.Credentials) (bool, error) {
	return f.err == nil, f.err
}

type fakeCreds struct{}

func (fakeCreds) POSCredentials(_ context.Context, _ string) (pos.System, pos.Credentials, error) {
	return pos.SystemToast, pos.Credentials{"accessToken": "tok"}, nil
}

func posItem(id, name, category string, price float64) pos.MenuItem {
	return pos.MenuItem{
		POSMenuItemID: id,
		Name:          name,
		Category:      category,
		Price:         decimal.NewFromFloat(price),
		IsActive:      true,
	}
}

func newImportService(feed []pos.MenuItem) (*Service, *menu.InMemoryRepository) {
	registry := pos.NewRegistry()
	registry.Register(pos.SystemToast, &fakeAdapter{items: feed})

	store := menu.NewInMemoryRepository()
	return NewService(store, fakeCreds{}, registry), store
}

func seedLinkedItem(
	t *testing.T,
	store *menu.InMemoryRepository,
	posID, name string,
	price float64,
	active bool,
) *menu.Item {
	t.Helper()

	item := &menu.Item{
		RestaurantID:  "rest-1",
		Name:          name,
		Category:      "Mains",
		Price:         decimal.NewFromFloat(price),
		POSMenuItemID: &posID,
		IsActive:      active,
	}
	if err := store.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestImport_CreatesNewItems(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{
		posItem("p1", "Burger", "Mains", 12.50),
		posItem("p2", "Fries", "Sides", 3.99),
	})

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.Total != 2 || result.Stats.Created != 2 {
		t.Errorf("expected 2 created of 2, got %+v", result.Stats)
	}

	items, _ := store.ListAll(context.Background(), "rest-1")
	if len(items) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(items))
	}
	for _, item := range items {
		if item.POSMenuItemID == nil {
			t.Errorf("created item %s should carry the POS id", item.Name)
		}
	}
}

func TestImport_SkipsWhenUpdateExistingFalse(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{
		posItem("p1", "Burger Deluxe", "Mains", 14.00),
	})
	seedLinkedItem(t, store, "p1", "Burger", 12.50, true)

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: false},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.Skipped != 1 || result.Stats.Updated != 0 {
		t.Errorf("expected 1 skipped, got %+v", result.Stats)
	}
	if result.Results[0].Reason != "Already exists and updateExisting=false" {
		t.Errorf("unexpected skip reason: %q", result.Results[0].Reason)
	}

	items, _ := store.ListAll(context.Background(), "rest-1")
	if items[0].Name != "Burger" {
		t.Errorf("skipped item should be untouched, got %q", items[0].Name)
	}
}

func TestImport_UpdatesMatchedItems(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{
		posItem("p1", "Burger Deluxe", "Mains", 14.00),
	})
	seedLinkedItem(t, store, "p1", "Burger", 12.50, true)

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.Updated != 1 {
		t.Errorf("expected 1 updated, got %+v", result.Stats)
	}

	items, _ := store.ListAll(context.Background(), "rest-1")
	if items[0].Name != "Burger Deluxe" ||
		!items[0].Price.Equal(decimal.NewFromFloat(14.00)) {
		t.Errorf("expected item updated from feed, got %+v", items[0])
	}
}

func TestImport_DeactivatesMissingOnlyWhenAsked(t *testing.T) {
	feed := []pos.MenuItem{posItem("p1", "Burger", "Mains", 12.50)}

	// without the flag, missing items stay active
	service, store := newImportService(feed)
	seedLinkedItem(t, store, "p1", "Burger", 12.50, true)
	gone := seedLinkedItem(t, store, "p2", "Discontinued Wrap", 8.00, true)

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, _ := store.GetByID(context.Background(), gone.ID)
	if !item.IsActive {
		t.Error("missing item deactivated without deactivateMissing")
	}

	// with the flag, it is deactivated and logged
	result, err = service.ImportFromPOS(
		context.Background(), "rest-1", "",
		Options{UpdateExisting: true, DeactivateMissing: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, _ = store.GetByID(context.Background(), gone.ID)
	if item.IsActive {
		t.Error("expected missing item deactivated")
	}

	var deactivations int
	for _, r := range result.Results {
		if r.Action == ActionDeactivated {
			deactivations++
			if r.Reason != "Not found in POS menu" {
				t.Errorf("unexpected reason: %q", r.Reason)
			}
		}
	}
	if deactivations != 1 {
		t.Errorf("expected 1 deactivation in results, got %d", deactivations)
	}

	// deactivations are logged but never counted in stats
	if result.Stats.Total != 1 {
		t.Errorf("stats.total must equal feed size, got %d", result.Stats.Total)
	}
}

func TestImport_AlreadyInactiveItemsAreLeftAlone(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{})
	seedLinkedItem(t, store, "p9", "Old Special", 6.00, false)

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "",
		Options{UpdateExisting: true, DeactivateMissing: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Results) != 0 {
		t.Errorf("inactive missing items should not be re-deactivated, got %v", result.Results)
	}
}

func TestImport_FeedOnlyItemIsCreated(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{
		posItem("X1", "Pad Thai", "Mains", 13.00),
	})

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.Created != 1 {
		t.Errorf("expected stats.created 1, got %+v", result.Stats)
	}

	items, _ := store.ListAll(context.Background(), "rest-1")
	if len(items) != 1 || *items[0].POSMenuItemID != "X1" {
		t.Fatalf("expected one item linked to X1, got %+v", items)
	}
}

func TestImport_DeactivationHappensOnce(t *testing.T) {
	service, store := newImportService(nil) // feed no longer carries X1
	seeded := seedLinkedItem(t, store, "X1", "Pad Thai", 13.00, true)

	opts := Options{UpdateExisting: true, DeactivateMissing: true}
	first, err := service.ImportFromPOS(context.Background(), "rest-1", "", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, _ := store.GetByID(context.Background(), seeded.ID)
	if item.IsActive {
		t.Error("expected item missing from feed to be deactivated")
	}
	if len(first.Results) != 1 || first.Results[0].Action != ActionDeactivated {
		t.Errorf("expected one deactivated result, got %+v", first.Results)
	}

	second, err := service.ImportFromPOS(context.Background(), "rest-1", "", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Results) != 0 {
		t.Errorf("second run must not re-deactivate, got %+v", second.Results)
	}
}

func TestImport_Idempotent(t *testing.T) {
	feed := []pos.MenuItem{
		posItem("p1", "Burger", "Mains", 12.50),
		posItem("p2", "Fries", "Sides", 3.99),
	}
	service, store := newImportService(feed)

	opts := Options{UpdateExisting: true}
	if _, err := service.ImportFromPOS(context.Background(), "rest-1", "", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before, _ := store.ListAll(context.Background(), "rest-1")
	stamps := map[string]time.Time{}
	for _, item := range before {
		stamps[item.ID] = item.UpdatedAt
	}

	second, err := service.ImportFromPOS(context.Background(), "rest-1", "", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Stats.Created != 0 {
		t.Errorf("second import must not create, got %+v", second.Stats)
	}
	if second.Stats.Updated != 0 {
		t.Errorf("unchanged feed must produce zero updates, got %+v", second.Stats)
	}

	var noChanges int
	for _, r := range second.Results {
		if r.Action == ActionNoChange {
			noChanges++
		}
	}
	if noChanges != 2 {
		t.Errorf("expected 2 no-change results, got %d (%+v)", noChanges, second.Results)
	}

	items, _ := store.ListAll(context.Background(), "rest-1")
	if len(items) != 2 {
		t.Errorf("expected 2 items after re-import, got %d", len(items))
	}
	for _, item := range items {
		if !item.UpdatedAt.Equal(stamps[item.ID]) {
			t.Errorf("re-import bumped updated_at on %s", item.Name)
		}
	}
}

func TestImport_StatsTotalAlwaysFeedSize(t *testing.T) {
	feed := []pos.MenuItem{
		posItem("p1", "A", "X", 1),
		posItem("p2", "B", "X", 2),
		posItem("p3", "C", "Y", 3),
	}
	service, store := newImportService(feed)
	seedLinkedItem(t, store, "p2", "B old", 2, true)

	result, err := service.ImportFromPOS(
		context.Background(), "rest-1", "", Options{UpdateExisting: false},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := result.Stats.Created + result.Stats.Updated +
		result.Stats.Skipped + result.Stats.Errors
	if result.Stats.Total != 3 || sum != 3 {
		t.Errorf("expected total 3 partitioned across outcomes, got %+v", result.Stats)
	}
}

func TestPreview_DiffsWithoutWriting(t *testing.T) {
	service, store := newImportService([]pos.MenuItem{
		posItem("p1", "Burger", "Mains", 14.00), // price change
		posItem("p2", "Fries", "Sides", 3.99),   // unchanged
		posItem("p3", "Shake", "Drinks", 5.50),  // new
	})
	seedLinkedItem(t, store, "p1", "Burger", 12.50, true)
	fries := seedLinkedItem(t, store, "p2", "Fries", 3.99, true)
	fries.Category = "Sides"
	if _, err := store.Update(context.Background(), fries.ID, menu.Update{
		Category: &fries.Category,
	}); err != nil {
		t.Fatalf("seed update: %v", err)
	}

	result, err := service.PreviewImport(context.Background(), "rest-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.ToCreate != 1 || result.Stats.ToUpdate != 1 || result.Stats.NoChanges != 1 {
		t.Errorf("unexpected preview stats: %+v", result.Stats)
	}

	update := result.Preview.ToUpdate[0]
	if update.Changes.Price == nil {
		t.Fatal("expected a price change diff")
	}
	if update.Changes.Price.Old != 12.5 || update.Changes.Price.New != 14.0 {
		t.Errorf("unexpected price diff: %+v", update.Changes.Price)
	}
	if update.Changes.Name != nil {
		t.Error("unchanged name should have nil diff")
	}

	// preview must not have written anything
	items, _ := store.ListAll(context.Background(), "rest-1")
	if len(items) != 2 {
		t.Errorf("preview created items: %d", len(items))
	}
	for _, item := range items {
		if item.Name == "Burger" && !item.Price.Equal(decimal.NewFromFloat(12.50)) {
			t.Error("preview mutated an existing item")
		}
	}

	wantCategories := []string{"Drinks", "Mains", "Sides"}
	if len(result.Preview.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %v", result.Preview.Categories)
	}
	for i, c := range wantCategories {
		if result.Preview.Categories[i] != c {
			t.Errorf("expected sorted categories %v, got %v", wantCategories, result.Preview.Categories)
		}
	}
}

func TestBuildPlan_UnlinkedLocalsNeverMissing(t *testing.T) {
	local := menu.Item{ID: "m1", Name: "House Special", IsActive: true}

	plan := BuildPlan(nil, []menu.Item{local}, true)

	if len(plan.Missing) != 0 {
		t.Errorf("locally created items have no POS id and must not be missing, got %v", plan.Missing)
	}
}

func TestVerifyConnection(t *testing.T) {
	service, _ := newImportService(nil)

	status := service.VerifyConnection(context.Background(), "rest-1", "")
	if !status.Connected {
		t.Errorf("expected connected, got %+v", status)
	}
	if status.POSSystem != "toast" {
		t.Errorf("expected toast, got %q", status.POSSystem)
	}

	status = service.VerifyConnection(context.Background(), "rest-1", "micros")
	if status.Connected || status.Error == "" {
		t.Errorf("expected failure for unsupported system, got %+v", status)
	}
}
