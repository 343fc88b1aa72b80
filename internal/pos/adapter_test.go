package pos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSystem(t *testing.T) {
	for _, s := range []string{"toast", "square", "clover"} {
		if _, err := ParseSystem(s); err != nil {
			t.Errorf("expected %q to parse, got %v", s, err)
		}
	}

	if _, err := ParseSystem("micros"); err == nil {
		t.Error("expected error for unsupported system")
	}
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	adapter, err := registry.Get(SystemToast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter == nil {
		t.Fatal("expected adapter")
	}

	if _, err := registry.Get(System("micros")); err == nil {
		t.Error("expected error for unregistered system")
	}
}

func TestPriceFromMinorUnits(t *testing.T) {
	price := priceFromMinorUnits(1250)
	if !price.Equal(decimal.NewFromFloat(12.50)) {
		t.Errorf("expected 12.50, got %s", price)
	}
}

// --------------------------------------------------
// Toast
// --------------------------------------------------

func TestToastFetchMenuItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[
			{
				"groups": [
					{
						"guid": "g1",
						"name": "Burgers",
						"items": [
							{"guid": "i1", "name": "Cheeseburger", "price": 1250, "visibility": "VISIBLE"},
							{"guid": "i2", "name": "Secret Item", "price": 999, "visibility": "HIDDEN"}
						]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	adapter := &ToastAdapter{baseURL: server.URL, client: server.Client()}

	items, err := adapter.FetchMenuItems(context.Background(), Credentials{
		"restaurantGuid": "guid-1",
		"accessToken":    "tok",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 visible item, got %d", len(items))
	}

	item := items[0]
	if item.POSMenuItemID != "i1" {
		t.Errorf("expected external id i1, got %s", item.POSMenuItemID)
	}
	if item.Category != "Burgers" {
		t.Errorf("expected category Burgers, got %s", item.Category)
	}
	if !item.Price.Equal(decimal.NewFromFloat(12.50)) {
		t.Errorf("expected price converted from cents, got %s", item.Price)
	}
	if !item.IsActive {
		t.Error("visible item should be active")
	}
}

func TestToastFetchMenuItems_MissingCredentials(t *testing.T) {
	adapter := NewToastAdapter()

	_, err := adapter.FetchMenuItems(context.Background(), Credentials{})
	if err == nil {
		t.Fatal("expected error for incomplete credentials")
	}
}

func TestToastFetchMenuItems_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "bad token"}`))
	}))
	defer server.Close()

	adapter := &ToastAdapter{baseURL: server.URL, client: server.Client()}

	_, err := adapter.FetchMenuItems(context.Background(), Credentials{
		"restaurantGuid": "guid-1",
		"accessToken":    "tok",
	})
	if err == nil {
		t.Fatal("expected upstream error")
	}
}

// --------------------------------------------------
// Square
// --------------------------------------------------

func TestSquareFetchMenuItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/catalog/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
			"objects": [
				{
					"id": "sq1",
					"type": "ITEM",
					"item_data": {
						"name": "Latte",
						"is_deleted": false,
						"variations": [
							{"item_variation_data": {"price_money": {"amount": 450}}}
						]
					}
				}
			]
		}`))
	}))
	defer server.Close()

	adapter := &SquareAdapter{baseURL: server.URL, client: server.Client()}

	items, err := adapter.FetchMenuItems(context.Background(), Credentials{
		"accessToken": "tok",
		"locationId":  "loc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].Price.Equal(decimal.NewFromFloat(4.50)) {
		t.Errorf("expected price 4.50, got %s", items[0].Price)
	}
	if items[0].Category != "Uncategorized" {
		t.Errorf("expected Uncategorized, got %s", items[0].Category)
	}
}

// --------------------------------------------------
// Clover
// --------------------------------------------------

func TestCloverFetchMenuItems_SkipsHidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"elements": [
				{"id": "c1", "name": "Fries", "price": 399, "hidden": false},
				{"id": "c2", "name": "Old Fries", "price": 299, "hidden": true}
			]
		}`))
	}))
	defer server.Close()

	adapter := &CloverAdapter{baseURL: server.URL, client: server.Client()}

	items, err := adapter.FetchMenuItems(context.Background(), Credentials{
		"accessToken": "tok",
		"merchantId":  "m1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected hidden item skipped, got %d items", len(items))
	}
	if items[0].POSMenuItemID != "c1" {
		t.Errorf("expected c1, got %s", items[0].POSMenuItemID)
	}
}

func TestCloverVerifyConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1"}`))
	}))
	defer server.Close()

	adapter := &CloverAdapter{baseURL: server.URL, client: server.Client()}

	ok, err := adapter.VerifyConnection(context.Background(), Credentials{
		"accessToken": "tok",
		"merchantId":  "m1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected verified connection")
	}

	// id mismatch is not a verified connection
	ok, _ = adapter.VerifyConnection(context.Background(), Credentials{
		"accessToken": "tok",
		"merchantId":  "other",
	})
	if ok {
		t.Error("expected mismatch to fail verification")
	}
}
