package metrics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository is the read-only query surface the metric computations run
// over. Counting and aggregation that needs business rules (low stock,
// conversions, fallbacks) happens in the service, not in SQL, so single
// queries stay trivially simple.
type Repository interface {
	StockRows(ctx context.Context, restaurantID string) ([]StockRow, error)
	ExpiringCount(ctx context.Context, restaurantID string, from, to time.Time) (int, error)
	InventoryIngredientNames(ctx context.Context, restaurantID string, limit int) ([]string, error)

	OpenOrdersCount(ctx context.Context, restaurantID string) (int, error)
	PendingOrderTotals(ctx context.Context, restaurantID string) ([]decimal.Decimal, error)
	OverdueDeliveriesCount(ctx context.Context, restaurantID string, asOf time.Time) (int, error)
	SupplierNamesSince(ctx context.Context, restaurantID string, since time.Time) ([]string, error)
	CompletedOrderSpans(ctx context.Context, restaurantID string, limit int) ([]OrderSpan, error)

	PendingShipmentsCount(ctx context.Context, restaurantID string) (int, error)
	ReceivedOnCount(ctx context.Context, restaurantID string, day time.Time) (int, error)
	DeliveryRows(ctx context.Context, restaurantID string, limit int) ([]DeliveryRow, error)

	ActiveMenuItemCount(ctx context.Context, restaurantID string) (int, error)
	CostedMenuItems(ctx context.Context, restaurantID string) ([]CostedMenuItem, error)
	IngredientCosts(ctx context.Context, restaurantID string) (map[string]decimal.Decimal, error)

	WasteRows(ctx context.Context, restaurantID string, since time.Time) ([]WasteRow, error)
}
