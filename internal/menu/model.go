package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable menu entry. POSMenuItemID links it to the external
// POS system's item; locally created items leave it nil.
type Item struct {
	ID            string
	RestaurantID  string
	Name          string
	Category      string
	Price         decimal.Decimal
	POSMenuItemID *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filters narrows menu listings. A nil IsActive means "active items only",
// which is what the dashboard expects by default.
type Filters struct {
	Category string
	IsActive *bool
}

// Update carries a partial mutation; nil fields are left untouched.
type Update struct {
	Name          *string
	Category      *string
	Price         *decimal.Decimal
	POSMenuItemID *string
	IsActive      *bool
}
