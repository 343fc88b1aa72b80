package pos

import (
	"context"
	"net/http"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"

	"github.com/shopspring/decimal"
)

// System identifies a supported POS vendor.
type System string

const (
	SystemToast  System = "toast"
	SystemSquare System = "square"
	SystemClover System = "clover"
)

func ParseSystem(s string) (System, error) {
	switch System(s) {
	case SystemToast, SystemSquare, SystemClover:
		return System(s), nil
	default:
		return "", core.Validationf("unsupported POS system: %s", s)
	}
}

// Credentials is the per-restaurant vendor credential map
// stored in restaurants.pos_integration_data.
type Credentials map[string]string

// MenuItem is the normalized shape every adapter produces.
// Price is already converted to major currency units.
type MenuItem struct {
	POSMenuItemID string          `json:"pos_menu_item_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	IsActive      bool            `json:"is_active"`
}

type Adapter interface {
	FetchMenuItems(ctx context.Context, credentials Credentials) ([]MenuItem, error)
	VerifyConnection(ctx context.Context, credentials Credentials) (bool, error)
}

// Registry maps POS systems to their adapters, replacing ad-hoc
// string switches at call sites.
type Registry struct {
	adapters map[System]Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: map[System]Adapter{
			SystemToast:  NewToastAdapter(),
			SystemSquare: NewSquareAdapter(),
			SystemClover: NewCloverAdapter(),
		},
	}
}

func (r *Registry) Register(system System, adapter Adapter) {
	r.adapters[system] = adapter
}

func (r *Registry) Get(system System) (Adapter, error) {
	adapter, ok := r.adapters[system]
	if !ok {
		return nil, core.Validationf("unsupported POS system: %s", system)
	}
	return adapter, nil
}

// priceFromMinorUnits converts a vendor cent amount to major units.
func priceFromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
