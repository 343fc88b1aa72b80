package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/inventory"
	"github.com/THuebbe/pantrypro/internal/menu"
	"github.com/THuebbe/pantrypro/internal/recipe"

	"github.com/shopspring/decimal"
)

const (
	ReportInventory = "inventory"
	ReportMenuCosts = "menu-costs"
)

type InventoryReader interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]inventory.Record, error)
}

type MenuReader interface {
	ListAll(ctx context.Context, restaurantID string) ([]menu.Item, error)
}

type RecipeCoster interface {
	ComputeRecipeCost(ctx context.Context, menuItemID, restaurantID string) (*recipe.CostBreakdown, error)
}

// Uploader stores a generated file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type Export struct {
	Report      string    `json:"report"`
	URL         string    `json:"url"`
	RowCount    int       `json:"row_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Service struct {
	stock    InventoryReader
	items    MenuReader
	coster   RecipeCoster
	uploader Uploader
	now      func() time.Time
}

func NewService(
	stock InventoryReader,
	items MenuReader,
	coster RecipeCoster,
	uploader Uploader,
) *Service {
	return &Service{
		stock:    stock,
		items:    items,
		coster:   coster,
		uploader: uploader,
		now:      time.Now,
	}
}

// Export generates the requested CSV report and uploads it.
func (s *Service) Export(
	ctx context.Context,
	restaurantID string,
	reportType string,
) (*Export, error) {

	var (
		rows [][]string
		err  error
	)

	switch reportType {
	case ReportInventory:
		rows, err = s.inventoryRows(ctx, restaurantID)
	case ReportMenuCosts:
		rows, err = s.menuCostRows(ctx, restaurantID)
	default:
		return nil, core.Validationf(
			"unknown report type %q, expected %q or %q",
			reportType, ReportInventory, ReportMenuCosts,
		)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, core.Internal("failed to encode report", err)
	}

	generatedAt := s.now().UTC()
	key := fmt.Sprintf(
		"reports/%s/%s-%s.csv",
		restaurantID, reportType, generatedAt.Format("20060102-150405"),
	)

	url, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, core.Upstream("failed to upload report", err)
	}

	return &Export{
		Report:      reportType,
		URL:         url,
		RowCount:    len(rows) - 1, // minus the header
		GeneratedAt: generatedAt,
	}, nil
}

func (s *Service) inventoryRows(
	ctx context.Context,
	restaurantID string,
) ([][]string, error) {

	records, err := s.stock.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"Ingredient", "Category", "Quantity", "Unit", "Minimum Quantity",
		"Cost Per Unit", "Stock Value", "Expiration Date", "Low Stock",
	}}

	for _, rec := range records {
		expiration := ""
		if rec.ExpirationDate != nil {
			expiration = rec.ExpirationDate.Format("2006-01-02")
		}

		stockValue := rec.Quantity.Mul(rec.CostPerUnit).Round(2)

		rows = append(rows, []string{
			rec.IngredientName,
			rec.Category,
			rec.Quantity.String(),
			string(rec.Unit),
			rec.MinimumQuantity.String(),
			rec.CostPerUnit.Round(4).String(),
			stockValue.String(),
			expiration,
			strconv.FormatBool(rec.LowStock()),
		})
	}

	return rows, nil
}

func (s *Service) menuCostRows(
	ctx context.Context,
	restaurantID string,
) ([][]string, error) {

	items, err := s.items.ListAll(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"Menu Item", "Category", "Active", "Price", "Recipe Cost",
		"Food Cost Percent", "Gross Profit", "Warnings",
	}}

	for _, item := range items {
		breakdown, err := s.coster.ComputeRecipeCost(ctx, item.ID, restaurantID)
		if err != nil {
			return nil, err
		}

		cost := decimal.NewFromFloat(breakdown.TotalCost)
		rows = append(rows, []string{
			item.Name,
			item.Category,
			strconv.FormatBool(item.IsActive),
			item.Price.Round(2).String(),
			cost.Round(2).String(),
			strconv.FormatFloat(recipe.FoodCostPercent(cost, item.Price), 'f', 2, 64),
			strconv.FormatFloat(recipe.GrossProfit(cost, item.Price), 'f', 2, 64),
			strings.Join(breakdown.Warnings, "; "),
		})
	}

	return rows, nil
}
