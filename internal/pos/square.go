package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/THuebbe/pantrypro/internal/core"
)

const squareVersion = "2023-10-18"

// SquareAdapter talks to the Square Catalog API.
// Credentials: accessToken, locationId.
type SquareAdapter struct {
	baseURL string
	client  *http.Client
}

func NewSquareAdapter() *SquareAdapter {
	baseURL := "https://connect.squareup.com"
	if os.Getenv("SQUARE_ENVIRONMENT") == "sandbox" {
		baseURL = "https://connect.squareupsandbox.com"
	}
	return &SquareAdapter{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

type squareObject struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	ItemData     *squareItemData `json:"item_data,omitempty"`
	CategoryData *struct {
		Name string `json:"name"`
	} `json:"category_data,omitempty"`
}

type squareItemData struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CategoryID      string `json:"category_id"`
	IsDeleted       bool   `json:"is_deleted"`
	AvailableOnline *bool  `json:"available_online"`
	Variations      []struct {
		ItemVariationData *struct {
			PriceMoney *struct {
				Amount int64 `json:"amount"`
			} `json:"price_money"`
		} `json:"item_variation_data"`
	} `json:"variations"`
}

type squareSearchResponse struct {
	Objects []squareObject `json:"objects"`
	Errors  []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (a *SquareAdapter) FetchMenuItems(
	ctx context.Context,
	credentials Credentials,
) ([]MenuItem, error) {

	token := credentials["accessToken"]
	locationID := credentials["locationId"]
	if token == "" || locationID == "" {
		return nil, core.Validation("Square credentials incomplete: accessToken and locationId required")
	}

	query := map[string]any{
		"object_types": []string{"ITEM"},
		"query": map[string]any{
			"enabled_location_ids_filter": map[string]any{
				"location_ids": []string{locationID},
			},
		},
	}

	result, err := a.searchCatalog(ctx, token, query)
	if err != nil {
		return nil, err
	}

	var items []MenuItem
	needsCategories := false

	for _, obj := range result.Objects {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			continue
		}
		data := obj.ItemData

		// Square items carry price on their variations; import the base
		// item with the first variation's price.
		price := priceFromMinorUnits(0)
		if len(data.Variations) > 0 &&
			data.Variations[0].ItemVariationData != nil &&
			data.Variations[0].ItemVariationData.PriceMoney != nil {
			price = priceFromMinorUnits(data.Variations[0].ItemVariationData.PriceMoney.Amount)
		}

		category := "Uncategorized"
		if data.CategoryID != "" {
			category = data.CategoryID
			needsCategories = true
		}

		active := !data.IsDeleted &&
			(data.AvailableOnline == nil || *data.AvailableOnline)

		items = append(items, MenuItem{
			POSMenuItemID: obj.ID,
			Name:          data.Name,
			Description:   data.Description,
			Category:      category,
			Price:         price,
			IsActive:      active,
		})
	}

	// Second pass: resolve category ids to names.
	if needsCategories {
		categories, err := a.fetchCategories(ctx, token)
		if err == nil {
			for i := range items {
				if name, ok := categories[items[i].Category]; ok {
					items[i].Category = name
				}
			}
		}
	}

	return items, nil
}

func (a *SquareAdapter) fetchCategories(
	ctx context.Context,
	token string,
) (map[string]string, error) {

	result, err := a.searchCatalog(ctx, token, map[string]any{
		"object_types": []string{"CATEGORY"},
	})
	if err != nil {
		return nil, err
	}

	categories := make(map[string]string)
	for _, obj := range result.Objects {
		if obj.Type == "CATEGORY" && obj.CategoryData != nil {
			categories[obj.ID] = obj.CategoryData.Name
		}
	}
	return categories, nil
}

func (a *SquareAdapter) searchCatalog(
	ctx context.Context,
	token string,
	query map[string]any,
) (*squareSearchResponse, error) {

	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	url := a.baseURL + "/v2/catalog/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", squareVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, core.Upstream("failed to fetch Square catalog", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result squareSearchResponse
	if resp.StatusCode != http.StatusOK {
		detail := string(raw)
		if json.Unmarshal(raw, &result) == nil && len(result.Errors) > 0 {
			detail = result.Errors[0].Detail
		}
		return nil, core.Upstream(
			fmt.Sprintf("Square API error (%d): %s", resp.StatusCode, detail),
			nil,
		)
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, core.Upstream("Square returned malformed catalog payload", err)
	}

	return &result, nil
}

func (a *SquareAdapter) VerifyConnection(
	ctx context.Context,
	credentials Credentials,
) (bool, error) {

	locations, err := a.Locations(ctx, credentials["accessToken"])
	if err != nil {
		return false, nil
	}
	return len(locations) > 0, nil
}

type SquareLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Locations lists the locations an access token can sync; used during
// initial setup so the user can pick one.
func (a *SquareAdapter) Locations(
	ctx context.Context,
	token string,
) ([]SquareLocation, error) {

	if token == "" {
		return nil, core.Validation("Square access token is required")
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, a.baseURL+"/v2/locations", nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Square-Version", squareVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, core.Upstream("failed to fetch Square locations", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.Upstream(
			fmt.Sprintf("Square API error (%d): %s", resp.StatusCode, string(raw)),
			nil,
		)
	}

	var body struct {
		Locations []SquareLocation `json:"locations"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}

	return body.Locations, nil
}
