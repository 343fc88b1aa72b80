package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/THuebbe/pantrypro/internal/core"
)

// CloverAdapter talks to the Clover Items API.
// Credentials: accessToken, merchantId.
type CloverAdapter struct {
	baseURL string
	client  *http.Client
}

func NewCloverAdapter() *CloverAdapter {
	baseURL := os.Getenv("CLOVER_API_URL")
	if baseURL == "" {
		baseURL = "https://api.clover.com"
	}
	return &CloverAdapter{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

type cloverItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Price      int64  `json:"price"`
	Hidden     bool   `json:"hidden"`
	Available  *bool  `json:"available"`
	Categories *struct {
		Elements []struct {
			Name string `json:"name"`
		} `json:"elements"`
	} `json:"categories"`
}

func (a *CloverAdapter) FetchMenuItems(
	ctx context.Context,
	credentials Credentials,
) ([]MenuItem, error) {

	token := credentials["accessToken"]
	merchantID := credentials["merchantId"]
	if token == "" || merchantID == "" {
		return nil, core.Validation("Clover credentials incomplete: accessToken and merchantId required")
	}

	url := fmt.Sprintf(
		"%s/v3/merchants/%s/items?expand=categories",
		a.baseURL,
		merchantID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, core.Upstream("failed to fetch Clover menu", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.Upstream(
			fmt.Sprintf("Clover API error (%d): %s", resp.StatusCode, vendorMessage(raw)),
			nil,
		)
	}

	var body struct {
		Elements []cloverItem `json:"elements"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, core.Upstream("Clover returned malformed items payload", err)
	}

	var items []MenuItem
	for _, item := range body.Elements {
		if item.Hidden || (item.Available != nil && !*item.Available) {
			continue
		}

		category := "Uncategorized"
		if item.Categories != nil && len(item.Categories.Elements) > 0 {
			category = item.Categories.Elements[0].Name
		}

		items = append(items, MenuItem{
			POSMenuItemID: item.ID,
			Name:          item.Name,
			// Clover uses the 'code' field for descriptions
			Description: item.Code,
			Category:    category,
			Price:       priceFromMinorUnits(item.Price),
			IsActive:    true,
		})
	}

	return items, nil
}

func (a *CloverAdapter) VerifyConnection(
	ctx context.Context,
	credentials Credentials,
) (bool, error) {

	token := credentials["accessToken"]
	merchantID := credentials["merchantId"]
	if token == "" || merchantID == "" {
		return false, nil
	}

	url := fmt.Sprintf("%s/v3/merchants/%s", a.baseURL, merchantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, nil
	}

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var merchant struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &merchant); err != nil {
		return false, nil
	}

	return merchant.ID == merchantID, nil
}
