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

// ToastAdapter talks to the Toast menus API.
// Credentials: restaurantGuid, accessToken, optional apiUrl.
type ToastAdapter struct {
	baseURL string
	client  *http.Client
}

func NewToastAdapter() *ToastAdapter {
	baseURL := os.Getenv("TOAST_API_URL")
	if baseURL == "" {
		baseURL = "https://ws-api.toasttab.com"
	}
	return &ToastAdapter{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

type toastMenu struct {
	Groups []toastGroup `json:"groups"`
}

type toastGroup struct {
	GUID  string      `json:"guid"`
	Name  string      `json:"name"`
	Items []toastItem `json:"items"`
}

type toastItem struct {
	GUID        string `json:"guid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Visibility  string `json:"visibility"`
}

func (a *ToastAdapter) FetchMenuItems(
	ctx context.Context,
	credentials Credentials,
) ([]MenuItem, error) {

	guid := credentials["restaurantGuid"]
	token := credentials["accessToken"]
	if guid == "" || token == "" {
		return nil, core.Validation("Toast credentials incomplete: restaurantGuid and accessToken required")
	}

	baseURL := a.baseURL
	if credentials["apiUrl"] != "" {
		baseURL = credentials["apiUrl"]
	}

	url := fmt.Sprintf("%s/restaurants/v1/restaurants/%s/menus", baseURL, guid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Toast-Restaurant-External-ID", guid)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, core.Upstream("failed to fetch Toast menu", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.Upstream(
			fmt.Sprintf("Toast API error (%d): %s", resp.StatusCode, vendorMessage(raw)),
			nil,
		)
	}

	var menus []toastMenu
	if err := json.Unmarshal(raw, &menus); err != nil {
		return nil, core.Upstream("Toast returned malformed menu payload", err)
	}

	// Toast nests menus > groups > items; only visible items are sellable.
	var items []MenuItem
	for _, menu := range menus {
		for _, group := range menu.Groups {
			category := group.Name
			if category == "" {
				category = "Uncategorized"
			}
			for _, item := range group.Items {
				if item.Visibility != "VISIBLE" && item.Visibility != "ALWAYS" {
					continue
				}
				items = append(items, MenuItem{
					POSMenuItemID: item.GUID,
					Name:          item.Name,
					Description:   item.Description,
					Category:      category,
					Price:         priceFromMinorUnits(item.Price),
					IsActive:      true,
				})
			}
		}
	}

	return items, nil
}

func (a *ToastAdapter) VerifyConnection(
	ctx context.Context,
	credentials Credentials,
) (bool, error) {

	guid := credentials["restaurantGuid"]
	token := credentials["accessToken"]
	if guid == "" || token == "" {
		return false, nil
	}

	baseURL := a.baseURL
	if credentials["apiUrl"] != "" {
		baseURL = credentials["apiUrl"]
	}

	url := fmt.Sprintf("%s/restaurants/v1/restaurants/%s", baseURL, guid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Toast-Restaurant-External-ID", guid)

	resp, err := a.client.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

// vendorMessage pulls a human message out of a vendor error body.
func vendorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(raw)
}
