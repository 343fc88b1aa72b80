package menu

import (
	"net/http"
	"strconv"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/recipe"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service  *Service
	resolver core.RestaurantResolver
}

func NewHandler(service *Service, resolver core.RestaurantResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

type itemResponse struct {
	ID            string  `json:"id"`
	RestaurantID  string  `json:"restaurant_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	POSMenuItemID *string `json:"pos_menu_item_id"`
	IsActive      bool    `json:"is_active"`
}

func toItemResponse(item *Item) itemResponse {
	return itemResponse{
		ID:            item.ID,
		RestaurantID:  item.RestaurantID,
		Name:          item.Name,
		Category:      item.Category,
		Price:         item.Price.InexactFloat64(),
		POSMenuItemID: item.POSMenuItemID,
		IsActive:      item.IsActive,
	}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------
func (h *Handler) ListItems(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	f := Filters{Category: c.Query("category")}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_active must be true or false"})
			return
		}
		f.IsActive = &active
	}

	items, err := h.service.ListItems(c.Request.Context(), restaurantID, f)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{"menu_items": out})
}

func (h *Handler) ListCategories(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	categories, err := h.service.Categories(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// --------------------------------------------------
// Single item with cost
// --------------------------------------------------
func (h *Handler) GetItem(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	result, err := h.service.GetItemWithCost(
		c.Request.Context(),
		c.Param("id"),
		restaurantID,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := struct {
		itemResponse
		Recipe          []recipe.IngredientCost `json:"recipe"`
		RecipeCost      float64                 `json:"recipe_cost"`
		FoodCostPercent float64                 `json:"food_cost_percent"`
		GrossProfit     float64                 `json:"gross_profit"`
	}{
		itemResponse:    toItemResponse(result.Item),
		Recipe:          result.Recipe,
		RecipeCost:      result.RecipeCost,
		FoodCostPercent: result.FoodCostPercent,
		GrossProfit:     result.GrossProfit,
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------
func (h *Handler) CreateItem(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		Name          string  `json:"name"`
		Category      string  `json:"category"`
		Price         float64 `json:"price"`
		POSMenuItemID *string `json:"pos_menu_item_id"`
		IsActive      *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), restaurantID, NewItem{
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		POSMenuItemID: req.POSMenuItemID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *Handler) UpdateItem(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Category      *string  `json:"category"`
		Price         *float64 `json:"price"`
		POSMenuItemID *string  `json:"pos_menu_item_id"`
		IsActive      *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := Update{
		Name:          req.Name,
		Category:      req.Category,
		POSMenuItemID: req.POSMenuItemID,
		IsActive:      req.IsActive,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		update.Price = &price
	}

	item, err := h.service.UpdateItem(
		c.Request.Context(),
		c.Param("id"),
		restaurantID,
		update,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *Handler) DeleteItem(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	item, err := h.service.DeactivateItem(
		c.Request.Context(),
		c.Param("id"),
		restaurantID,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "menu item deactivated",
		"menu_item": toItemResponse(item),
	})
}

func (h *Handler) restaurantID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}

	restaurantID, err := h.resolver.RestaurantForOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return "", false
	}

	return restaurantID, true
}
