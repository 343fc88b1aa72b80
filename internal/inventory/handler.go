package inventory

import (
	"net/http"
	"time"

	"github.com/THuebbe/pantrypro/internal/core"

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

// recordResponse flattens decimals to plain JSON numbers.
type recordResponse struct {
	ID              string  `json:"id"`
	IngredientID    string  `json:"ingredient_id"`
	IngredientName  string  `json:"ingredient_name"`
	Category        string  `json:"category"`
	Quantity        float64 `json:"quantity"`
	MinimumQuantity float64 `json:"minimum_quantity"`
	CostPerUnit     float64 `json:"cost_per_unit"`
	Unit            string  `json:"unit"`
	ExpirationDate  *string `json:"expiration_date"`
	LowStock        bool    `json:"low_stock"`
}

func toRecordResponse(rec Record) recordResponse {
	resp := recordResponse{
		ID:              rec.ID,
		IngredientID:    rec.IngredientID,
		IngredientName:  rec.IngredientName,
		Category:        rec.Category,
		Quantity:        rec.Quantity.InexactFloat64(),
		MinimumQuantity: rec.MinimumQuantity.InexactFloat64(),
		CostPerUnit:     rec.CostPerUnit.Round(4).InexactFloat64(),
		Unit:            string(rec.Unit),
		LowStock:        rec.LowStock(),
	}
	if rec.ExpirationDate != nil {
		d := rec.ExpirationDate.Format("2006-01-02")
		resp.ExpirationDate = &d
	}
	return resp
}

// --------------------------------------------------
// Ingredient library
// --------------------------------------------------
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.service.ListIngredients(c.Request.Context())
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *Handler) CreateIngredient(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Unit     string `json:"unit"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.CreateIngredient(
		c.Request.Context(),
		req.Name,
		req.Category,
		req.Unit,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ing)
}

// --------------------------------------------------
// Stock records
// --------------------------------------------------
func (h *Handler) ListInventory(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	records, err := h.service.ListInventory(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}

	c.JSON(http.StatusOK, gin.H{"inventory": out})
}

func (h *Handler) UpsertStock(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		IngredientID    string  `json:"ingredient_id"`
		Quantity        float64 `json:"quantity"`
		MinimumQuantity float64 `json:"minimum_quantity"`
		CostPerUnit     float64 `json:"cost_per_unit"`
		Unit            string  `json:"unit"`
		ExpirationDate  *string `json:"expiration_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := StockUpdate{
		IngredientID:    req.IngredientID,
		Quantity:        decimal.NewFromFloat(req.Quantity),
		MinimumQuantity: decimal.NewFromFloat(req.MinimumQuantity),
		CostPerUnit:     decimal.NewFromFloat(req.CostPerUnit),
		Unit:            req.Unit,
	}

	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		d, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiration_date, expected YYYY-MM-DD"})
			return
		}
		update.ExpirationDate = &d
	}

	rec, err := h.service.UpsertStock(c.Request.Context(), restaurantID, update)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toRecordResponse(*rec))
}

func (h *Handler) ListLowStock(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	records, err := h.service.LowStock(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}

	c.JSON(http.StatusOK, gin.H{"low_stock": out})
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
