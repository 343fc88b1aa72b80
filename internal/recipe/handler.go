package recipe

import (
	"net/http"

	"github.com/THuebbe/pantrypro/internal/core"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	resolver core.RestaurantResolver
}

func NewHandler(service *Service, resolver core.RestaurantResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

type lineRequest struct {
	IngredientID   string  `json:"ingredient_id"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	PrepLossFactor float64 `json:"prep_loss_factor"`
}

func (req lineRequest) toNewLine() NewLine {
	return NewLine{
		IngredientID:   req.IngredientID,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		PrepLossFactor: req.PrepLossFactor,
	}
}

// --------------------------------------------------
// Recipe CRUD
// --------------------------------------------------
func (h *Handler) GetRecipe(c *gin.Context) {
	detail, err := h.service.GetRecipe(c.Request.Context(), c.Param("menuItemId"))
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) SaveRecipe(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		Ingredients []lineRequest `json:"ingredients"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	newLines := make([]NewLine, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		newLines = append(newLines, line.toNewLine())
	}

	detail, err := h.service.SaveRecipe(
		c.Request.Context(),
		c.Param("menuItemId"),
		restaurantID,
		newLines,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, detail)
}

func (h *Handler) AddIngredient(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := h.service.AddIngredient(
		c.Request.Context(),
		c.Param("menuItemId"),
		restaurantID,
		req.toNewLine(),
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, line)
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	var req struct {
		Quantity       *float64 `json:"quantity"`
		Unit           *string  `json:"unit"`
		PrepLossFactor *float64 `json:"prep_loss_factor"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := h.service.UpdateIngredient(
		c.Request.Context(),
		c.Param("recipeIngredientId"),
		LineUpdate{
			Quantity:       req.Quantity,
			Unit:           req.Unit,
			PrepLossFactor: req.PrepLossFactor,
		},
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *Handler) RemoveIngredient(c *gin.Context) {
	err := h.service.RemoveIngredient(
		c.Request.Context(),
		c.Param("recipeIngredientId"),
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed from recipe"})
}

// --------------------------------------------------
// Costing
// --------------------------------------------------
func (h *Handler) GetRecipeCost(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	breakdown, err := h.service.ComputeRecipeCost(
		c.Request.Context(),
		c.Param("menuItemId"),
		restaurantID,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func (h *Handler) ValidateRecipe(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	result, err := h.service.ValidateRecipe(
		c.Request.Context(),
		c.Param("menuItemId"),
		restaurantID,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) CalculateDeductions(c *gin.Context) {
	var req struct {
		Quantity float64 `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deductions, err := h.service.CalculateDeductions(
		c.Request.Context(),
		c.Param("menuItemId"),
		req.Quantity,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deductions": deductions})
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
