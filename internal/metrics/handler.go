package metrics

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

func (h *Handler) Dashboard(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.DashboardMetrics(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) Inventory(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.InventoryMetrics(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) Orders(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.OrderMetrics(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) Receiving(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.ReceivingMetrics(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) MenuItems(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.MenuItemsMetrics(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) Waste(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	metrics, err := h.service.WasteMetrics(
		c.Request.Context(), restaurantID, c.Query("period"),
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
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
