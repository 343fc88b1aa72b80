package reports

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

// Export generates a CSV report and responds with its download URL.
// Report type comes from the "type" query parameter.
func (h *Handler) Export(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	reportType := c.DefaultQuery("type", ReportInventory)

	export, err := h.service.Export(c.Request.Context(), restaurantID, reportType)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, export)
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
