package posimport

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/pos"

	"github.com/gin-gonic/gin"
)

// CredentialWriter stores POS credentials for a restaurant; the
// restaurant service provides it.
type CredentialWriter interface {
	SavePOSCredentials(ctx context.Context, restaurantID, posSystem string, credentials map[string]string) (pos.System, error)
}

type Handler struct {
	service  *Service
	creds    CredentialWriter
	resolver core.RestaurantResolver
}

func NewHandler(service *Service, creds CredentialWriter, resolver core.RestaurantResolver) *Handler {
	return &Handler{service: service, creds: creds, resolver: resolver}
}

// --------------------------------------------------
// Credentials
// --------------------------------------------------
func (h *Handler) SaveCredentials(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		POSSystem   string            `json:"pos_system"`
		Credentials map[string]string `json:"credentials"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	system, err := h.creds.SavePOSCredentials(
		c.Request.Context(),
		restaurantID,
		req.POSSystem,
		req.Credentials,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "POS credentials saved",
		"pos_system": string(system),
	})
}

// --------------------------------------------------
// Import
// --------------------------------------------------
func (h *Handler) Import(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req struct {
		POSSystem         string `json:"pos_system"`
		UpdateExisting    *bool  `json:"update_existing"`
		DeactivateMissing *bool  `json:"deactivate_missing"`
	}

	// an empty body means "use the defaults"; gin surfaces it as io.EOF
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opts := Options{UpdateExisting: true, DeactivateMissing: false}
	if req.UpdateExisting != nil {
		opts.UpdateExisting = *req.UpdateExisting
	}
	if req.DeactivateMissing != nil {
		opts.DeactivateMissing = *req.DeactivateMissing
	}

	result, err := h.service.ImportFromPOS(
		c.Request.Context(),
		restaurantID,
		req.POSSystem,
		opts,
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// Preview
// --------------------------------------------------
func (h *Handler) Preview(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	result, err := h.service.PreviewImport(
		c.Request.Context(),
		restaurantID,
		c.Query("pos_system"),
	)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// Verify
// --------------------------------------------------
func (h *Handler) Verify(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	status := h.service.VerifyConnection(
		c.Request.Context(),
		restaurantID,
		c.Query("pos_system"),
	)

	c.JSON(http.StatusOK, status)
}

// --------------------------------------------------
// Square locations
// --------------------------------------------------
func (h *Handler) SquareLocations(c *gin.Context) {
	restaurantID, ok := h.restaurantID(c)
	if !ok {
		return
	}

	locations, err := h.service.SquareLocations(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(core.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations})
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
