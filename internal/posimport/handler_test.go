package posimport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/THuebbe/pantrypro/internal/pos"

	"github.com/gin-gonic/gin"
)

type fakeResolver struct{}

func (fakeResolver) RestaurantForOwner(_ context.Context, _ string) (string, error) {
	return "rest-1", nil
}

type fakeCredWriter struct{}

func (fakeCredWriter) SavePOSCredentials(_ context.Context, _, posSystem string, _ map[string]string) (pos.System, error) {
	return pos.System(posSystem), nil
}

func newImportRouter(feed []pos.MenuItem) *gin.Engine {
	service, _ := newImportService(feed)
	handler := NewHandler(service, fakeCredWriter{}, fakeResolver{})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
	})
	router.POST("/import", handler.Import)
	return router
}

// TestImportHandler_EmptyBodyUsesDefaults tests that POST /import with no
// body runs with default options instead of rejecting the request
func TestImportHandler_EmptyBodyUsesDefaults(t *testing.T) {
	router := newImportRouter([]pos.MenuItem{
		posItem("p1", "Burger", "Mains", 12.50),
	})

	req := httptest.NewRequest("POST", "/import", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}

	var result ImportResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Stats.Created != 1 {
		t.Errorf("expected 1 created with default options, got %+v", result.Stats)
	}
}

// TestImportHandler_MalformedBodyRejected tests that broken JSON still 400s
func TestImportHandler_MalformedBodyRejected(t *testing.T) {
	router := newImportRouter(nil)

	req := httptest.NewRequest("POST", "/import", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
