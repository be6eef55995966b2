package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denr-tlph/licensing-api/internal/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		PublicBaseURL: "http://localhost:8080",
		GuestEmail:    "guest@denr.gov.ph",
		JWTSecret:     "test-secret",
		OTPTTL:        10 * time.Minute,
		OTPSendLimit:  3,
		OTPSendWindow: 10 * time.Minute,
	}
	os.Exit(m.Run())
}

func newRegistryRouter() *gin.Engine {
	router := gin.New()
	h := NewRegistryHandlers()
	router.GET("/registry/categories", h.ListCategories)
	router.GET("/registry/categories/:category/fields", h.CategoryFields)
	router.GET("/registry/provinces", h.Provinces)
	router.GET("/registry/provinces/:province/municipalities", h.Municipalities)
	return router
}

func TestListCategories(t *testing.T) {
	router := newRegistryRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registry/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var categories []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(categories) != 8 {
		t.Errorf("categories = %d, want 8", len(categories))
	}
}

func TestCategoryFields_Known(t *testing.T) {
	router := newRegistryRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registry/categories/cooperative/fields", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Required map[string]bool `json:"required"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Required["cdaNumber"] {
		t.Error("cdaNumber not required for cooperative")
	}
	if body.Required["secNumber"] {
		t.Error("secNumber marked required for cooperative")
	}
}

func TestCategoryFields_Unknown(t *testing.T) {
	router := newRegistryRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registry/categories/alien/fields", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMunicipalitiesEndpoint(t *testing.T) {
	router := newRegistryRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registry/provinces/Palawan/municipalities", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var munis []string
	if err := json.Unmarshal(w.Body.Bytes(), &munis); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(munis) == 0 {
		t.Error("no municipalities returned for Palawan")
	}
}
