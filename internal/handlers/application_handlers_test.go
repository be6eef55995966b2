package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/middleware"
	"github.com/denr-tlph/licensing-api/internal/models"
)

// fakeReviewStore serves a fixed set of applications keyed by status.
type fakeReviewStore struct {
	byStatus map[string][]models.ServiceApplication
}

func (f *fakeReviewStore) WriteProfile(_ context.Context, profile *models.UserProfile) error {
	return nil
}

func (f *fakeReviewStore) InsertApplication(_ context.Context, app *models.ServiceApplication) (string, error) {
	return "", nil
}

func (f *fakeReviewStore) UpdatePaymentStatus(_ context.Context, externalID, paymentStatus string) error {
	return nil
}

func (f *fakeReviewStore) ListApplicationsByUser(_ context.Context, userID string) ([]models.ServiceApplication, error) {
	return nil, nil
}

func (f *fakeReviewStore) ListApplicationsByStatus(_ context.Context, status string) ([]models.ServiceApplication, error) {
	return f.byStatus[status], nil
}

func (f *fakeReviewStore) GetApplicationByExternalID(_ context.Context, externalID string) (*models.ServiceApplication, error) {
	return nil, models.ErrRecordNotFound
}

func signSessionToken(t *testing.T, role string) string {
	t.Helper()
	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: "acct-1",
		Email:  "staff@denr.gov.ph",
		Role:   role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func newReviewRouter(store *fakeReviewStore) *gin.Engine {
	router := gin.New()
	h := NewApplicationHandlers(nil, store)
	staff := router.Group("", middleware.AuthMiddleware(), middleware.RequireRole("municipal", "regional", "national", "super-admin"))
	staff.GET("/applications/review", h.Review)
	return router
}

func reviewRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReview_StaffSeesSubmittedApplications(t *testing.T) {
	store := &fakeReviewStore{byStatus: map[string][]models.ServiceApplication{
		"submitted": {
			{ID: "app-1", UserID: "acct-7", Status: "submitted"},
			{ID: "app-2", UserID: "acct-8", Status: "submitted"},
		},
	}}
	router := newReviewRouter(store)

	w := reviewRequest(router, "/applications/review", signSessionToken(t, "municipal"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var apps []models.ServiceApplication
	if err := json.Unmarshal(w.Body.Bytes(), &apps); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(apps) != 2 {
		t.Errorf("applications = %d, want 2", len(apps))
	}
}

func TestReview_StatusFilterPassedThrough(t *testing.T) {
	store := &fakeReviewStore{byStatus: map[string][]models.ServiceApplication{
		"approved": {{ID: "app-3", Status: "approved"}},
	}}
	router := newReviewRouter(store)

	w := reviewRequest(router, "/applications/review?status=approved", signSessionToken(t, "super-admin"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var apps []models.ServiceApplication
	if err := json.Unmarshal(w.Body.Bytes(), &apps); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(apps) != 1 || apps[0].Status != "approved" {
		t.Errorf("applications = %+v, want the approved record", apps)
	}
}

func TestReview_ApplicantRoleForbidden(t *testing.T) {
	router := newReviewRouter(&fakeReviewStore{})

	w := reviewRequest(router, "/applications/review", signSessionToken(t, "user"))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestReview_AnonymousUnauthorized(t *testing.T) {
	router := newReviewRouter(&fakeReviewStore{})

	w := reviewRequest(router, "/applications/review", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
