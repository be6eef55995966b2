package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/middleware"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/services"
)

// optionalDocumentLabels are document slots whose upload failure or absence
// does not block a submission. Currently only the previous permit attached
// to renewals.
var optionalDocumentLabels = map[string]bool{
	"previous-permit": true,
}

// reservedFormKeys are multipart fields consumed by the submission itself
// rather than stored as form answers.
var reservedFormKeys = map[string]bool{
	"service_type": true,
	"service_name": true,
	"description":  true,
	"amount":       true,
	"category":     true,
}

// ApplicationHandlers handles service and license application submissions
type ApplicationHandlers struct {
	applications *services.ApplicationService
	records      services.RecordStore
}

// NewApplicationHandlers creates a new application handlers instance
func NewApplicationHandlers(applications *services.ApplicationService, records services.RecordStore) *ApplicationHandlers {
	return &ApplicationHandlers{applications: applications, records: records}
}

// Submit godoc
// @Summary Submit a service or license application
// @Description Validates the multipart submission, uploads the attached documents, persists the record and returns either the payment checkout URL or the free-service confirmation route
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param service_type formData string true "Service type identifier"
// @Param service_name formData string true "Service display name"
// @Param amount formData string true "Fee in PHP, or the literal value free"
// @Security BearerAuth
// @Success 200 {object} services.SubmissionResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandlers) Submit(c *gin.Context) {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: models.ErrNotAuthenticated.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form: " + err.Error()})
		return
	}

	input := services.SubmissionInput{
		UserID:      claims.UserID,
		UserEmail:   claims.Email,
		Category:    c.PostForm("category"),
		ServiceType: c.PostForm("service_type"),
		ServiceName: c.PostForm("service_name"),
		Description: c.PostForm("description"),
		Amount:      c.PostForm("amount"),
		FormFields:  map[string]string{},
	}
	for key, values := range form.Value {
		if reservedFormKeys[key] || len(values) == 0 {
			continue
		}
		input.FormFields[key] = values[0]
	}

	for label, files := range form.File {
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file " + header.Filename})
				return
			}
			defer file.Close()

			input.Documents = append(input.Documents, services.DocumentUpload{
				Label:    label,
				Optional: optionalDocumentLabels[label],
				File: services.DocumentFile{
					Name:        header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Size:        header.Size,
					Reader:      file,
				},
			})
		}
	}

	result, err := h.applications.Submit(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrMissingRequiredDocument):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			observability.Logger().Error("submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// List godoc
// @Summary List the caller's applications
// @Description Returns the authenticated user's applications, newest first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ServiceApplication
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /applications [get]
func (h *ApplicationHandlers) List(c *gin.Context) {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: models.ErrNotAuthenticated.Error()})
		return
	}

	apps, err := h.records.ListApplicationsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		observability.Logger().Error("failed to list applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// Review godoc
// @Summary List applications awaiting review
// @Description Returns applications in the given status across all applicants, newest first. Staff roles only
// @Tags applications
// @Produce json
// @Param status query string false "Application status" default(submitted)
// @Security BearerAuth
// @Success 200 {array} models.ServiceApplication
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /applications/review [get]
func (h *ApplicationHandlers) Review(c *gin.Context) {
	status := c.DefaultQuery("status", "submitted")

	apps, err := h.records.ListApplicationsByStatus(c.Request.Context(), status)
	if err != nil {
		observability.Logger().Error("failed to list applications for review",
			zap.String("status", status),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, apps)
}
