package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denr-tlph/licensing-api/internal/forms"
	"github.com/denr-tlph/licensing-api/internal/models"
)

// RegistryHandlers serves the static registration form registry: applicant
// categories, their fields and the location picker data.
type RegistryHandlers struct{}

// NewRegistryHandlers creates a new registry handlers instance
func NewRegistryHandlers() *RegistryHandlers {
	return &RegistryHandlers{}
}

type categoryResponse struct {
	ID         string           `json:"id"`
	Role       string           `json:"role"`
	Redirect   string           `json:"redirect"`
	NameLabels forms.NameLabels `json:"name_labels"`
	Fields     []forms.FieldDef `json:"fields"`
}

// ListCategories godoc
// @Summary List applicant categories
// @Description Returns every applicant category with its role, landing route, name labels and category-specific fields
// @Tags registry
// @Produce json
// @Success 200 {array} categoryResponse
// @Router /registry/categories [get]
func (h *RegistryHandlers) ListCategories(c *gin.Context) {
	categories := make([]categoryResponse, 0, len(models.AllCategories))
	for _, category := range models.AllCategories {
		categories = append(categories, categoryResponse{
			ID:         string(category),
			Role:       category.Role(),
			Redirect:   category.RedirectRoute(),
			NameLabels: forms.CategoryNameLabels(category),
			Fields:     forms.CategoryFields(category),
		})
	}
	c.JSON(http.StatusOK, categories)
}

// CategoryFields godoc
// @Summary Get one category's form definition
// @Description Returns the category's name labels, fields and required-field map
// @Tags registry
// @Produce json
// @Param category path string true "Applicant category"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /registry/categories/{category}/fields [get]
func (h *RegistryHandlers) CategoryFields(c *gin.Context) {
	category := models.ApplicantCategory(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown applicant category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":    category,
		"name_labels": forms.CategoryNameLabels(category),
		"fields":      forms.CategoryFields(category),
		"required":    forms.RequiredFieldSet(category),
	})
}

// Provinces godoc
// @Summary List provinces
// @Description Returns the provinces available in the location picker
// @Tags registry
// @Produce json
// @Success 200 {array} string
// @Router /registry/provinces [get]
func (h *RegistryHandlers) Provinces(c *gin.Context) {
	c.JSON(http.StatusOK, forms.Provinces())
}

// Municipalities godoc
// @Summary List a province's municipalities
// @Description Returns the municipalities of the given province; unknown provinces return an empty list
// @Tags registry
// @Produce json
// @Param province path string true "Province name"
// @Success 200 {array} string
// @Router /registry/provinces/{province}/municipalities [get]
func (h *RegistryHandlers) Municipalities(c *gin.Context) {
	c.JSON(http.StatusOK, forms.Municipalities(c.Param("province")))
}
