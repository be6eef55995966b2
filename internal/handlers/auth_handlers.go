package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/services"
	"github.com/denr-tlph/licensing-api/internal/utils"
)

// AuthHandlers handles registration and sign-in
type AuthHandlers struct {
	registration *services.RegistrationService
	identity     services.IdentityProvider
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(registration *services.RegistrationService, identity services.IdentityProvider) *AuthHandlers {
	return &AuthHandlers{registration: registration, identity: identity}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Register godoc
// @Summary Register a new applicant
// @Description Creates the identity account, persists the profile and returns the landing route for the applicant category
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.RegistrationDraft true "Registration data"
// @Success 201 {object} services.RegistrationResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandlers) Register(c *gin.Context) {
	var draft models.RegistrationDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.registration.Submit(c.Request.Context(), &draft)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAccountExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrEmailNotVerified):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			observability.Logger().Error("registration failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login godoc
// @Summary Sign in
// @Description Authenticates an account and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param data body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	email, err := utils.ValidateEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, account, err := h.identity.SignIn(c.Request.Context(), email, req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
			return
		}
		observability.Logger().Error("sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Sign-in failed"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:  token,
		UserID: account.ID,
		Email:  account.Email,
	})
}
