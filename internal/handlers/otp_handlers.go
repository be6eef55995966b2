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

// OTPHandlers handles email verification code operations
type OTPHandlers struct {
	otp *services.OTPService
}

// NewOTPHandlers creates a new OTP handlers instance
func NewOTPHandlers(otp *services.OTPService) *OTPHandlers {
	return &OTPHandlers{otp: otp}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// SendOTP godoc
// @Summary Send email verification code
// @Description Sends a six-digit verification code to the given email address
// @Tags verification
// @Accept json
// @Produce json
// @Param data body sendOTPRequest true "Email address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /verification/send-otp [post]
func (h *OTPHandlers) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	email, err := utils.ValidateEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.otp.SendCode(c.Request.Context(), email); err != nil {
		if errors.Is(err, models.ErrOTPSendLimit) {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
			return
		}
		observability.Logger().Error("failed to send verification code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Verification code sent"})
}

// VerifyOTP godoc
// @Summary Verify email verification code
// @Description Checks a submitted verification code and marks the address verified
// @Tags verification
// @Accept json
// @Produce json
// @Param data body verifyOTPRequest true "Email address and code"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /verification/verify-otp [post]
func (h *OTPHandlers) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	email, err := utils.ValidateEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.otp.VerifyCode(c.Request.Context(), email, req.Code); err != nil {
		switch {
		case errors.Is(err, models.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			observability.Logger().Error("failed to verify code", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify code"})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Email verified"})
}
