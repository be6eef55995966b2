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

// TransactionHandlers handles the caller's payment collection ledger
type TransactionHandlers struct {
	transactions *services.TransactionService
}

// NewTransactionHandlers creates a new transaction handlers instance
func NewTransactionHandlers(transactions *services.TransactionService) *TransactionHandlers {
	return &TransactionHandlers{transactions: transactions}
}

// List godoc
// @Summary List the caller's transactions
// @Description Returns the authenticated user's payment transactions, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Transaction
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandlers) List(c *gin.Context) {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: models.ErrNotAuthenticated.Error()})
		return
	}

	txs, err := h.transactions.List(c.Request.Context(), claims.Email)
	if err != nil {
		observability.Logger().Error("failed to list transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// Cancel godoc
// @Summary Cancel a pending transaction
// @Description Cancels one of the caller's pending transactions
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions/{id}/cancel [post]
func (h *TransactionHandlers) Cancel(c *gin.Context) {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: models.ErrNotAuthenticated.Error()})
		return
	}

	err := h.transactions.CancelPending(c.Request.Context(), claims.Email, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrTransactionUnauthorized):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrTransactionNotPending):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			observability.Logger().Error("failed to cancel transaction", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to cancel transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction cancelled"})
}
