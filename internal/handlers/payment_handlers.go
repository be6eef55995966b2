package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/services"
	"github.com/denr-tlph/licensing-api/internal/utils"
	"github.com/denr-tlph/licensing-api/internal/xendit"
)

// TransactionLedger records new collections and applies gateway callbacks.
type TransactionLedger interface {
	Add(ctx context.Context, tx *models.Transaction) error
	ApplyWebhook(ctx context.Context, event services.WebhookEvent) error
}

// PaymentHandlers handles gateway invoices and status callbacks
type PaymentHandlers struct {
	client       *xendit.Client
	transactions TransactionLedger
	identity     services.IdentityProvider
}

// NewPaymentHandlers creates a new payment handlers instance
func NewPaymentHandlers(client *xendit.Client, transactions TransactionLedger, identity services.IdentityProvider) *PaymentHandlers {
	return &PaymentHandlers{client: client, transactions: transactions, identity: identity}
}

type createInvoiceRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Amount      int    `json:"amount" binding:"required" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
	PayerEmail  string `json:"payer_email" validate:"omitempty,email"`
}

// bearerToken extracts the Bearer token from the Authorization header, or
// returns an empty string for anonymous requests.
func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// payerEmail resolves the customer address for an invoice. A signed-in
// caller's account email wins; the probe degrades to anonymous on any
// failure. Then the address supplied in the body, then the shared guest
// address, so the gateway always receives a deliverable email.
func (h *PaymentHandlers) payerEmail(c *gin.Context, requested string) string {
	if token := bearerToken(c); token != "" {
		if claims, err := h.identity.CurrentAccount(c.Request.Context(), token); err == nil && claims.Email != "" {
			return strings.ToLower(claims.Email)
		}
	}
	if email := strings.ToLower(strings.TrimSpace(requested)); email != "" {
		return email
	}
	return config.AppConfig.GuestEmail
}

// CreateInvoice godoc
// @Summary Create a standalone payment invoice
// @Description Creates a gateway invoice for a named fee and records the pending collection. The payer email comes from the caller's session when a Bearer token is present, otherwise from the request body or the guest address
// @Tags payments
// @Accept json
// @Produce json
// @Param data body createInvoiceRequest true "Invoice details"
// @Success 200 {object} xendit.Invoice
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments/create-invoice [post]
func (h *PaymentHandlers) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	email := h.payerEmail(c, req.PayerEmail)

	description := req.Description
	if description == "" {
		description = "Payment for " + req.Name
	}

	externalID := utils.NewExternalID(req.Name, time.Now())
	invoice, err := h.client.CreateInvoice(c.Request.Context(), xendit.InvoiceRequest{
		ExternalID:      externalID,
		Amount:          req.Amount,
		Description:     description,
		InvoiceDuration: 86400,
		Currency:        "PHP",
		Customer:        xendit.Customer{GivenNames: email, Email: email},
		Items: []xendit.InvoiceItem{
			{Name: req.Name, Quantity: 1, Price: req.Amount},
		},
		SuccessRedirectURL: config.AppConfig.PublicBaseURL + "/payment-success",
		FailureRedirectURL: config.AppConfig.PublicBaseURL + "/payment-failed",
	})
	if err != nil {
		observability.InvoicesCreated.WithLabelValues("error").Inc()
		observability.Logger().Error("invoice creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create invoice"})
		return
	}
	observability.InvoicesCreated.WithLabelValues("success").Inc()

	if err := h.transactions.Add(c.Request.Context(), &models.Transaction{
		UserEmail:       email,
		ExternalID:      externalID,
		InvoiceID:       invoice.ID,
		TransactionName: req.Name,
		Description:     description,
		Amount:          req.Amount,
		Status:          models.TransactionPending,
	}); err != nil {
		observability.Logger().Error("failed to record transaction for invoice",
			zap.String("invoice_id", invoice.ID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, invoice)
}

// CheckInvoice godoc
// @Summary Check an invoice's status
// @Description Proxies an invoice status lookup to the payment gateway
// @Tags payments
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} xendit.Invoice
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments/check-invoice/{id} [get]
func (h *PaymentHandlers) CheckInvoice(c *gin.Context) {
	invoiceID := c.Param("id")

	invoice, err := h.client.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		observability.Logger().Warn("invoice lookup failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// Webhook godoc
// @Summary Payment gateway status callback
// @Description Applies an invoice status change to the transaction ledger and the matching application
// @Tags payments
// @Accept json
// @Produce json
// @Param data body services.WebhookEvent true "Gateway event"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/webhook [post]
func (h *PaymentHandlers) Webhook(c *gin.Context) {
	var event services.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid webhook payload: " + err.Error()})
		return
	}
	if event.ExternalID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "external_id is required"})
		return
	}

	if err := h.transactions.ApplyWebhook(c.Request.Context(), event); err != nil {
		if errors.Is(err, models.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		observability.Logger().Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Webhook processed"})
}
