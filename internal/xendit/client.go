package xendit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/observability"
)

// InvoiceItem is a single line item on an invoice.
type InvoiceItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// Customer identifies the payer on an invoice.
type Customer struct {
	GivenNames string `json:"given_names"`
	Email      string `json:"email"`
}

// InvoiceRequest is the payload for creating an invoice.
type InvoiceRequest struct {
	ExternalID         string        `json:"external_id"`
	Amount             int           `json:"amount"`
	Description        string        `json:"description"`
	InvoiceDuration    int           `json:"invoice_duration"`
	Currency           string        `json:"currency"`
	Customer           Customer      `json:"customer"`
	Items              []InvoiceItem `json:"items"`
	SuccessRedirectURL string        `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string        `json:"failure_redirect_url,omitempty"`
}

// Invoice is the gateway's representation of an invoice.
type Invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	Amount     int    `json:"amount"`
	InvoiceURL string `json:"invoice_url"`
	PaidAt     string `json:"paid_at,omitempty"`
}

// Client talks to the Xendit invoices API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway client. The API key is the secret key; it is
// sent as the username of a Basic auth header with an empty password.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: observability.Logger().With(zap.String("component", "xendit")),
	}
}

func (c *Client) authHeader() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":"))
	return "Basic " + token
}

// CreateInvoice creates a new invoice and returns the gateway's response.
func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("invoice request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("invoice creation rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("external_id", req.ExternalID))
		return nil, fmt.Errorf("invoice creation failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var invoice Invoice
	if err := json.Unmarshal(respBody, &invoice); err != nil {
		return nil, fmt.Errorf("failed to decode invoice response: %w", err)
	}

	c.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("external_id", invoice.ExternalID),
		zap.Int("amount", invoice.Amount))

	return &invoice, nil
}

// GetInvoice fetches an invoice by its gateway ID.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/invoices/"+invoiceID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice lookup: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("invoice lookup failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invoice lookup failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var invoice Invoice
	if err := json.Unmarshal(respBody, &invoice); err != nil {
		return nil, fmt.Errorf("failed to decode invoice response: %w", err)
	}

	return &invoice, nil
}
