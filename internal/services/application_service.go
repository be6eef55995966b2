package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/utils"
	"github.com/denr-tlph/licensing-api/internal/xendit"
)

// SubmissionState is the phase of an application submission run.
type SubmissionState string

const (
	StateIdle        SubmissionState = "idle"
	StateValidating  SubmissionState = "validating"
	StateUploading   SubmissionState = "uploading"
	StatePersisting  SubmissionState = "persisting"
	StateInvoicing   SubmissionState = "invoicing"
	StateRedirecting SubmissionState = "redirecting"
	StateFailed      SubmissionState = "failed"
)

// legalTransitions is the submission state machine. Free runs go straight
// from persisting to redirecting; only paid runs pass through invoicing.
// Failed is terminal and reachable from every working state.
var legalTransitions = map[SubmissionState][]SubmissionState{
	StateIdle:        {StateValidating},
	StateValidating:  {StateUploading, StateFailed},
	StateUploading:   {StatePersisting, StateFailed},
	StatePersisting:  {StateInvoicing, StateRedirecting, StateFailed},
	StateInvoicing:   {StateRedirecting, StateFailed},
	StateRedirecting: {},
	StateFailed:      {},
}

// FreeAmountMarker is the explicit request value for services with no fee.
// A missing or non-numeric amount is a validation error, never a free pass.
const FreeAmountMarker = "free"

// PaymentGateway creates payment invoices for paid services.
type PaymentGateway interface {
	CreateInvoice(ctx context.Context, req xendit.InvoiceRequest) (*xendit.Invoice, error)
}

// TransactionRecorder records a payment collection alongside a new invoice.
type TransactionRecorder interface {
	Add(ctx context.Context, tx *models.Transaction) error
}

// DocumentUpload is one document attached to a submission. Optional uploads
// that fail are logged and skipped; required ones abort the run.
type DocumentUpload struct {
	Label    string
	Optional bool
	File     DocumentFile
}

// SubmissionInput carries everything the submission needs.
type SubmissionInput struct {
	UserID      string
	UserEmail   string
	Category    string
	ServiceType string
	ServiceName string
	Description string
	// Amount is either FreeAmountMarker or a positive integer in PHP.
	Amount     string
	FormFields map[string]string
	Documents  []DocumentUpload
}

// SubmissionResult reports the terminal state of a run.
type SubmissionResult struct {
	State         SubmissionState `json:"state"`
	ApplicationID string          `json:"application_id,omitempty"`
	ExternalID    string          `json:"external_id,omitempty"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	InvoiceURL    string          `json:"invoice_url,omitempty"`
	RedirectURL   string          `json:"redirect_url"`
	PaymentStatus string          `json:"payment_status"`
}

// ApplicationService drives service and license submissions through an
// explicit state machine: validating, uploading, persisting, invoicing,
// redirecting. There is no compensation: a failure after persisting leaves
// the stored record behind and reports the run as failed.
type ApplicationService struct {
	documents    DocumentStore
	records      RecordStore
	gateway      PaymentGateway
	transactions TransactionRecorder
	logger       *zap.Logger
}

func NewApplicationService(documents DocumentStore, records RecordStore, gateway PaymentGateway, transactions TransactionRecorder) *ApplicationService {
	return &ApplicationService{
		documents:    documents,
		records:      records,
		gateway:      gateway,
		transactions: transactions,
		logger:       observability.Logger().With(zap.String("service", "applications")),
	}
}

// submissionRun tracks one in-flight submission's state.
type submissionRun struct {
	state SubmissionState
}

// advance moves the run to the next state, panicking on a transition the
// machine does not define. Such a transition is a programming error, not a
// runtime condition.
func (r *submissionRun) advance(next SubmissionState) {
	for _, allowed := range legalTransitions[r.state] {
		if allowed == next {
			r.state = next
			return
		}
	}
	panic(fmt.Sprintf("illegal submission transition %s -> %s", r.state, next))
}

// parseAmount resolves the request amount. The free marker is the only
// non-numeric value accepted.
func parseAmount(raw string) (amount int, free bool, err error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, FreeAmountMarker) {
		return 0, true, nil
	}
	amount, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("amount must be a whole number or %q, got %q", FreeAmountMarker, raw)
	}
	if amount <= 0 {
		return 0, false, fmt.Errorf("amount must be positive, got %d", amount)
	}
	return amount, false, nil
}

// Submit runs one application submission to a terminal state.
func (s *ApplicationService) Submit(ctx context.Context, input SubmissionInput) (*SubmissionResult, error) {
	run := &submissionRun{state: StateIdle}
	fail := func(err error) (*SubmissionResult, error) {
		run.advance(StateFailed)
		observability.ApplicationSubmissions.WithLabelValues(input.Category, string(StateFailed)).Inc()
		s.logger.Error("submission failed",
			zap.String("user_id", input.UserID),
			zap.String("service_type", input.ServiceType),
			zap.Error(err))
		return &SubmissionResult{State: StateFailed}, err
	}

	run.advance(StateValidating)

	if input.UserID == "" {
		return fail(models.ErrNotAuthenticated)
	}
	if strings.TrimSpace(input.ServiceType) == "" {
		return fail(fmt.Errorf("service type is required"))
	}
	amount, free, err := parseAmount(input.Amount)
	if err != nil {
		return fail(err)
	}
	for _, doc := range input.Documents {
		if !doc.Optional && doc.File.Reader == nil {
			return fail(fmt.Errorf("%w: %s", models.ErrMissingRequiredDocument, doc.Label))
		}
	}

	email := strings.ToLower(strings.TrimSpace(input.UserEmail))
	if email == "" {
		email = config.AppConfig.GuestEmail
	}

	// Uploads run sequentially; a required failure aborts the run, an
	// optional one is tolerated.
	run.advance(StateUploading)
	uploaded := map[string][]models.UploadedDocument{}
	for _, doc := range input.Documents {
		if doc.File.Reader == nil {
			continue
		}
		stored, err := s.documents.Upload(ctx, input.UserID, input.Category, doc.Label, doc.File)
		if err != nil {
			if doc.Optional {
				s.logger.Warn("optional document upload failed, continuing",
					zap.String("label", doc.Label),
					zap.Error(err))
				continue
			}
			return fail(err)
		}
		uploaded[doc.Label] = append(uploaded[doc.Label], *stored)
	}

	run.advance(StatePersisting)
	externalID := utils.NewExternalID(input.ServiceName, time.Now())
	paymentStatus := models.PaymentStatusPending
	if free {
		paymentStatus = models.PaymentStatusFree
	}

	app := &models.ServiceApplication{
		UserID:        input.UserID,
		UserEmail:     email,
		Category:      input.Category,
		ServiceType:   input.ServiceType,
		FormFields:    input.FormFields,
		Documents:     uploaded,
		ExternalID:    externalID,
		Amount:        amount,
		Status:        "submitted",
		PaymentStatus: paymentStatus,
	}
	appID, err := s.records.InsertApplication(ctx, app)
	if err != nil {
		return fail(err)
	}

	result := &SubmissionResult{
		ApplicationID: appID,
		ExternalID:    externalID,
		PaymentStatus: paymentStatus,
	}

	if free {
		// Free services never enter invoicing; the gateway is not involved.
		result.RedirectURL = "/application-submitted"
	} else {
		run.advance(StateInvoicing)
		invoice, err := s.gateway.CreateInvoice(ctx, xendit.InvoiceRequest{
			ExternalID:      externalID,
			Amount:          amount,
			Description:     s.invoiceDescription(input),
			InvoiceDuration: 86400,
			Currency:        "PHP",
			Customer: xendit.Customer{
				GivenNames: email,
				Email:      email,
			},
			Items: []xendit.InvoiceItem{
				{Name: input.ServiceName, Quantity: 1, Price: amount},
			},
			SuccessRedirectURL: config.AppConfig.PublicBaseURL + "/payment-success",
			FailureRedirectURL: config.AppConfig.PublicBaseURL + "/payment-failed",
		})
		if err != nil {
			observability.InvoicesCreated.WithLabelValues("error").Inc()
			return fail(err)
		}
		observability.InvoicesCreated.WithLabelValues("success").Inc()

		if err := s.transactions.Add(ctx, &models.Transaction{
			UserEmail:       email,
			ExternalID:      externalID,
			InvoiceID:       invoice.ID,
			TransactionName: input.ServiceName,
			Description:     s.invoiceDescription(input),
			Amount:          amount,
			Status:          models.TransactionPending,
		}); err != nil {
			// The invoice already exists at the gateway; surface the failure
			// rather than pretending the collection record was written.
			return fail(err)
		}

		result.InvoiceID = invoice.ID
		result.InvoiceURL = invoice.InvoiceURL
		result.RedirectURL = invoice.InvoiceURL
	}

	run.advance(StateRedirecting)
	result.State = StateRedirecting
	observability.ApplicationSubmissions.WithLabelValues(input.Category, string(StateRedirecting)).Inc()
	s.logger.Info("submission completed",
		zap.String("application_id", appID),
		zap.String("external_id", externalID),
		zap.String("payment_status", paymentStatus))
	return result, nil
}

func (s *ApplicationService) invoiceDescription(input SubmissionInput) string {
	if input.Description != "" {
		return input.Description
	}
	return fmt.Sprintf("Payment for %s", input.ServiceName)
}
