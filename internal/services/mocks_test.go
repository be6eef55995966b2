package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/xendit"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		PublicBaseURL:         "http://localhost:8080",
		GuestEmail:            "guest@denr.gov.ph",
		JWTSecret:             "test-secret",
		SessionTTL:            12 * time.Hour,
		RememberSessionTTL:    720 * time.Hour,
		IdentityProbeTimeout:  1500 * time.Millisecond,
		OTPTTL:                10 * time.Minute,
		OTPSendLimit:          3,
		OTPSendWindow:         10 * time.Minute,
		MinioEndpoint:         "localhost:9000",
		MinioBucket:           "license-applications",
		UserCollection:        "users",
		ApplicationCollection: "license_applications",
		TransactionCollection: "transactions",
	}
	os.Exit(m.Run())
}

// MockIdentityProvider records account operations in memory.
type MockIdentityProvider struct {
	accounts    map[string]*models.Account
	createCalls int
	failCreate  error
}

func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{accounts: map[string]*models.Account{}}
}

func (m *MockIdentityProvider) CreateAccount(_ context.Context, email, password string) (*models.Account, error) {
	m.createCalls++
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	if _, ok := m.accounts[email]; ok {
		return nil, models.ErrAccountExists
	}
	account := &models.Account{
		ID:        fmt.Sprintf("acct-%d", len(m.accounts)+1),
		Email:     email,
		CreatedAt: time.Now(),
	}
	m.accounts[email] = account
	return account, nil
}

func (m *MockIdentityProvider) SignIn(_ context.Context, email, password string, _ bool) (string, *models.Account, error) {
	account, ok := m.accounts[email]
	if !ok {
		return "", nil, models.ErrInvalidCredentials
	}
	return "mock-token", account, nil
}

func (m *MockIdentityProvider) CurrentAccount(_ context.Context, token string) (*models.SessionClaims, error) {
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}
	return &models.SessionClaims{UserID: "acct-1", Email: "mock@example.com", Role: "user"}, nil
}

// MockRecordStore records persisted profiles and applications in memory.
type MockRecordStore struct {
	profiles     []*models.UserProfile
	applications []*models.ServiceApplication
	failProfile  error
	failInsert   error
}

func (m *MockRecordStore) WriteProfile(_ context.Context, profile *models.UserProfile) error {
	if m.failProfile != nil {
		return m.failProfile
	}
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *MockRecordStore) InsertApplication(_ context.Context, app *models.ServiceApplication) (string, error) {
	if m.failInsert != nil {
		return "", m.failInsert
	}
	app.ID = fmt.Sprintf("app-%d", len(m.applications)+1)
	m.applications = append(m.applications, app)
	return app.ID, nil
}

func (m *MockRecordStore) UpdatePaymentStatus(_ context.Context, externalID, paymentStatus string) error {
	for _, app := range m.applications {
		if app.ExternalID == externalID {
			app.PaymentStatus = paymentStatus
			return nil
		}
	}
	return models.ErrRecordNotFound
}

func (m *MockRecordStore) ListApplicationsByUser(_ context.Context, userID string) ([]models.ServiceApplication, error) {
	apps := []models.ServiceApplication{}
	for _, app := range m.applications {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (m *MockRecordStore) ListApplicationsByStatus(_ context.Context, status string) ([]models.ServiceApplication, error) {
	apps := []models.ServiceApplication{}
	for _, app := range m.applications {
		if app.Status == status {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (m *MockRecordStore) GetApplicationByExternalID(_ context.Context, externalID string) (*models.ServiceApplication, error) {
	for _, app := range m.applications {
		if app.ExternalID == externalID {
			return app, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

// MockVerifier reports a fixed verification state.
type MockVerifier struct {
	verified map[string]bool
}

func (m *MockVerifier) IsVerified(_ context.Context, email string) (bool, error) {
	return m.verified[email], nil
}

// MockDocumentStore records uploads and can fail selected labels.
type MockDocumentStore struct {
	uploads    []string
	failLabels map[string]bool
}

func (m *MockDocumentStore) Upload(_ context.Context, userID, category, label string, file DocumentFile) (*models.UploadedDocument, error) {
	if m.failLabels[label] {
		return nil, fmt.Errorf("upload rejected for %s", label)
	}
	m.uploads = append(m.uploads, label)
	return &models.UploadedDocument{
		Name:        file.Name,
		Size:        file.Size,
		StoragePath: fmt.Sprintf("license-applications/%s/%s/%s", userID, category, file.Name),
		UploadedAt:  time.Now(),
	}, nil
}

// MockGateway returns a canned invoice or a failure.
type MockGateway struct {
	invoices []xendit.InvoiceRequest
	fail     error
}

func (m *MockGateway) CreateInvoice(_ context.Context, req xendit.InvoiceRequest) (*xendit.Invoice, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	m.invoices = append(m.invoices, req)
	return &xendit.Invoice{
		ID:         "inv-mock-1",
		ExternalID: req.ExternalID,
		Status:     "PENDING",
		Amount:     req.Amount,
		InvoiceURL: "https://checkout.example/inv-mock-1",
	}, nil
}

// MockTransactionRecorder records ledger entries.
type MockTransactionRecorder struct {
	added []*models.Transaction
	fail  error
}

func (m *MockTransactionRecorder) Add(_ context.Context, tx *models.Transaction) error {
	if m.fail != nil {
		return m.fail
	}
	m.added = append(m.added, tx)
	return nil
}
