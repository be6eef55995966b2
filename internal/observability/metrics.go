package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "licensing_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// OTPCodesSent tracks verification codes issued per outcome
	OTPCodesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_otp_codes_sent_total",
			Help: "Number of verification codes sent",
		},
		[]string{"status"},
	)

	// OTPVerifications tracks verification attempts per outcome
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_otp_verifications_total",
			Help: "Number of verification code checks",
		},
		[]string{"status"},
	)

	// Registrations tracks account registrations per outcome
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_registrations_total",
			Help: "Number of registration submissions",
		},
		[]string{"category", "status"},
	)

	// ApplicationSubmissions tracks service/license submissions per terminal state
	ApplicationSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_application_submissions_total",
			Help: "Number of service/license application submissions",
		},
		[]string{"category", "state"},
	)

	// DocumentUploads tracks document store transfers
	DocumentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_document_uploads_total",
			Help: "Number of document uploads",
		},
		[]string{"status"},
	)

	// InvoicesCreated tracks payment gateway invoice creations
	InvoicesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_invoices_created_total",
			Help: "Number of payment invoices requested from the gateway",
		},
		[]string{"status"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "licensing_api_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "licensing_api_active_connections",
			Help: "Number of active connections",
		},
	)
)
