package models

import "time"

// Payment status values for applications and transactions.
const (
	PaymentStatusPending = "pending"
	PaymentStatusFree    = "free"
	PaymentStatusPaid    = "paid"
)

// UploadedDocument is the metadata kept for a file transferred to the
// document store. The raw bytes live in the store; the record keeps only the
// retrieval reference.
type UploadedDocument struct {
	Name        string    `bson:"name" json:"name"`
	Size        int64     `bson:"size" json:"size"`
	ContentType string    `bson:"content_type" json:"content_type"`
	StoragePath string    `bson:"storage_path" json:"storage_path"`
	DownloadURL string    `bson:"download_url" json:"download_url"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// ServiceApplication is a service or license application record. It is
// created once at submission time and never mutated client-side afterwards;
// payment status transitions happen when the gateway webhook arrives.
type ServiceApplication struct {
	ID            string                        `bson:"_id,omitempty" json:"id"`
	UserID        string                        `bson:"user_id" json:"user_id"`
	UserEmail     string                        `bson:"user_email" json:"user_email"`
	Category      string                        `bson:"category" json:"category"`
	ServiceType   string                        `bson:"service_type" json:"service_type"`
	FormFields    map[string]string             `bson:"form_fields" json:"form_fields"`
	Documents     map[string][]UploadedDocument `bson:"documents,omitempty" json:"documents,omitempty"`
	ExternalID    string                        `bson:"external_id,omitempty" json:"external_id,omitempty"`
	InvoiceID     string                        `bson:"invoice_id,omitempty" json:"invoice_id,omitempty"`
	Amount        int                           `bson:"amount" json:"amount"`
	Status        string                        `bson:"status" json:"status"`
	PaymentStatus string                        `bson:"payment_status" json:"payment_status"`
	CreatedAt     time.Time                     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time                     `bson:"updated_at" json:"updated_at"`
}
