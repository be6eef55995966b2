package models

import "time"

// Transaction status values as reported by the payment gateway.
const (
	TransactionPending   = "Pending"
	TransactionPaid      = "PAID"
	TransactionExpired   = "EXPIRED"
	TransactionCancelled = "Cancelled"
)

// Transaction is a payment-collection record created alongside a gateway
// invoice and updated when the gateway webhook reports a status change.
type Transaction struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	UserEmail       string     `bson:"user_email" json:"user_email"`
	ExternalID      string     `bson:"external_id" json:"external_id"`
	InvoiceID       string     `bson:"invoice_id" json:"invoice_id"`
	TransactionName string     `bson:"transaction_name" json:"transaction_name"`
	Description     string     `bson:"description" json:"description"`
	Amount          int        `bson:"amount" json:"amount"`
	Status          string     `bson:"status" json:"status"`
	PaymentMethod   string     `bson:"payment_method" json:"payment_method"`
	Reference       string     `bson:"reference" json:"reference"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
	PaidAt          *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
}
