package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/events"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
)

// WebhookEvent is the payload the payment gateway posts on invoice status
// changes.
type WebhookEvent struct {
	ID            string `json:"id"`
	ExternalID    string `json:"external_id"`
	Status        string `json:"status"`
	Amount        int    `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	PaidAt        string `json:"paid_at"`
}

// TransactionService keeps the payment collection ledger in sync with the
// gateway and notifies downstream consumers of status changes.
type TransactionService struct {
	db        *mongo.Database
	records   RecordStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTransactionService(db *mongo.Database, records RecordStore, publisher events.Publisher) *TransactionService {
	return &TransactionService{
		db:        db,
		records:   records,
		publisher: publisher,
		logger:    observability.Logger().With(zap.String("service", "transactions")),
	}
}

func (s *TransactionService) collection() *mongo.Collection {
	return s.db.Collection(config.AppConfig.TransactionCollection)
}

// Add records a new pending collection.
func (s *TransactionService) Add(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}

	if _, err := s.collection().InsertOne(ctx, tx); err != nil {
		observability.DatabaseOperations.WithLabelValues("insert_transaction", "error").Inc()
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("insert_transaction", "success").Inc()
	s.logger.Info("transaction recorded",
		zap.String("external_id", tx.ExternalID),
		zap.String("invoice_id", tx.InvoiceID),
		zap.Int("amount", tx.Amount))
	return nil
}

// ApplyWebhook updates the ledger from a gateway status callback, mirrors the
// status onto the application record, and publishes a payment event. An
// unknown reference returns models.ErrTransactionNotFound.
func (s *TransactionService) ApplyWebhook(ctx context.Context, event WebhookEvent) error {
	update := bson.M{
		"status":         event.Status,
		"payment_method": event.PaymentMethod,
		"updated_at":     time.Now().UTC(),
	}
	if event.Status == models.TransactionPaid {
		paidAt := time.Now().UTC()
		if event.PaidAt != "" {
			if parsed, err := time.Parse(time.RFC3339, event.PaidAt); err == nil {
				paidAt = parsed
			}
		}
		update["paid_at"] = paidAt
	}

	res, err := s.collection().UpdateOne(ctx,
		bson.M{"external_id": event.ExternalID},
		bson.M{"$set": update},
	)
	if err != nil {
		return fmt.Errorf("failed to apply webhook: %w", err)
	}
	if res.MatchedCount == 0 {
		s.logger.Warn("webhook for unknown transaction",
			zap.String("external_id", event.ExternalID),
			zap.String("invoice_id", event.ID))
		return models.ErrTransactionNotFound
	}

	if event.Status == models.TransactionPaid {
		if err := s.records.UpdatePaymentStatus(ctx, event.ExternalID, models.PaymentStatusPaid); err != nil {
			// The ledger is already updated; log and keep going so the
			// webhook is not retried forever over a missing application.
			s.logger.Error("failed to mirror paid status onto application",
				zap.String("external_id", event.ExternalID),
				zap.Error(err))
		}
	}

	var tx models.Transaction
	if err := s.collection().FindOne(ctx, bson.M{"external_id": event.ExternalID}).Decode(&tx); err == nil {
		if err := s.publisher.PublishPaymentEvent(ctx, events.PaymentEvent{
			ExternalID: event.ExternalID,
			InvoiceID:  event.ID,
			UserEmail:  tx.UserEmail,
			Status:     event.Status,
			Amount:     event.Amount,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("failed to publish payment event",
				zap.String("external_id", event.ExternalID),
				zap.Error(err))
		}
	}

	s.logger.Info("webhook applied",
		zap.String("external_id", event.ExternalID),
		zap.String("status", event.Status))
	return nil
}

// List returns the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userEmail string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection().Find(ctx, bson.M{"user_email": userEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txs := []models.Transaction{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// CancelPending cancels one of the user's transactions. Only pending
// transactions owned by the caller can be cancelled.
func (s *TransactionService) CancelPending(ctx context.Context, userEmail, transactionID string) error {
	var tx models.Transaction
	err := s.collection().FindOne(ctx, bson.M{"_id": transactionID}).Decode(&tx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ErrTransactionNotFound
		}
		return fmt.Errorf("failed to look up transaction: %w", err)
	}

	if tx.UserEmail != userEmail {
		return models.ErrTransactionUnauthorized
	}
	if tx.Status != models.TransactionPending {
		return models.ErrTransactionNotPending
	}

	_, err = s.collection().UpdateOne(ctx,
		bson.M{"_id": transactionID},
		bson.M{"$set": bson.M{
			"status":     models.TransactionCancelled,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}

	s.logger.Info("transaction cancelled",
		zap.String("transaction_id", transactionID),
		zap.String("external_id", tx.ExternalID))
	return nil
}
