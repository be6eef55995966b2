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
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
)

// RecordStore persists applicant profiles and applications. Writes are fire
// and forget from the caller's point of view: a returned nil means the write
// was acknowledged, and no read-back verification is performed.
type RecordStore interface {
	WriteProfile(ctx context.Context, profile *models.UserProfile) error
	InsertApplication(ctx context.Context, app *models.ServiceApplication) (string, error)
	UpdatePaymentStatus(ctx context.Context, externalID, paymentStatus string) error
	ListApplicationsByUser(ctx context.Context, userID string) ([]models.ServiceApplication, error)
	ListApplicationsByStatus(ctx context.Context, status string) ([]models.ServiceApplication, error)
	GetApplicationByExternalID(ctx context.Context, externalID string) (*models.ServiceApplication, error)
}

// MongoRecordStore is the MongoDB-backed record store.
type MongoRecordStore struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoRecordStore(db *mongo.Database) *MongoRecordStore {
	return &MongoRecordStore{
		db:     db,
		logger: observability.Logger().With(zap.String("service", "records")),
	}
}

func (s *MongoRecordStore) users() *mongo.Collection {
	return s.db.Collection(config.AppConfig.UserCollection)
}

func (s *MongoRecordStore) applications() *mongo.Collection {
	return s.db.Collection(config.AppConfig.ApplicationCollection)
}

// WriteProfile merges the profile onto the identity account document. The
// account must already exist; registration creates it first.
func (s *MongoRecordStore) WriteProfile(ctx context.Context, profile *models.UserProfile) error {
	update := bson.M{"$set": bson.M{
		"user_id":         profile.UserID,
		"first_name":      profile.FirstName,
		"last_name":       profile.LastName,
		"phone":           profile.Phone,
		"category":        profile.Category,
		"address":         profile.Address,
		"province":        profile.Province,
		"municipality":    profile.Municipality,
		"category_fields": profile.CategoryFields,
		"role":            profile.Role,
		"status":          profile.Status,
	}}

	_, err := s.users().UpdateOne(ctx, bson.M{"_id": profile.UserID}, update)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("write_profile", "error").Inc()
		return fmt.Errorf("failed to persist profile: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("write_profile", "success").Inc()
	s.logger.Info("profile persisted",
		zap.String("user_id", profile.UserID),
		zap.String("category", string(profile.Category)),
		zap.String("role", profile.Role))
	return nil
}

// InsertApplication stores a new application record and returns its id.
func (s *MongoRecordStore) InsertApplication(ctx context.Context, app *models.ServiceApplication) (string, error) {
	if app.ID == "" {
		app.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	if _, err := s.applications().InsertOne(ctx, app); err != nil {
		observability.DatabaseOperations.WithLabelValues("insert_application", "error").Inc()
		return "", fmt.Errorf("failed to persist application: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("insert_application", "success").Inc()
	s.logger.Info("application persisted",
		zap.String("application_id", app.ID),
		zap.String("user_id", app.UserID),
		zap.String("service_type", app.ServiceType))
	return app.ID, nil
}

// UpdatePaymentStatus transitions an application's payment status, matched by
// the external payment reference.
func (s *MongoRecordStore) UpdatePaymentStatus(ctx context.Context, externalID, paymentStatus string) error {
	res, err := s.applications().UpdateOne(ctx,
		bson.M{"external_id": externalID},
		bson.M{"$set": bson.M{
			"payment_status": paymentStatus,
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("update_payment_status", "error").Inc()
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}

	observability.DatabaseOperations.WithLabelValues("update_payment_status", "success").Inc()
	return nil
}

// ListApplicationsByUser returns the user's applications, newest first.
func (s *MongoRecordStore) ListApplicationsByUser(ctx context.Context, userID string) ([]models.ServiceApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.applications().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []models.ServiceApplication{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

// ListApplicationsByStatus returns applications in the given status, newest
// first. Staff review queues are built on this.
func (s *MongoRecordStore) ListApplicationsByStatus(ctx context.Context, status string) ([]models.ServiceApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.applications().Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []models.ServiceApplication{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

// GetApplicationByExternalID looks up an application by payment reference.
func (s *MongoRecordStore) GetApplicationByExternalID(ctx context.Context, externalID string) (*models.ServiceApplication, error) {
	var app models.ServiceApplication
	err := s.applications().FindOne(ctx, bson.M{"external_id": externalID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	return &app, nil
}
