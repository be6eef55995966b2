package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
)

// IdentityProvider is the authentication backend. Account creation is
// strictly once per registration submission; the caller must not retry a
// partially failed registration by calling CreateAccount again.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*models.Account, error)
	SignIn(ctx context.Context, email, password string, remember bool) (string, *models.Account, error)
	CurrentAccount(ctx context.Context, token string) (*models.SessionClaims, error)
}

// MongoIdentityProvider stores accounts in MongoDB with bcrypt password
// hashes and issues HMAC-signed session tokens.
type MongoIdentityProvider struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoIdentityProvider creates the default identity provider.
func NewMongoIdentityProvider(db *mongo.Database) *MongoIdentityProvider {
	return &MongoIdentityProvider{
		db:     db,
		logger: observability.Logger().With(zap.String("service", "identity")),
	}
}

func (p *MongoIdentityProvider) collection() *mongo.Collection {
	return p.db.Collection(config.AppConfig.UserCollection)
}

// CreateAccount registers a new identity record. Duplicate emails return
// models.ErrAccountExists.
func (p *MongoIdentityProvider) CreateAccount(ctx context.Context, email, password string) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := p.collection().InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			observability.DatabaseOperations.WithLabelValues("insert_account", "duplicate").Inc()
			return nil, models.ErrAccountExists
		}
		observability.DatabaseOperations.WithLabelValues("insert_account", "error").Inc()
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("insert_account", "success").Inc()
	p.logger.Info("account created",
		zap.String("user_id", account.ID),
		zap.String("email", observability.MaskEmail(email)))
	return account, nil
}

// SignIn authenticates an account and returns a signed session token. The
// remember flag extends the session lifetime.
func (p *MongoIdentityProvider) SignIn(ctx context.Context, email, password string, remember bool) (string, *models.Account, error) {
	var account models.Account
	err := p.collection().FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	// The profile is merged onto the account document at registration, so the
	// role comes from the same record.
	var profile models.UserProfile
	role := "user"
	if err := p.collection().FindOne(ctx, bson.M{"_id": account.ID}).Decode(&profile); err == nil && profile.Role != "" {
		role = profile.Role
	}

	ttl := config.AppConfig.SessionTTL
	if remember {
		ttl = config.AppConfig.RememberSessionTTL
	}

	token, err := p.signToken(account.ID, account.Email, role, ttl)
	if err != nil {
		return "", nil, err
	}

	p.logger.Info("account signed in",
		zap.String("user_id", account.ID),
		zap.String("role", role),
		zap.Bool("remember", remember))
	return token, &account, nil
}

func (p *MongoIdentityProvider) signToken(userID, email, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "licensing-api",
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// CurrentAccount resolves the session claims behind a token. The probe is
// bounded; if it does not finish within the configured timeout the caller is
// treated as anonymous rather than blocked.
func (p *MongoIdentityProvider) CurrentAccount(ctx context.Context, token string) (*models.SessionClaims, error) {
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}

	probeCtx, cancel := context.WithTimeout(ctx, config.AppConfig.IdentityProbeTimeout)
	defer cancel()

	type result struct {
		claims *models.SessionClaims
		err    error
	}
	done := make(chan result, 1)
	go func() {
		claims, err := ParseSessionToken(token)
		done <- result{claims: claims, err: err}
	}()

	select {
	case <-probeCtx.Done():
		p.logger.Warn("identity probe timed out, treating caller as anonymous")
		return nil, models.ErrNotAuthenticated
	case r := <-done:
		if r.err != nil {
			return nil, models.ErrNotAuthenticated
		}
		return r.claims, nil
	}
}

// ParseSessionToken verifies a session token's signature and expiry.
func ParseSessionToken(token string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
