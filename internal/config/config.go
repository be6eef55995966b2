package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	// PublicBaseURL is used to build default payment redirect URLs.
	PublicBaseURL string `json:"public_base_url"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Collection names
	UserCollection        string `json:"mongo_user_collection"`
	ApplicationCollection string `json:"mongo_application_collection"`
	TransactionCollection string `json:"mongo_transaction_collection"`

	// OTP configuration
	OTPTTL         time.Duration `json:"otp_ttl"`
	OTPSendLimit   int           `json:"otp_send_limit"`
	OTPSendWindow  time.Duration `json:"otp_send_window"`
	EmailFrom      string        `json:"email_from"`
	EmailFromName  string        `json:"email_from_name"`
	AWSRegion      string        `json:"aws_region"`
	MailerDisabled bool          `json:"mailer_disabled"`

	// Session configuration
	JWTSecret          string        `json:"-"`
	SessionTTL         time.Duration `json:"session_ttl"`
	RememberSessionTTL time.Duration `json:"remember_session_ttl"`
	// IdentityProbeTimeout bounds the current-account probe; on elapse the
	// caller is treated as anonymous instead of blocking the request.
	IdentityProbeTimeout time.Duration `json:"identity_probe_timeout"`

	// MinIO configuration
	MinioEndpoint  string `json:"minio_endpoint"`
	MinioAccessKey string `json:"-"`
	MinioSecretKey string `json:"-"`
	MinioUseSSL    bool   `json:"minio_use_ssl"`
	MinioBucket    string `json:"minio_bucket"`
	MinioRegion    string `json:"minio_region"`

	// Xendit configuration
	XenditAPIKey  string `json:"-"`
	XenditBaseURL string `json:"xendit_base_url"`
	GuestEmail    string `json:"guest_email"`

	// Kafka configuration
	KafkaBroker       string `json:"kafka_broker"`
	KafkaPaymentTopic string `json:"kafka_payment_topic"`
	KafkaEnabled      bool   `json:"kafka_enabled"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	// Local development convenience; in deployed environments the variables
	// come from the orchestrator.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	otpTTL, err := time.ParseDuration(getEnvOrDefault("OTP_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_TTL: %w", err)
	}

	otpSendLimit, err := strconv.Atoi(getEnvOrDefault("OTP_SEND_LIMIT", "3"))
	if err != nil {
		return fmt.Errorf("invalid OTP_SEND_LIMIT: %w", err)
	}

	otpSendWindow, err := time.ParseDuration(getEnvOrDefault("OTP_SEND_WINDOW", "10m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_SEND_WINDOW: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "12h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	rememberTTL, err := time.ParseDuration(getEnvOrDefault("REMEMBER_SESSION_TTL", "720h"))
	if err != nil {
		return fmt.Errorf("invalid REMEMBER_SESSION_TTL: %w", err)
	}

	probeTimeout, err := time.ParseDuration(getEnvOrDefault("IDENTITY_PROBE_TIMEOUT", "1500ms"))
	if err != nil {
		return fmt.Errorf("invalid IDENTITY_PROBE_TIMEOUT: %w", err)
	}

	jwtSecret := getEnvOrDefault("JWT_SECRET", "")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	xenditAPIKey := getEnvOrDefault("XENDIT_API_KEY", "")

	AppConfig = &Config{
		// Server configuration
		Port:          port,
		Environment:   getEnvOrDefault("ENVIRONMENT", "development"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "licensing"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Collection names
		UserCollection:        getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		ApplicationCollection: getEnvOrDefault("MONGODB_APPLICATION_COLLECTION", "license_applications"),
		TransactionCollection: getEnvOrDefault("MONGODB_TRANSACTION_COLLECTION", "transactions"),

		// OTP configuration
		OTPTTL:         otpTTL,
		OTPSendLimit:   otpSendLimit,
		OTPSendWindow:  otpSendWindow,
		EmailFrom:      getEnvOrDefault("EMAIL_FROM", "no-reply@denr-tlph.gov.ph"),
		EmailFromName:  getEnvOrDefault("EMAIL_FROM_NAME", "DENR TLPH"),
		AWSRegion:      getEnvOrDefault("AWS_REGION", "ap-southeast-1"),
		MailerDisabled: getEnvOrDefault("MAILER_DISABLED", "false") == "true",

		// Session configuration
		JWTSecret:            jwtSecret,
		SessionTTL:           sessionTTL,
		RememberSessionTTL:   rememberTTL,
		IdentityProbeTimeout: probeTimeout,

		// MinIO configuration
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnvOrDefault("MINIO_USE_SSL", "false") == "true",
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "license-applications"),
		MinioRegion:    getEnvOrDefault("MINIO_REGION", ""),

		// Xendit configuration
		XenditAPIKey:  xenditAPIKey,
		XenditBaseURL: getEnvOrDefault("XENDIT_BASE_URL", "https://api.xendit.co"),
		GuestEmail:    getEnvOrDefault("GUEST_EMAIL", "guest@denr.gov.ph"),

		// Kafka configuration
		KafkaBroker:       getEnvOrDefault("KAFKA_BROKER", "localhost:9092"),
		KafkaPaymentTopic: getEnvOrDefault("KAFKA_PAYMENT_TOPIC", "payments.status"),
		KafkaEnabled:      getEnvOrDefault("KAFKA_ENABLED", "false") == "true",

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
