package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/events"
	"github.com/denr-tlph/licensing-api/internal/handlers"
	"github.com/denr-tlph/licensing-api/internal/logging"
	"github.com/denr-tlph/licensing-api/internal/mailer"
	"github.com/denr-tlph/licensing-api/internal/middleware"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/services"
	"github.com/denr-tlph/licensing-api/internal/xendit"

	_ "github.com/denr-tlph/licensing-api/docs"
)

// @title           Licensing Portal API
// @version         1.0
// @description     Backend for the tree and wildlife licensing portal: applicant registration with email verification, service and license application submissions with document uploads, and payment collection through the invoicing gateway.

// @contact.name   API Support
// @contact.email  support@denr-tlph.gov.ph

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name verification
// @tag.description Email verification codes

// @tag.name auth
// @tag.description Registration and sign-in

// @tag.name applications
// @tag.description Service and license applications

// @tag.name payments
// @tag.description Payment gateway invoices and callbacks

// @tag.name transactions
// @tag.description Payment collection ledger

// @tag.name registry
// @tag.description Registration form registry

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize backing stores
	config.InitMongoDB()
	config.InitRedis()
	config.InitMinio()

	// Wire services
	var mail mailer.Mailer
	if config.AppConfig.MailerDisabled {
		mail = mailer.NewNoopMailer()
	} else {
		sesMailer, err := mailer.NewSESMailer(context.Background(),
			config.AppConfig.AWSRegion,
			config.AppConfig.EmailFrom,
			config.AppConfig.EmailFromName)
		if err != nil {
			logging.Logger.Fatal("failed to initialize mailer", zap.Error(err))
		}
		mail = sesMailer
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if config.AppConfig.KafkaEnabled {
		kafkaPublisher := events.NewKafkaPublisher(config.AppConfig.KafkaBroker, config.AppConfig.KafkaPaymentTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	identity := services.NewMongoIdentityProvider(config.MongoDB)
	records := services.NewMongoRecordStore(config.MongoDB)
	documents := services.NewMinioDocumentStore(config.Minio, config.AppConfig.MinioBucket)
	gateway := xendit.NewClient(config.AppConfig.XenditBaseURL, config.AppConfig.XenditAPIKey)

	otpService := services.NewOTPService(config.Redis, mail)
	registrationService := services.NewRegistrationService(identity, records, otpService)
	transactionService := services.NewTransactionService(config.MongoDB, records, publisher)
	applicationService := services.NewApplicationService(documents, records, gateway, transactionService)

	otpHandlers := handlers.NewOTPHandlers(otpService)
	authHandlers := handlers.NewAuthHandlers(registrationService, identity)
	applicationHandlers := handlers.NewApplicationHandlers(applicationService, records)
	paymentHandlers := handlers.NewPaymentHandlers(gateway, transactionService, identity)
	transactionHandlers := handlers.NewTransactionHandlers(transactionService)
	registryHandlers := handlers.NewRegistryHandlers()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.POST("/verification/send-otp", otpHandlers.SendOTP)
		v1.POST("/verification/verify-otp", otpHandlers.VerifyOTP)

		v1.POST("/auth/register", authHandlers.Register)
		v1.POST("/auth/login", authHandlers.Login)

		v1.GET("/registry/categories", registryHandlers.ListCategories)
		v1.GET("/registry/categories/:category/fields", registryHandlers.CategoryFields)
		v1.GET("/registry/provinces", registryHandlers.Provinces)
		v1.GET("/registry/provinces/:province/municipalities", registryHandlers.Municipalities)

		v1.POST("/payments/create-invoice", paymentHandlers.CreateInvoice)
		v1.GET("/payments/check-invoice/:id", paymentHandlers.CheckInvoice)
		v1.POST("/payments/webhook", paymentHandlers.Webhook)

		authenticated := v1.Group("")
		authenticated.Use(middleware.AuthMiddleware())
		{
			authenticated.POST("/applications", applicationHandlers.Submit)
			authenticated.GET("/applications", applicationHandlers.List)

			authenticated.GET("/transactions", transactionHandlers.List)
			authenticated.POST("/transactions/:id/cancel", transactionHandlers.Cancel)

			staff := authenticated.Group("", middleware.RequireRole("municipal", "regional", "national", "super-admin"))
			staff.GET("/applications/review", applicationHandlers.Review)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
