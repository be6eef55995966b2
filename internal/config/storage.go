package config

import (
	"context"
	"time"

	"github.com/denr-tlph/licensing-api/internal/logging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var (
	// Minio client for application document storage
	Minio *minio.Client
)

// InitMinio initializes the MinIO connection and makes sure the document
// bucket exists.
func InitMinio() {
	client, err := minio.New(AppConfig.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(AppConfig.MinioAccessKey, AppConfig.MinioSecretKey, ""),
		Secure: AppConfig.MinioUseSSL,
	})
	if err != nil {
		logging.Logger.Error("failed to create MinIO client",
			zap.String("endpoint", AppConfig.MinioEndpoint),
			zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, AppConfig.MinioBucket)
	if err != nil {
		logging.Logger.Error("failed to check document bucket",
			zap.String("bucket", AppConfig.MinioBucket),
			zap.Error(err))
		return
	}
	if !exists {
		err := client.MakeBucket(ctx, AppConfig.MinioBucket, minio.MakeBucketOptions{Region: AppConfig.MinioRegion})
		if err != nil {
			logging.Logger.Error("failed to create document bucket",
				zap.String("bucket", AppConfig.MinioBucket),
				zap.Error(err))
			return
		}
		logging.Logger.Info("created document bucket",
			zap.String("bucket", AppConfig.MinioBucket))
	}

	Minio = client

	logging.Logger.Info("connected to MinIO",
		zap.String("endpoint", AppConfig.MinioEndpoint),
		zap.String("bucket", AppConfig.MinioBucket))
}
