package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/utils"
)

// DocumentStore transfers applicant documents to durable storage.
type DocumentStore interface {
	Upload(ctx context.Context, userID, category, label string, file DocumentFile) (*models.UploadedDocument, error)
}

// DocumentFile is one file to transfer, already opened by the handler.
type DocumentFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MinioDocumentStore stores documents in a MinIO bucket under
// {userID}/{category}/{label-or-name}_{epoch-millis}{ext}. The timestamp
// suffix keeps repeated uploads of the same file from colliding.
type MinioDocumentStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewMinioDocumentStore(client *minio.Client, bucket string) *MinioDocumentStore {
	return &MinioDocumentStore{
		client: client,
		bucket: bucket,
		logger: observability.Logger().With(zap.String("service", "documents")),
	}
}

func (s *MinioDocumentStore) objectName(userID, category, label, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := label
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(filename), ext)
	}
	slug := utils.Slugify(base)
	if slug == "" {
		slug = "document"
	}
	return fmt.Sprintf("%s/%s/%s_%d%s", userID, category, slug, now.UnixMilli(), strings.ToLower(ext))
}

// Upload transfers one file and returns its stored metadata.
func (s *MinioDocumentStore) Upload(ctx context.Context, userID, category, label string, file DocumentFile) (*models.UploadedDocument, error) {
	now := time.Now().UTC()
	objectName := s.objectName(userID, category, label, file.Name, now)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, file.Reader, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		observability.DocumentUploads.WithLabelValues("error").Inc()
		s.logger.Error("document upload failed",
			zap.String("object", objectName),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upload document %q: %w", file.Name, err)
	}

	observability.DocumentUploads.WithLabelValues("success").Inc()
	s.logger.Info("document uploaded",
		zap.String("object", objectName),
		zap.Int64("size", file.Size))

	return &models.UploadedDocument{
		Name:        file.Name,
		Size:        file.Size,
		ContentType: contentType,
		StoragePath: fmt.Sprintf("%s/%s", s.bucket, objectName),
		DownloadURL: s.downloadURL(objectName),
		UploadedAt:  now,
	}, nil
}

func (s *MinioDocumentStore) downloadURL(objectName string) string {
	scheme := "http"
	if config.AppConfig.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, config.AppConfig.MinioEndpoint, s.bucket, objectName)
}
