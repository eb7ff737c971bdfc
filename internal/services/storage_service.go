package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/config"
)

// StorageService uploads media files to object storage and hands back the
// public URL stored on products and hero slides.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logrus.Logger
}

// NewStorageService connects to MinIO and makes sure the bucket exists.
// A connection failure is reported but not fatal; uploads then error until
// storage comes back.
func NewStorageService(cfg *config.Config, log *logrus.Logger) *StorageService {
	s := &StorageService{
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.PublicMediaURL, "/"),
		log:       log,
	}
	if s.publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		s.publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket)
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.WithError(err).Warn("MinIO not configured, uploads disabled")
		return s
	}
	s.client = client

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		log.WithError(err).Warn("MinIO bucket check failed")
		return s
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.WithError(err).Warn("MinIO bucket creation failed")
		}
	}
	return s
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/avif": true,
}

// Upload stores one uploaded image under a random name and returns its
// public URL. The original filename only contributes its extension.
func (s *StorageService) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("object storage is not available")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"object": objectName,
		"size":   file.Size,
	}).Info("Media uploaded")
	return fmt.Sprintf("%s/%s", s.publicURL, objectName), nil
}

// Remove deletes the object behind a previously returned upload URL.
// URLs outside our public prefix (external CDNs, seeded data) are ignored.
func (s *StorageService) Remove(ctx context.Context, url string) error {
	if s.client == nil {
		return nil
	}
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(url, prefix)
	if objectName == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
