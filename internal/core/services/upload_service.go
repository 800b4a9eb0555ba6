package services

import (
	"context"
	"fmt"
	"io"
	"time"

	appcfg "github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores an uploaded document and returns its URL
type Uploader interface {
	Upload(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}

// UploadService uploads clearance documents to S3-compatible object
// storage. Without credentials it degrades to a mock URL so submissions
// still go through in development.
type UploadService struct {
	client *s3.Client
	cfg    appcfg.StorageConfig
}

// NewUploadService creates a new upload service
func NewUploadService(cfg appcfg.StorageConfig) *UploadService {
	svc := &UploadService{cfg: cfg}

	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		logging.L().Warn("object storage keys missing, uploads will return mock URLs")
		return svc
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		logging.L().Errorw("object storage init failed, uploads will return mock URLs", "error", err)
		return svc
	}

	svc.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO-compatible addressing
		}
	})

	return svc
}

// Enabled reports whether a real storage client initialized
func (s *UploadService) Enabled() bool {
	return s.client != nil
}

// Upload stores the document and returns its URL
func (s *UploadService) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	key := storageKey(filename)

	if s.client == nil {
		return "https://mock-storage.local/" + key, nil
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}

	return s.objectURL(key), nil
}

func (s *UploadService) objectURL(key string) string {
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.Endpoint, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("clearances/%d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}
