package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"invisifeed/pkg/config"
)

// ObjectStorage uploads rendered invoice documents and returns a public URL.
type ObjectStorage interface {
	UploadPDF(ctx context.Context, key string, data []byte) (string, error)
}

type s3Storage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewS3Storage(cfg *config.Config) (ObjectStorage, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	return &s3Storage{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

func (s *s3Storage) UploadPDF(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.client.EndpointURL().String(), "/"), s.bucket, key), nil
}
