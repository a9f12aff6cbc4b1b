// Package storage provides avatar object storage backed by an S3-compatible
// endpoint. The bucket is created on first use.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/linkora-app/linkora-backend/internal/config"
)

type AvatarStorage struct {
	client *minio.Client
	bucket string

	ensureOnce sync.Once
	ensureErr  error
}

func NewClient(cfg *config.StorageConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return client, nil
}

func NewAvatarStorage(client *minio.Client, bucket string) *AvatarStorage {
	return &AvatarStorage{
		client: client,
		bucket: strings.TrimSpace(bucket),
	}
}

func (s *AvatarStorage) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage client is nil")
	}
	if s.bucket == "" {
		return fmt.Errorf("storage bucket is empty")
	}

	s.ensureOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.ensureErr = err
			return
		}
		if exists {
			return
		}
		s.ensureErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	})

	if s.ensureErr != nil {
		return fmt.Errorf("ensure bucket %q: %w", s.bucket, s.ensureErr)
	}
	return nil
}

// Put stores an avatar under key. Keys are prefixed with the owning user's id
// by the caller.
func (s *AvatarStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := s.EnsureBucket(ctx); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put avatar object: %w", err)
	}
	return nil
}

func (s *AvatarStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove avatar object: %w", err)
	}
	return nil
}
