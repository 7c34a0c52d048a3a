package service

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/util"
	"atomic_sensei_backend/pkg/logger"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStore is where exported documents end up.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type LocalObjectStore struct {
	Root string
}

func (s *LocalObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *LocalObjectStore) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.Root, filepath.FromSlash(key)))
}

func (s *LocalObjectStore) URL(key string) string {
	return "/uploads/" + key
}

type MinioObjectStore struct {
	Bucket string
	Client *minio.Client
}

func NewMinioObjectStore(cfg *config.StorageConfig) (*MinioObjectStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioObjectStore{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (s *MinioObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, s.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *MinioObjectStore) Delete(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioObjectStore) URL(key string) string {
	return "/" + s.Bucket + "/" + key
}

type OSSObjectStore struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSObjectStore(cfg *config.StorageConfig) (*OSSObjectStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSObjectStore{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (s *OSSObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := s.Bucket.PutObject(key, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *OSSObjectStore) Delete(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key)
}

func (s *OSSObjectStore) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.Bucket.BucketName, s.Endpoint, key)
}

type StorageService struct {
	Store ObjectStore
}

// NewStorageService picks the store named by storage.type. A remote store
// that cannot be configured degrades to the local directory.
func NewStorageService(cfg *config.StorageConfig) *StorageService {
	var (
		store ObjectStore
		err   error
	)
	switch cfg.Type {
	case util.StorageMinio:
		store, err = NewMinioObjectStore(cfg)
	case util.StorageOSS:
		store, err = NewOSSObjectStore(cfg)
	}
	if err != nil {
		logger.Log.Warn("Object storage unavailable, using local directory",
			zap.String("type", cfg.Type),
			zap.Error(err))
		store = nil
	}
	if store == nil {
		store = &LocalObjectStore{Root: cfg.LocalPath}
	}
	return &StorageService{Store: store}
}

// PutBytes stores an in-memory document and returns its public URL.
func (s *StorageService) PutBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return s.Store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, key)
}
