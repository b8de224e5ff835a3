// Package content stores paper bodies in an S3-compatible object store and
// derives their content-addressed references. The pipeline only ever sees
// the reference; upload mechanics stay behind this package.
package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/scigate/scigate/internal/model"
)

// Ref derives the content-addressed reference for a body: the hex SHA-256
// of the bytes. The same body always maps to the same reference.
func Ref(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Store uploads paper bodies to a MinIO/S3 bucket keyed by their reference.
type Store struct {
	client *minio.Client
	bucket string
}

// New creates a content store from the configuration.
func New(cfg model.ContentConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init content store: %w", err)
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket makes sure the bucket exists before use.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Put uploads the body and returns its content reference. Uploading the
// same body twice overwrites the identical object, so Put is idempotent.
func (s *Store) Put(ctx context.Context, body []byte) (string, error) {
	ref := Ref(body)
	opts := minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"}
	_, err := s.client.PutObject(ctx, s.bucket, ref, bytes.NewReader(body), int64(len(body)), opts)
	if err != nil {
		return "", fmt.Errorf("upload content: %w", err)
	}
	return ref, nil
}

// Get fetches a body by its content reference.
func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	defer func() { _ = obj.Close() }()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return buf.Bytes(), nil
}
