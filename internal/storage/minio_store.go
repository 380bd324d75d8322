package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps final documents in an S3-compatible bucket instead of the
// local disk. The returned path is "<bucket>/<key>".
type MinioStore struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinioStore connects to the endpoint and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket, now: time.Now}, nil
}

// Save uploads the document under a timestamp-prefixed key.
func (m *MinioStore) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%d-%s", m.now().UnixMilli(), safeFilename(filename))
	if _, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.bucket + "/" + key, nil
}
