// Package storage uploads product images to the S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	aws_pkg "storefront-service/pkg/aws"

	"github.com/google/uuid"
)

const (
	DefaultBucket = "parfum_images"
	keyPrefix     = "products"
)

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"avif": "image/avif",
	"svg":  "image/svg+xml",
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, bucket string) (string, error)
}

// S3ImageStore puts images under products/ in the configured bucket.
type S3ImageStore struct {
	uploader      aws_pkg.ObjectUploader
	defaultBucket string
	publicBaseURL string
	now           func() time.Time
	randomSuffix  func() string
}

func NewS3ImageStore(uploader aws_pkg.ObjectUploader, defaultBucket, publicBaseURL string) *S3ImageStore {
	if defaultBucket == "" {
		defaultBucket = DefaultBucket
	}
	return &S3ImageStore{
		uploader:      uploader,
		defaultBucket: defaultBucket,
		publicBaseURL: publicBaseURL,
		now:           time.Now,
		randomSuffix:  func() string { return uuid.NewString()[:8] },
	}
}

// Upload writes file to bucket (the default bucket when empty) under
// products/<unix-ms>-<random>.<ext>.
func (s *S3ImageStore) Upload(ctx context.Context, file io.Reader, filename, bucket string) (string, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}
	ext := Extension(filename)
	if ext == "" {
		return "", fmt.Errorf("image %q has no file extension", filename)
	}

	key := fmt.Sprintf("%s/%d-%s.%s", keyPrefix, s.now().UnixMilli(), s.randomSuffix(), ext)
	if err := aws_pkg.PutObject(ctx, s.uploader, bucket, key, ContentType(ext), file); err != nil {
		return "", err
	}
	return aws_pkg.PublicObjectURL(s.publicBaseURL, bucket, key), nil
}

// Extension is the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

// ContentType maps an image extension to its MIME type.
func ContentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
