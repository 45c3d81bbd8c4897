package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader is the subset of the S3 upload manager the storefront uses.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewS3Client creates an S3 client. Path-style addressing is forced when a
// custom endpoint is configured, since S3-compatible stores rarely serve
// virtual-hosted buckets.
func NewS3Client(cfg sdkaws.Config) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = CustomEndpoint() != ""
	})
}

// NewS3Uploader wraps client in a multipart-capable upload manager.
func NewS3Uploader(client *s3.Client) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
	})
}

// PutObject uploads body to bucket/key with the given content type.
func PutObject(ctx context.Context, up ObjectUploader, bucket, key, contentType string, body io.Reader) error {
	_, err := up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s failed: %w", bucket, key, err)
	}
	return nil
}

// PublicObjectURL joins a public base URL, bucket and key.
func PublicObjectURL(baseURL, bucket, key string) string {
	base := strings.TrimSuffix(baseURL, "/")
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
