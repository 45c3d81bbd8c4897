// Package aws wraps the AWS SDK clients the storefront uses: S3 for product
// images, SNS for order events, Secrets Manager for credentials, and
// CloudWatch for metrics and log shipping.
package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig loads the default SDK config. When AWS_ENDPOINT (or the
// S3-specific AWS_S3_ENDPOINT) is set every client is pointed at it, which is
// how LocalStack and S3-compatible storage are reached.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = getEnv("AWS_REGION", "eu-west-3")
	}

	endpoint := CustomEndpoint()
	if endpoint == "" {
		return cfg, nil
	}

	signingRegion := cfg.Region
	cfg.EndpointResolverWithOptions = sdkaws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (sdkaws.Endpoint, error) {
			return sdkaws.Endpoint{
				URL:               endpoint,
				SigningRegion:     signingRegion,
				HostnameImmutable: true,
			}, nil
		})
	return cfg, nil
}

// CustomEndpoint returns the configured endpoint override, if any.
func CustomEndpoint() string {
	if v := os.Getenv("AWS_S3_ENDPOINT"); v != "" {
		return v
	}
	return os.Getenv("AWS_ENDPOINT")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
