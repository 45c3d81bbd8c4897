package services

import (
	"context"
	"io"
	"net/http"

	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/storage"

	"go.uber.org/zap"
)

// ImageService uploads product images for the admin panel.
type ImageService interface {
	Upload(ctx context.Context, file io.Reader, filename, bucket string) (string, *ServiceError)
}

type imageServiceImpl struct {
	uploader storage.Uploader
	metrics  aws_pkg.MetricsRecorder
	logger   *zap.Logger
}

func NewImageService(uploader storage.Uploader, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) ImageService {
	return &imageServiceImpl{uploader: uploader, metrics: metrics, logger: logger}
}

func (s *imageServiceImpl) Upload(ctx context.Context, file io.Reader, filename, bucket string) (string, *ServiceError) {
	if s.uploader == nil {
		return "", &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image storage is not configured"}
	}
	if storage.Extension(filename) == "" {
		return "", badRequest("Image file must have an extension")
	}
	url, err := s.uploader.Upload(ctx, file, filename, bucket)
	if err != nil {
		logger.For(ctx, s.logger).Error("Image upload failed", zap.String("filename", filename), zap.Error(err))
		return "", &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to upload image"}
	}
	recordCount(s.metrics, aws_pkg.MetricImagesUploaded, nil)
	return url, nil
}
