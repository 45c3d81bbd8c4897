package services

import (
	"context"
	"encoding/json"
	"time"

	aws_pkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// eventPublisher sends domain events to one SNS topic. Publishing is
// best-effort: failures are logged, never returned.
type eventPublisher struct {
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func (p eventPublisher) publishEvent(ctx context.Context, event interface{}) {
	if p.snsClient == nil || p.snsTopicArn == "" {
		p.logger.Debug("SNS not configured, skipping event publish")
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal SNS event", zap.Error(err))
		return
	}
	if err := p.snsClient.Publish(ctx, p.snsTopicArn, b); err != nil {
		p.logger.Error("Failed to publish SNS event", zap.Error(err))
		return
	}
	p.logger.Info("Published SNS event", zap.String("topic", p.snsTopicArn))
}

const metricsTimeout = 5 * time.Second

// recordCount emits a counter in the background when metrics are enabled.
func recordCount(m aws_pkg.MetricsRecorder, name string, dims map[string]string) {
	if m == nil || !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
		defer cancel()
		_ = m.RecordCount(ctx, name, dims)
	}()
}

func recordValue(m aws_pkg.MetricsRecorder, name string, value float64) {
	if m == nil || !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
		defer cancel()
		_ = m.RecordValue(ctx, name, value, nil)
	}()
}
