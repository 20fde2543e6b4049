package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// cloudWatchAPI is the subset of the CloudWatch client used by Metrics.
type cloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics emits custom CloudWatch metrics. Emission is best-effort:
// a metric failure is logged and never fails the request.
type Metrics struct {
	client    cloudWatchAPI
	namespace string
	enabled   bool
	logger    *zap.Logger
}

// NewMetrics creates a metrics emitter
func NewMetrics(client cloudWatchAPI, namespace string, enabled bool, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		enabled:   enabled,
		logger:    logger,
	}
}

// CountCacheHit records a daily insight cache hit or miss.
func (m *Metrics) CountCacheHit(ctx context.Context, hit bool) {
	name := "InsightCacheMiss"
	if hit {
		name = "InsightCacheHit"
	}
	m.putCount(ctx, name, 1)
}

// CountGenerationFailure records an exhausted generation request.
func (m *Metrics) CountGenerationFailure(ctx context.Context) {
	m.putCount(ctx, "InsightGenerationFailure", 1)
}

// RecordGenerationLatency records the wall-clock time of a successful
// generation, backoff waits included.
func (m *Metrics) RecordGenerationLatency(ctx context.Context, elapsed time.Duration) {
	if !m.enabled || m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("InsightGenerationLatency"),
				Unit:       types.StandardUnitMilliseconds,
				Value:      aws.Float64(float64(elapsed.Milliseconds())),
				Timestamp:  aws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		m.logger.Warn("failed to emit latency metric", zap.Error(err))
	}
}

func (m *Metrics) putCount(ctx context.Context, name string, value float64) {
	if !m.enabled || m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Unit:       types.StandardUnitCount,
				Value:      aws.Float64(value),
				Timestamp:  aws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		m.logger.Warn("failed to emit metric", zap.String("metric", name), zap.Error(err))
	}
}
