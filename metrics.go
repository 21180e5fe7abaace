package vectorize

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/botirk38/vectorize"

// Metrics holds the service's OpenTelemetry instruments. All
// instruments are optional: with no meter provider installed they are
// no-ops, so the embedded counters in Stats remain the source of truth
// for callers without a metrics pipeline.
type Metrics struct {
	meter     metric.Meter
	logger    *zap.Logger
	duration  metric.Float64Histogram
	batchSize metric.Int64Histogram
	fallbacks metric.Int64Counter
}

// NewMetrics creates a new Metrics instance for the embedding service.
func NewMetrics(logger *zap.Logger) *Metrics {
	m := &Metrics{
		meter:  otel.Meter(instrumentationName),
		logger: logger,
	}
	m.init()
	return m
}

func (m *Metrics) init() {
	var err error

	m.duration, err = m.meter.Float64Histogram(
		"vectorize.embed.duration_seconds",
		metric.WithDescription("Duration of embedding batches in seconds, labeled by operation (embed_query, embed_documents)"),
		metric.WithUnit("s"),
	)
	if err != nil {
		m.logger.Warn("failed to create duration histogram", zap.Error(err))
	}

	m.batchSize, err = m.meter.Int64Histogram(
		"vectorize.embed.batch_size",
		metric.WithDescription("Number of texts per embedding call"),
		metric.WithUnit("{text}"),
	)
	if err != nil {
		m.logger.Warn("failed to create batch size histogram", zap.Error(err))
	}

	m.fallbacks, err = m.meter.Int64Counter(
		"vectorize.embed.fallback_vectors_total",
		metric.WithDescription("Total deterministic fallback vectors substituted for failed provider calls"),
		metric.WithUnit("{vector}"),
	)
	if err != nil {
		m.logger.Warn("failed to create fallback counter", zap.Error(err))
	}
}

// recordBatch records metrics for one embedding call.
func (m *Metrics) recordBatch(ctx context.Context, operation string, elapsed time.Duration, batch, fallbacks int) {
	attrs := metric.WithAttributes(attribute.String("operation", operation))

	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
	if m.batchSize != nil && batch > 0 {
		m.batchSize.Record(ctx, int64(batch), attrs)
	}
	if m.fallbacks != nil && fallbacks > 0 {
		m.fallbacks.Add(ctx, int64(fallbacks), attrs)
	}
}
