// Package observe holds the OpenTelemetry metric instruments for the
// corrector and the HTTP middleware that records request latency.
//
// A Prometheus exporter bridge is installed by [InitProvider] so metrics can
// be scraped from /metrics. Tests should build [Metrics] with [NewMetrics]
// over their own [metric.MeterProvider].
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "textcorrector"

// Metrics holds the metric instruments. Safe for concurrent use.
type Metrics struct {
	// PipelineRuns counts completed pipeline runs.
	PipelineRuns metric.Int64Counter

	// Suggestions counts spelling suggestions produced.
	Suggestions metric.Int64Counter

	// CustomWords counts custom-word additions. Use with attribute:
	//   attribute.String("status", "ok"|"invalid")
	CustomWords metric.Int64Counter

	// PipelineDuration tracks the latency of one pipeline run.
	PipelineDuration metric.Float64Histogram

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...), attribute.Int("status", ...)
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates all instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.PipelineRuns, err = m.Int64Counter("textcorrector.pipeline.runs",
		metric.WithDescription("Total correction pipeline runs."),
	); err != nil {
		return nil, err
	}
	if met.Suggestions, err = m.Int64Counter("textcorrector.pipeline.suggestions",
		metric.WithDescription("Total spelling suggestions produced."),
	); err != nil {
		return nil, err
	}
	if met.CustomWords, err = m.Int64Counter("textcorrector.custom_words",
		metric.WithDescription("Custom dictionary additions by status."),
	); err != nil {
		return nil, err
	}
	if met.PipelineDuration, err = m.Float64Histogram("textcorrector.pipeline.duration",
		metric.WithDescription("Latency of one correction pipeline run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("textcorrector.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordRun records one pipeline run.
func (m *Metrics) RecordRun(ctx context.Context, suggestions int, elapsed time.Duration) {
	m.PipelineRuns.Add(ctx, 1)
	m.Suggestions.Add(ctx, int64(suggestions))
	m.PipelineDuration.Record(ctx, elapsed.Seconds())
}

// RecordCustomWord records a custom-word addition attempt.
func (m *Metrics) RecordCustomWord(ctx context.Context, status string) {
	m.CustomWords.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
