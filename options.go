package kdgo

import (
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/distance"
)

type options struct {
	metric           distance.Metric
	distanceFunc     distance.Func
	compression      codec.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		metric:           distance.MetricEuclidean,
		compression:      codec.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures Build, Load and Decode.
type Option func(*options)

// WithMetric selects a built-in distance metric. Default: MetricEuclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
		o.distanceFunc = nil
	}
}

// WithDistanceFunc installs a custom distance function.
//
// Search prunes with the absolute single-axis difference as a lower bound,
// so results are exact only if fn is never smaller than that difference.
func WithDistanceFunc(fn distance.Func) Option {
	return func(o *options) {
		o.distanceFunc = fn
	}
}

// WithCompression sets the compression used by Save. Load detects the
// compression automatically. Default: codec.CompressionNone.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector sets the metrics collector used to record operations.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
