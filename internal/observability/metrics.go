// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Chart generation metrics
	ChartsGenerated   prometheus.Counter
	ChartCacheHits    prometheus.Counter
	ValidationErrors  *prometheus.CounterVec
	EphemerisErrors   prometheus.Counter
	GenerationLatency prometheus.Histogram

	// Ephemeris client metrics
	EphemerisCallLatency  prometheus.Histogram
	TransitFramesIngested prometheus.Counter
	TransitPointsStored   prometheus.Counter

	// Compatibility metrics
	CompatibilityValidated prometheus.Counter
	CompatibilityRejected  *prometheus.CounterVec

	// Database metrics
	DBQueryErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "astro_chart_lab"
	}

	return &Metrics{
		ChartsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_generated_total",
			Help:      "Total chart bundles generated",
		}),
		ChartCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_cache_hits_total",
			Help:      "Chart requests served from the bundle cache",
		}),
		ValidationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Birth data validation failures by kind",
		}, []string{"kind"}),
		EphemerisErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeris_errors_total",
			Help:      "Failed or incomplete ephemeris responses",
		}),
		GenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_seconds",
			Help:      "End-to-end chart generation latency",
			Buckets:   prometheus.DefBuckets,
		}),
		EphemerisCallLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ephemeris_call_latency_seconds",
			Help:      "Ephemeris service call latency",
			Buckets:   prometheus.DefBuckets,
		}),
		TransitFramesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transit_frames_ingested_total",
			Help:      "Live position frames received from the stream",
		}),
		TransitPointsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transit_points_stored_total",
			Help:      "Transit points written to storage",
		}),
		CompatibilityValidated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compatibility_validated_total",
			Help:      "Compatibility reports that passed shape validation",
		}),
		CompatibilityRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compatibility_rejected_total",
			Help:      "Compatibility reports rejected by shape validation",
		}, []string{"reason"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Database query errors by store",
		}, []string{"store"}),
	}
}

// Handler returns the HTTP handler for the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
