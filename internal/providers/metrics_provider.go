package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"alertd/internal/models"
	"alertd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncAdmitted(alertType string)
	IncCapped()
	IncFramesDropped()
	IncReconnects()
	SetConnectionState(state int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	admittedTotal       *prometheus.CounterVec
	cappedTotal         prometheus.Counter
	framesDropped       prometheus.Counter
	reconnectsTotal     prometheus.Counter
	connectionState     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncAdmitted(alertType string) {
	m.admittedTotal.WithLabelValues(alertType).Inc()
}

func (m *MetricsProvider) IncCapped() {
	m.cappedTotal.Inc()
}

func (m *MetricsProvider) IncFramesDropped() {
	m.framesDropped.Inc()
}

func (m *MetricsProvider) IncReconnects() {
	m.reconnectsTotal.Inc()
}

func (m *MetricsProvider) SetConnectionState(state int) {
	m.connectionState.Set(float64(state))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store *models.AlertStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "alertd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alertd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alertd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alertd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "alertd_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		admittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "alertd_alerts_admitted_total",
			Help: "Alerts admitted into history, by type",
		}, []string{"type"}),

		cappedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alertd_alerts_capped_total",
			Help: "Alerts dropped because the daily cap was reached",
		}),

		framesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alertd_frames_dropped_total",
			Help: "Inbound frames dropped as undecodable",
		}),

		reconnectsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alertd_reconnects_total",
			Help: "Websocket reconnect attempts",
		}),

		connectionState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "alertd_connection_state",
			Help: "Connection state (0=disconnected 1=connecting 2=connected 3=reconnecting)",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "alertd_history_size",
		Help: "Current number of alert records in history",
	}, func() float64 {
		return float64(store.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "alertd_unread_count",
		Help: "Current number of unread alert records",
	}, func() float64 {
		return float64(store.UnreadCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncAdmitted(_ string)                             {}
func (n *noopMetrics) IncCapped()                                       {}
func (n *noopMetrics) IncFramesDropped()                                {}
func (n *noopMetrics) IncReconnects()                                   {}
func (n *noopMetrics) SetConnectionState(_ int)                         {}
