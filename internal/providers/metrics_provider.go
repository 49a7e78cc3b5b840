package providers

import (
	"stagehand/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncEventsTotal(event string)
	IncCacheHits()
	IncCacheMisses()
	IncConnectedClients()
	DecConnectedClients()
	ObserveBroadcastSize(bytes int)
	ObservePersistenceDuration(duration time.Duration)
	SetChatsTotal(count int)
	SetScenesTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	eventsTotal         *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	connectedClients    prometheus.Gauge
	broadcastSize       prometheus.Histogram
	persistenceDuration prometheus.Histogram
	chatsTotal          prometheus.Gauge
	scenesTotal         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncEventsTotal(event string) {
	m.eventsTotal.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncConnectedClients() {
	m.connectedClients.Inc()
}

func (m *MetricsProvider) DecConnectedClients() {
	m.connectedClients.Dec()
}

func (m *MetricsProvider) ObserveBroadcastSize(bytes int) {
	m.broadcastSize.Observe(float64(bytes))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetChatsTotal(count int) {
	m.chatsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetScenesTotal(count int) {
	m.scenesTotal.Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehand_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stagehand_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		eventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehand_events_total",
			Help: "Total number of accepted socket events",
		}, []string{"event"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stagehand_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stagehand_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		connectedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stagehand_connected_clients",
			Help: "Number of currently connected socket clients",
		}),

		broadcastSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stagehand_broadcast_bytes",
			Help:    "Size of broadcast document payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stagehand_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		chatsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stagehand_chats_total",
			Help: "Number of chats in the live document",
		}),

		scenesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stagehand_global_scenes_total",
			Help: "Number of saved global scenes",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncEventsTotal(_ string)                          {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncConnectedClients()                             {}
func (n *noopMetrics) DecConnectedClients()                             {}
func (n *noopMetrics) ObserveBroadcastSize(_ int)                       {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetChatsTotal(_ int)                              {}
func (n *noopMetrics) SetScenesTotal(_ int)                             {}
