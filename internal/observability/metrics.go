package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce          sync.Once
	storeActionsTotal     *prometheus.CounterVec
	thunkDurationSeconds  *prometheus.HistogramVec
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	pushNotificationTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the client core.
func RegisterMetrics() {
	registerOnce.Do(func() {
		storeActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_actions_total",
			Help: "Total number of actions dispatched through the client store.",
		}, []string{"type"})

		thunkDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "store_thunk_duration_seconds",
			Help:    "Duration of async store operations from pending to settlement.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"operation", "outcome"})

		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of backend API requests issued by the client.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_latency_seconds",
			Help:    "Latency distribution for backend API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		pushNotificationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_notifications_received_total",
			Help: "Total number of notifications received from push sources.",
		}, []string{"source", "result"})

		prometheus.MustRegister(storeActionsTotal, thunkDurationSeconds, apiRequestsTotal, apiLatencySeconds, pushNotificationTotal)
	})
}

// StoreActions exposes the counter for dispatched actions.
func StoreActions() *prometheus.CounterVec {
	RegisterMetrics()
	return storeActionsTotal
}

// ThunkDuration exposes the histogram for async operation durations.
func ThunkDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return thunkDurationSeconds
}

// APIRequests exposes the counter for backend requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for backend requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// PushNotifications exposes the counter for pushed notifications.
func PushNotifications() *prometheus.CounterVec {
	RegisterMetrics()
	return pushNotificationTotal
}

// ScrapeHandler serves the default registry with the client collectors registered.
func ScrapeHandler() http.Handler {
	RegisterMetrics()
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
}
