package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics exposes counters/histograms for requests to the hospital
// backend. It implements the backend client's RequestObserver.
type BackendMetrics struct {
	requestsTotal     *prometheus.CounterVec
	requestLatency    *prometheus.HistogramVec
	unauthorizedTotal prometheus.Counter
}

func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	m := &BackendMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total requests to the hospital backend",
		}, []string{"method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hospital",
			Subsystem: "backend",
			Name:      "request_latency_seconds",
			Help:      "Latency of hospital backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		unauthorizedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "backend",
			Name:      "unauthorized_total",
			Help:      "Total 401 responses from the hospital backend",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.unauthorizedTotal)
	return m
}

// ObserveRequest records one backend request. Status 0 means the request
// never produced a response.
func (m *BackendMetrics) ObserveRequest(method string, status int, seconds float64) {
	if m == nil {
		return
	}
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, label).Inc()
	m.requestLatency.WithLabelValues(method).Observe(seconds)
}

// ObserveUnauthorized records one backend 401.
func (m *BackendMetrics) ObserveUnauthorized() {
	if m == nil {
		return
	}
	m.unauthorizedTotal.Inc()
}
