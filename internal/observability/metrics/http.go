package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	questionsTotal    *prometheus.CounterVec
	pipelineDuration  *prometheus.HistogramVec
	domainsSearched   *prometheus.HistogramVec
	relevantDocuments *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dqa",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dqa",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dqa",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	questionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dqa",
			Subsystem: "qa",
			Name:      "questions_total",
			Help:      "Total processed questions by answer status.",
		},
		[]string{"service", "status"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dqa",
			Subsystem: "qa",
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end question pipeline duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"service", "status"},
	)
	domainsSearched := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dqa",
			Subsystem: "qa",
			Name:      "domains_searched",
			Help:      "Distribution of searched domains per question.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"service"},
	)
	relevantDocuments := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dqa",
			Subsystem: "qa",
			Name:      "relevant_documents",
			Help:      "Distribution of relevant documents cited per answered question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		},
		[]string{"service"},
	)
	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		questionsTotal,
		pipelineDuration,
		domainsSearched,
		relevantDocuments,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		questionsTotal:    questionsTotal,
		pipelineDuration:  pipelineDuration,
		domainsSearched:   domainsSearched,
		relevantDocuments: relevantDocuments,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestStarted and RequestFinished bracket one in-flight HTTP request.
func (m *HTTPServerMetrics) RequestStarted() {
	m.requestInFlight.Inc()
}

func (m *HTTPServerMetrics) RequestFinished() {
	m.requestInFlight.Dec()
}

// RecordRequest records one completed HTTP request. The path is collapsed to
// its route so per-answer URLs do not explode label cardinality.
func (m *HTTPServerMetrics) RecordRequest(service, method, path string, status int, duration time.Duration) {
	route := normalizePath(path)
	m.requestTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/answers/"):
		return "/v1/answers/{answer_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordQuestion(service, status string, searchedDomains, relevantDocs int, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	m.questionsTotal.WithLabelValues(service, status).Inc()
	m.pipelineDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	m.domainsSearched.WithLabelValues(service).Observe(float64(searchedDomains))
	m.relevantDocuments.WithLabelValues(service).Observe(float64(relevantDocs))
}
