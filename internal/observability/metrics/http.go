package metrics

import (
	"bufio"
	"fmt"
	"net"
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

	searchRequestsTotal  *prometheus.CounterVec
	searchRetrievalHits  *prometheus.CounterVec
	searchNoContextTotal *prometheus.CounterVec
	searchDocumentsUsed  *prometheus.HistogramVec
	searchDuration       *prometheus.HistogramVec
	searchFiltersApplied *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ta",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ta",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ta",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	searchRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total completed search requests by query type.",
		},
		[]string{"service", "query_type"},
	)
	searchRetrievalHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "retrieval_hit_total",
			Help:      "Total search requests answered from retrieved documents.",
		},
		[]string{"service"},
	)
	searchNoContextTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "no_context_total",
			Help:      "Total search requests that found no documents.",
		},
		[]string{"service"},
	)
	searchDocumentsUsed := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "documents_used",
			Help:      "Distribution of documents used per answered search.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
		[]string{"service"},
	)
	searchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Search workflow duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	searchFiltersApplied := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ta",
			Subsystem: "search",
			Name:      "filters_applied",
			Help:      "Distribution of hard filter conditions per search.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 8, 12},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		searchRequestsTotal,
		searchRetrievalHits,
		searchNoContextTotal,
		searchDocumentsUsed,
		searchDuration,
		searchFiltersApplied,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		searchRequestsTotal:  searchRequestsTotal,
		searchRetrievalHits:  searchRetrievalHits,
		searchNoContextTotal: searchNoContextTotal,
		searchDocumentsUsed:  searchDocumentsUsed,
		searchDuration:       searchDuration,
		searchFiltersApplied: searchFiltersApplied,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/ingest/"):
		return "/v1/ingest/{job_id}"
	default:
		return path
	}
}

// RecordSearchObservation captures the outcome of one completed search
// workflow run.
func (m *HTTPServerMetrics) RecordSearchObservation(service, queryType string, documentsUsed, filtersApplied int, duration time.Duration) {
	if queryType == "" {
		queryType = "unknown"
	}
	m.searchRequestsTotal.WithLabelValues(service, queryType).Inc()
	m.searchDocumentsUsed.WithLabelValues(service).Observe(float64(documentsUsed))
	m.searchFiltersApplied.WithLabelValues(service).Observe(float64(filtersApplied))
	m.searchDuration.WithLabelValues(service).Observe(duration.Seconds())

	if documentsUsed > 0 {
		m.searchRetrievalHits.WithLabelValues(service).Inc()
		return
	}
	m.searchNoContextTotal.WithLabelValues(service).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
