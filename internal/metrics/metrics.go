package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tphummel/nts_configurator/internal/catalog"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nts_configurator_http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nts_configurator_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nts_configurator_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed.",
	})

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nts_configurator_recommendations_total",
			Help: "Configurations served, partitioned by recommended model.",
		},
		[]string{"model"},
	)

	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nts_configurator_exports_total",
			Help: "Configuration downloads, partitioned by format.",
		},
		[]string{"format"},
	)

	decodeFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nts_configurator_permalink_decode_failures_total",
		Help: "Permalinks that could not be decoded and fell back to the default configuration.",
	})
)

// catalogCollector reports one info series per catalog model so dashboards
// can join recommendation counts with model attributes.
type catalogCollector struct {
	models    func() []catalog.Model
	modelDesc *prometheus.Desc
}

func (c *catalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.modelDesc
}

func (c *catalogCollector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.models() {
		ch <- prometheus.MustNewConstMetric(
			c.modelDesc,
			prometheus.GaugeValue,
			1,
			string(m.ID),
			string(m.Defaults.Oscillator),
			string(m.Defaults.Power),
		)
	}
}

// Register registers all metrics with reg. Call once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		// Standard Go runtime and process metrics
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		// HTTP service metrics
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,

		// Application metrics
		recommendationsTotal,
		exportsTotal,
		decodeFailuresTotal,
		&catalogCollector{
			models: catalog.Models,
			modelDesc: prometheus.NewDesc(
				"nts_configurator_catalog_model_info",
				"Catalog models with their default oscillator and power mode.",
				[]string{"model", "oscillator", "power"},
				nil,
			),
		},
	)
}

// RecordRecommendation counts a configuration served for model.
func RecordRecommendation(model string) {
	recommendationsTotal.WithLabelValues(model).Inc()
}

// RecordExport counts a download in format.
func RecordExport(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}

// RecordDecodeFailure counts a permalink that could not be decoded.
func RecordDecodeFailure() {
	decodeFailuresTotal.Inc()
}

// responseWriter wraps http.ResponseWriter to capture the response status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware wraps an http.Handler to record HTTP metrics.
// pattern should be the route pattern string (e.g. "/api/v1/models/{id}")
// so the path label has bounded cardinality.
func Middleware(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			httpRequestsInFlight.Dec()
			status := strconv.Itoa(rw.status)
			httpRequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rw, r)
	})
}
