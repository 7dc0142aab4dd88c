package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "floodalert"

// Prometheus implements Metrics with client_golang collectors.
type Prometheus struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Notifications    *prometheus.CounterVec // labels: channel={email,sms}, status={sent,failed,skipped}
	AlertRuns        *prometheus.CounterVec // labels: risk, outcome={sent,partial,failed,skipped,no_users}
	AlertRunDuration prometheus.Histogram
	DBConnections    prometheus.Gauge
	DBQueries        *prometheus.CounterVec
	gatherer         prometheus.Gatherer
}

func newPrometheus(gatherer prometheus.Gatherer) *Prometheus {
	return &Prometheus{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "endpoint", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Email and SMS send attempts by outcome.",
		}, []string{"channel", "status"}),
		AlertRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_runs_total",
			Help:      "City alert fan-outs by risk level and outcome.",
		}, []string{"risk", "outcome"}),
		AlertRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alert_run_duration_seconds",
			Help:      "Duration of a complete city alert fan-out.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DBConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_active",
			Help:      "Acquired connections in the Postgres pool.",
		}),
		DBQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Database queries by operation and status.",
		}, []string{"operation", "status"}),
		gatherer: gatherer,
	}
}

func (p *Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.HTTPRequests, p.HTTPDuration, p.Notifications, p.AlertRuns,
		p.AlertRunDuration, p.DBConnections, p.DBQueries,
	}
}

// NewPrometheus creates and registers all metrics with the default registry.
func NewPrometheus() *Prometheus {
	p := newPrometheus(prometheus.DefaultGatherer)
	prometheus.MustRegister(p.collectors()...)
	return p
}

// NewPrometheusForTesting registers on a fresh registry so tests can build
// as many instances as they like.
func NewPrometheusForTesting() *Prometheus {
	reg := prometheus.NewRegistry()
	p := newPrometheus(reg)
	reg.MustRegister(p.collectors()...)
	return p
}

func (p *Prometheus) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	p.HTTPRequests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	p.HTTPDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (p *Prometheus) RecordNotification(channel, status string) {
	p.Notifications.WithLabelValues(channel, status).Inc()
}

func (p *Prometheus) RecordAlertRun(risk, outcome string, duration time.Duration) {
	p.AlertRuns.WithLabelValues(risk, outcome).Inc()
	p.AlertRunDuration.Observe(duration.Seconds())
}

func (p *Prometheus) SetDBConnectionsActive(count float64) {
	p.DBConnections.Set(count)
}

func (p *Prometheus) RecordDBQuery(operation, status string) {
	p.DBQueries.WithLabelValues(operation, status).Inc()
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
