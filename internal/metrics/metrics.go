package metrics

import (
	"net/http"
	"sync"
	"time"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
	RecordNotification(channel, status string)
	RecordAlertRun(risk, outcome string, duration time.Duration)
	SetDBConnectionsActive(count float64)
	RecordDBQuery(operation, status string)
	Handler() http.Handler
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
}
func (m *NoOpMetrics) RecordNotification(channel, status string)                   {}
func (m *NoOpMetrics) RecordAlertRun(risk, outcome string, duration time.Duration) {}
func (m *NoOpMetrics) SetDBConnectionsActive(count float64)                        {}
func (m *NoOpMetrics) RecordDBQuery(operation, status string)                      {}
func (m *NoOpMetrics) Handler() http.Handler                                       { return http.NotFoundHandler() }

// Global metrics instance
var (
	globalMetrics Metrics = &NoOpMetrics{}
	initOnce      sync.Once
)

// Init installs the Prometheus implementation on the default registry.
// Calling it more than once is harmless.
func Init() {
	initOnce.Do(func() {
		globalMetrics = NewPrometheus()
	})
}

// SetGlobal replaces the process-wide implementation.
func SetGlobal(m Metrics) {
	if m == nil {
		m = &NoOpMetrics{}
	}
	globalMetrics = m
}

// Handler returns the metrics handler
func Handler() http.Handler {
	return globalMetrics.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	globalMetrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
}

// RecordNotification counts one email or SMS send attempt.
func RecordNotification(channel, status string) {
	globalMetrics.RecordNotification(channel, status)
}

// RecordAlertRun records one city fan-out.
func RecordAlertRun(risk, outcome string, duration time.Duration) {
	globalMetrics.RecordAlertRun(risk, outcome, duration)
}

// SetDBConnectionsActive sets the number of active database connections
func SetDBConnectionsActive(count float64) {
	globalMetrics.SetDBConnectionsActive(count)
}

// RecordDBQuery records database query metrics
func RecordDBQuery(operation, status string) {
	globalMetrics.RecordDBQuery(operation, status)
}
