package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Ensure NoOpMetrics methods do not panic and global functions delegate without error
func TestNoOpMetricsAndDelegates(t *testing.T) {
	m := &NoOpMetrics{}
	m.RecordHTTPRequest("GET", "/x", 200, time.Millisecond)
	m.RecordNotification("email", "sent")
	m.RecordAlertRun("high", "sent", time.Millisecond)
	m.SetDBConnectionsActive(1)
	m.RecordDBQuery("exec", "ok")
	h := m.Handler()
	if h == nil {
		t.Fatalf("NoOp handler is nil")
	}

	// Delegates
	RecordHTTPRequest("GET", "/x", 200, time.Millisecond)
	RecordNotification("sms", "failed")
	RecordAlertRun("low", "skipped", time.Millisecond)
	SetDBConnectionsActive(2)
	RecordDBQuery("query", "ok")

	// Handler should be NotFound
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rw.Code != http.StatusNotFound {
		t.Errorf("expected 404 from no-op handler, got %d", rw.Code)
	}
}

func TestPrometheusRecords(t *testing.T) {
	p := NewPrometheusForTesting()
	SetGlobal(p)
	t.Cleanup(func() { SetGlobal(nil) })

	RecordNotification("email", "sent")
	RecordNotification("email", "sent")
	RecordNotification("sms", "failed")
	RecordAlertRun("high", "partial", 2*time.Second)
	RecordHTTPRequest("POST", "/v1/alerts/send-by-city", 200, 10*time.Millisecond)
	RecordDBQuery("find_by_city", "ok")
	SetDBConnectionsActive(3)

	if got := testutil.ToFloat64(p.Notifications.WithLabelValues("email", "sent")); got != 2 {
		t.Errorf("email sent=%v want 2", got)
	}
	if got := testutil.ToFloat64(p.Notifications.WithLabelValues("sms", "failed")); got != 1 {
		t.Errorf("sms failed=%v want 1", got)
	}
	if got := testutil.ToFloat64(p.AlertRuns.WithLabelValues("high", "partial")); got != 1 {
		t.Errorf("alert runs=%v want 1", got)
	}
	if got := testutil.ToFloat64(p.DBConnections); got != 3 {
		t.Errorf("db connections=%v want 3", got)
	}

	rw := httptest.NewRecorder()
	Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rw.Body)
	if !strings.Contains(string(body), `floodalert_notifications_total{channel="email",status="sent"} 2`) {
		t.Errorf("exposition missing notification counter:\n%s", body)
	}
}

func TestNewPrometheusForTesting_Independent(t *testing.T) {
	a := NewPrometheusForTesting()
	b := NewPrometheusForTesting()
	a.RecordNotification("email", "sent")
	if got := testutil.ToFloat64(b.Notifications.WithLabelValues("email", "sent")); got != 0 {
		t.Errorf("registries leaked between instances: %v", got)
	}
}
