package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestItemAdded(t *testing.T) {
	m := New()

	m.ItemAdded(OutcomeAppended)
	m.ItemAdded(OutcomeMerged)
	m.ItemAdded(OutcomeMerged)

	if got := testutil.ToFloat64(m.ItemsAdded.WithLabelValues(OutcomeAppended)); got != 1 {
		t.Errorf("appended = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ItemsAdded.WithLabelValues(OutcomeMerged)); got != 2 {
		t.Errorf("merged = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ItemsAdded.WithLabelValues(OutcomeRejected)); got != 0 {
		t.Errorf("rejected = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPC("/orderlines.v1.OrderService/AddItem", "ok", 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`orderlines_rpc_requests_total{code="ok",procedure="/orderlines.v1.OrderService/AddItem"} 1`,
		"orderlines_rpc_duration_ms_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNew_Independent(t *testing.T) {
	// Each call owns its registry, so building twice must not panic.
	a, b := New(), New()
	a.ItemAdded(OutcomeRejected)

	if got := testutil.ToFloat64(b.ItemsAdded.WithLabelValues(OutcomeRejected)); got != 0 {
		t.Errorf("second registry saw %v rejections", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	m.ItemAdded(OutcomeMerged)
	m.ObserveRPC("/orderlines.v1.OrderService/AddItem", "ok", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
