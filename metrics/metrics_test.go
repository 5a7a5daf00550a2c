package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"aqusens.io/nora/asrslink/analyzer"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveExchange("StartPump", analyzer.Ack, 120*time.Millisecond)
	m.ObserveExchange("StartPump", analyzer.Ack, 80*time.Millisecond)
	m.ObserveExchange("StopPump", analyzer.Timeout, 10*time.Second)
	if got := testutil.ToFloat64(m.exchanges.WithLabelValues("StartPump", "ack")); got != 2 {
		t.Errorf("expected 2 acknowledged StartPump exchanges, got %f", got)
	}
	if got := testutil.ToFloat64(m.exchanges.WithLabelValues("StopPump", "timeout")); got != 1 {
		t.Errorf("expected 1 timed out StopPump exchange, got %f", got)
	}
	if n := testutil.CollectAndCount(m.exchangeTime); n != 2 {
		t.Errorf("expected latency series for 2 commands, got %d", n)
	}

	m.ObserveSession("done", 5*time.Minute)
	m.ObserveSession("aborted", time.Minute)
	if got := testutil.ToFloat64(m.sessions.WithLabelValues("done")); got != 1 {
		t.Errorf("expected 1 done session, got %f", got)
	}

	m.ObserveTemperature(18.5)
	m.ObserveTemperature(19.25)
	if got := testutil.ToFloat64(m.temperature); got != 19.25 {
		t.Errorf("expected last temperature 19.25, got %f", got)
	}
	if got := testutil.ToFloat64(m.readings); got != 2 {
		t.Errorf("expected 2 readings, got %f", got)
	}

	m.ObserveNotification("estop_pressed", nil)
	m.ObserveNotification("estop_pressed", errors.New("relay down"))
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("estop_pressed", "failed")); got != 1 {
		t.Errorf("expected 1 failed notification, got %f", got)
	}

	m.ObserveRequest("tide")
	m.Reconnected()
	if got := testutil.ToFloat64(m.reconnects); got != 1 {
		t.Errorf("expected 1 reconnect, got %f", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("clock")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `asrs_requests_total{kind="clock"} 1`) {
		t.Errorf("request counter missing from exposition:\n%s", rec.Body.String())
	}
}
