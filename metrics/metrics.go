// Package metrics exposes the link's activity as Prometheus metrics on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aqusens.io/nora/asrslink/analyzer"
)

const namespace = "asrs"

// Metrics implements the observers of the analyzer channel, the session
// runner, the alert reporter and the dispatcher.
type Metrics struct {
	registry *prometheus.Registry

	exchanges     *prometheus.CounterVec
	exchangeTime  *prometheus.HistogramVec
	sessions      *prometheus.CounterVec
	sessionTime   prometheus.Histogram
	temperature   prometheus.Gauge
	readings      prometheus.Counter
	notifications *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reconnects    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyzer_exchanges_total",
			Help:      "Analyzer command exchanges by command and result.",
		}, []string{"command", "status"}),
		exchangeTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analyzer_exchange_seconds",
			Help:      "Time from command write to verdict.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"command"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Finished sample sessions by final state.",
		}, []string{"state"}),
		sessionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_seconds",
			Help:      "Sample session wall time.",
			Buckets:   prometheus.LinearBuckets(60, 120, 10),
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sample_temperature_celsius",
			Help:      "Last temperature reported during a session.",
		}),
		readings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "temperature_readings_total",
			Help:      "Temperature readings collected.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Fault notifications by fault and delivery result.",
		}, []string{"fault", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled by the dispatcher by kind.",
		}, []string{"kind"}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "serial_reconnects_total",
			Help:      "Successful serial reconnects.",
		}),
	}

	m.registry.MustRegister(
		m.exchanges, m.exchangeTime,
		m.sessions, m.sessionTime,
		m.temperature, m.readings,
		m.notifications, m.requests, m.reconnects,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveExchange(command string, status analyzer.Status, elapsed time.Duration) {
	m.exchanges.WithLabelValues(command, status.String()).Inc()
	m.exchangeTime.WithLabelValues(command).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSession(state string, elapsed time.Duration) {
	m.sessions.WithLabelValues(state).Inc()
	m.sessionTime.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTemperature(celsius float64) {
	m.temperature.Set(celsius)
	m.readings.Inc()
}

func (m *Metrics) ObserveNotification(fault string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.notifications.WithLabelValues(fault, result).Inc()
}

func (m *Metrics) ObserveRequest(kind string) {
	m.requests.WithLabelValues(kind).Inc()
}

// Reconnected counts a serial reconnect.
func (m *Metrics) Reconnected() {
	m.reconnects.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
