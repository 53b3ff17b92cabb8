package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// в компоненты передается nil.
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	DBQueryDuration       *prometheus.HistogramVec
	DBOpenConnections     *prometheus.GaugeVec
	KVOperationDuration   *prometheus.HistogramVec
	BookingTransitions    *prometheus.CounterVec
	ConsistencyViolations *prometheus.CounterVec
}

// New регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует коллекторы в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "SQL query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "result"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		KVOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "kv_operation_duration_seconds",
			Help:        "Key/value store operation latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .025, .05, .1, .5},
		}, []string{"operation", "result"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking lifecycle transitions by trigger and result",
			ConstLabels: constLabels,
		}, []string{"trigger", "result"}),
		ConsistencyViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_consistency_violations_total",
			Help:        "Projection misses detected while fanning out a transition",
			ConstLabels: constLabels,
		}, []string{"projection"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.KVOperationDuration,
		m.BookingTransitions,
		m.ConsistencyViolations,
	)

	return m
}

func (m *Metrics) ObserveHTTP(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation, resultLabel(err)).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(state string, value float64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(state).Set(value)
}

func (m *Metrics) ObserveKV(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.KVOperationDuration.WithLabelValues(operation, resultLabel(err)).Observe(duration.Seconds())
}

func (m *Metrics) IncTransition(trigger string, err error) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(trigger, resultLabel(err)).Inc()
}

func (m *Metrics) IncConsistencyViolation(projection string) {
	if m == nil {
		return
	}
	m.ConsistencyViolations.WithLabelValues(projection).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
