package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Каждый экземпляр регистрирует метрики в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	selectionRejected    *prometheus.CounterVec
	conflictsDetected    *prometheus.CounterVec
	reservationsCreated  *prometheus.CounterVec
	persistenceFailures  *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	cacheLookups         *prometheus.CounterVec
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		selectionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "selection_rejected_total",
			Help:      "Selections rejected by the constraint validator",
		}, []string{"domain", "rule"}),
		conflictsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "conflicts_detected_total",
			Help:      "Booking candidates reported as conflicting",
		}, []string{"domain"}),
		reservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_created_total",
			Help:      "Reservations persisted in the remote store",
		}, []string{"domain"}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "persistence_failures_total",
			Help:      "Failed reservation create calls",
		}, []string{"domain"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notification_failures_total",
			Help:      "Confirmation notifications that failed (best effort)",
		}, []string{"domain"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservation_cache_lookups_total",
			Help:      "Reservation cache lookups by result",
		}, []string{"domain", "result"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.selectionRejected,
		m.conflictsDetected,
		m.reservationsCreated,
		m.persistenceFailures,
		m.notificationFailures,
		m.cacheLookups,
	)

	return m
}

// Handler HTTP обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry реестр (нужен тестам для сбора значений)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) SelectionRejected(domain, rule string) {
	m.selectionRejected.WithLabelValues(domain, rule).Inc()
}

func (m *Metrics) ConflictsDetected(domain string, count int) {
	m.conflictsDetected.WithLabelValues(domain).Add(float64(count))
}

func (m *Metrics) ReservationCreated(domain string) {
	m.reservationsCreated.WithLabelValues(domain).Inc()
}

func (m *Metrics) PersistenceFailed(domain string) {
	m.persistenceFailures.WithLabelValues(domain).Inc()
}

func (m *Metrics) NotificationFailed(domain string) {
	m.notificationFailures.WithLabelValues(domain).Inc()
}

func (m *Metrics) CacheHit(domain string) {
	m.cacheLookups.WithLabelValues(domain, "hit").Inc()
}

func (m *Metrics) CacheMiss(domain string) {
	m.cacheLookups.WithLabelValues(domain, "miss").Inc()
}
