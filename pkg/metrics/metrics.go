package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	cacheRequestsTotal *prometheus.CounterVec

	durationDefaultedTotal *prometheus.CounterVec
	slotsGeneratedTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "success"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		cacheRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_requests_total",
			Help:        "Availability cache lookups by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		durationDefaultedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_duration_defaulted_total",
			Help:        "Appointments whose service duration was missing and replaced by the default",
			ConstLabels: constLabels,
		}, []string{"tenant_id"}),

		slotsGeneratedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slots_generated_total",
			Help:        "Slots returned by availability computations",
			ConstLabels: constLabels,
		}, []string{"tenant_id"}),
	}
}

// ObserveHTTPRequest фиксирует выполненный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	m.dbQueriesTotal.WithLabelValues(operation, strconv.FormatBool(err == nil)).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats публикует состояние connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
}

// IncCacheHit фиксирует попадание в кеш доступности
func (m *Metrics) IncCacheHit() {
	m.cacheRequestsTotal.WithLabelValues("hit").Inc()
}

// IncCacheMiss фиксирует промах кеша доступности
func (m *Metrics) IncCacheMiss() {
	m.cacheRequestsTotal.WithLabelValues("miss").Inc()
}

// IncDurationDefaulted фиксирует подстановку дефолтной длительности услуги
// Используется для наблюдаемости проблем качества данных (NULL duration в каталоге)
func (m *Metrics) IncDurationDefaulted(tenantID string) {
	m.durationDefaultedTotal.WithLabelValues(tenantID).Inc()
}

// AddSlotsGenerated фиксирует количество слотов, возвращенных расчетом
func (m *Metrics) AddSlotsGenerated(tenantID string, count int) {
	m.slotsGeneratedTotal.WithLabelValues(tenantID).Add(float64(count))
}
