package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Движок агрегации
	LedgerComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_compute_duration_seconds",
			Help:    "Duration of ledger view computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	LedgerSnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_snapshot_stamps",
			Help: "Number of stamps in the last loaded snapshot",
		},
	)

	// Кэш сводки
	SummaryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_summary_cache_hits_total",
			Help: "Total number of ledger summary cache hits",
		},
	)

	SummaryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_summary_cache_misses_total",
			Help: "Total number of ledger summary cache misses",
		},
	)

	// Запись штампов
	StampWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_stamp_writes_total",
			Help: "Total number of stamp writes by action",
		},
		[]string{"action"},
	)

	// Геокодер
	GeocoderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_geocoder_requests_total",
			Help: "Total number of geocoder requests by outcome",
		},
		[]string{"operation", "outcome"},
	)

	GeocoderCircuitState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_geocoder_circuit_state",
			Help: "Geocoder circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Воркер
	StreamMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_stream_messages_total",
			Help: "Total number of stream messages handled by result",
		},
		[]string{"stream", "result"},
	)
)

// RecordAPIRequest записывает метрики HTTP запроса
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveCompute возвращает функцию, фиксирующую длительность расчёта представления
func ObserveCompute(view string) func() {
	start := time.Now()
	return func() {
		LedgerComputeDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	}
}

// RecordSummaryCache фиксирует попадание или промах кэша сводки
func RecordSummaryCache(hit bool) {
	if hit {
		SummaryCacheHits.Inc()
		return
	}
	SummaryCacheMisses.Inc()
}

func RecordStampWrite(action string) {
	StampWritesTotal.WithLabelValues(action).Inc()
}

func RecordGeocoderRequest(operation, outcome string) {
	GeocoderRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordStreamMessage(stream, result string) {
	StreamMessagesTotal.WithLabelValues(stream, result).Inc()
}
