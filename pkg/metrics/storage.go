package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"

	StatementDurationName = "storage_statement_duration_seconds"
	StatementsTotalName   = "storage_statements_total"
)

// StorageMetrics records statement counts and latency per table.
type StorageMetrics struct {
	duration   *prometheus.HistogramVec
	statements *prometheus.CounterVec
}

// NewStorageMetrics registers the storage metrics on the provided registerer.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    StatementDurationName,
		Help:    "Duration of storage statements in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"table", "operation"})
	statements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: StatementsTotalName,
		Help: "Storage statements executed, by outcome.",
	}, []string{"table", "operation", "result"})
	reg.MustRegister(duration, statements)
	return &StorageMetrics{
		duration:   duration,
		statements: statements,
	}
}

// ObserveStatement records one executed statement.
func (s *StorageMetrics) ObserveStatement(table, operation, result string, elapsed time.Duration) {
	if s == nil || s.statements == nil {
		return
	}
	table = normalizeLabel(table)
	operation = normalizeLabel(operation)
	s.statements.WithLabelValues(table, operation, normalizeLabel(result)).Inc()
	s.duration.WithLabelValues(table, operation).Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
