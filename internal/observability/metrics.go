// Package observability provides metrics and tracing.
package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FormSubmissions counts HTML form submissions by form and outcome.
	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogly_form_submissions_total",
		Help: "Total number of HTML form submissions by form and outcome",
	}, []string{"form", "outcome"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogly_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheLookups counts cache-aside lookups by key family and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogly_cache_lookups_total",
		Help: "Total number of cache lookups by key family and result",
	}, []string{"family", "result"})

	// DatabaseQueryLatency records database query latency by SQL verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogly_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// Outcome labels for FormSubmissions.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordForm increments the submission counter for the form and outcome.
func RecordForm(form, outcome string) {
	FormSubmissions.WithLabelValues(form, outcome).Inc()
}

// RecordCacheLookup increments the lookup counter for a cache key such as "user:12".
func RecordCacheLookup(key string, hit bool) {
	family := key
	if i := strings.IndexByte(key, ':'); i > 0 {
		family = key[:i]
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(family, result).Inc()
}

// ObserveQuery records the latency of a SQL statement, labelled by its leading verb.
func ObserveQuery(sql string, elapsed time.Duration) {
	DatabaseQueryLatency.WithLabelValues(sqlOperation(sql)).Observe(elapsed.Seconds())
}

func sqlOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "begin", "commit", "rollback", "create", "alter", "drop":
		return op
	default:
		return "other"
	}
}
