// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daylio",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "daylio",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	entriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "daylio",
			Name:      "entries_created_total",
			Help:      "Entries written through the create endpoint.",
		},
	)

	backupImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daylio",
			Name:      "backup_imports_total",
			Help:      "Backup imports by outcome.",
		},
		[]string{"result"},
	)
)

// ObserveRequest records one finished HTTP request. route is the matched
// template, or "unmatched".
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func EntryCreated() { entriesCreatedTotal.Inc() }

// BackupImported counts an import attempt; ok reports whether it committed.
func BackupImported(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	backupImportsTotal.WithLabelValues(result).Inc()
}
