// Package metrics exposes the Prometheus instruments shared by the HTTP
// handlers. They register themselves on the default registry, which the
// router serves at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimeEntriesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice",
		Name:      "time_entries_created_total",
		Help:      "Time entries created, partitioned by billable flag.",
	}, []string{"billable"})

	InvoicesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "practice",
		Name:      "invoices_issued_total",
		Help:      "Invoices created through the billing transaction.",
	})

	PDFRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice",
		Name:      "pdf_renders_total",
		Help:      "PDF documents rendered, partitioned by kind.",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "practice",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, path, and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
