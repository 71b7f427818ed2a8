// Package metrics exposes the Prometheus collectors of the petty-cash
// reporting service. Every recorder is a no-op until Init has run, so code
// paths exercised in tests never touch the default registry.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "petty_cash_"

	ResultSuccess = "success"
	ResultError   = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	registerOnce sync.Once

	reportGenerateTotal   *prometheus.CounterVec
	reportGenerateLatency *prometheus.HistogramVec
	reportExportTotal     *prometheus.CounterVec
	reportExportLatency   *prometheus.HistogramVec
	ledgerEntries         prometheus.Histogram
	assemblyWarnings      *prometheus.CounterVec
	filterOptionsCache    *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestLatency    *prometheus.HistogramVec
)

// Init registers the collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		reportGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total transaction report builds by result",
			},
			[]string{"result"},
		)
		reportGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Transaction report build latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		ledgerEntries = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_entries",
				Help:    "Number of entries in each reconstructed ledger",
				Buckets: prometheus.ExponentialBuckets(10, 4, 7),
			},
		)
		assemblyWarnings = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_assembly_warnings_total",
				Help: "Total ledger assembly warnings by kind",
			},
			[]string{"kind"},
		)
		filterOptionsCache = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "filter_options_cache_total",
				Help: "Filter options cache lookups by outcome",
			},
			[]string{"outcome"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total API requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		)
		httpRequestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		)

		prometheus.MustRegister(
			reportGenerateTotal,
			reportGenerateLatency,
			reportExportTotal,
			reportExportLatency,
			ledgerEntries,
			assemblyWarnings,
			filterOptionsCache,
			httpRequestsTotal,
			httpRequestLatency,
		)
	})
}

// ObserveReportGenerate records report build latency and result.
func ObserveReportGenerate(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if reportGenerateTotal != nil {
		reportGenerateTotal.WithLabelValues(result).Inc()
	}
	if reportGenerateLatency != nil {
		reportGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveLedgerSize records the size of a reconstructed ledger.
func ObserveLedgerSize(entries int) {
	if ledgerEntries != nil {
		ledgerEntries.Observe(float64(entries))
	}
}

// IncAssemblyWarning counts one assembly warning.
func IncAssemblyWarning(kind string) {
	if assemblyWarnings != nil {
		assemblyWarnings.WithLabelValues(kind).Inc()
	}
}

// IncFilterOptionsCache counts one cache lookup.
func IncFilterOptionsCache(outcome string) {
	if filterOptionsCache != nil {
		filterOptionsCache.WithLabelValues(outcome).Inc()
	}
}

// ObserveHTTPRequest records one API request.
func ObserveHTTPRequest(route, method, status string, duration time.Duration) {
	if httpRequestsTotal != nil {
		httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	}
	if httpRequestLatency != nil {
		httpRequestLatency.WithLabelValues(route, method).Observe(duration.Seconds())
	}
}
