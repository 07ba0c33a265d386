// Package telemetry holds the Prometheus collectors shared by the pipeline stages.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for one process.
type Metrics struct {
	PipelineRunsTotal *prometheus.CounterVec
	PipelineRecords   prometheus.Histogram

	PagesReadTotal *prometheus.CounterVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec

	ExportsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors once per process; later
// calls return the same instance.
//
// Metrics:
//   - docfacts_pipeline_runs_total{strategy,outcome}
//   - docfacts_pipeline_records
//   - docfacts_pdf_pages_read_total{method}
//   - docfacts_llm_requests_total{provider,outcome}
//   - docfacts_llm_request_duration_seconds{provider}
//   - docfacts_export_total{destination,outcome}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			PipelineRunsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "docfacts_pipeline_runs_total",
					Help: "Total number of document pipeline runs",
				},
				[]string{"strategy", "outcome"},
			),
			PipelineRecords: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "docfacts_pipeline_records",
					Help:    "Number of records produced per pipeline run",
					Buckets: []float64{0, 1, 5, 10, 20, 40, 80},
				},
			),
			PagesReadTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "docfacts_pdf_pages_read_total",
					Help: "Total number of PDF pages read",
				},
				[]string{"method"}, // "native" or "pdftotext"
			),
			LLMRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "docfacts_llm_requests_total",
					Help: "Total number of model extraction requests",
				},
				[]string{"provider", "outcome"},
			),
			LLMRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "docfacts_llm_request_duration_seconds",
					Help:    "Duration of model extraction requests in seconds",
					Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
				},
				[]string{"provider"},
			),
			ExportsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "docfacts_export_total",
					Help: "Total number of spreadsheet exports",
				},
				[]string{"destination", "outcome"}, // "file" or "buffer"
			),
		}
	})
	return globalMetrics
}

// ObserveLLM records one model request.
func (m *Metrics) ObserveLLM(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, outcome).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObservePages records pages read by a PDF reader.
func (m *Metrics) ObservePages(method string, pages int) {
	if m == nil || pages <= 0 {
		return
	}
	m.PagesReadTotal.WithLabelValues(method).Add(float64(pages))
}

// ObserveRun records the outcome of one pipeline run.
func (m *Metrics) ObserveRun(strategy, outcome string, records int) {
	if m == nil {
		return
	}
	m.PipelineRunsTotal.WithLabelValues(strategy, outcome).Inc()
	m.PipelineRecords.Observe(float64(records))
}

// ObserveExport records one export attempt.
func (m *Metrics) ObserveExport(destination, outcome string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(destination, outcome).Inc()
}
