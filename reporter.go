package epicreport

import (
	"github.com/ethereum-optimism/infra/epic-report/metrics"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

// MetricsReporter is responsible for reporting metrics from a summary.
type MetricsReporter interface {
	ReportSummary(runID string, summary *types.Summary)
	ReportError(stage string, err error)
	Flush(path string) error
}

// DefaultMetricsReporter implements the MetricsReporter interface.
type DefaultMetricsReporter struct{}

// NewDefaultMetricsReporter creates a new DefaultMetricsReporter.
func NewDefaultMetricsReporter() *DefaultMetricsReporter {
	return &DefaultMetricsReporter{}
}

// ReportSummary publishes the per-Epic gauges.
func (r *DefaultMetricsReporter) ReportSummary(runID string, summary *types.Summary) {
	metrics.RecordSummary(summary)
}

// ReportError counts a failed pipeline stage.
func (r *DefaultMetricsReporter) ReportError(stage string, err error) {
	metrics.RecordErrorDetails(stage, err)
}

// Flush writes the metrics textfile to path. An empty path is a no-op.
func (r *DefaultMetricsReporter) Flush(path string) error {
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}
