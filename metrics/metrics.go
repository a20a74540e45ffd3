package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

const (
	MetricsNamespace = "epic_report"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)
	statuses             = []types.Status{types.StatusExcellent, types.StatusNeedsAttention, types.StatusCritical}

	// Registry holds every epic-report metric. It is kept apart from the
	// default registry so a textfile dump contains only report data.
	Registry = prometheus.NewRegistry()
	factory  = promauto.With(Registry)

	errorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	epicTests = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "tests",
		Help:      "Number of test cases per Epic and result",
	}, []string{
		"epic",
		"result",
	})

	epicPassRate = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "pass_rate",
		Help:      "Pass rate of an Epic in percent",
	}, []string{
		"epic",
	})

	epicStatus = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "status",
		Help:      "Health status of an Epic (1 for the current status, 0 otherwise)",
	}, []string{
		"epic",
		"status",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	log.Debug("metric inc",
		"m", "errors_total",
		"error", error,
	)
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordSummary replaces the per-Epic gauges with the values of summary.
func RecordSummary(summary *types.Summary) {
	epicTests.Reset()
	epicPassRate.Reset()
	epicStatus.Reset()

	for _, e := range summary.Epics {
		log.Debug("metric set",
			"m", "tests",
			"epic", e.Epic,
			"total", e.TotalTests,
			"pass_rate", e.PassRate,
			"status", e.Status)
		epicTests.WithLabelValues(e.Epic, types.ColumnPassed).Set(float64(e.Counts.Passed))
		epicTests.WithLabelValues(e.Epic, types.ColumnFailed).Set(float64(e.Counts.Failed))
		epicTests.WithLabelValues(e.Epic, types.ColumnBroken).Set(float64(e.Counts.Broken))
		epicTests.WithLabelValues(e.Epic, types.ColumnSkipped).Set(float64(e.Counts.Skipped))
		epicTests.WithLabelValues(e.Epic, types.ColumnUnknown).Set(float64(e.Counts.Unknown))
		epicPassRate.WithLabelValues(e.Epic).Set(e.PassRate)
		for _, s := range statuses {
			v := 0.0
			if s == e.Status {
				v = 1
			}
			epicStatus.WithLabelValues(e.Epic, s.String()).Set(v)
		}
	}
}

// WriteTextfile writes every registered metric to path in the text
// exposition format read by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
