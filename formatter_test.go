package epicreport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/epic-report/aggregate"
	"github.com/ethereum-optimism/infra/epic-report/reporting"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

func createSampleSummary() *types.Summary {
	return aggregate.Aggregate([]types.Record{
		{Epic: "Payments", Counts: types.Counts{Passed: 96, Failed: 2, Broken: 1, Skipped: 1}},
		{Epic: "Onboarding", Counts: types.Counts{Passed: 85, Failed: 10, Skipped: 5}},
		{Epic: "Reporting", Counts: types.Counts{Passed: 70, Failed: 20, Skipped: 5, Unknown: 5}},
	})
}

// TestConsoleSummaryFormatter_FormatSummary tests the basic functionality of the formatter
func TestConsoleSummaryFormatter_FormatSummary(t *testing.T) {
	var buf bytes.Buffer
	formatter := &ConsoleSummaryFormatter{
		logger: log.NewLogger(log.DiscardHandler()),
		out:    &buf,
	}

	err := formatter.FormatSummary("run-1", createSampleSummary())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "EPIC Summary (run-1)")
	for _, want := range []string{"Payments", "Onboarding", "Reporting", "96.00%", "85.00%", "70.00%", "TOTAL", "300"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "1 Excellent, 1 Needs Attention, 1 Critical")
	assert.Less(t, strings.Index(out, "Onboarding"), strings.Index(out, "Payments"))
}

// TestConsoleSummaryFormatter_FormatSummary_Empty tests formatting an empty summary
func TestConsoleSummaryFormatter_FormatSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatter := &ConsoleSummaryFormatter{
		logger: log.NewLogger(log.DiscardHandler()),
		out:    &buf,
	}

	err := formatter.FormatSummary("empty-run", &types.Summary{})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "0 Excellent, 0 Needs Attention, 0 Critical")
}

func TestConsoleSummaryFormatter_FormatSummary_NoEpic(t *testing.T) {
	var buf bytes.Buffer
	formatter := &ConsoleSummaryFormatter{
		logger: log.NewLogger(log.DiscardHandler()),
		out:    &buf,
	}

	summary := aggregate.Aggregate([]types.Record{{Counts: types.Counts{Passed: 4}}})
	require.NoError(t, formatter.FormatSummary("run-2", summary))
	assert.Contains(t, buf.String(), reporting.NoEpicLabel)
}

func TestGetStatusString(t *testing.T) {
	assert.Equal(t, "✓ Excellent", getStatusString(types.StatusExcellent))
	assert.Equal(t, "! Needs Attention", getStatusString(types.StatusNeedsAttention))
	assert.Equal(t, "✗ Critical", getStatusString(types.StatusCritical))
}
