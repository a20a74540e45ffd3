package epicreport

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/epic-report/reporting"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

// SummaryFormatter is responsible for formatting and displaying a summary.
type SummaryFormatter interface {
	FormatSummary(runID string, summary *types.Summary) error
}

// ConsoleSummaryFormatter implements the SummaryFormatter interface.
type ConsoleSummaryFormatter struct {
	logger log.Logger
	out    io.Writer
}

// NewConsoleSummaryFormatter creates a new ConsoleSummaryFormatter writing to stdout.
func NewConsoleSummaryFormatter(logger log.Logger) *ConsoleSummaryFormatter {
	return &ConsoleSummaryFormatter{
		logger: logger,
		out:    os.Stdout,
	}
}

// FormatSummary renders the per-Epic summary as a console table.
func (f *ConsoleSummaryFormatter) FormatSummary(runID string, summary *types.Summary) error {
	f.logger.Info("Printing summary...", "epics", len(summary.Epics))
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle(fmt.Sprintf("EPIC Summary (%s)", runID))

	t.AppendHeader(table.Row{
		"Epic", "Total", "Passed", "Failed", "Broken", "Skipped", "Unknown", "Pass Rate", "Status",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Epic", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Total", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Broken", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Unknown", Align: text.AlignRight},
		{Name: "Pass Rate", Align: text.AlignRight},
	})

	for _, e := range summary.Epics {
		t.AppendRow(table.Row{
			reporting.EpicLabel(e.Epic),
			e.TotalTests,
			e.Counts.Passed,
			e.Counts.Failed,
			e.Counts.Broken,
			e.Counts.Skipped,
			e.Counts.Unknown,
			reporting.FormatPassRate(e.PassRate),
			getStatusString(e.Status),
		})
	}

	// Update the table style setting based on the worst Epic
	switch summary.WorstStatus() {
	case types.StatusExcellent:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.StatusNeedsAttention:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	totals := summary.Totals
	t.AppendFooter(table.Row{
		reporting.TotalLabel,
		summary.TotalTests(),
		totals.Passed,
		totals.Failed,
		totals.Broken,
		totals.Skipped,
		totals.Unknown,
		"",
		"",
	})

	t.Render()

	counts := summary.CountByStatus()
	_, err := fmt.Fprintf(f.out, "%d Excellent, %d Needs Attention, %d Critical\n",
		counts[types.StatusExcellent], counts[types.StatusNeedsAttention], counts[types.StatusCritical])
	return err
}
