package reporting

import (
	"fmt"
	"strconv"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// DefaultTitle is the heading drawn above the summary table.
const DefaultTitle = "Test Automation EPIC Summary"

// TotalLabel labels the footer row of column sums.
const TotalLabel = "TOTAL"

// NoEpicLabel is shown in place of an empty Epic value.
const NoEpicLabel = "(no Epic)"

// EpicLabel returns the display text of an Epic key.
func EpicLabel(epic string) string {
	if epic == "" {
		return NoEpicLabel
	}
	return epic
}

// TableColumns are the summary table headings, in display order.
var TableColumns = []string{"Epic", "Total Tests", "Passed", "Failed", "Broken", "Skipped", "Pass Rate", "Status"}

// Fixed fills for every column except Status, whose fill depends on the row.
var columnFills = []NamedColor{
	White,
	White,
	CountFill(types.ColumnPassed),
	CountFill(types.ColumnFailed),
	CountFill(types.ColumnBroken),
	CountFill(types.ColumnSkipped),
	White,
}

// Cell is one rendered table cell.
type Cell struct {
	Text string
	Fill NamedColor
}

// SummaryTable is the styled table of Epic summaries, ready to be exported.
type SummaryTable struct {
	Title  string
	Header []Cell
	Rows   [][]Cell // one per Epic, in summary order
	Footer []Cell   // column totals
}

// TableOption configures NewSummaryTable.
type TableOption func(*SummaryTable)

// WithTitle overrides DefaultTitle.
func WithTitle(title string) TableOption {
	return func(t *SummaryTable) {
		if title != "" {
			t.Title = title
		}
	}
}

// NewSummaryTable builds the table model for summary. It never fails and
// does not modify summary.
func NewSummaryTable(summary *types.Summary, opts ...TableOption) *SummaryTable {
	t := &SummaryTable{
		Title:  DefaultTitle,
		Header: make([]Cell, len(TableColumns)),
		Rows:   make([][]Cell, 0, len(summary.Epics)),
	}
	for _, opt := range opts {
		opt(t)
	}

	for i, name := range TableColumns {
		t.Header[i] = Cell{Text: name, Fill: PaleTurquoise}
	}

	for _, epic := range summary.Epics {
		row := countCells(EpicLabel(epic.Epic), epic.TotalTests, epic.Counts)
		row = append(row,
			Cell{Text: FormatPassRate(epic.PassRate), Fill: columnFills[6]},
			Cell{Text: epic.Status.String(), Fill: StatusFill(epic.Status)},
		)
		t.Rows = append(t.Rows, row)
	}

	t.Footer = countCells(TotalLabel, summary.Totals.Total(), summary.Totals)
	t.Footer = append(t.Footer,
		Cell{Fill: White},
		Cell{Fill: White},
	)
	return t
}

func countCells(label string, total int, c types.Counts) []Cell {
	values := []string{
		label,
		strconv.Itoa(total),
		strconv.Itoa(c.Passed),
		strconv.Itoa(c.Failed),
		strconv.Itoa(c.Broken),
		strconv.Itoa(c.Skipped),
	}
	cells := make([]Cell, len(values), len(TableColumns))
	for i, v := range values {
		cells[i] = Cell{Text: v, Fill: columnFills[i]}
	}
	return cells
}

// FormatPassRate renders a pass rate as a percentage with two decimals.
func FormatPassRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

// AllRows returns header, body and footer rows in drawing order.
func (t *SummaryTable) AllRows() [][]Cell {
	rows := make([][]Cell, 0, len(t.Rows)+2)
	rows = append(rows, t.Header)
	rows = append(rows, t.Rows...)
	rows = append(rows, t.Footer)
	return rows
}
