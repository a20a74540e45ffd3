package reporting

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// Chart geometry, in pixels.
const (
	pieSize        = 512
	barHeight      = 512
	barWidth       = 40
	barSpacing     = 24
	barChartMargin = 160
	minBarChart    = 640
	maxBarLabel    = 24
)

// Slice is one status slice of the pie chart.
type Slice struct {
	Label string
	Value int
	Color NamedColor
}

// StatusPie holds the result totals across every Epic.
type StatusPie struct {
	Title  string
	Slices []Slice
}

// NewStatusPie builds the pie of summary-wide totals. It never fails.
func NewStatusPie(summary *types.Summary) *StatusPie {
	totals := summary.Totals
	return &StatusPie{
		Title: "Test Results by Status",
		Slices: []Slice{
			{Label: "Passed", Value: totals.Passed, Color: CountFill(types.ColumnPassed)},
			{Label: "Failed", Value: totals.Failed, Color: CountFill(types.ColumnFailed)},
			{Label: "Broken", Value: totals.Broken, Color: CountFill(types.ColumnBroken)},
			{Label: "Skipped", Value: totals.Skipped, Color: CountFill(types.ColumnSkipped)},
			{Label: "Unknown", Value: totals.Unknown, Color: CountFill(types.ColumnUnknown)},
		},
	}
}

// Total returns the sum of all slices.
func (p *StatusPie) Total() int {
	var total int
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Chart converts the pie to a go-chart PieChart. Empty slices are left out.
func (p *StatusPie) Chart() chart.PieChart {
	values := make([]chart.Value, 0, len(p.Slices))
	for _, s := range p.Slices {
		if s.Value == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Value),
			Value: float64(s.Value),
			Style: chart.Style{
				FillColor:   s.Color.Drawing(),
				StrokeColor: White.Drawing(),
				FontColor:   Black.Drawing(),
			},
		})
	}
	return chart.PieChart{
		Title:  p.Title,
		Width:  pieSize,
		Height: pieSize,
		Values: values,
	}
}

// Render encodes the chart. Failures are *types.ExportError.
func (p *StatusPie) Render(w io.Writer, format Format) error {
	if err := p.render(w, format); err != nil {
		return types.NewExportError(ArtifactPie, "", err)
	}
	return nil
}

func (p *StatusPie) render(w io.Writer, format Format) error {
	if p.Total() == 0 {
		return errors.New("no test results to plot")
	}
	return p.Chart().Render(format.renderer(), w)
}

// SavePie writes the pie chart to path; the format follows the file extension.
func SavePie(p *StatusPie, path string) error {
	return writeFile(ArtifactPie, path, func(w io.Writer) error {
		return p.render(w, FormatFromPath(path))
	})
}

// Bar is one Epic's test volume.
type Bar struct {
	Epic       string
	TotalTests int
	Status     types.Status
}

// VolumeBars holds one bar per Epic, in summary order.
type VolumeBars struct {
	Title string
	Bars  []Bar
}

// NewVolumeBars builds the per-Epic volume chart. It never fails.
func NewVolumeBars(summary *types.Summary) *VolumeBars {
	bars := make([]Bar, 0, len(summary.Epics))
	for _, e := range summary.Epics {
		bars = append(bars, Bar{Epic: e.Epic, TotalTests: e.TotalTests, Status: e.Status})
	}
	return &VolumeBars{
		Title: "Test Volume by Epic",
		Bars:  bars,
	}
}

// Chart converts the bars to a go-chart BarChart, coloured by status.
func (v *VolumeBars) Chart() chart.BarChart {
	values := make([]chart.Value, 0, len(v.Bars))
	var tallest int
	for _, b := range v.Bars {
		tallest = max(tallest, b.TotalTests)
		fill := StatusFill(b.Status)
		values = append(values, chart.Value{
			Label: truncateLabel(EpicLabel(b.Epic), maxBarLabel),
			Value: float64(b.TotalTests),
			Style: chart.Style{
				FillColor:   fill.Drawing(),
				StrokeColor: Gray.Drawing(),
				StrokeWidth: 1,
			},
		})
	}
	return chart.BarChart{
		Title:      v.Title,
		Width:      max(minBarChart, barChartMargin+len(values)*(barWidth+barSpacing)),
		Height:     barHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 40},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		// pinned at zero so bar heights stay proportional to the totals
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(tallest)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		Bars: values,
	}
}

// Render encodes the chart. Failures are *types.ExportError.
func (v *VolumeBars) Render(w io.Writer, format Format) error {
	if err := v.render(w, format); err != nil {
		return types.NewExportError(ArtifactBars, "", err)
	}
	return nil
}

func (v *VolumeBars) render(w io.Writer, format Format) error {
	if len(v.Bars) == 0 {
		return errors.New("no epics to plot")
	}
	var total int
	for _, b := range v.Bars {
		total += b.TotalTests
	}
	if total == 0 {
		return errors.New("no test results to plot")
	}
	return v.Chart().Render(format.renderer(), w)
}

// SaveBars writes the bar chart to path; the format follows the file extension.
func SaveBars(v *VolumeBars, path string) error {
	return writeFile(ArtifactBars, path, func(w io.Writer) error {
		return v.render(w, FormatFromPath(path))
	})
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
