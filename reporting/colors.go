package reporting

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// NamedColor is a fill colour with its CSS name, so tests and logs can refer to it by name.
type NamedColor struct {
	Name  string
	Value color.RGBA
}

// Drawing converts the colour for go-chart.
func (c NamedColor) Drawing() drawing.Color {
	return drawing.Color{R: c.Value.R, G: c.Value.G, B: c.Value.B, A: c.Value.A}
}

func rgb(name string, r, g, b uint8) NamedColor {
	return NamedColor{Name: name, Value: color.RGBA{R: r, G: g, B: b, A: 0xff}}
}

var (
	White         = rgb("white", 0xff, 0xff, 0xff)
	PaleTurquoise = rgb("paleturquoise", 0xaf, 0xee, 0xee)
	LightGreen    = rgb("lightgreen", 0x90, 0xee, 0x90)
	LightCoral    = rgb("lightcoral", 0xf0, 0x80, 0x80)
	LightSalmon   = rgb("lightsalmon", 0xff, 0xa0, 0x7a)
	LightBlue     = rgb("lightblue", 0xad, 0xd8, 0xe6)
	LightGray     = rgb("lightgray", 0xd3, 0xd3, 0xd3)
	Yellow        = rgb("yellow", 0xff, 0xff, 0x00)
	Tomato        = rgb("tomato", 0xff, 0x63, 0x47)
	Gray          = rgb("gray", 0x80, 0x80, 0x80)
	Black         = rgb("black", 0x00, 0x00, 0x00)
)

// Status cell fills.
var (
	StatusGreen  = LightGreen
	StatusYellow = Yellow
	StatusRed    = Tomato
)

// StatusFill returns the status cell colour. Anything that is not Excellent
// or Needs Attention, Critical included, is red.
func StatusFill(status types.Status) NamedColor {
	if status == types.StatusExcellent {
		return StatusGreen
	} else if status == types.StatusNeedsAttention {
		return StatusYellow
	}
	return StatusRed
}

// Fills for the result count columns, shared by the table and the pie chart.
var countFills = map[string]NamedColor{
	types.ColumnPassed:  LightGreen,
	types.ColumnFailed:  LightCoral,
	types.ColumnBroken:  LightSalmon,
	types.ColumnSkipped: LightBlue,
	types.ColumnUnknown: LightGray,
}

// CountFill returns the fixed colour of a count column.
func CountFill(column string) NamedColor {
	if c, ok := countFills[column]; ok {
		return c
	}
	return White
}
