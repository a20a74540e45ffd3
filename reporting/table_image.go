package reporting

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// Table image geometry, in pixels.
const (
	imageMargin   = 16
	titleHeight   = 32
	rowHeight     = 24
	cellPaddingX  = 10
	minColumnWide = 64
	tableFontSize = 11
)

// newTableFace returns the Roboto face embedded in go-chart at table size.
// The Latin-1 bitmap face is the fallback when that font cannot be parsed.
func newTableFace() font.Face {
	ttf, err := chart.GetDefaultFont()
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    tableFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Image draws the table onto a new RGBA canvas sized to fit its content.
func (t *SummaryTable) Image() *image.RGBA {
	face := newTableFace()
	defer face.Close()

	rows := t.AllRows()
	widths := t.columnWidths(face, rows)

	width := 2 * imageMargin
	for _, w := range widths {
		width += w
	}
	width = max(width, textWidth(face, t.Title)+2*imageMargin)
	height := 2*imageMargin + titleHeight + len(rows)*rowHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(White.Value), image.Point{}, draw.Src)

	// Title, centred and emboldened
	titleX := (width - textWidth(face, t.Title)) / 2
	drawText(img, face, t.Title, titleX, imageMargin+titleHeight/2+5, true)

	y := imageMargin + titleHeight
	for r, row := range rows {
		bold := r == 0 || r == len(rows)-1
		x := imageMargin
		for c, cell := range row {
			rect := image.Rect(x, y, x+widths[c], y+rowHeight)
			draw.Draw(img, rect, image.NewUniform(cell.Fill.Value), image.Point{}, draw.Src)
			strokeRect(img, rect, Gray.Value)

			tx := x + (widths[c]-textWidth(face, cell.Text))/2
			if c == 0 && r > 0 {
				tx = x + cellPaddingX
			}
			drawText(img, face, cell.Text, tx, y+rowHeight/2+4, bold)
			x += widths[c]
		}
		y += rowHeight
	}
	return img
}

// WritePNG encodes the table image as PNG. Failures are *types.ExportError.
func (t *SummaryTable) WritePNG(w io.Writer) error {
	if err := png.Encode(w, t.Image()); err != nil {
		return types.NewExportError(ArtifactTable, "", err)
	}
	return nil
}

// SaveTablePNG writes the table image to path.
func SaveTablePNG(t *SummaryTable, path string) error {
	return writeFile(ArtifactTable, path, func(w io.Writer) error {
		return png.Encode(w, t.Image())
	})
}

func (t *SummaryTable) columnWidths(face font.Face, rows [][]Cell) []int {
	widths := make([]int, len(TableColumns))
	for _, row := range rows {
		for c, cell := range row {
			if w := textWidth(face, cell.Text) + 2*cellPaddingX; w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c := range widths {
		widths[c] = max(widths[c], minColumnWide)
	}
	return widths
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText draws s with its baseline at y. Bold text is drawn twice, one pixel apart.
func drawText(img draw.Image, face font.Face, s string, x, y int, bold bool) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Black.Value),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
	if bold {
		d.Dot = fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y)}
		d.DrawString(s)
	}
}

func strokeRect(img draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}
