package reporting

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// Artifact names used in export errors and logs.
const (
	ArtifactTable    = "summary table"
	ArtifactPie      = "status pie"
	ArtifactBars     = "volume bars"
	ArtifactWorkbook = "summary workbook"
)

// Format selects the encoding of an exported chart.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks SVG for ".svg" files and PNG for everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

func (f Format) renderer() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// writeFile creates path, hands a buffered writer to write and closes the
// file on every path. A partially written file is removed on failure.
func writeFile(artifact, path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return types.NewExportError(artifact, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = types.NewExportError(artifact, path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return types.NewExportError(artifact, path, err)
	}
	if err := bw.Flush(); err != nil {
		return types.NewExportError(artifact, path, err)
	}
	return nil
}
