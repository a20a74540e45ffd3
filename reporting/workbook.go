package reporting

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// WorkbookSheet is the name of the single sheet in the summary workbook.
const WorkbookSheet = "EPIC Summary"

// WorkbookColumns are the workbook headings. They keep the raw column names
// so downstream dashboards can bind to them.
var WorkbookColumns = []string{"Epic", "PASSED", "FAILED", "BROKEN", "SKIPPED", "UNKNOWN", "totalTests", "passRate", "status"}

// datedLayout is the ddmmyy suffix of dated workbook names.
const datedLayout = "020106"

// DatedWorkbookPath inserts the ddmmyy date of t before the extension of
// path, e.g. "out/epic_summary.xlsx" becomes "out/epic_summary_161026.xlsx".
func DatedWorkbookPath(path string, t time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + t.Format(datedLayout) + ext
}

// NewWorkbook builds an in-memory workbook of summary with a TOTAL row.
// The caller must Close the returned file.
func NewWorkbook(summary *types.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), WorkbookSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(WorkbookColumns))
	for i, name := range WorkbookColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(WorkbookSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(WorkbookColumns), 1)
	if err := f.SetCellStyle(WorkbookSheet, "A1", lastHeader, style); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	rowNum := 2
	for _, e := range summary.Epics {
		row := []interface{}{
			EpicLabel(e.Epic),
			e.Counts.Passed,
			e.Counts.Failed,
			e.Counts.Broken,
			e.Counts.Skipped,
			e.Counts.Unknown,
			e.TotalTests,
			e.PassRate,
			e.Status.String(),
		}
		if err := setRow(f, rowNum, row); err != nil {
			f.Close()
			return nil, err
		}
		rowNum++
	}

	t := summary.Totals
	totals := []interface{}{TotalLabel, t.Passed, t.Failed, t.Broken, t.Skipped, t.Unknown, t.Total(), "", ""}
	if err := setRow(f, rowNum, totals); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func setRow(f *excelize.File, rowNum int, row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// SaveWorkbook writes the summary workbook to path.
func SaveWorkbook(summary *types.Summary, path string) error {
	return SaveWorkbookCopies(summary, path)
}

// SaveWorkbookCopies writes one workbook to each of paths, e.g. a dated
// report and a stable-name copy read by a dashboard.
func SaveWorkbookCopies(summary *types.Summary, paths ...string) error {
	f, err := NewWorkbook(summary)
	if err != nil {
		return types.NewExportError(ArtifactWorkbook, "", err)
	}
	defer f.Close()

	for _, path := range paths {
		err := writeFile(ArtifactWorkbook, path, func(w io.Writer) error {
			_, err := f.WriteTo(w)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
