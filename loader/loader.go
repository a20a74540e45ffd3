// Package loader reads per-test-case automation results from CSV exports.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

const utf8BOM = "\ufeff"

// Load reads the CSV file at path into a Table.
// Every failure is returned as a *types.DataLoadError.
func Load(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewDataLoadError(path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// Parse reads CSV content from r into a Table.
func Parse(r io.Reader) (*types.Table, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*types.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.NewDataLoadError(path, errors.New("missing header row"))
	}
	if err != nil {
		return nil, csvError(path, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.TrimSpace(name)
	}

	tbl := &types.Table{
		Path:    path,
		Columns: columns,
	}

	idx, err := resolveColumns(tbl)
	if err != nil {
		return nil, err
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := cr.FieldPos(0)

		rec, loadErr := idx.decode(row)
		if loadErr != nil {
			loadErr.Path = path
			loadErr.Line = line
			return nil, loadErr
		}
		tbl.Rows = append(tbl.Rows, row)
		tbl.Records = append(tbl.Records, rec)
	}

	return tbl, nil
}

// columnIndex records where each column of interest sits in a row.
type columnIndex struct {
	epic    int
	feature int // -1 when absent
	story   int // -1 when absent
	counts  map[string]int
}

func resolveColumns(tbl *types.Table) (*columnIndex, error) {
	var missing []string
	for _, name := range types.RequiredColumns {
		if tbl.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &types.DataLoadError{
			Path: tbl.Path,
			Line: 1,
			Err:  fmt.Errorf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	idx := &columnIndex{
		epic:    tbl.ColumnIndex(types.ColumnEpic),
		feature: tbl.ColumnIndex(types.ColumnFeature),
		story:   tbl.ColumnIndex(types.ColumnStory),
		counts:  make(map[string]int, len(types.CountColumns)),
	}
	for _, name := range types.CountColumns {
		idx.counts[name] = tbl.ColumnIndex(name)
	}
	return idx, nil
}

func (idx *columnIndex) decode(row []string) (types.Record, *types.DataLoadError) {
	rec := types.Record{Epic: row[idx.epic]}
	if idx.feature >= 0 {
		rec.Feature = strings.TrimSpace(row[idx.feature])
	}
	if idx.story >= 0 {
		rec.Story = strings.TrimSpace(row[idx.story])
	}

	for _, name := range types.CountColumns {
		v, err := parseCount(row[idx.counts[name]])
		if err != nil {
			return types.Record{}, &types.DataLoadError{Column: name, Err: err}
		}
		rec.Counts.Set(name, v)
	}
	return rec, nil
}

func parseCount(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", cell)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %d", v)
	}
	return v, nil
}

func csvError(path string, err error) error {
	loadErr := types.NewDataLoadError(path, err)
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		loadErr.Line = parseErr.Line
	}
	return loadErr
}
