package types

// Required CSV column names.
const (
	ColumnEpic    = "Epic"
	ColumnPassed  = "PASSED"
	ColumnFailed  = "FAILED"
	ColumnBroken  = "BROKEN"
	ColumnSkipped = "SKIPPED"
	ColumnUnknown = "UNKNOWN"

	// Optional Allure label columns.
	ColumnFeature = "Feature"
	ColumnStory   = "Story"
)

// CountColumns lists the count columns in the order they are summed and reported.
var CountColumns = []string{ColumnPassed, ColumnFailed, ColumnBroken, ColumnSkipped, ColumnUnknown}

// RequiredColumns lists every column the loader insists on.
var RequiredColumns = append([]string{ColumnEpic}, CountColumns...)

// Counts holds the five result counters of a record or a group of records.
type Counts struct {
	Passed  int
	Failed  int
	Broken  int
	Skipped int
	Unknown int
}

// Total returns the sum of all five counters.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Broken + c.Skipped + c.Unknown
}

// Add returns the field-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Passed:  c.Passed + o.Passed,
		Failed:  c.Failed + o.Failed,
		Broken:  c.Broken + o.Broken,
		Skipped: c.Skipped + o.Skipped,
		Unknown: c.Unknown + o.Unknown,
	}
}

// Set assigns the counter named by one of the CountColumns.
// It returns false when column is not a count column.
func (c *Counts) Set(column string, v int) bool {
	switch column {
	case ColumnPassed:
		c.Passed = v
	case ColumnFailed:
		c.Failed = v
	case ColumnBroken:
		c.Broken = v
	case ColumnSkipped:
		c.Skipped = v
	case ColumnUnknown:
		c.Unknown = v
	default:
		return false
	}
	return true
}

// Record is one decoded CSV row.
type Record struct {
	Epic    string
	Feature string // empty when the column is absent
	Story   string // empty when the column is absent
	Counts  Counts
}

// Table is the loaded CSV, header names and row order preserved.
type Table struct {
	Path    string
	Columns []string
	Rows    [][]string
	Records []Record
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
