package aggregate

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/epic-report/loader"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

func rec(epic string, passed, failed, broken, skipped, unknown int) types.Record {
	return types.Record{
		Epic: epic,
		Counts: types.Counts{
			Passed:  passed,
			Failed:  failed,
			Broken:  broken,
			Skipped: skipped,
			Unknown: unknown,
		},
	}
}

func TestAggregateSingleEpic(t *testing.T) {
	summary := Aggregate([]types.Record{
		rec("A", 95, 5, 0, 0, 0),
		rec("A", 0, 0, 0, 0, 0),
	})

	require.Len(t, summary.Epics, 1)
	got := summary.Epics[0]
	assert.Equal(t, "A", got.Epic)
	assert.Equal(t, 95, got.Counts.Passed)
	assert.Equal(t, 5, got.Counts.Failed)
	assert.Equal(t, 100, got.TotalTests)
	assert.Equal(t, 95.0, got.PassRate)
	assert.Equal(t, types.StatusExcellent, got.Status)
}

func TestAggregateZeroTotal(t *testing.T) {
	summary := Aggregate([]types.Record{rec("Empty", 0, 0, 0, 0, 0)})

	require.Len(t, summary.Epics, 1)
	got := summary.Epics[0]
	assert.Equal(t, 0, got.TotalTests)
	assert.Equal(t, 0.0, got.PassRate)
	assert.False(t, math.IsNaN(got.PassRate))
	assert.Equal(t, types.StatusCritical, got.Status)
}

func TestAggregateTwoEpics(t *testing.T) {
	summary := Aggregate([]types.Record{
		rec("B", 70, 20, 5, 5, 0),
		rec("A", 96, 2, 1, 1, 0),
	})

	require.Len(t, summary.Epics, 2)
	assert.Equal(t, "A", summary.Epics[0].Epic)
	assert.Equal(t, 96.0, summary.Epics[0].PassRate)
	assert.Equal(t, types.StatusExcellent, summary.Epics[0].Status)
	assert.Equal(t, "B", summary.Epics[1].Epic)
	assert.Equal(t, 70.0, summary.Epics[1].PassRate)
	assert.Equal(t, types.StatusCritical, summary.Epics[1].Status)

	assert.Equal(t, types.Counts{Passed: 166, Failed: 22, Broken: 6, Skipped: 6}, summary.Totals)
	assert.Equal(t, 200, summary.TotalTests())
}

func TestAggregateInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	epics := []string{"A", "B", "C", "D", "E"}
	records := make([]types.Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, rec(epics[r.Intn(len(epics))], r.Intn(50), r.Intn(5), r.Intn(3), r.Intn(3), r.Intn(2)))
	}

	summary := Aggregate(records)
	var totals types.Counts
	for _, e := range summary.Epics {
		c := e.Counts
		assert.Equal(t, c.Passed+c.Failed+c.Broken+c.Skipped+c.Unknown, e.TotalTests, e.Epic)
		if e.TotalTests > 0 {
			assert.GreaterOrEqual(t, e.PassRate, 0.0)
			assert.LessOrEqual(t, e.PassRate, 100.0)
			want := math.Round(100*float64(c.Passed)/float64(e.TotalTests)*100) / 100
			assert.InDelta(t, want, e.PassRate, 1e-9, e.Epic)
		}
		assert.Equal(t, types.ClassifyPassRate(e.PassRate), e.Status)
		totals = totals.Add(c)
	}
	assert.Equal(t, totals, summary.Totals)
}

func TestAggregateOrderIndependent(t *testing.T) {
	records := []types.Record{
		rec("Payments", 10, 1, 0, 0, 0),
		rec("Search", 3, 3, 3, 0, 1),
		rec("Payments", 5, 0, 1, 0, 0),
		rec("Auth", 7, 0, 0, 2, 0),
		rec("Search", 1, 0, 0, 0, 0),
	}
	want := Aggregate(records)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]types.Record(nil), records...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if diff := cmp.Diff(want, Aggregate(shuffled)); diff != "" {
			t.Fatalf("aggregate depends on row order (-want +got):\n%s", diff)
		}
	}
}

func TestAggregateExactKeyMatch(t *testing.T) {
	summary := Aggregate([]types.Record{
		rec("Auth", 1, 0, 0, 0, 0),
		rec("auth", 1, 0, 0, 0, 0),
		rec("Auth ", 1, 0, 0, 0, 0),
	})
	assert.Len(t, summary.Epics, 3)
}

func TestPassRate(t *testing.T) {
	tests := []struct {
		passed, total int
		want          float64
	}{
		{passed: 0, total: 0, want: 0},
		{passed: 2, total: 3, want: 66.67},
		{passed: 1, total: 3, want: 33.33},
		{passed: 12, total: 23, want: 52.17},
		{passed: 19, total: 20, want: 95},
		{passed: 7, total: 7, want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PassRate(tt.passed, tt.total), "%d/%d", tt.passed, tt.total)
	}
}

func loadFixture(t *testing.T) []types.Record {
	t.Helper()
	tbl, err := loader.Load(filepath.Join("..", "testdata", "results.csv"))
	require.NoError(t, err)
	return tbl.Records
}

func TestAggregateWithUntaggedLabels(t *testing.T) {
	summary := Aggregate(loadFixture(t), WithUntaggedLabels())

	want := []types.EpicSummary{
		{Epic: "Legacy smoke - No EPIC Tagged", Counts: types.Counts{Passed: 5}, TotalTests: 5, PassRate: 100, Status: types.StatusExcellent},
		{Epic: "Onboarding", Counts: types.Counts{Passed: 41, Failed: 4, Broken: 3, Skipped: 2}, TotalTests: 50, PassRate: 82, Status: types.StatusNeedsAttention},
		{Epic: "Payments", Counts: types.Counts{Passed: 98, Failed: 1, Skipped: 1}, TotalTests: 100, PassRate: 98, Status: types.StatusExcellent},
		{Epic: "Reporting", Counts: types.Counts{Passed: 12, Failed: 6, Broken: 3, Skipped: 1, Unknown: 1}, TotalTests: 23, PassRate: 52.17, Status: types.StatusCritical},
		{Epic: "Test Cases Not Tagged", Counts: types.Counts{Passed: 2, Failed: 1}, TotalTests: 3, PassRate: 66.67, Status: types.StatusCritical},
	}
	if diff := cmp.Diff(want, summary.Epics); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestAggregateWithoutUntaggedLabels(t *testing.T) {
	summary := Aggregate(loadFixture(t))

	require.Len(t, summary.Epics, 4)
	untagged := summary.Epics[0]
	assert.Equal(t, "", untagged.Epic)
	assert.Equal(t, 8, untagged.TotalTests)
	assert.Equal(t, 87.5, untagged.PassRate)
	assert.Equal(t, types.StatusNeedsAttention, untagged.Status)
}

func TestUntaggedFeatureKeepsEmptyKey(t *testing.T) {
	r := rec("", 1, 0, 0, 0, 0)
	r.Feature = "Search"
	r.Story = "Typeahead"
	summary := Aggregate([]types.Record{r}, WithUntaggedLabels())
	require.Len(t, summary.Epics, 1)
	assert.Equal(t, "", summary.Epics[0].Epic)
}

func TestSortByStatus(t *testing.T) {
	summary := Aggregate(loadFixture(t), WithUntaggedLabels())
	sorted := SortByStatus(summary)

	var order []string
	for _, e := range sorted.Epics {
		order = append(order, e.Epic)
	}
	assert.Equal(t, []string{
		"Legacy smoke - No EPIC Tagged",
		"Payments",
		"Onboarding",
		"Test Cases Not Tagged",
		"Reporting",
	}, order)
	assert.Equal(t, summary.Totals, sorted.Totals)

	// the input is left untouched
	assert.Equal(t, "Legacy smoke - No EPIC Tagged", summary.Epics[0].Epic)
	assert.Equal(t, "Onboarding", summary.Epics[1].Epic)
}
