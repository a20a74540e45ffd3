// Package aggregate folds loaded result records into per-Epic summaries.
package aggregate

import (
	"slices"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/ethereum-optimism/infra/epic-report/types"
)

// Labels given to records without an Epic when untagged labelling is enabled.
const (
	NoEpicSuffix   = " - No EPIC Tagged"
	UntaggedLabel  = "Test Cases Not Tagged"
	passRateDigits = 2
)

type options struct {
	labelUntagged bool
}

// Option configures Aggregate.
type Option func(*options)

// WithUntaggedLabels regroups records that carry no Epic.
// Records with a Story but no Feature are keyed "<Story> - No EPIC Tagged";
// records with no Epic, Feature or Story are keyed "Test Cases Not Tagged".
func WithUntaggedLabels() Option {
	return func(o *options) {
		o.labelUntagged = true
	}
}

// Aggregate groups records by Epic and derives totals, pass rate and status.
// Epics are returned sorted by name, so the result does not depend on record order.
func Aggregate(records []types.Record, opts ...Option) *types.Summary {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	groups := make(map[string]types.Counts)
	for _, rec := range records {
		key := rec.Epic
		if o.labelUntagged {
			key = groupKey(rec)
		}
		groups[key] = groups[key].Add(rec.Counts)
	}

	summary := &types.Summary{
		Epics: make([]types.EpicSummary, 0, len(groups)),
	}
	for epic, counts := range groups {
		summary.Epics = append(summary.Epics, NewEpicSummary(epic, counts))
		summary.Totals = summary.Totals.Add(counts)
	}
	slices.SortFunc(summary.Epics, func(a, b types.EpicSummary) int {
		return strings.Compare(a.Epic, b.Epic)
	})

	return summary
}

// NewEpicSummary derives the total, pass rate and status for one group.
func NewEpicSummary(epic string, counts types.Counts) types.EpicSummary {
	total := counts.Total()
	passRate := PassRate(counts.Passed, total)
	return types.EpicSummary{
		Epic:       epic,
		Counts:     counts,
		TotalTests: total,
		PassRate:   passRate,
		Status:     types.ClassifyPassRate(passRate),
	}
}

// PassRate returns passed/total as a percentage rounded to two decimals.
// A group without tests has a pass rate of 0.
func PassRate(passed, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate, err := stats.Round(float64(passed)/float64(total)*100, passRateDigits)
	if err != nil {
		return 0
	}
	return rate
}

func groupKey(rec types.Record) string {
	if rec.Epic != "" {
		return rec.Epic
	}
	switch {
	case rec.Feature == "" && rec.Story != "":
		return rec.Story + NoEpicSuffix
	case rec.Feature == "" && rec.Story == "":
		return UntaggedLabel
	default:
		return ""
	}
}

// SortByStatus returns a copy of s ordered healthiest tier first, then by
// pass rate descending, then by Epic name.
func SortByStatus(s *types.Summary) *types.Summary {
	out := &types.Summary{
		Epics:  slices.Clone(s.Epics),
		Totals: s.Totals,
	}
	slices.SortStableFunc(out.Epics, func(a, b types.EpicSummary) int {
		if d := a.Status.Rank() - b.Status.Rank(); d != 0 {
			return d
		}
		if a.PassRate != b.PassRate {
			if a.PassRate > b.PassRate {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Epic, b.Epic)
	})
	return out
}
