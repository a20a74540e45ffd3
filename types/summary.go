package types

// EpicSummary is the aggregated view of every record sharing one Epic value.
type EpicSummary struct {
	Epic       string
	Counts     Counts
	TotalTests int
	PassRate   float64 // percentage rounded to 2 places, 0 when TotalTests is 0
	Status     Status
}

// Summary is the aggregated report. It is built once and treated as read-only.
type Summary struct {
	Epics  []EpicSummary
	Totals Counts // column sums across all Epics
}

// TotalTests returns the number of test results across all Epics.
func (s *Summary) TotalTests() int {
	return s.Totals.Total()
}

// WorstStatus returns the least healthy tier present, or StatusExcellent for an empty summary.
func (s *Summary) WorstStatus() Status {
	worst := StatusExcellent
	for _, e := range s.Epics {
		if e.Status.Rank() > worst.Rank() {
			worst = e.Status
		}
	}
	return worst
}

// CountByStatus returns how many Epics fall in each tier.
func (s *Summary) CountByStatus() map[Status]int {
	out := make(map[Status]int, 3)
	for _, e := range s.Epics {
		out[e.Status]++
	}
	return out
}
