package types

// Status is the health tier assigned to an Epic from its pass rate.
type Status string

const (
	StatusExcellent      Status = "Excellent"
	StatusNeedsAttention Status = "Needs Attention"
	StatusCritical       Status = "Critical"
)

// Pass rate thresholds. A pass rate equal to a threshold belongs to the higher tier.
const (
	ExcellentThreshold      = 95.0
	NeedsAttentionThreshold = 80.0
)

// ClassifyPassRate maps a pass rate percentage onto a Status.
// Every real number maps to exactly one tier; NaN falls through to Critical.
func ClassifyPassRate(passRate float64) Status {
	if passRate >= ExcellentThreshold {
		return StatusExcellent
	} else if passRate >= NeedsAttentionThreshold {
		return StatusNeedsAttention
	}
	return StatusCritical
}

// Rank orders tiers from healthiest to least healthy. Unknown values sort last.
func (s Status) Rank() int {
	switch s {
	case StatusExcellent:
		return 0
	case StatusNeedsAttention:
		return 1
	case StatusCritical:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether s is one of the known tiers.
func (s Status) IsValid() bool {
	return s.Rank() < 3
}

func (s Status) String() string {
	return string(s)
}
