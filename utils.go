package epicreport

import (
	"github.com/ethereum-optimism/infra/epic-report/types"
)

// getStatusString returns a marked string representing the Epic status
func getStatusString(status types.Status) string {
	switch status {
	case types.StatusExcellent:
		return "✓ " + status.String()
	case types.StatusNeedsAttention:
		return "! " + status.String()
	default:
		return "✗ " + status.String()
	}
}
