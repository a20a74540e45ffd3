// Package exitcodes defines the standard exit codes used by epic-report.
package exitcodes

// Exit code constants used by epic-report
//
// * Success (0): Every requested artifact was written
// * DataLoadErr (1): The input CSV could not be read or parsed
// * RuntimeErr (2): An export failed, or any other runtime failure
const (
	Success     = 0 // Report written
	DataLoadErr = 1 // Input could not be loaded
	RuntimeErr  = 2 // Export or runtime errors
)
