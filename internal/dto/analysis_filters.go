package dto

import "time"

// AnalysisFilters describe user-provided filters to narrow the analysis list.
type AnalysisFilters struct {
	Site       string
	Profile    string
	Category   string
	Compliant  *bool
	DateAfter  time.Time
	DateBefore time.Time
	Limit      int
	Offset     int
}
