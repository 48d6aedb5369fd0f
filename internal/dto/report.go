package dto

import (
	"time"

	"ppeserver/internal/models"
	"ppeserver/internal/ppe"
)

// AnalysisReport is the API payload for one completed analysis.
type AnalysisReport struct {
	ID              string               `json:"id"`
	Site            string               `json:"site"`
	Timestamp       time.Time            `json:"timestamp"`
	Report          ppe.Report           `json:"report"`
	Recommendations []ppe.Recommendation `json:"recommendations"`
}

// ReportsPage is a paginated response payload for the reports listing.
type ReportsPage struct {
	Reports     []ReportSummary `json:"reports"`
	Length      int             `json:"length"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Limit       int             `json:"pageSize"`
}

// ReportSummary is one row in the reports listing.
type ReportSummary struct {
	ID            string    `json:"id"`
	Site          string    `json:"site"`
	Profile       string    `json:"profile"`
	PersonPresent bool      `json:"person_present"`
	Score         int       `json:"score"`
	Compliant     bool      `json:"compliant"`
	Filename      string    `json:"filename"`
	Timestamp     time.Time `json:"timestamp"`
	Categories    []string  `json:"categories"`
}

// StatsResponse wraps aggregate analysis statistics with the image
// directory's configured size cap.
type StatsResponse struct {
	Stats        *models.AnalysisStats `json:"stats"`
	MaxSizeBytes int64                 `json:"maxSizeBytes"`
}

// FilterOptions lists the distinct values available for report filtering.
type FilterOptions struct {
	Sites      []string `json:"sites"`
	Profiles   []string `json:"profiles"`
	Categories []string `json:"categories"`
}
