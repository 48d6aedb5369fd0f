package models

import "time"

// Analysis represents one evaluated image and its compliance verdict.
type Analysis struct {
	ID            string    `json:"id"`
	Site          string    `json:"site"`
	Profile       string    `json:"profile"`
	PersonPresent bool      `json:"person_present"`
	Score         int       `json:"score"`
	Compliant     bool      `json:"compliant"`
	Filename      string    `json:"filename"`
	FilePath      string    `json:"filepath"`
	FileSize      int64     `json:"filesize"`
	Timestamp     time.Time `json:"timestamp"`
}

// AnalysisStats contains statistics about stored analyses.
type AnalysisStats struct {
	TotalAnalyses  int            `json:"total_analyses"`
	CompliantCount int            `json:"compliant_count"`
	AverageScore   float64        `json:"average_score"`
	TotalSizeBytes int64          `json:"total_size_bytes"`
	PerSite        map[string]int `json:"per_site"`
	PerProfile     map[string]int `json:"per_profile"`
	CategoryCounts map[string]int `json:"category_counts"`
}
