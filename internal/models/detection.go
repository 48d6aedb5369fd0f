package models

// Detection represents a stored detection belonging to an analysis.
type Detection struct {
	ID         int64   `json:"id"`
	AnalysisID string  `json:"analysis_id"`
	Label      string  `json:"label"`
	Category   string  `json:"category"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Confidence float64 `json:"confidence"`
}
