package ppe

// DefaultConfidenceThreshold is the cutoff below which detections are
// discarded. Comparison is strictly greater-than: a detection whose
// confidence equals the threshold is dropped.
const DefaultConfidenceThreshold = 0.5

// BoundingBox locates a detection in image pixel space, origin top-left.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Detection is one raw observation from the detector.
type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bounding_box"`
}

// DetectedItem is a detection that survived normalization, with its protection
// category attached.
type DetectedItem struct {
	Label      string      `json:"label"`
	Category   Category    `json:"category"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bounding_box"`
}

// Normalize filters raw detections by confidence and resolves each surviving
// label to its catalog category. Input order is preserved and duplicate
// categories are kept; the evaluator works on category membership, not counts.
// Unknown labels are noise and are dropped silently. A structurally broken
// detection (empty label, confidence outside [0,1]) fails the whole call with
// a MalformedDetectionError and no partial result.
func Normalize(detections []Detection, threshold float64) ([]DetectedItem, error) {
	for i, d := range detections {
		if err := validateDetection(i, d); err != nil {
			return nil, err
		}
	}

	items := make([]DetectedItem, 0, len(detections))
	for _, d := range detections {
		if d.Confidence <= threshold {
			continue
		}
		category, ok := LookupCategory(d.Label)
		if !ok {
			continue
		}
		items = append(items, DetectedItem{
			Label:      d.Label,
			Category:   category,
			Confidence: d.Confidence,
			Box:        d.Box,
		})
	}
	return items, nil
}

// ContainsPerson reports whether any detection above the threshold carries a
// person label. Person presence gates compliance but never contributes to the
// score, so it is computed from the raw detections rather than the normalized
// equipment items.
func ContainsPerson(detections []Detection, threshold float64) bool {
	for _, d := range detections {
		if d.Confidence > threshold && IsPersonLabel(d.Label) {
			return true
		}
	}
	return false
}

func validateDetection(index int, d Detection) error {
	if canonicalLabel(d.Label) == "" {
		return &MalformedDetectionError{Index: index, Reason: "empty label"}
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return &MalformedDetectionError{Index: index, Reason: "confidence outside [0,1]"}
	}
	return nil
}
