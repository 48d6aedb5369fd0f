package detector

import "ppeserver/internal/ppe"

// Detector supplies raw detections for a single still image. The compliance
// core never calls a detector itself; everything non-deterministic (model
// inference, mock jitter) stays behind this interface so evaluation remains
// reproducible.
type Detector interface {
	Detect(image []byte) ([]ppe.Detection, error)
}
