package detector

import (
	"math/rand"
	"sync"

	"ppeserver/internal/ppe"
)

// MockDetector returns a fixed construction-site scene with per-call
// confidence jitter. It stands in for the real network in demo and test
// setups; all randomness in the system lives here, behind the Detector
// interface.
type MockDetector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockDetector creates a mock detector seeded for reproducible jitter.
func NewMockDetector(seed int64) *MockDetector {
	return &MockDetector{rng: rand.New(rand.NewSource(seed))}
}

// baseDetections is the scene the mock always sees: one worker in full
// construction PPE.
var baseDetections = []ppe.Detection{
	{Label: "person", Confidence: 0.95, Box: ppe.BoundingBox{X: 120, Y: 40, Width: 260, Height: 540}},
	{Label: "helmet", Confidence: 0.88, Box: ppe.BoundingBox{X: 180, Y: 40, Width: 120, Height: 90}},
	{Label: "safety vest", Confidence: 0.92, Box: ppe.BoundingBox{X: 150, Y: 170, Width: 200, Height: 220}},
	{Label: "gloves", Confidence: 0.75, Box: ppe.BoundingBox{X: 110, Y: 330, Width: 70, Height: 60}},
	{Label: "safety glasses", Confidence: 0.82, Box: ppe.BoundingBox{X: 200, Y: 90, Width: 90, Height: 35}},
	{Label: "boots", Confidence: 0.78, Box: ppe.BoundingBox{X: 160, Y: 500, Width: 180, Height: 80}},
}

// Detect returns the base scene with up to ±0.05 confidence jitter, clamped
// to [0,1] so the output always satisfies the detection contract.
func (m *MockDetector) Detect(image []byte) ([]ppe.Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]ppe.Detection, len(baseDetections))
	for i, d := range baseDetections {
		jitter := (m.rng.Float64() - 0.5) * 0.1
		confidence := d.Confidence + jitter
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		d.Confidence = confidence
		results[i] = d
	}
	return results, nil
}
