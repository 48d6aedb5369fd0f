package detector

import (
	"testing"

	"ppeserver/internal/ppe"
)

func TestMockDetector_SameSeedSameSequence(t *testing.T) {
	first := NewMockDetector(42)
	second := NewMockDetector(42)

	for call := 0; call < 3; call++ {
		a, err := first.Detect(nil)
		if err != nil {
			t.Fatalf("detect failed: %v", err)
		}
		b, err := second.Detect(nil)
		if err != nil {
			t.Fatalf("detect failed: %v", err)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("call %d detection %d differs: %+v vs %+v", call, i, a[i], b[i])
			}
		}
	}
}

func TestMockDetector_OutputSatisfiesContract(t *testing.T) {
	mock := NewMockDetector(7)

	for call := 0; call < 50; call++ {
		detections, err := mock.Detect(nil)
		if err != nil {
			t.Fatalf("detect failed: %v", err)
		}
		if len(detections) != len(baseDetections) {
			t.Fatalf("expected %d detections, got %d", len(baseDetections), len(detections))
		}
		for i, d := range detections {
			if d.Confidence < 0 || d.Confidence > 1 {
				t.Errorf("call %d detection %d: confidence %f outside [0,1]", call, i, d.Confidence)
			}
			if d.Label == "" {
				t.Errorf("call %d detection %d: empty label", call, i)
			}
		}
	}
}

func TestMockDetector_SceneNormalizesFully(t *testing.T) {
	mock := NewMockDetector(1)
	detections, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	if _, err := ppe.Normalize(detections, ppe.DefaultConfidenceThreshold); err != nil {
		t.Errorf("mock output must always normalize cleanly: %v", err)
	}
	if !ppe.ContainsPerson(detections, 0.1) {
		t.Error("mock scene should contain a person")
	}
}
