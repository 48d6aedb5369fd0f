package ppe

import (
	"strings"
	"testing"
)

func TestRecommend_CompliantScene(t *testing.T) {
	report := evaluateScene(t, fullSceneDetections(), "construction")
	recommendations := Recommend(report)

	if len(recommendations) != 2 {
		t.Fatalf("expected [success, info], got %d recommendations", len(recommendations))
	}
	if recommendations[0].Kind != KindSuccess || recommendations[0].Priority != PriorityLow {
		t.Errorf("expected success/low first, got %s/%s", recommendations[0].Kind, recommendations[0].Priority)
	}
	if recommendations[1].Kind != KindInfo || recommendations[1].Priority != PriorityMedium {
		t.Errorf("expected info/medium last, got %s/%s", recommendations[1].Kind, recommendations[1].Priority)
	}
}

func TestRecommend_MissingFootProtection(t *testing.T) {
	report := evaluateScene(t, fullSceneDetections()[:5], "construction")
	recommendations := Recommend(report)

	warnings := 0
	for _, rec := range recommendations {
		if rec.Kind == KindWarning {
			warnings++
			if !strings.Contains(rec.Message, "foot") {
				t.Errorf("expected foot protection warning, got %q", rec.Message)
			}
			if rec.Priority != PriorityHigh {
				t.Errorf("expected high priority warning, got %s", rec.Priority)
			}
		}
		if rec.Kind == KindSuccess {
			t.Error("non-compliant report must not produce a success message")
		}
	}
	if warnings != 1 {
		t.Errorf("expected exactly 1 warning, got %d", warnings)
	}
	if last := recommendations[len(recommendations)-1]; last.Kind != KindInfo {
		t.Errorf("expected closing info message, got %s", last.Kind)
	}
}

func TestRecommend_NoPersonComesFirst(t *testing.T) {
	report := evaluateScene(t, []Detection{{Label: "helmet", Confidence: 0.88}}, "construction")
	recommendations := Recommend(report)

	if recommendations[0].Kind != KindError || recommendations[0].Priority != PriorityHigh {
		t.Fatalf("expected error/high first, got %s/%s", recommendations[0].Kind, recommendations[0].Priority)
	}
	if !strings.Contains(recommendations[0].Message, "person") {
		t.Errorf("expected no-person message, got %q", recommendations[0].Message)
	}
	for _, rec := range recommendations {
		if rec.Kind == KindSuccess {
			t.Error("person-absent report can never be compliant")
		}
	}
}

func TestRecommend_WarningsFollowMissingOrder(t *testing.T) {
	report := evaluateScene(t, []Detection{{Label: "person", Confidence: 0.9}}, "manufacturing")
	recommendations := Recommend(report)

	// manufacturing order: head, eye, hand, foot
	wantFragments := []string{"head", "eye", "glove", "foot"}
	warnings := make([]Recommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		if rec.Kind == KindWarning {
			warnings = append(warnings, rec)
		}
	}
	if len(warnings) != len(wantFragments) {
		t.Fatalf("expected %d warnings, got %d", len(wantFragments), len(warnings))
	}
	for i, fragment := range wantFragments {
		if !strings.Contains(warnings[i].Message, fragment) {
			t.Errorf("warning %d: expected mention of %q, got %q", i, fragment, warnings[i].Message)
		}
	}
}

func TestRecommend_EveryCategoryHasAnAction(t *testing.T) {
	for _, entry := range Catalog() {
		if _, ok := categoryActions[entry.Category]; !ok {
			t.Errorf("category %s has no corrective action message", entry.Category)
		}
	}
}

func TestRecommend_AlwaysEndsWithInfo(t *testing.T) {
	scenes := [][]Detection{
		fullSceneDetections(),
		fullSceneDetections()[:3],
		{{Label: "helmet", Confidence: 0.88}},
		nil,
	}

	for i, detections := range scenes {
		report := evaluateScene(t, detections, "construction")
		recommendations := Recommend(report)
		if len(recommendations) == 0 {
			t.Fatalf("scene %d: expected at least the closing info message", i)
		}
		last := recommendations[len(recommendations)-1]
		if last.Kind != KindInfo || last.Priority != PriorityMedium {
			t.Errorf("scene %d: expected info/medium closer, got %s/%s", i, last.Kind, last.Priority)
		}
	}
}
