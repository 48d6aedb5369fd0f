package ppe

import "testing"

func TestLookupCategory(t *testing.T) {
	tests := []struct {
		label string
		want  Category
		known bool
	}{
		{"helmet", CategoryHead, true},
		{"hard hat", CategoryHead, true},
		{"Safety Vest", CategoryVisibility, true},
		{"  boots  ", CategoryFoot, true},
		{"GOGGLES", CategoryEye, true},
		{"respirator", CategoryRespiratory, true},
		{"ear plugs", CategoryHearing, true},
		{"forklift", "", false},
		{"person", "", false}, // person is a precondition, not equipment
		{"", "", false},
	}

	for _, tt := range tests {
		category, ok := LookupCategory(tt.label)
		if ok != tt.known {
			t.Errorf("LookupCategory(%q) known=%v, expected %v", tt.label, ok, tt.known)
			continue
		}
		if ok && category != tt.want {
			t.Errorf("LookupCategory(%q) = %s, expected %s", tt.label, category, tt.want)
		}
	}
}

func TestIsPersonLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"person", true},
		{"Worker", true},
		{"  PERSON ", true},
		{"helmet", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPersonLabel(tt.label); got != tt.want {
			t.Errorf("IsPersonLabel(%q) = %v, expected %v", tt.label, got, tt.want)
		}
	}
}

func TestCatalog_EntriesAreConsistent(t *testing.T) {
	for _, entry := range Catalog() {
		if !KnownCategory(entry.Category) {
			t.Errorf("entry %q has unknown category %s", entry.Label, entry.Category)
		}
		if entry.Label != canonicalLabel(entry.Label) {
			t.Errorf("entry label %q is not in canonical form", entry.Label)
		}
		for _, synonym := range entry.Synonyms {
			category, ok := LookupCategory(synonym)
			if !ok {
				t.Errorf("synonym %q of %q has no catalog entry of its own", synonym, entry.Label)
				continue
			}
			if category != entry.Category {
				t.Errorf("synonym %q maps to %s, but %q maps to %s", synonym, category, entry.Label, entry.Category)
			}
		}
	}
}

func TestCatalog_ReturnsACopy(t *testing.T) {
	entries := Catalog()
	entries[0].Label = "tampered"

	if Catalog()[0].Label == "tampered" {
		t.Error("Catalog must return a copy of the reference data")
	}
}
