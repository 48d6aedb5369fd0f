package handlers

import (
	"testing"
	"time"
)

func TestAtoiDefault_ValidInput(t *testing.T) {
	tests := []struct {
		input    string
		def      int
		expected int
	}{
		{"10", 5, 10},
		{"1", 0, 1},
		{"100", 1, 100},
		{"999", 0, 999},
	}

	for _, tt := range tests {
		result := atoiDefault(tt.input, tt.def)
		if result != tt.expected {
			t.Errorf("atoiDefault(%q, %d) = %d, expected %d", tt.input, tt.def, result, tt.expected)
		}
	}
}

func TestAtoiDefault_InvalidInput(t *testing.T) {
	tests := []struct {
		input    string
		def      int
		expected int
	}{
		{"", 5, 5},
		{"abc", 10, 10},
		{"-1", 5, 5},
		{"0", 5, 5},
		{"12.5", 5, 5},
		{"12abc", 5, 5},
	}

	for _, tt := range tests {
		result := atoiDefault(tt.input, tt.def)
		if result != tt.expected {
			t.Errorf("atoiDefault(%q, %d) = %d, expected %d", tt.input, tt.def, result, tt.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	got := parseDate("2026-03-14")
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate(2026-03-14) = %v, expected %v", got, want)
	}

	for _, input := range []string{"", "14-03-2026", "not-a-date"} {
		if !parseDate(input).IsZero() {
			t.Errorf("parseDate(%q) should be zero", input)
		}
	}
}

func TestParseBoolPtr(t *testing.T) {
	tests := []struct {
		input string
		want  *bool
	}{
		{"true", boolPtr(true)},
		{"false", boolPtr(false)},
		{"1", boolPtr(true)},
		{"0", boolPtr(false)},
		{"", nil},
		{"maybe", nil},
	}

	for _, tt := range tests {
		got := parseBoolPtr(tt.input)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("parseBoolPtr(%q) nil-ness mismatch", tt.input)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("parseBoolPtr(%q) = %v, expected %v", tt.input, *got, *tt.want)
		}
	}
}

func boolPtr(v bool) *bool {
	return &v
}
