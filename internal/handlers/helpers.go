package handlers

import (
	"strconv"
	"time"
)

// atoiDefault parses a positive integer, returning def for anything else.
func atoiDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// parseDate parses a YYYY-MM-DD query value; zero time when absent or invalid.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseBoolPtr parses an optional boolean query value; nil when absent or invalid.
func parseBoolPtr(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}
