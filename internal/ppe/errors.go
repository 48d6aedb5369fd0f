package ppe

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned by strict profile lookups for names the
// registry does not know. The lenient Resolve path never returns it.
var ErrInvalidProfile = errors.New("invalid policy profile")

// MalformedDetectionError describes a detection the normalizer refused to
// process. Coercing a broken detection would corrupt the compliance score, so
// the whole call fails instead.
type MalformedDetectionError struct {
	Index  int
	Reason string
}

func (e *MalformedDetectionError) Error() string {
	return fmt.Sprintf("malformed detection at index %d: %s", e.Index, e.Reason)
}
