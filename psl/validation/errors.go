package validation

import (
	"errors"
	"fmt"
)

// ErrMalformedGraph is returned when the graph handed to Validate violates
// its construction contract. It indicates a bug in the caller, not a finding.
var ErrMalformedGraph = errors.New("malformed schema graph")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedGraph, fmt.Sprintf(format, args...))
}
