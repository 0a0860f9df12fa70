// Package diagnostics provides error and warning handling for PSL parsing and validation.
package diagnostics

import "strings"

// FileID represents the stable identifier for a PSL file.
type FileID uint32

// FileIDZero is the identifier of the single file of a one-file schema.
const FileIDZero FileID = 0

// Span represents a byte range in a datamodel's text representation.
type Span struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	FileID FileID `json:"file_id" yaml:"file_id"`
}

// NewSpan creates a new span with the given parameters.
func NewSpan(start, end int, fileID FileID) Span {
	return Span{
		Start:  start,
		End:    end,
		FileID: fileID,
	}
}

// EmptySpan creates a new empty span.
func EmptySpan() Span {
	return Span{}
}

// IsEmpty reports whether the span covers no text.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains checks if the given position is inside the span (boundaries included).
func (s Span) Contains(position int) bool {
	return position >= s.Start && position <= s.End
}

// Overlaps checks if the given span overlaps with the current span.
func (s Span) Overlaps(other Span) bool {
	return s.FileID == other.FileID && (s.Contains(other.Start) || s.Contains(other.End))
}

// Location returns the 1-based line and column of the span start in text.
func (s Span) Location(text string) (line, column int) {
	start := clamp(s.Start, len(text))
	before := text[:start]
	line = strings.Count(before, "\n") + 1
	column = start - (strings.LastIndexByte(before, '\n') + 1) + 1
	return line, column
}

func clamp(pos, limit int) int {
	switch {
	case pos < 0:
		return 0
	case pos > limit:
		return limit
	default:
		return pos
	}
}
