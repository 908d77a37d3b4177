package source

import (
	"fmt"
)

// Span is the provenance token attached to every built node.
// The zero value is NoSpan: "location unknown".
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NoSpan marks nodes that were synthesized without a source location.
var NoSpan = Span{}

// IsDummy reports whether the span carries no provenance at all.
func (s Span) IsDummy() bool {
	return s == NoSpan
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	if s.IsDummy() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover grows s to include other. Spans from different files are not merged,
// and a dummy span adopts the other side as is.
func (s Span) Cover(other Span) Span {
	if s.IsDummy() {
		return other
	}
	if other.IsDummy() || s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}
