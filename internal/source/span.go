package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file.
// The zero Span marks synthetic tokens that have no source position.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// IsZero reports whether the span carries no position at all.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files, or zero spans, leave s unchanged.
func (s Span) Cover(other Span) Span {
	if other.IsZero() {
		return s
	}
	if s.IsZero() {
		return other
	}
	if s.File != other.File {
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

// Before reports whether s ends at or before other starts in the same file.
func (s Span) Before(other Span) bool {
	return s.File == other.File && s.End <= other.Start
}

// At returns an empty span positioned at the start of s.
func (s Span) At() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}
