package model

import "fmt"

// Span is a half-open interval over token positions in a document.
// Spans are totally ordered by (Begin, End) and equal iff both bounds match.
type Span struct {
	Begin int `json:"begin"` // first token covered, 0-based
	End   int `json:"end"`   // one past the last token covered
}

// Length returns the number of tokens the span covers.
func (s Span) Length() int {
	return s.End - s.Begin
}

// Embeds reports whether s strictly contains other. A span never embeds
// itself: equal spans return false.
func (s Span) Embeds(other Span) bool {
	return s != other && s.Begin <= other.Begin && s.End >= other.End
}

// Before reports whether s precedes other under the (Begin, End) total order.
func (s Span) Before(other Span) bool {
	if s.Begin != other.Begin {
		return s.Begin < other.Begin
	}
	return s.End < other.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Begin, s.End)
}
