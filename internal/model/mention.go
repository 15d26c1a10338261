package model

import (
	"fmt"
	"sort"
	"strings"
)

// MentionType categorizes a mention for filtering purposes.
type MentionType string

const (
	TypeName    MentionType = "NAM"   // proper name
	TypePronoun MentionType = "PRO"   // pronoun
	TypeNominal MentionType = "NOM"   // common noun phrase
	TypeOther   MentionType = "OTHER" // anything else
)

// Mention is a candidate coreference mention: a span plus the linguistic
// attributes the cascade filters on. Mentions are created once during
// extraction and never mutated afterwards; filter stages only select subsets.
type Mention struct {
	Span         Span
	Tokens       []string
	POS          []string
	NER          []string
	HeadIndex    int
	HeadSpan     Span
	Type         MentionType
	IsApposition bool
	ParseTree    *ParseNode
	IsDummy      bool

	doc *Document
}

// NewMention builds a mention from an annotation by restricting the
// document's token and tag layers to the annotated span. A span outside
// document bounds or disagreeing tag layers is a data-integrity error.
func NewMention(ann Annotation, doc *Document) (*Mention, error) {
	if len(doc.POS) != len(doc.Tokens) || len(doc.NER) != len(doc.Tokens) {
		return nil, fmt.Errorf("document %q: tag layers disagree with token count %d", doc.Name, len(doc.Tokens))
	}
	if ann.Span.Begin < 0 || ann.Span.End > len(doc.Tokens) || ann.Span.Begin >= ann.Span.End {
		return nil, fmt.Errorf("document %q: span %s outside bounds [0..%d)", doc.Name, ann.Span, len(doc.Tokens))
	}
	if ann.HeadIndex < 0 || ann.HeadIndex >= ann.Span.Length() {
		return nil, fmt.Errorf("document %q: head index %d outside span %s", doc.Name, ann.HeadIndex, ann.Span)
	}

	return &Mention{
		Span:         ann.Span,
		Tokens:       doc.Tokens[ann.Span.Begin:ann.Span.End],
		POS:          doc.POS[ann.Span.Begin:ann.Span.End],
		NER:          doc.NER[ann.Span.Begin:ann.Span.End],
		HeadIndex:    ann.HeadIndex,
		HeadSpan:     ann.HeadSpan,
		Type:         ann.Type,
		IsApposition: ann.IsApposition,
		ParseTree:    ann.ParseTree,
		doc:          doc,
	}, nil
}

// DummyMention returns the sentinel "no antecedent" mention for doc. It
// sorts before every real mention and survives every filter stage.
func DummyMention(doc *Document) *Mention {
	return &Mention{
		Span:     Span{Begin: -1, End: -1},
		HeadSpan: Span{Begin: -1, End: -1},
		IsDummy:  true,
		doc:      doc,
	}
}

// Text returns the surface text of the mention, tokens joined by single
// spaces.
func (m *Mention) Text() string {
	return strings.Join(m.Tokens, " ")
}

// HeadPOS returns the part-of-speech tag of the head token.
func (m *Mention) HeadPOS() string {
	return m.POS[m.HeadIndex]
}

// HeadNER returns the named-entity tag of the head token.
func (m *Mention) HeadNER() string {
	return m.NER[m.HeadIndex]
}

// Context returns the n tokens immediately following the mention's span.
// The second result is false when fewer than n tokens remain in the
// document; in that case no tokens are returned.
func (m *Mention) Context(n int) ([]string, bool) {
	if m.doc == nil || n <= 0 || m.Span.End < 0 || m.Span.End+n > len(m.doc.Tokens) {
		return nil, false
	}
	return m.doc.Tokens[m.Span.End : m.Span.End+n], true
}

// Before orders mentions: the dummy mention first, then span order.
func (m *Mention) Before(other *Mention) bool {
	if m.IsDummy != other.IsDummy {
		return m.IsDummy
	}
	return m.Span.Before(other.Span)
}

func (m *Mention) String() string {
	if m.IsDummy {
		return "<dummy>"
	}
	return fmt.Sprintf("%s %q", m.Span, m.Text())
}

// SortMentions sorts a mention list in place under the mention total order.
// The sort is stable so equal spans keep their relative order.
func SortMentions(mentions []*Mention) {
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].Before(mentions[j])
	})
}
