package model

import "fmt"

// Document is an annotated document as delivered by the external annotation
// pipeline: the token stream with its tag layers, plus the annotated mention
// spans that seed extraction.
type Document struct {
	Name        string       `json:"name"`
	Tokens      []string     `json:"tokens"`
	POS         []string     `json:"pos"`
	NER         []string     `json:"ner"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is one annotated mention span together with the span-level
// attributes the filter cascade reads.
type Annotation struct {
	Span         Span        `json:"span"`
	HeadIndex    int         `json:"head_index"` // index into the span's own tokens
	HeadSpan     Span        `json:"head_span"`  // document-level span of the head constituent
	Type         MentionType `json:"type"`
	IsApposition bool        `json:"is_apposition,omitempty"`
	ParseTree    *ParseNode  `json:"parse_tree,omitempty"`
}

// Validate checks document integrity: tag layers must be parallel to the
// token stream and every annotated span must lie inside document bounds.
// Violations are fatal for the document.
func (d *Document) Validate() error {
	if len(d.POS) != len(d.Tokens) {
		return fmt.Errorf("document %q: %d POS tags for %d tokens", d.Name, len(d.POS), len(d.Tokens))
	}
	if len(d.NER) != len(d.Tokens) {
		return fmt.Errorf("document %q: %d NER tags for %d tokens", d.Name, len(d.NER), len(d.Tokens))
	}
	for _, ann := range d.Annotations {
		if ann.Span.Begin < 0 || ann.Span.End > len(d.Tokens) || ann.Span.Begin >= ann.Span.End {
			return fmt.Errorf("document %q: annotated span %s outside bounds [0..%d)", d.Name, ann.Span, len(d.Tokens))
		}
		if ann.HeadIndex < 0 || ann.HeadIndex >= ann.Span.Length() {
			return fmt.Errorf("document %q: head index %d outside span %s", d.Name, ann.HeadIndex, ann.Span)
		}
	}
	return nil
}
