// Package extract builds the initial candidate mention list from an
// annotated document. Extraction is purely constructive: no filtering
// happens here.
package extract

import (
	"fmt"

	"github.com/ppiankov/corefilter/internal/model"
)

// MentionExtractor builds candidate mention lists from annotated documents.
type MentionExtractor struct{}

// NewMentionExtractor creates a new mention extractor.
func NewMentionExtractor() *MentionExtractor {
	return &MentionExtractor{}
}

// Extract returns one mention per annotated span, prepended by the dummy
// mention, sorted by span. Validation happens here, once: a span outside
// document bounds or disagreeing tag layers aborts extraction for the whole
// document.
func (e *MentionExtractor) Extract(doc *model.Document) ([]*model.Mention, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("extract mentions: %w", err)
	}

	mentions := make([]*model.Mention, 0, len(doc.Annotations)+1)
	mentions = append(mentions, model.DummyMention(doc))
	for _, ann := range doc.Annotations {
		m, err := model.NewMention(ann, doc)
		if err != nil {
			return nil, fmt.Errorf("extract mentions: %w", err)
		}
		mentions = append(mentions, m)
	}

	model.SortMentions(mentions)
	return mentions, nil
}
