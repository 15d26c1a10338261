package corpus

import (
	"strings"

	"github.com/ppiankov/corefilter/internal/model"
)

// headIndex returns the span-relative index of the syntactic head token:
// the rightmost noun, else the rightmost pronoun, else the last token.
func headIndex(pos []string) int {
	for i := len(pos) - 1; i >= 0; i-- {
		if strings.HasPrefix(pos[i], "NN") {
			return i
		}
	}
	for i := len(pos) - 1; i >= 0; i-- {
		if strings.HasPrefix(pos[i], "PRP") {
			return i
		}
	}
	return len(pos) - 1
}

// headSpan widens the head token to the full named entity it belongs to,
// clipped to the mention span. Heads outside any entity stay single-token.
func headSpan(ner []string, span model.Span, headAbs int) model.Span {
	tag := ner[headAbs]
	if tag == nerNone {
		return model.Span{Begin: headAbs, End: headAbs + 1}
	}
	begin, end := headAbs, headAbs+1
	for begin > span.Begin && ner[begin-1] == tag {
		begin--
	}
	for end < span.End && ner[end] == tag {
		end++
	}
	return model.Span{Begin: begin, End: end}
}

// mentionType classifies a mention from its head tags: named entities are
// proper names, PRP heads are pronouns, NN heads are nominals.
func mentionType(posTag, nerTag string) model.MentionType {
	switch {
	case nerTag != nerNone:
		return model.TypeName
	case strings.HasPrefix(posTag, "PRP"):
		return model.TypePronoun
	case strings.HasPrefix(posTag, "NN"):
		return model.TypeNominal
	default:
		return model.TypeOther
	}
}

// smallestCover descends from the sentence root to the smallest constituent
// whose leaves cover the target span. root covers rootSpan.
func smallestCover(root *model.ParseNode, rootSpan, target model.Span) *model.ParseNode {
	node, span := root, rootSpan
descend:
	for {
		offset := span.Begin
		for _, child := range node.Children {
			width := child.LeafCount()
			childSpan := model.Span{Begin: offset, End: offset + width}
			if width > 0 && childSpan.Begin <= target.Begin && childSpan.End >= target.End {
				node, span = child, childSpan
				continue descend
			}
			offset += width
		}
		return node
	}
}

// appositive reports whether a constituent is an appositive noun phrase:
// an NP with at least two NP children and a comma child.
func appositive(n *model.ParseNode) bool {
	if n == nil || n.Label != "NP" {
		return false
	}
	nps := 0
	comma := false
	for _, child := range n.Children {
		if child.Label == "NP" {
			nps++
		}
		if child.Word == "," {
			comma = true
		}
	}
	return nps >= 2 && comma
}
