// Package filter implements the mention filter cascade: an ordered sequence
// of pure selection passes over a candidate mention list, each encoding one
// linguistic heuristic. Stages never mutate mentions, never fail on
// well-formed input, and always return their survivors re-sorted by span.
// The dummy mention passes through every stage unconditionally.
package filter

import (
	"strings"

	"github.com/ppiankov/corefilter/internal/model"
)

// A Stage is one pass of the cascade. Stages are pure functions: they select
// a subset of their input and return it sorted, with no shared state between
// stages.
type Stage func([]*model.Mention) []*model.Mention

// ByHeadPOS removes mentions whose head token carries an adjectival tag
// (JJ, JJR, JJS). Adjectival heads are rarely referential.
func ByHeadPOS(mentions []*model.Mention) []*model.Mention {
	kept := make([]*model.Mention, 0, len(mentions))
	for _, m := range mentions {
		if m.IsDummy || !strings.HasPrefix(m.HeadPOS(), "JJ") {
			kept = append(kept, m)
		}
	}
	model.SortMentions(kept)
	return kept
}

// NewEntityTypeStage returns a stage that removes proper-name mentions whose
// head token carries one of the excluded NER tags. Mentions of other types
// are unaffected regardless of tag.
func NewEntityTypeStage(excluded []string) Stage {
	tags := make(map[string]bool, len(excluded))
	for _, tag := range excluded {
		tags[tag] = true
	}
	return func(mentions []*model.Mention) []*model.Mention {
		kept := make([]*model.Mention, 0, len(mentions))
		for _, m := range mentions {
			if m.IsDummy || m.Type != model.TypeName || !tags[m.HeadNER()] {
				kept = append(kept, m)
			}
		}
		model.SortMentions(kept)
		return kept
	}
}

// ByEntityType is NewEntityTypeStage with the standard exclusion set:
// numeric and quantity named entities are not coreference targets.
func ByEntityType(mentions []*model.Mention) []*model.Mention {
	return defaultEntityType(mentions)
}

var defaultEntityType = NewEntityTypeStage(model.DefaultConfig().Filters.ExcludedEntityTags)

// NewFixedPhraseStage returns a stage that removes mentions whose full
// surface text matches one of the fixed phrases (case-normalized) or one of
// the exact phrases (case-sensitive).
func NewFixedPhraseStage(fixed, exact []string) Stage {
	lowered := make(map[string]bool, len(fixed))
	for _, phrase := range fixed {
		lowered[strings.ToLower(phrase)] = true
	}
	cased := make(map[string]bool, len(exact))
	for _, phrase := range exact {
		cased[phrase] = true
	}
	return func(mentions []*model.Mention) []*model.Mention {
		kept := make([]*model.Mention, 0, len(mentions))
		for _, m := range mentions {
			if m.IsDummy {
				kept = append(kept, m)
				continue
			}
			text := m.Text()
			if lowered[strings.ToLower(text)] || cased[text] {
				continue
			}
			kept = append(kept, m)
		}
		model.SortMentions(kept)
		return kept
	}
}

// ByFixedPhrase is NewFixedPhraseStage with the standard lists: filler
// tokens ("mm", "hmm", "ahem", "um") case-normalized, and "US" / "U.S."
// exact-case so the pronoun "us" survives.
func ByFixedPhrase(mentions []*model.Mention) []*model.Mention {
	return defaultFixedPhrase(mentions)
}

var defaultFixedPhrase = NewFixedPhraseStage(
	model.DefaultConfig().Filters.FixedPhrases,
	model.DefaultConfig().Filters.ExactPhrases,
)

// ByPleonasticPronoun removes non-referential "it" and "you" detected from
// the right context window: "it" followed within two or three tokens by a
// trailing "that", and "you" directly followed by "know". Context running
// past document end never triggers removal.
func ByPleonasticPronoun(mentions []*model.Mention) []*model.Mention {
	kept := make([]*model.Mention, 0, len(mentions))
	for _, m := range mentions {
		if !m.IsDummy && pleonastic(m) {
			continue
		}
		kept = append(kept, m)
	}
	model.SortMentions(kept)
	return kept
}

func pleonastic(m *model.Mention) bool {
	switch strings.ToLower(m.Text()) {
	case "it":
		if ctx, ok := m.Context(2); ok && ctx[len(ctx)-1] == "that" {
			return true
		}
		if ctx, ok := m.Context(3); ok && ctx[len(ctx)-1] == "that" {
			return true
		}
	case "you":
		if ctx, ok := m.Context(1); ok && ctx[0] == "know" {
			return true
		}
	}
	return false
}

// BySameHeadLargestSpan keeps, for each distinct head span, only the largest
// mention sharing it: the maximum under lexicographic (span length, mention
// order). Smaller mentions with an identical head are redundant copies of
// the same referring expression.
func BySameHeadLargestSpan(mentions []*model.Mention) []*model.Mention {
	groups := make(map[model.Span][]*model.Mention)
	kept := make([]*model.Mention, 0, len(mentions))
	for _, m := range mentions {
		if m.IsDummy {
			kept = append(kept, m)
			continue
		}
		groups[m.HeadSpan] = append(groups[m.HeadSpan], m)
	}
	for _, group := range groups {
		best := group[0]
		for _, m := range group[1:] {
			if m.Span.Length() > best.Span.Length() ||
				(m.Span.Length() == best.Span.Length() && best.Before(m)) {
				best = m
			}
		}
		kept = append(kept, best)
	}
	model.SortMentions(kept)
	return kept
}

// ByEmbeddedHead removes mentions whose head span is properly embedded in
// another mention's head span ending at the same boundary: for each head-span
// end, only mentions whose head begins at the leftmost recorded begin
// survive.
func ByEmbeddedHead(mentions []*model.Mention) []*model.Mention {
	minBegin := make(map[int]int)
	for _, m := range mentions {
		if m.IsDummy {
			continue
		}
		if begin, ok := minBegin[m.HeadSpan.End]; !ok || m.HeadSpan.Begin < begin {
			minBegin[m.HeadSpan.End] = m.HeadSpan.Begin
		}
	}
	kept := make([]*model.Mention, 0, len(mentions))
	for _, m := range mentions {
		if !m.IsDummy && minBegin[m.HeadSpan.End] < m.HeadSpan.Begin {
			continue
		}
		kept = append(kept, m)
	}
	model.SortMentions(kept)
	return kept
}

// ByApposition removes non-pronoun mentions embedded inside an appositive
// construction. A mention counts as embedded when an apposition mention
// strictly contains its span and either the apposition's parse fragment
// branches into exactly two children, or the mention's own fragment is one
// of those children. Pronouns are never removed here.
func ByApposition(mentions []*model.Mention) []*model.Mention {
	var appositions []*model.Mention
	for _, m := range mentions {
		if !m.IsDummy && m.IsApposition {
			appositions = append(appositions, m)
		}
	}
	kept := make([]*model.Mention, 0, len(mentions))
	for _, m := range mentions {
		if m.IsDummy || m.Type == model.TypePronoun || !embeddedInApposition(m, appositions) {
			kept = append(kept, m)
		}
	}
	model.SortMentions(kept)
	return kept
}

func embeddedInApposition(m *model.Mention, appositions []*model.Mention) bool {
	for _, appo := range appositions {
		if !appo.Span.Embeds(m.Span) || appo.ParseTree == nil {
			continue
		}
		if len(appo.ParseTree.Children) == 2 {
			return true
		}
		if appo.ParseTree.HasChild(m.ParseTree) {
			return true
		}
	}
	return false
}
