// Package corpus reads annotated documents in a reduced CoNLL-style column
// format: one token per line with word, POS tag, parse bit, NER bit and
// coreference bit columns, blank lines between sentences, and documents
// delimited by "#begin document <name>" / "#end document" markers.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/corefilter/internal/model"
)

const (
	beginMarker = "#begin document"
	endMarker   = "#end document"
)

// nerNone is the tag recorded for tokens outside any named entity.
const nerNone = "NONE"

// Parse reads every document from r. Any structural defect — unbalanced
// parse brackets, an unclosed entity or mention span, a token line with too
// few columns — is a data-integrity error naming the offending line.
func Parse(r io.Reader) ([]*model.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var docs []*model.Document
	var b *docBuilder
	lineno := 0

	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, beginMarker):
			if b != nil {
				return nil, fmt.Errorf("line %d: document %q not closed before new document", lineno, b.name)
			}
			b = newDocBuilder(strings.TrimSpace(strings.TrimPrefix(line, beginMarker)))

		case line == endMarker:
			if b == nil {
				return nil, fmt.Errorf("line %d: %q outside a document", lineno, endMarker)
			}
			doc, err := b.finish()
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			docs = append(docs, doc)
			b = nil

		case line == "":
			if b != nil {
				if err := b.endSentence(); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineno, err)
				}
			}

		case strings.HasPrefix(line, "#"):
			// Comment line.

		default:
			if b == nil {
				return nil, fmt.Errorf("line %d: token line outside a document", lineno)
			}
			if err := b.addLine(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if b != nil {
		return nil, fmt.Errorf("document %q missing %q", b.name, endMarker)
	}
	return docs, nil
}

// corefSpan is an annotated mention span before attribute computation.
type corefSpan struct {
	id   int
	span model.Span
}

// sentTree pairs a sentence parse with its document-level token span.
type sentTree struct {
	root *model.ParseNode
	span model.Span
}

type docBuilder struct {
	name   string
	tokens []string
	pos    []string
	ner    []string

	sentStart int
	sentRoot  *model.ParseNode
	stack     []*model.ParseNode
	trees     []sentTree

	openNER string
	open    map[int][]int // coref id -> stack of open begins
	spans   []corefSpan
}

func newDocBuilder(name string) *docBuilder {
	return &docBuilder{name: name, open: make(map[int][]int)}
}

// addLine consumes one token line: word, POS, parse bit, NER bit, coref bit.
func (b *docBuilder) addLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return fmt.Errorf("document %q: token line needs 5 columns, got %d", b.name, len(fields))
	}
	// An optional leading token index column is tolerated.
	if len(fields) > 5 {
		fields = fields[len(fields)-5:]
	}
	word, posTag, parseBit, nerBit, corefBit := fields[0], fields[1], fields[2], fields[3], fields[4]

	idx := len(b.tokens)
	b.tokens = append(b.tokens, word)
	b.pos = append(b.pos, posTag)

	nerTag, err := b.nerTag(nerBit)
	if err != nil {
		return err
	}
	b.ner = append(b.ner, nerTag)

	if err := b.addParseBit(parseBit, word, posTag); err != nil {
		return err
	}
	return b.addCorefBit(corefBit, idx)
}

// nerTag resolves a bracketed NER bit against the currently open entity.
func (b *docBuilder) nerTag(bit string) (string, error) {
	switch {
	case bit == "*" || bit == "-":
		if b.openNER != "" {
			return b.openNER, nil
		}
		return nerNone, nil
	case bit == "*)":
		if b.openNER == "" {
			return "", fmt.Errorf("document %q: NER close without open entity", b.name)
		}
		tag := b.openNER
		b.openNER = ""
		return tag, nil
	case strings.HasPrefix(bit, "(") && strings.HasSuffix(bit, ")"):
		return strings.Trim(bit, "()*"), nil
	case strings.HasPrefix(bit, "("):
		if b.openNER != "" {
			return "", fmt.Errorf("document %q: nested NER entities are not supported", b.name)
		}
		b.openNER = strings.Trim(bit, "(*")
		return b.openNER, nil
	default:
		return "", fmt.Errorf("document %q: malformed NER bit %q", b.name, bit)
	}
}

// addParseBit extends the current sentence tree: opening brackets push
// constituents, the asterisk is replaced by the token leaf, closing
// brackets pop.
func (b *docBuilder) addParseBit(bit, word, posTag string) error {
	i := 0
	for i < len(bit) && bit[i] == '(' {
		j := i + 1
		for j < len(bit) && bit[j] != '(' && bit[j] != '*' && bit[j] != ')' {
			j++
		}
		node := &model.ParseNode{Label: bit[i+1 : j]}
		if err := b.attach(node); err != nil {
			return err
		}
		b.stack = append(b.stack, node)
		i = j
	}
	if i >= len(bit) || bit[i] != '*' {
		return fmt.Errorf("document %q: parse bit %q has no token slot", b.name, bit)
	}
	if err := b.attach(&model.ParseNode{Label: posTag, Word: word}); err != nil {
		return err
	}
	i++
	for i < len(bit) && bit[i] == ')' {
		if len(b.stack) == 0 {
			return fmt.Errorf("document %q: unbalanced parse bit %q", b.name, bit)
		}
		b.stack = b.stack[:len(b.stack)-1]
		i++
	}
	if i != len(bit) {
		return fmt.Errorf("document %q: malformed parse bit %q", b.name, bit)
	}
	return nil
}

func (b *docBuilder) attach(node *model.ParseNode) error {
	if len(b.stack) == 0 {
		if b.sentRoot != nil {
			return fmt.Errorf("document %q: multiple sentence roots", b.name)
		}
		b.sentRoot = node
		return nil
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, node)
	return nil
}

// addCorefBit opens and closes annotated mention spans. Bits are "-" or a
// "|"-separated list of "(id", "id)" and "(id)" parts; spans may nest.
func (b *docBuilder) addCorefBit(bit string, idx int) error {
	if bit == "-" || bit == "_" {
		return nil
	}
	for _, part := range strings.Split(bit, "|") {
		opens := strings.HasPrefix(part, "(")
		closes := strings.HasSuffix(part, ")")
		id, err := strconv.Atoi(strings.Trim(part, "()"))
		if err != nil {
			return fmt.Errorf("document %q: malformed coref bit %q", b.name, bit)
		}
		switch {
		case opens && closes:
			b.spans = append(b.spans, corefSpan{id: id, span: model.Span{Begin: idx, End: idx + 1}})
		case opens:
			b.open[id] = append(b.open[id], idx)
		case closes:
			stack := b.open[id]
			if len(stack) == 0 {
				return fmt.Errorf("document %q: close of unopened mention %d", b.name, id)
			}
			begin := stack[len(stack)-1]
			b.open[id] = stack[:len(stack)-1]
			b.spans = append(b.spans, corefSpan{id: id, span: model.Span{Begin: begin, End: idx + 1}})
		default:
			return fmt.Errorf("document %q: malformed coref bit %q", b.name, bit)
		}
	}
	return nil
}

func (b *docBuilder) endSentence() error {
	if len(b.tokens) == b.sentStart {
		return nil // consecutive blank lines
	}
	if len(b.stack) != 0 {
		return fmt.Errorf("document %q: sentence ends with %d unclosed constituents", b.name, len(b.stack))
	}
	if b.sentRoot == nil {
		return fmt.Errorf("document %q: sentence has no parse", b.name)
	}
	b.trees = append(b.trees, sentTree{
		root: b.sentRoot,
		span: model.Span{Begin: b.sentStart, End: len(b.tokens)},
	})
	b.sentRoot = nil
	b.sentStart = len(b.tokens)
	return nil
}

// finish closes the document, checks all spans were closed, and computes
// the span-level attributes for every annotated mention.
func (b *docBuilder) finish() (*model.Document, error) {
	if err := b.endSentence(); err != nil {
		return nil, err
	}
	if b.openNER != "" {
		return nil, fmt.Errorf("document %q: NER entity %q not closed", b.name, b.openNER)
	}
	for id, stack := range b.open {
		if len(stack) > 0 {
			return nil, fmt.Errorf("document %q: mention %d opened at token %d never closed", b.name, id, stack[len(stack)-1])
		}
	}

	doc := &model.Document{
		Name:   b.name,
		Tokens: b.tokens,
		POS:    b.pos,
		NER:    b.ner,
	}
	for _, cs := range b.spans {
		ann, err := b.annotate(cs.span)
		if err != nil {
			return nil, err
		}
		doc.Annotations = append(doc.Annotations, ann)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// annotate computes head, type, apposition and parse-fragment attributes
// for one annotated span.
func (b *docBuilder) annotate(span model.Span) (model.Annotation, error) {
	sent, ok := b.sentenceFor(span)
	if !ok {
		return model.Annotation{}, fmt.Errorf("document %q: mention span %s crosses a sentence boundary", b.name, span)
	}

	headIdx := headIndex(b.pos[span.Begin:span.End])
	headAbs := span.Begin + headIdx
	tree := smallestCover(sent.root, sent.span, span)

	return model.Annotation{
		Span:         span,
		HeadIndex:    headIdx,
		HeadSpan:     headSpan(b.ner, span, headAbs),
		Type:         mentionType(b.pos[headAbs], b.ner[headAbs]),
		IsApposition: appositive(tree),
		ParseTree:    tree,
	}, nil
}

func (b *docBuilder) sentenceFor(span model.Span) (sentTree, bool) {
	for _, sent := range b.trees {
		if sent.span.Begin <= span.Begin && sent.span.End >= span.End {
			return sent, true
		}
	}
	return sentTree{}, false
}
