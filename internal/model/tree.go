package model

import "strings"

// ParseNode is a fragment of the constituent parse tree covering a mention.
// Leaves carry a Word; interior nodes carry only a Label and Children.
type ParseNode struct {
	Label    string       `json:"label"`
	Word     string       `json:"word,omitempty"`
	Children []*ParseNode `json:"children,omitempty"`
}

// Equal reports whether two fragments have identical labels, words and
// structure.
func (n *ParseNode) Equal(other *ParseNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Label != other.Label || n.Word != other.Word || len(n.Children) != len(other.Children) {
		return false
	}
	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// HasChild reports whether sub is structurally equal to one of n's direct
// children.
func (n *ParseNode) HasChild(sub *ParseNode) bool {
	if n == nil || sub == nil {
		return false
	}
	for _, child := range n.Children {
		if child.Equal(sub) {
			return true
		}
	}
	return false
}

// Leaves returns the words covered by the fragment, left to right.
func (n *ParseNode) Leaves() []string {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 {
		if n.Word == "" {
			return nil
		}
		return []string{n.Word}
	}
	var words []string
	for _, child := range n.Children {
		words = append(words, child.Leaves()...)
	}
	return words
}

// LeafCount returns the number of word leaves under n.
func (n *ParseNode) LeafCount() int {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		if n.Word == "" {
			return 0
		}
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.LeafCount()
	}
	return count
}

// String renders the fragment in bracketed form, e.g. (NP (NNP John)).
func (n *ParseNode) String() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		if n.Label == "" {
			return n.Word
		}
		return "(" + n.Label + " " + n.Word + ")"
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, child.String())
	}
	return "(" + n.Label + " " + strings.Join(parts, " ") + ")"
}
