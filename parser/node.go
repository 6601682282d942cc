package parser

import (
	"encoding/json"

	"github.com/ebx-lang/ebx/lexer"
	"github.com/ebx-lang/ebx/source"
)

// Node is a syntax tree node. Terminal nodes carry a Token and have no
// children; production nodes carry the rule name, the variant tag of the
// alternative that matched, and the matched children in input order.
type Node struct {
	Rule     string
	Variant  string
	Token    *lexer.Token
	Children []*Node
	Span     source.Span
}

// IsTerminal reports whether the node is a single token.
func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Name returns the production rule name, or the token rule name for
// terminals.
func (n *Node) Name() string {
	if n.Token != nil {
		return n.Token.Name
	}
	return n.Rule
}

// Text returns the token text for terminals and the empty string otherwise.
func (n *Node) Text() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

// Filter returns the direct children named name, terminals and productions
// alike.
func (n *Node) Filter(name string) []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.Name() == name {
			result = append(result, c)
		}
	}
	return result
}

// First returns the first direct child named name, or nil.
func (n *Node) First(name string) *Node {
	for _, c := range n.Children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Nth returns the i-th direct child, or nil when out of range.
func (n *Node) Nth(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

type terminalJSON struct {
	Token string `json:"token"`
	Text  string `json:"text"`
}

type nodeJSON struct {
	Rule     string  `json:"rule"`
	Variant  string  `json:"variant"`
	Children []*Node `json:"children"`
}

// MarshalJSON renders terminals as {"token", "text"} objects and production
// nodes as {"rule", "variant", "children"} objects.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Token != nil {
		return json.Marshal(terminalJSON{n.Token.Name, n.Token.Text})
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(nodeJSON{n.Rule, n.Variant, children})
}
