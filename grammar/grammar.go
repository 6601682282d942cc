// Package grammar defines the compiled, immutable rule model produced by
// langdef and consumed by the lexer and parser.
package grammar

import (
	"github.com/ebx-lang/ebx/pattern"
)

// WhitespaceName is the reserved name of the whitespace rule.
const WhitespaceName = "_"

type RuleKind int

const (
	ProductionRule RuleKind = iota
	TokenRule
	WhitespaceRule
)

func (k RuleKind) String() string {
	switch k {
	case ProductionRule:
		return "production"
	case TokenRule:
		return "token"
	case WhitespaceRule:
		return "whitespace"
	}
	return "unknown"
}

type Quantifier int

const (
	One Quantifier = iota
	Maybe
	Any
	Many
)

// Singular is one element of a concatenation: a nested alternation,
// a reference to another rule, a literal, or a character set.
type Singular interface {
	singular()
}

// Nested is a parenthesized alternation. Its alternatives never carry
// docs or variant tags.
type Nested struct {
	Alts []Alternative
}

// SymbolRef is a by-name reference to another rule.
type SymbolRef struct {
	Name string
}

// Literal is a fixed code point sequence. Text is filled when the pattern
// is compiled; Raw keeps the source form for diagnostics and slug naming.
type Literal struct {
	Raw  string
	Text []rune
}

// CharSet matches exactly one code point. Set is filled when the pattern
// is compiled.
type CharSet struct {
	Raw string
	Set *pattern.SetMatcher
}

func (*Nested) singular()    {}
func (*SymbolRef) singular() {}
func (*Literal) singular()   {}
func (*CharSet) singular()   {}

// Repetition applies a quantifier to a singular.
type Repetition struct {
	Quant Quantifier
	Item  Singular
}

// Alternative is one concatenation branch. Tag and Doc are only meaningful
// on top-level alternatives of production rules.
type Alternative struct {
	Doc   string
	Tag   string
	Items []Repetition
}

// Rule is a named rule with all its definitions merged into one ordered
// alternation. DefIndex is the position of the earliest definition and is
// the tie-break key for tokenizing.
type Rule struct {
	Name      string
	Kind      RuleKind
	Doc       string
	DefIndex  int
	Alts      []Alternative
	Synthetic bool // lifted from a literal or character set in a production body
	Fragment  bool // token rule not reachable from any production reference
}

// RuleSet is the finalized result of one grammar compilation. It is
// immutable and safe for concurrent use; the lexer and parser hold
// references into it and never copy or modify rules.
type RuleSet struct {
	SourceName string

	// Rules in first-definition order.
	Rules []*Rule

	// Index maps rule name to its position in Rules.
	Index map[string]int

	// TokenTable lists real (non-fragment) token rule names in
	// definition order. It is the tokenizer's alphabet.
	TokenTable []string

	// Whitespace is WhitespaceName if a whitespace rule is defined,
	// empty otherwise.
	Whitespace string

	// Start is the first production rule, empty if there are none.
	Start string
}

// Rule returns the named rule or nil.
func (rs *RuleSet) Rule(name string) *Rule {
	i, ok := rs.Index[name]
	if !ok {
		return nil
	}
	return rs.Rules[i]
}
