/*
Package ebx compiles grammar descriptions into deterministic tokenizers
and syntax-tree parsers.

A grammar is written in a small description language (see langdef):
token rules define the lexical alphabet, production rules define the
tree structure, and a rule named _ defines whitespace. CompileGrammar
turns the description into a CompiledGrammar whose Parse method takes
input text straight to a tagged syntax tree.

Subpackages:

  - source: named source text with line and column tracking;
  - pattern: escapes, literals, and character sets;
  - grammar: the compiled rule model;
  - langdef: the grammar description compiler;
  - lexer: longest-match tokenizing;
  - parser: ordered-choice tree building.

Tokenizing picks the longest match at every position, breaking ties in
favor of the rule defined first. Parsing tries alternatives in order and
commits to the first that matches. Both are deterministic: one input,
one grammar, one result.
*/
package ebx

import (
	"github.com/ebx-lang/ebx/errors"
	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/langdef"
	"github.com/ebx-lang/ebx/lexer"
	"github.com/ebx-lang/ebx/parser"
	"github.com/ebx-lang/ebx/source"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = errors.GrammarErrors // used by langdef and pattern
	LexicalErrors = errors.LexicalErrors // used by lexer
	SyntaxErrors  = errors.SyntaxErrors  // used by parser
)

// Error is the error type used by ebx subpackages.
type Error = errors.Error

// CompiledGrammar bundles the rule set of one grammar with a tokenizer
// and parser for it. It is immutable and safe for concurrent use.
type CompiledGrammar struct {
	Rules     *grammar.RuleSet
	Tokenizer *lexer.Tokenizer
	Parser    *parser.Parser
}

// CompileGrammar compiles grammar description text. The name appears in
// error messages for the description itself and is not used afterwards.
func CompileGrammar(name, text string) (*CompiledGrammar, error) {
	rules, e := langdef.ParseString(name, text)
	if e != nil {
		return nil, e
	}
	tk := lexer.New(rules)
	return &CompiledGrammar{
		Rules:     rules,
		Tokenizer: tk,
		Parser:    parser.New(rules, tk),
	}, nil
}

// Tokenize cuts input text into tokens.
func (g *CompiledGrammar) Tokenize(name, text string) ([]lexer.Token, error) {
	return g.Tokenizer.Tokenize(source.New(name, text))
}

// Parse tokenizes and parses input text with the named start rule. An
// empty start name selects the grammar's first production rule.
func (g *CompiledGrammar) Parse(start, name, text string) (*parser.Node, error) {
	return g.Parser.ParseText(start, source.New(name, text))
}
