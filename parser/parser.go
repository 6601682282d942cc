// Package parser builds syntax trees from token streams using the
// production rules of a compiled grammar. Alternatives are tried in
// definition order and the first one that matches commits: the parser
// never backtracks into an alternative it has accepted, and quantified
// items consume greedily.
package parser

import (
	"sort"

	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/lexer"
	"github.com/ebx-lang/ebx/source"
)

// Parser parses token streams against one RuleSet. It is stateless and
// safe for concurrent use.
type Parser struct {
	rules *grammar.RuleSet
	tk    *lexer.Tokenizer
}

// New creates a Parser. tk is used by ParseText and may be nil if only
// Parse is called.
func New(rules *grammar.RuleSet, tk *lexer.Tokenizer) *Parser {
	return &Parser{rules: rules, tk: tk}
}

// ParseText tokenizes src and parses the whole token stream with the named
// start rule. An empty start name selects the grammar's first production.
func (p *Parser) ParseText(start string, src *source.Source) (*Node, error) {
	toks, e := p.tk.Tokenize(src)
	if e != nil {
		return nil, e
	}
	return p.parse(start, toks, src.Name())
}

// Parse parses a complete token stream with the named start rule. An empty
// start name selects the grammar's first production.
func (p *Parser) Parse(start string, toks []lexer.Token) (*Node, error) {
	return p.parse(start, toks, "")
}

func (p *Parser) parse(start string, toks []lexer.Token, srcName string) (*Node, error) {
	if start == "" {
		start = p.rules.Start
	}
	r := p.rules.Rule(start)
	if r == nil || r.Kind != grammar.ProductionRule {
		return nil, unknownRuleError(start)
	}

	run := &parseRun{
		rules:   p.rules,
		toks:    toks,
		srcName: srcName,
		active:  map[activeKey]bool{},
		farPos:  -1,
	}
	node, next, ok, e := run.evalRule(r, 0)
	if e != nil {
		return nil, e
	}
	if !ok {
		return nil, run.failure()
	}
	if next < len(toks) {
		t := toks[next]
		return nil, trailingInputError(srcName, "\""+t.Text+"\"", t.Span.A.Line, t.Span.A.Col)
	}
	return node, nil
}

type activeKey struct {
	rule string
	pos  int
}

type parseRun struct {
	rules   *grammar.RuleSet
	toks    []lexer.Token
	srcName string
	active  map[activeKey]bool

	// farthest failure for diagnostics
	farPos   int
	expected map[string]bool
}

// fail records a terminal mismatch for the error message. Only the
// farthest position reached matters; earlier failures are normal
// alternative selection.
func (pr *parseRun) fail(pos int, expected string) {
	if pos > pr.farPos {
		pr.farPos = pos
		pr.expected = map[string]bool{}
	}
	if pos == pr.farPos {
		pr.expected[expected] = true
	}
}

func (pr *parseRun) failure() error {
	names := make([]string, 0, len(pr.expected))
	for name := range pr.expected {
		names = append(names, name)
	}
	sort.Strings(names)

	line, col := 0, 0
	if pr.farPos >= 0 && pr.farPos < len(pr.toks) {
		loc := pr.toks[pr.farPos].Span.A
		line, col = loc.Line, loc.Col
	} else if n := len(pr.toks); n > 0 {
		loc := pr.toks[n-1].Span.B
		line, col = loc.Line, loc.Col
	}
	return noAlternativeError(pr.srcName, line, col, names)
}

func (pr *parseRun) evalRule(r *grammar.Rule, pos int) (*Node, int, bool, error) {
	key := activeKey{r.Name, pos}
	if pr.active[key] {
		line, col := pr.locAt(pos)
		return nil, pos, false, noProgressError(pr.srcName, r.Name, line, col)
	}
	pr.active[key] = true
	defer delete(pr.active, key)

	for ai := range r.Alts {
		children, next, ok, e := pr.evalSeq(r.Alts[ai].Items, pos)
		if e != nil {
			return nil, pos, false, e
		}
		if !ok {
			continue
		}
		node := &Node{
			Rule:     r.Name,
			Variant:  r.Alts[ai].Tag,
			Children: children,
			Span:     pr.spanOf(children, pos),
		}
		return node, next, true, nil
	}
	return nil, pos, false, nil
}

func (pr *parseRun) evalSeq(items []grammar.Repetition, pos int) ([]*Node, int, bool, error) {
	var children []*Node
	cur := pos
	for _, rep := range items {
		switch rep.Quant {
		case grammar.One:
			got, next, ok, e := pr.evalItem(rep.Item, cur)
			if e != nil || !ok {
				return nil, pos, false, e
			}
			children, cur = append(children, got...), next

		case grammar.Maybe:
			got, next, ok, e := pr.evalItem(rep.Item, cur)
			if e != nil {
				return nil, pos, false, e
			}
			if ok {
				children, cur = append(children, got...), next
			}

		case grammar.Any, grammar.Many:
			count := 0
			for {
				got, next, ok, e := pr.evalItem(rep.Item, cur)
				if e != nil {
					return nil, pos, false, e
				}
				if !ok || next == cur {
					break
				}
				children, cur = append(children, got...), next
				count++
			}
			if rep.Quant == grammar.Many && count == 0 {
				return nil, pos, false, nil
			}
		}
	}
	return children, cur, true, nil
}

// evalItem matches one element and returns the nodes it contributes.
// Nested alternations splice their children into the enclosing sequence
// instead of forming a node of their own.
func (pr *parseRun) evalItem(item grammar.Singular, pos int) ([]*Node, int, bool, error) {
	switch it := item.(type) {
	case *grammar.SymbolRef:
		r := pr.rules.Rule(it.Name)
		if r == nil {
			return nil, pos, false, unknownRuleError(it.Name)
		}
		if r.Kind != grammar.ProductionRule {
			return pr.evalTerminal(it.Name, pos)
		}
		node, next, ok, e := pr.evalRule(r, pos)
		if e != nil || !ok {
			return nil, pos, false, e
		}
		return []*Node{node}, next, true, nil

	case *grammar.Nested:
		for ai := range it.Alts {
			children, next, ok, e := pr.evalSeq(it.Alts[ai].Items, pos)
			if e != nil {
				return nil, pos, false, e
			}
			if ok {
				return children, next, true, nil
			}
		}
		return nil, pos, false, nil
	}
	return nil, pos, false, nil
}

func (pr *parseRun) evalTerminal(name string, pos int) ([]*Node, int, bool, error) {
	if pos >= len(pr.toks) || pr.toks[pos].Name != name {
		pr.fail(pos, name)
		return nil, pos, false, nil
	}
	t := &pr.toks[pos]
	node := &Node{Token: t, Span: t.Span}
	return []*Node{node}, pos + 1, true, nil
}

func (pr *parseRun) spanOf(children []*Node, pos int) source.Span {
	if len(children) > 0 {
		sp := children[0].Span
		for _, c := range children[1:] {
			sp = sp.Union(c.Span)
		}
		return sp
	}
	line, col := pr.locAt(pos)
	loc := source.Loc{Line: line, Col: col, Offs: pr.offsAt(pos)}
	return source.Span{A: loc, B: loc}
}

func (pr *parseRun) locAt(pos int) (line, col int) {
	if pos < len(pr.toks) {
		loc := pr.toks[pos].Span.A
		return loc.Line, loc.Col
	}
	if n := len(pr.toks); n > 0 {
		loc := pr.toks[n-1].Span.B
		return loc.Line, loc.Col
	}
	return 0, 0
}

func (pr *parseRun) offsAt(pos int) int {
	if pos < len(pr.toks) {
		return pr.toks[pos].Span.A.Offs
	}
	if n := len(pr.toks); n > 0 {
		return pr.toks[n-1].Span.B.Offs
	}
	return 0
}
