// Package lexer cuts source text into tokens using the token rules of a
// compiled grammar. Matching is deterministic: at every position the
// longest match wins, and among equally long matches the rule defined
// earliest in the grammar wins.
package lexer

import (
	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/internal/ints"
	"github.com/ebx-lang/ebx/source"
)

// Tokenizer matches the token and whitespace rules of one RuleSet.
// It is stateless and safe for concurrent use.
type Tokenizer struct {
	rules *grammar.RuleSet

	// competitors are the rules tried at every position, in definition
	// order: real token rules plus the whitespace rule.
	competitors []*grammar.Rule
}

// New creates a Tokenizer for a finalized rule set.
func New(rules *grammar.RuleSet) *Tokenizer {
	t := &Tokenizer{rules: rules}
	for _, r := range rules.Rules {
		if r.Kind == grammar.WhitespaceRule || r.Kind == grammar.TokenRule && !r.Fragment {
			t.competitors = append(t.competitors, r)
		}
	}
	return t
}

// MatchRule matches a single named rule against rs at pos and returns the
// end of the longest match. A zero-length match counts as no match.
// Fragment rules can be matched directly; production rules cannot.
func (t *Tokenizer) MatchRule(name string, rs []rune, pos int) (end int, ok bool) {
	r := t.rules.Rule(name)
	if r == nil || r.Kind == grammar.ProductionRule {
		return 0, false
	}
	return t.matchFrom(r, rs, pos)
}

func (t *Tokenizer) matchFrom(r *grammar.Rule, rs []rune, pos int) (end int, ok bool) {
	starts := ints.NewSet()
	starts.Add(pos)
	ends := t.matchAlts(r.Alts, rs, starts)
	ends.Remove(pos)
	return ends.Max()
}

// matchAlts returns every offset at which some alternative can end, given
// the set of offsets it may start at. Tracking all ends instead of one
// makes the overall match exact: a shorter match of an early element can
// still let a later element complete.
func (t *Tokenizer) matchAlts(alts []grammar.Alternative, rs []rune, starts *ints.Set) *ints.Set {
	ends := ints.NewSet()
	for _, alt := range alts {
		ends.Union(t.matchSeq(alt.Items, rs, starts))
	}
	return ends
}

func (t *Tokenizer) matchSeq(items []grammar.Repetition, rs []rune, starts *ints.Set) *ints.Set {
	cur := starts.Copy()
	for _, rep := range items {
		cur = t.matchRep(rep, rs, cur)
		if cur.IsEmpty() {
			break
		}
	}
	return cur
}

func (t *Tokenizer) matchRep(rep grammar.Repetition, rs []rune, starts *ints.Set) *ints.Set {
	switch rep.Quant {
	case grammar.One:
		return t.matchItem(rep.Item, rs, starts)

	case grammar.Maybe:
		ends := starts.Copy()
		ends.Union(t.matchItem(rep.Item, rs, starts))
		return ends

	case grammar.Any:
		return t.matchStar(rep.Item, rs, starts.Copy())

	case grammar.Many:
		once := t.matchItem(rep.Item, rs, starts)
		return t.matchStar(rep.Item, rs, once)
	}
	return ints.NewSet()
}

// matchStar folds an item over a start set to a fixed point. Each pass only
// feeds the newly discovered offsets back in, so it terminates: offsets are
// bounded by the input length and the set only grows.
func (t *Tokenizer) matchStar(item grammar.Singular, rs []rune, starts *ints.Set) *ints.Set {
	result := starts
	frontier := starts
	for !frontier.IsEmpty() {
		next := t.matchItem(item, rs, frontier)
		fresh := ints.NewSet()
		for _, offs := range next.ToSlice() {
			if !result.Contains(offs) {
				fresh.Add(offs)
			}
		}
		result.Union(fresh)
		frontier = fresh
	}
	return result
}

func (t *Tokenizer) matchItem(item grammar.Singular, rs []rune, starts *ints.Set) *ints.Set {
	ends := ints.NewSet()
	switch it := item.(type) {
	case *grammar.Literal:
		n := len(it.Text)
		for _, offs := range starts.ToSlice() {
			if offs+n <= len(rs) && equalRunes(rs[offs:offs+n], it.Text) {
				ends.Add(offs + n)
			}
		}

	case *grammar.CharSet:
		for _, offs := range starts.ToSlice() {
			if offs < len(rs) && it.Set.Match(rs[offs]) {
				ends.Add(offs + 1)
			}
		}

	case *grammar.SymbolRef:
		r := t.rules.Rule(it.Name)
		if r != nil {
			return t.matchAlts(r.Alts, rs, starts)
		}

	case *grammar.Nested:
		return t.matchAlts(it.Alts, rs, starts)
	}
	return ends
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Stream produces the tokens of one source text on demand.
type Stream struct {
	t   *Tokenizer
	src *source.Source
	rs  []rune
	pos int
}

// Stream starts tokenizing src from the beginning.
func (t *Tokenizer) Stream(src *source.Source) *Stream {
	return &Stream{t: t, src: src, rs: src.Runes()}
}

// Next returns the next token, or nil at the end of the input. Whitespace
// competes with token rules under the same longest-match, earliest-rule
// policy; when it wins, its match is discarded and scanning continues.
func (s *Stream) Next() (*Token, error) {
	for s.pos < len(s.rs) {
		var best *grammar.Rule
		bestEnd := s.pos
		for _, r := range s.t.competitors {
			end, ok := s.t.matchFrom(r, s.rs, s.pos)
			if ok && end > bestEnd {
				best, bestEnd = r, end
			}
		}
		if best == nil {
			return nil, unrecognizedCharError(s.src, s.pos)
		}

		start := s.pos
		s.pos = bestEnd
		if best.Kind == grammar.WhitespaceRule {
			continue
		}
		return &Token{
			Name: best.Name,
			Text: string(s.rs[start:bestEnd]),
			Span: s.src.SpanBetween(start, bestEnd),
		}, nil
	}
	return nil, nil
}

// Tokenize cuts the whole source into tokens.
func (t *Tokenizer) Tokenize(src *source.Source) ([]Token, error) {
	var toks []Token
	s := t.Stream(src)
	for {
		tok, e := s.Next()
		if e != nil {
			return nil, e
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, *tok)
	}
}
