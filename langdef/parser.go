package langdef

import (
	"strings"

	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/pattern"
	"github.com/ebx-lang/ebx/source"
)

// ParseString compiles grammar description text. The name is used in error
// messages only.
func ParseString(name, content string) (*grammar.RuleSet, error) {
	return ParseSource(source.New(name, content))
}

// ParseSource compiles a grammar description held in a Source.
func ParseSource(src *source.Source) (*grammar.RuleSet, error) {
	pc := &parseContext{
		s: newScanner(src),
		b: newBuilder(src.Name()),
	}
	e := pc.parse()
	if e != nil {
		return nil, e
	}
	return pc.b.finalize()
}

type parseContext struct {
	s     *scanner
	b     *builder
	saved *token
}

func (pc *parseContext) fetch() (*token, error) {
	if pc.saved != nil {
		t := pc.saved
		pc.saved = nil
		return t, nil
	}
	return pc.s.next()
}

func (pc *parseContext) put(t *token) {
	pc.saved = t
}

func (pc *parseContext) expect(kind tokKind) (*token, error) {
	t, e := pc.fetch()
	if e != nil {
		return nil, e
	}
	if t.kind != kind {
		return nil, unexpectedTokenError(t)
	}
	return t, nil
}

func (pc *parseContext) parse() error {
	var docs []string
	for {
		t, e := pc.fetch()
		if e != nil {
			return e
		}

		switch t.kind {
		case tEnd:
			return nil

		case tDoc:
			docs = append(docs, t.doc)
			continue

		case tSymbol, tUnderscore:
			e = pc.parseRule(t, strings.Join(docs, "\n\n"))
			if e != nil {
				return e
			}
			docs = docs[:0]

		default:
			return unexpectedTokenError(t)
		}
	}
}

func (pc *parseContext) parseRule(head *token, doc string) error {
	t, e := pc.fetch()
	if e != nil {
		return e
	}

	// a doc between the rule name and ::= belongs to the first alternative
	firstDoc := ""
	if t.kind == tDoc {
		firstDoc = t.doc
		t, e = pc.fetch()
		if e != nil {
			return e
		}
	}

	var kind grammar.RuleKind
	switch {
	case t.kind == tColEqEq && head.kind == tUnderscore:
		kind = grammar.WhitespaceRule
	case t.kind == tColEqEq:
		kind = grammar.TokenRule
	case t.kind == tColColEq && head.kind == tSymbol:
		kind = grammar.ProductionRule
	default:
		return unexpectedTokenError(t)
	}
	if firstDoc != "" && kind != grammar.ProductionRule {
		return unexpectedTokenError(t)
	}

	name := head.text
	if kind == grammar.WhitespaceRule {
		name = grammar.WhitespaceName
	}

	var alts []grammar.Alternative
	if kind == grammar.ProductionRule {
		alts, e = pc.parseVariants(firstDoc)
	} else {
		alts, e = pc.parseAlternation(kind)
	}
	if e != nil {
		return e
	}

	if _, e = pc.expect(tSem); e != nil {
		return e
	}
	return pc.b.define(name, kind, doc, alts, head)
}

// parseVariants parses the body of a production rule: an alternation whose
// branches carry -> variant tags and doc comments, each doc placed just
// before the ::= or | that opens its branch.
func (pc *parseContext) parseVariants(firstDoc string) ([]grammar.Alternative, error) {
	var alts []grammar.Alternative
	doc := firstDoc
	for {
		alt := grammar.Alternative{Doc: doc}
		var e error
		alt.Items, e = pc.parseConcatenation(grammar.ProductionRule)
		if e != nil {
			return nil, e
		}

		t, e := pc.fetch()
		if e != nil {
			return nil, e
		}
		if t.kind == tArrow {
			tag, e := pc.expect(tSymbol)
			if e != nil {
				return nil, e
			}
			alt.Tag = tag.text
			t, e = pc.fetch()
			if e != nil {
				return nil, e
			}
		}
		alts = append(alts, alt)

		doc = ""
		if t.kind == tDoc {
			doc = t.doc
			t, e = pc.fetch()
			if e != nil {
				return nil, e
			}
			if t.kind != tBar {
				return nil, unexpectedTokenError(t)
			}
		}
		if t.kind != tBar {
			pc.put(t)
			return alts, nil
		}
	}
}

// parseAlternation parses an untagged alternation, as found in token rule
// bodies and inside parentheses.
func (pc *parseContext) parseAlternation(kind grammar.RuleKind) ([]grammar.Alternative, error) {
	var alts []grammar.Alternative
	for {
		items, e := pc.parseConcatenation(kind)
		if e != nil {
			return nil, e
		}
		alts = append(alts, grammar.Alternative{Items: items})

		t, e := pc.fetch()
		if e != nil {
			return nil, e
		}
		if t.kind != tBar {
			pc.put(t)
			return alts, nil
		}
	}
}

func (pc *parseContext) parseConcatenation(kind grammar.RuleKind) ([]grammar.Repetition, error) {
	var items []grammar.Repetition
	for {
		t, e := pc.fetch()
		if e != nil {
			return nil, e
		}
		switch t.kind {
		case tBar, tSem, tArrow, tRp, tDoc:
			if len(items) == 0 {
				return nil, unexpectedTokenError(t)
			}
			pc.put(t)
			return items, nil
		}
		pc.put(t)

		item, e := pc.parseRepetition(kind)
		if e != nil {
			return nil, e
		}
		items = append(items, item)
	}
}

func (pc *parseContext) parseRepetition(kind grammar.RuleKind) (grammar.Repetition, error) {
	item, e := pc.parseSingular(kind)
	if e != nil {
		return grammar.Repetition{}, e
	}

	rep := grammar.Repetition{Quant: grammar.One, Item: item}
	t, e := pc.fetch()
	if e != nil {
		return grammar.Repetition{}, e
	}
	switch t.kind {
	case tQst:
		rep.Quant = grammar.Maybe
	case tAst:
		rep.Quant = grammar.Any
	case tPls:
		rep.Quant = grammar.Many
	default:
		pc.put(t)
	}
	return rep, nil
}

func (pc *parseContext) parseSingular(kind grammar.RuleKind) (grammar.Singular, error) {
	t, e := pc.fetch()
	if e != nil {
		return nil, e
	}

	switch t.kind {
	case tLp:
		alts, e := pc.parseAlternation(kind)
		if e != nil {
			return nil, e
		}
		if _, e = pc.expect(tRp); e != nil {
			return nil, e
		}
		return &grammar.Nested{Alts: alts}, nil

	case tSymbol:
		return &grammar.SymbolRef{Name: t.text}, nil

	case tString:
		if kind != grammar.ProductionRule {
			return &grammar.Literal{Raw: t.text}, nil
		}
		text, e := pattern.CompileLiteral(t.text)
		if e != nil {
			return nil, patternErrorAt(e, t)
		}
		return pc.lift(pc.b.liftLiteral(text, t.text))

	case tCharLit:
		if kind != grammar.ProductionRule {
			return &grammar.Literal{Raw: t.text}, nil
		}
		r, e := pattern.CompileCharLiteral(t.text)
		if e != nil {
			return nil, patternErrorAt(e, t)
		}
		return pc.lift(pc.b.liftLiteral([]rune{r}, t.text))

	case tSet:
		if kind != grammar.ProductionRule {
			return &grammar.CharSet{Raw: t.text}, nil
		}
		set, e := pattern.CompileSet(t.text)
		if e != nil {
			return nil, patternErrorAt(e, t)
		}
		return pc.lift(pc.b.liftCharSet(set, t.text))
	}

	return nil, unexpectedTokenError(t)
}

func (pc *parseContext) lift(name string, e error) (grammar.Singular, error) {
	if e != nil {
		return nil, e
	}
	return &grammar.SymbolRef{Name: name}, nil
}
