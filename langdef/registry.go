package langdef

import (
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/pattern"
)

const implicitDoc = "Implicit token."

// builder accumulates rule definitions during parsing and turns them into
// an immutable RuleSet in finalize.
type builder struct {
	sourceName string
	rules      []*grammar.Rule
	index      map[string]int
}

func newBuilder(sourceName string) *builder {
	return &builder{
		sourceName: sourceName,
		index:      map[string]int{},
	}
}

// define records one rule definition. Repeated definitions of the same name
// and kind merge into a single ordered alternation; the rule keeps the
// definition index of its earliest occurrence.
func (b *builder) define(name string, kind grammar.RuleKind, doc string, alts []grammar.Alternative, head *token) error {
	i, ok := b.index[name]
	if !ok {
		b.index[name] = len(b.rules)
		b.rules = append(b.rules, &grammar.Rule{
			Name:     name,
			Kind:     kind,
			Doc:      doc,
			DefIndex: len(b.rules),
			Alts:     alts,
		})
		return nil
	}

	r := b.rules[i]
	if r.Kind != kind {
		return conflictingKindError(head, name, r.Kind.String(), kind.String())
	}
	r.Alts = append(r.Alts, alts...)
	switch {
	case r.Doc == "" || r.Doc == implicitDoc:
		r.Doc = doc
	case doc != "":
		r.Doc += "\n\n" + doc
	}
	r.Synthetic = false
	return nil
}

// liftLiteral registers a synthetic token rule for a literal used inside a
// production body and returns its derived name. Identical literal text maps
// to the identical name, so repeated uses share one rule.
func (b *builder) liftLiteral(text []rune, raw string) (string, error) {
	name := pattern.Slug(text)
	item := &grammar.Literal{Raw: raw, Text: text}
	return name, b.liftRule(name, item)
}

// liftCharSet registers a synthetic token rule for a character set used
// inside a production body, named after the set's source form.
func (b *builder) liftCharSet(set *pattern.SetMatcher, raw string) (string, error) {
	name := pattern.Slug([]rune(raw))
	item := &grammar.CharSet{Raw: raw, Set: set}
	return name, b.liftRule(name, item)
}

func (b *builder) liftRule(name string, item grammar.Singular) error {
	if i, ok := b.index[name]; ok {
		r := b.rules[i]
		if r.Kind == grammar.ProductionRule {
			return conflictingLiteralError(name, r.Name)
		}
		// the derived name may belong to an explicitly defined token rule
		// with a different pattern; the written literal must stay
		// matchable, so it joins the alternation
		for _, alt := range r.Alts {
			if len(alt.Items) == 1 && alt.Items[0].Quant == grammar.One && samePattern(alt.Items[0].Item, item) {
				return nil
			}
		}
		r.Alts = append(r.Alts, grammar.Alternative{
			Items: []grammar.Repetition{{Quant: grammar.One, Item: item}},
		})
		return nil
	}
	b.index[name] = len(b.rules)
	b.rules = append(b.rules, &grammar.Rule{
		Name:     name,
		Kind:     grammar.TokenRule,
		Doc:      implicitDoc,
		DefIndex: len(b.rules),
		Alts: []grammar.Alternative{
			{Items: []grammar.Repetition{{Quant: grammar.One, Item: item}}},
		},
		Synthetic: true,
	})
	return nil
}

// samePattern reports whether two literal or character set singulars match
// the same input. Literals compare by resolved text, since 'x' and "x" are
// the same pattern; character sets compare by source form.
func samePattern(a, b grammar.Singular) bool {
	switch x := a.(type) {
	case *grammar.Literal:
		y, ok := b.(*grammar.Literal)
		if !ok {
			return false
		}
		xt, yt := literalText(x), literalText(y)
		return xt != nil && yt != nil && string(xt) == string(yt)
	case *grammar.CharSet:
		y, ok := b.(*grammar.CharSet)
		return ok && x.Raw == y.Raw
	}
	return false
}

// literalText resolves a literal's text, compiling the raw form on demand.
// Raw text that does not compile resolves to nil here; finalize reports it.
func literalText(l *grammar.Literal) []rune {
	if l.Text != nil || l.Raw == "" {
		return l.Text
	}
	if l.Raw[0] == '#' {
		r, e := pattern.CompileCharLiteral(l.Raw)
		if e != nil {
			return nil
		}
		l.Text = []rune{r}
	} else {
		text, e := pattern.CompileLiteral(l.Raw)
		if e != nil {
			return nil
		}
		l.Text = text
	}
	return l.Text
}

// finalize validates the accumulated rules and produces the RuleSet.
func (b *builder) finalize() (*grammar.RuleSet, error) {
	if e := b.compilePatterns(); e != nil {
		return nil, e
	}
	if e := b.checkReferences(); e != nil {
		return nil, e
	}
	if e := b.checkTokenCycles(); e != nil {
		return nil, e
	}
	if e := b.assignVariantTags(); e != nil {
		return nil, e
	}
	b.markFragments()

	rs := &grammar.RuleSet{
		SourceName: b.sourceName,
		Rules:      b.rules,
		Index:      b.index,
	}
	for _, r := range b.rules {
		switch {
		case r.Kind == grammar.WhitespaceRule:
			rs.Whitespace = r.Name
		case r.Kind == grammar.TokenRule && !r.Fragment:
			rs.TokenTable = append(rs.TokenTable, r.Name)
		case r.Kind == grammar.ProductionRule && rs.Start == "":
			rs.Start = r.Name
		}
	}
	return rs, nil
}

// compilePatterns resolves the raw text of literals and character sets in
// token and whitespace rule bodies. Rules are independent, so they compile
// in parallel.
func (b *builder) compilePatterns() error {
	var g errgroup.Group
	for _, r := range b.rules {
		if r.Kind == grammar.ProductionRule {
			continue
		}
		r := r
		g.Go(func() error {
			if e := compileAlts(r.Alts); e != nil {
				return patternErrorIn(e, r.Name)
			}
			return nil
		})
	}
	return g.Wait()
}

func compileAlts(alts []grammar.Alternative) error {
	for ai := range alts {
		for ii := range alts[ai].Items {
			switch item := alts[ai].Items[ii].Item.(type) {
			case *grammar.Nested:
				if e := compileAlts(item.Alts); e != nil {
					return e
				}
			case *grammar.Literal:
				if item.Text != nil {
					continue
				}
				if item.Raw[0] == '#' {
					r, e := pattern.CompileCharLiteral(item.Raw)
					if e != nil {
						return e
					}
					item.Text = []rune{r}
				} else {
					text, e := pattern.CompileLiteral(item.Raw)
					if e != nil {
						return e
					}
					item.Text = text
				}
			case *grammar.CharSet:
				if item.Set != nil {
					continue
				}
				set, e := pattern.CompileSet(item.Raw)
				if e != nil {
					return e
				}
				item.Set = set
			}
		}
	}
	return nil
}

func (b *builder) checkReferences() error {
	unknown := map[string]bool{}
	for _, r := range b.rules {
		var bad error
		walkRefs(r.Alts, func(name string) {
			target := b.rule(name)
			if target == nil {
				unknown[name] = true
				return
			}
			if r.Kind != grammar.ProductionRule && target.Kind == grammar.ProductionRule && bad == nil {
				bad = invalidReferenceError(r.Name, name)
			}
		})
		if bad != nil {
			return bad
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	names := make([]string, 0, len(unknown))
	for name := range unknown {
		names = append(names, name)
	}
	sort.Strings(names)
	return unknownRuleError(names)
}

// checkTokenCycles rejects token and whitespace rules that reach themselves
// through references. Token patterns must describe finite-depth matching.
func (b *builder) checkTokenCycles() error {
	const (
		unseen = iota
		active
		done
	)
	state := map[string]int{}
	var path []string

	var visit func(r *grammar.Rule) error
	visit = func(r *grammar.Rule) error {
		state[r.Name] = active
		path = append(path, r.Name)

		var cycle error
		walkRefs(r.Alts, func(name string) {
			if cycle != nil {
				return
			}
			target := b.rule(name)
			if target == nil || target.Kind == grammar.ProductionRule {
				return
			}
			switch state[name] {
			case active:
				start := 0
				for i, p := range path {
					if p == name {
						start = i
						break
					}
				}
				cycle = recursiveTokenError(append(path[start:len(path):len(path)], name))
			case unseen:
				cycle = visit(target)
			}
		})

		path = path[:len(path)-1]
		state[r.Name] = done
		return cycle
	}

	for _, r := range b.rules {
		if r.Kind == grammar.ProductionRule || state[r.Name] != unseen {
			continue
		}
		if e := visit(r); e != nil {
			return e
		}
	}
	return nil
}

// assignVariantTags gives every top-level alternative of every production
// rule a variant tag, generating rule-alt-N names where the grammar does
// not supply one, and rejects duplicates within a rule.
func (b *builder) assignVariantTags() error {
	for _, r := range b.rules {
		if r.Kind != grammar.ProductionRule {
			continue
		}
		seen := map[string]bool{}
		for i := range r.Alts {
			tag := r.Alts[i].Tag
			if tag == "" {
				tag = autoTag(r.Name, i+1)
				r.Alts[i].Tag = tag
			}
			if seen[tag] {
				return duplicateVariantError(r.Name, tag)
			}
			seen[tag] = true
		}
	}
	return nil
}

func autoTag(ruleName string, n int) string {
	return ruleName + "-alt-" + strconv.Itoa(n)
}

// markFragments flags token rules that no production reaches, directly or
// through other token rules. Fragments are inlined into the patterns that
// use them and never appear in the token stream. A grammar with no
// productions keeps all its token rules.
func (b *builder) markFragments() {
	hasProductions := false
	reached := map[string]bool{}
	var reach func(name string)
	reach = func(name string) {
		if reached[name] {
			return
		}
		r := b.rule(name)
		if r == nil || r.Kind != grammar.TokenRule {
			return
		}
		reached[name] = true
		walkRefs(r.Alts, reach)
	}

	for _, r := range b.rules {
		if r.Kind != grammar.ProductionRule {
			continue
		}
		hasProductions = true
		walkRefs(r.Alts, reach)
	}
	if !hasProductions {
		return
	}

	for _, r := range b.rules {
		if r.Kind == grammar.TokenRule && !reached[r.Name] {
			r.Fragment = true
		}
	}
}

func (b *builder) rule(name string) *grammar.Rule {
	i, ok := b.index[name]
	if !ok {
		return nil
	}
	return b.rules[i]
}

func walkRefs(alts []grammar.Alternative, fn func(name string)) {
	for _, alt := range alts {
		for _, rep := range alt.Items {
			switch item := rep.Item.(type) {
			case *grammar.SymbolRef:
				fn(item.Name)
			case *grammar.Nested:
				walkRefs(item.Alts, fn)
			}
		}
	}
}
