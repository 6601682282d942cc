package langdef

import (
	"strings"

	"github.com/ebx-lang/ebx/pattern"
	"github.com/ebx-lang/ebx/source"
)

type tokKind int

const (
	tEnd tokKind = iota
	tSymbol
	tUnderscore
	tColEqEq
	tColColEq
	tSem
	tBar
	tArrow
	tQst
	tAst
	tPls
	tLp
	tRp
	tString
	tSet
	tCharLit
	tDoc
)

var tokKindNames = [...]string{
	"end of grammar", "symbol", "\"_\"", "\":==\"", "\"::=\"", "\";\"", "\"|\"",
	"\"->\"", "\"?\"", "\"*\"", "\"+\"", "\"(\"", "\")\"",
	"string literal", "character set", "character literal", "doc comment",
}

// token is a lexeme of the meta-grammar itself, produced by the fixed
// bootstrap scanner.
type token struct {
	kind tokKind
	text string
	doc  string // cleaned body, tDoc only
	span source.Span
	src  *source.Source
}

func (t *token) kindName() string {
	return tokKindNames[t.kind]
}

func (t *token) SourceName() string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

func (t *token) Line() int {
	return t.span.A.Line
}

func (t *token) Col() int {
	return t.span.A.Col
}

// scanner is the hand-built bootstrap tokenizer for the meta-grammar.
// The general engine compiles grammars that could describe this very
// language, but the bootstrap stays fixed to avoid a circular dependency.
type scanner struct {
	src *source.Source
	rs  []rune
	pos int
}

func newScanner(src *source.Source) *scanner {
	return &scanner{src: src, rs: src.Runes()}
}

func (s *scanner) token(kind tokKind, start, end int) *token {
	return &token{
		kind: kind,
		text: string(s.rs[start:end]),
		span: s.src.SpanBetween(start, end),
		src:  s.src,
	}
}

func (s *scanner) at(pos int) *token {
	return &token{kind: tEnd, span: s.src.SpanAt(pos), src: s.src}
}

// next returns the next meta-grammar token, skipping whitespace and plain
// comments. Doc comments (/** ... */, at least five runes long) are tokens.
func (s *scanner) next() (*token, error) {
	for s.pos < len(s.rs) {
		r := s.rs[s.pos]
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			s.pos++
			continue
		}
		if r == '/' && s.pos+1 < len(s.rs) && s.rs[s.pos+1] == '*' {
			start := s.pos
			end, ok := pattern.ScanComment(s.rs, s.pos)
			if !ok {
				return nil, syntaxError(s.at(start), "unterminated comment")
			}
			if end-start >= 5 && s.rs[start+2] == '*' {
				t := s.token(tDoc, start, end)
				t.doc = cleanDoc(t.text)
				s.pos = end
				return t, nil
			}
			s.pos = end
			continue
		}
		break
	}

	if s.pos >= len(s.rs) {
		return s.token(tEnd, s.pos, s.pos), nil
	}

	start := s.pos
	switch r := s.rs[s.pos]; {
	case r >= 'a' && r <= 'z':
		end := start + 1
		for end < len(s.rs) && isSymbolRune(s.rs[end]) {
			end++
		}
		s.pos = end
		return s.token(tSymbol, start, end), nil

	case r == '_':
		s.pos++
		return s.token(tUnderscore, start, s.pos), nil

	case r == ':':
		if start+2 < len(s.rs) && s.rs[start+1] == '=' && s.rs[start+2] == '=' {
			s.pos = start + 3
			return s.token(tColEqEq, start, s.pos), nil
		}
		if start+2 < len(s.rs) && s.rs[start+1] == ':' && s.rs[start+2] == '=' {
			s.pos = start + 3
			return s.token(tColColEq, start, s.pos), nil
		}
		return nil, syntaxError(s.at(start), "expected \":==\" or \"::=\"")

	case r == '-':
		if start+1 < len(s.rs) && s.rs[start+1] == '>' {
			s.pos = start + 2
			return s.token(tArrow, start, s.pos), nil
		}
		return nil, syntaxError(s.at(start), "expected \"->\"")

	case r == ';':
		s.pos++
		return s.token(tSem, start, s.pos), nil
	case r == '|':
		s.pos++
		return s.token(tBar, start, s.pos), nil
	case r == '?':
		s.pos++
		return s.token(tQst, start, s.pos), nil
	case r == '*':
		s.pos++
		return s.token(tAst, start, s.pos), nil
	case r == '+':
		s.pos++
		return s.token(tPls, start, s.pos), nil
	case r == '(':
		s.pos++
		return s.token(tLp, start, s.pos), nil
	case r == ')':
		s.pos++
		return s.token(tRp, start, s.pos), nil

	case r == '\'' || r == '"':
		end, ok := pattern.ScanString(s.rs, start)
		if !ok {
			return nil, syntaxError(s.at(start), "unterminated string literal")
		}
		s.pos = end
		return s.token(tString, start, end), nil

	case r == '[':
		end, ok := pattern.ScanSet(s.rs, start)
		if !ok {
			return nil, syntaxError(s.at(start), "unterminated character set")
		}
		s.pos = end
		return s.token(tSet, start, end), nil

	case r == '#':
		end := pattern.ScanCharLit(s.rs, start)
		s.pos = end
		return s.token(tCharLit, start, end), nil
	}

	return nil, syntaxError(s.at(start), "unexpected character "+quoteRune(s.rs[start]))
}

func isSymbolRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-'
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

// cleanDoc strips the /** */ framing and the decorative leading * from each
// line of a doc comment body.
func cleanDoc(text string) string {
	body := strings.TrimSpace(text[3 : len(text)-2])
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = line[1:]
			if strings.HasPrefix(line, " ") {
				line = line[1:]
			}
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
