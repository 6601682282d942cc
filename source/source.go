// Package source defines in-memory source text used by the lexer and parser.
package source

import (
	"fmt"
	"sort"
	"strings"
)

// Loc is a position inside a source text: 1-based line and column
// plus the absolute rune offset.
type Loc struct {
	Line, Col, Offs int
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Span is a half-open region of a source text.
type Span struct {
	A, B Loc
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.A, s.B)
}

// Union returns the smallest span covering both s and t.
func (s Span) Union(t Span) Span {
	r := s
	if t.A.Offs < r.A.Offs {
		r.A = t.A
	}
	if t.B.Offs > r.B.Offs {
		r.B = t.B
	}
	return r
}

// Source is an immutable named source text decoded to runes.
// All offsets used by this package are rune offsets, not byte offsets.
type Source struct {
	name       string
	runes      []rune
	lineStarts []int
}

// New creates new Source. content must be valid UTF-8 text.
func New(name, content string) *Source {
	runes := []rune(content)
	lineStarts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Source{name, runes, lineStarts}
}

func (s *Source) Name() string {
	return s.name
}

// Runes returns source content. The returned slice must not be modified.
func (s *Source) Runes() []rune {
	return s.runes
}

// Len returns source length in runes.
func (s *Source) Len() int {
	return len(s.runes)
}

// Text returns the source text covered by span.
func (s *Source) Text(sp Span) string {
	a, b := sp.A.Offs, sp.B.Offs
	if a < 0 {
		a = 0
	}
	if b > len(s.runes) {
		b = len(s.runes)
	}
	if a >= b {
		return ""
	}
	return string(s.runes[a:b])
}

// LineCol returns 1-based line and column for a rune offset.
// Offsets outside the source are clamped.
func (s *Source) LineCol(offs int) (line, col int) {
	if offs < 0 {
		offs = 0
	}
	if offs > len(s.runes) {
		offs = len(s.runes)
	}
	i := sort.SearchInts(s.lineStarts, offs+1) - 1
	return i + 1, offs - s.lineStarts[i] + 1
}

// Loc returns the full location for a rune offset.
func (s *Source) Loc(offs int) Loc {
	line, col := s.LineCol(offs)
	return Loc{line, col, offs}
}

// SpanAt returns a zero-width span at a rune offset.
func (s *Source) SpanAt(offs int) Span {
	l := s.Loc(offs)
	return Span{l, l}
}

// SpanBetween returns the span covering [a, b).
func (s *Source) SpanBetween(a, b int) Span {
	return Span{s.Loc(a), s.Loc(b)}
}

func (s *Source) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	fmt.Fprintf(&b, " (%d runes)", len(s.runes))
	return b.String()
}
