// Package pattern compiles literal, character-set, and character-literal
// text into matchers over single code points.
//
// Escapes start with # and resolve to exactly one code point:
// #t, #n, #r, ##, #', #", #-, #^, #], #xHH, #uHHHH, and #UHHHHHHHH.
// Any other character after # is an error.
package pattern

import (
	"strconv"
	"unicode/utf8"
)

// Range is an inclusive code point range.
type Range struct {
	Lo, Hi rune
}

// SetMatcher is a compiled predicate over a single code point.
// A negated matcher with no ranges matches any code point.
type SetMatcher struct {
	Negated bool
	Ranges  []Range
}

// Match reports whether r belongs to the set.
func (m *SetMatcher) Match(r rune) bool {
	for _, rg := range m.Ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return !m.Negated
		}
	}
	return m.Negated
}

var plainEscapes = map[rune]rune{
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'#':  '#',
	'\'': '\'',
	'"':  '"',
	'-':  '-',
	'^':  '^',
	']':  ']',
}

var hexEscapes = map[rune]int{
	'x': 2,
	'u': 4,
	'U': 8,
}

func isHexDigit(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

// ScanChar resolves one character-or-escape unit at rs[pos] and returns
// the resolved code point and the position just past the unit.
func ScanChar(rs []rune, pos int) (r rune, next int, err error) {
	if rs[pos] != '#' {
		return rs[pos], pos + 1, nil
	}
	if pos+1 >= len(rs) {
		return 0, pos, invalidEscapeError("#")
	}

	c := rs[pos+1]
	if sub, ok := plainEscapes[c]; ok {
		return sub, pos + 2, nil
	}

	hexLen, ok := hexEscapes[c]
	if !ok {
		return 0, pos, invalidEscapeError(string(rs[pos : pos+2]))
	}
	if pos+2+hexLen > len(rs) {
		return 0, pos, invalidEscapeError(string(rs[pos:]))
	}
	digits := rs[pos+2 : pos+2+hexLen]
	for _, d := range digits {
		if !isHexDigit(d) {
			return 0, pos, invalidEscapeError(string(rs[pos : pos+2+hexLen]))
		}
	}
	cp, e := strconv.ParseUint(string(digits), 16, 32)
	if e != nil || !utf8.ValidRune(rune(cp)) {
		return 0, pos, invalidEscapeError(string(rs[pos : pos+2+hexLen]))
	}
	return rune(cp), pos + 2 + hexLen, nil
}

// CompileLiteral resolves the body of a quoted string literal ('...' or "...")
// into the code point sequence it matches. raw includes the quotes.
// An empty body is an error; ? exists for optionality.
func CompileLiteral(raw string) ([]rune, error) {
	rs := []rune(raw)
	if len(rs) < 2 {
		return nil, emptyLiteralError()
	}
	body := rs[1 : len(rs)-1]
	result := make([]rune, 0, len(body))
	pos := 0
	for pos < len(body) {
		r, next, e := ScanChar(body, pos)
		if e != nil {
			return nil, e
		}
		result = append(result, r)
		pos = next
	}
	if len(result) == 0 {
		return nil, emptyLiteralError()
	}
	return result, nil
}

// CompileCharLiteral resolves a bare character literal (a single # escape).
func CompileCharLiteral(raw string) (rune, error) {
	rs := []rune(raw)
	r, next, e := ScanChar(rs, 0)
	if e != nil {
		return 0, e
	}
	if next != len(rs) {
		return 0, invalidEscapeError(raw)
	}
	return r, nil
}

// CompileSet compiles a [...] character set. raw includes the brackets.
// The body is a sequence of single units or lo-hi ranges; a leading ^
// negates the set. The characters ^ - ] # must be escaped inside a set.
func CompileSet(raw string) (*SetMatcher, error) {
	rs := []rune(raw)
	if len(rs) < 2 || rs[0] != '[' || rs[len(rs)-1] != ']' {
		return nil, badSetError(raw)
	}
	body := rs[1 : len(rs)-1]
	m := &SetMatcher{}
	pos := 0
	if len(body) > 0 && body[0] == '^' {
		m.Negated = true
		pos = 1
	}

	for pos < len(body) {
		lo, next, e := scanSetChar(body, pos, raw)
		if e != nil {
			return nil, e
		}
		pos = next
		hi := lo
		if pos < len(body) && body[pos] == '-' {
			hi, next, e = scanSetChar(body, pos+1, raw)
			if e != nil {
				return nil, e
			}
			pos = next
		}
		if lo > hi {
			return nil, badRangeError(lo, hi)
		}
		m.Ranges = append(m.Ranges, Range{lo, hi})
	}
	return m, nil
}

func scanSetChar(body []rune, pos int, raw string) (rune, int, error) {
	if pos >= len(body) {
		return 0, pos, badSetError(raw)
	}
	switch body[pos] {
	case '^', '-', ']':
		return 0, pos, badSetError(raw)
	}
	return ScanChar(body, pos)
}
