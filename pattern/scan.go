package pattern

// Structural scanners locate the end of a pattern token in raw text
// without validating escapes; validation happens when the token body is
// compiled. A # always shields the next character, so an escaped quote
// or bracket never terminates the token.

// ScanString scans a quoted literal starting at rs[pos] (a ' or " rune)
// and returns the offset just past the closing quote.
func ScanString(rs []rune, pos int) (end int, ok bool) {
	quote := rs[pos]
	i := pos + 1
	for i < len(rs) {
		switch rs[i] {
		case quote:
			return i + 1, true
		case '#':
			i += 2
		default:
			i++
		}
	}
	return pos, false
}

// ScanSet scans a [...] character set starting at rs[pos] and returns
// the offset just past the closing bracket.
func ScanSet(rs []rune, pos int) (end int, ok bool) {
	i := pos + 1
	if i < len(rs) && rs[i] == '^' {
		i++
	}
	for i < len(rs) {
		switch rs[i] {
		case ']':
			return i + 1, true
		case '#':
			i += 2
		default:
			i++
		}
	}
	return pos, false
}

// ScanCharLit scans a bare character literal (# escape) starting at rs[pos]
// and returns the offset just past it. Hex forms consume as many hex digits
// as are present up to the form's width; CompileCharLiteral reports short forms.
func ScanCharLit(rs []rune, pos int) (end int) {
	i := pos + 1
	if i >= len(rs) {
		return i
	}
	c := rs[i]
	i++
	if hexLen, ok := hexEscapes[c]; ok {
		for k := 0; k < hexLen && i < len(rs) && isHexDigit(rs[i]); k++ {
			i++
		}
	}
	return i
}

// ScanComment scans a /* ... */ comment starting at rs[pos] and returns the
// offset just past the closing */. The body consumes either one non-star
// rune or a run of stars not followed by a slash, so a star run inside the
// body never terminates the comment early and two adjacent comments are
// never merged into one.
func ScanComment(rs []rune, pos int) (end int, ok bool) {
	if pos+1 >= len(rs) || rs[pos] != '/' || rs[pos+1] != '*' {
		return pos, false
	}
	i := pos + 2
	for i < len(rs) {
		if rs[i] != '*' {
			i++
			continue
		}
		j := i
		for j < len(rs) && rs[j] == '*' {
			j++
		}
		if j < len(rs) && rs[j] == '/' {
			return j + 1, true
		}
		i = j
	}
	return pos, false
}
