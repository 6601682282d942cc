package pattern

import (
	"fmt"
	"strings"
)

// asciiNames maps code points below 128 to slug elements. Letters map to
// themselves (case folded), everything else gets a short mnemonic.
var asciiNames = [...]string{
	"nul", "soh", "stx", "etx", "eot", "enq", "ack", "bel",
	"bs", "ht", "lf", "vt", "ff", "cr", "so", "si",
	"dle", "dc1", "dc2", "dc3", "dc4", "nak", "syn", "etb",
	"can", "em", "sub", "esc", "fs", "gs", "rs", "us",
	"sp", "ex", "dqt", "hsh", "dlr", "prc", "amp", "sqt",
	"lp", "rp", "ast", "pls", "com", "min", "prd", "sl",
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "col", "sem", "lt", "eq", "gt", "qst",
	"at", "a", "b", "c", "d", "e", "f", "g",
	"h", "i", "j", "k", "l", "m", "n", "o",
	"p", "q", "r", "s", "t", "u", "v", "w",
	"x", "y", "z", "lsq", "bsl", "rsq", "crt", "usc",
	"bqt", "a", "b", "c", "d", "e", "f", "g",
	"h", "i", "j", "k", "l", "m", "n", "o",
	"p", "q", "r", "s", "t", "u", "v", "w",
	"x", "y", "z", "lcr", "bar", "rcr", "tld", "del",
}

// Slug derives a symbol name from resolved literal text. Runs of letters
// stay together, any other code point contributes one dash-separated
// element. Identical literal text always produces the identical slug, which
// is what makes lifted literal rules collapse by name.
func Slug(rs []rune) string {
	elements := make([]string, 0, len(rs))
	prevIsLetter := false
	for _, r := range rs {
		var name string
		if int(r) < len(asciiNames) {
			name = asciiNames[r]
		} else {
			name = fmt.Sprintf("u%x", r)
		}
		isLetter := len(name) == 1
		if len(elements) > 0 && isLetter && prevIsLetter {
			elements[len(elements)-1] += name
		} else {
			elements = append(elements, name)
		}
		prevIsLetter = isLetter
	}
	return strings.Join(elements, "-")
}
