package lexer

import (
	err "github.com/ebx-lang/ebx/errors"
	"github.com/ebx-lang/ebx/source"
)

// Error codes used by lexer:
const (
	// ErrUnrecognizedChar indicates input no token or whitespace rule matches.
	ErrUnrecognizedChar = err.LexicalErrors + iota
)

func unrecognizedCharError(src *source.Source, pos int) *err.Error {
	line, col := src.LineCol(pos)
	r := src.Runes()[pos]
	return err.New(ErrUnrecognizedChar, "unrecognized character '"+string(r)+"'", src.Name(), line, col)
}
