package pattern

import (
	err "github.com/ebx-lang/ebx/errors"
)

// Error codes used by pattern:
const (
	// ErrInvalidEscape indicates a # escape that is not one of the documented forms.
	ErrInvalidEscape = err.GrammarErrors + 60 + iota

	// ErrEmptyLiteral indicates an empty string literal; literals must match at least one character.
	ErrEmptyLiteral

	// ErrBadRange indicates a character range whose lower bound is above its upper bound.
	ErrBadRange

	// ErrBadSet indicates a malformed character set body.
	ErrBadSet
)

func invalidEscapeError(text string) *err.Error {
	return err.Format(ErrInvalidEscape, "invalid escape %q", text)
}

func emptyLiteralError() *err.Error {
	return err.Format(ErrEmptyLiteral, "empty string literal")
}

func badRangeError(lo, hi rune) *err.Error {
	return err.Format(ErrBadRange, "invalid character range %q-%q", lo, hi)
}

func badSetError(text string) *err.Error {
	return err.Format(ErrBadSet, "malformed character set %s", text)
}
