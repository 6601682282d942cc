package parser

import (
	"strings"

	err "github.com/ebx-lang/ebx/errors"
)

// Error codes used by parser:
const (
	// ErrNoAlternative indicates input that no alternative of the expected rules matches.
	ErrNoAlternative = err.SyntaxErrors + iota

	// ErrNoProgress indicates a rule that re-enters itself without consuming input.
	ErrNoProgress

	// ErrTrailingInput indicates tokens left over after the start rule matched.
	ErrTrailingInput

	// ErrUnknownRule indicates a start rule name not present in the grammar.
	ErrUnknownRule
)

func noAlternativeError(srcName string, line, col int, expected []string) *err.Error {
	msg := "unexpected input"
	if len(expected) > 0 {
		msg += ", expecting " + strings.Join(expected, " | ")
	}
	return err.New(ErrNoAlternative, msg, srcName, line, col)
}

func noProgressError(srcName, ruleName string, line, col int) *err.Error {
	return err.New(ErrNoProgress, "rule "+ruleName+" loops without consuming input", srcName, line, col)
}

func trailingInputError(srcName, text string, line, col int) *err.Error {
	return err.New(ErrTrailingInput, "unexpected "+text+" after complete input", srcName, line, col)
}

func unknownRuleError(name string) *err.Error {
	return err.Format(ErrUnknownRule, "unknown rule %q", name)
}
