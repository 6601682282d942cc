package langdef

import (
	"strings"

	err "github.com/ebx-lang/ebx/errors"
)

// Error codes used by langdef:
const (
	// ErrSyntax indicates malformed grammar description syntax.
	ErrSyntax = err.GrammarErrors + iota

	// ErrConflictingKind indicates a name defined both as a production and as a token/whitespace rule.
	ErrConflictingKind

	// ErrRecursiveToken indicates a token rule that references itself, directly or transitively.
	ErrRecursiveToken

	// ErrDuplicateVariantName indicates two alternatives of one production rule sharing a variant tag.
	ErrDuplicateVariantName

	// ErrUnknownRule indicates a referenced rule that is never defined.
	ErrUnknownRule

	// ErrInvalidReference indicates a token rule referencing a production rule.
	ErrInvalidReference
)

func eofError(t *token) *err.Error {
	return err.FormatPos(t, ErrSyntax, "unexpected end of grammar")
}

func unexpectedTokenError(t *token) *err.Error {
	if t.kind == tEnd {
		return eofError(t)
	}
	return err.FormatPos(t, ErrSyntax, "unexpected %s", t.kindName())
}

func syntaxError(t *token, msg string) *err.Error {
	return err.FormatPos(t, ErrSyntax, "%s", msg)
}

func conflictingKindError(t *token, name, oldKind, newKind string) *err.Error {
	return err.FormatPos(t, ErrConflictingKind, "rule %q already defined as a %s rule, cannot redefine as %s", name, oldKind, newKind)
}

func conflictingLiteralError(name, ruleName string) *err.Error {
	return err.Format(ErrConflictingKind, "literal token %q clashes with production rule %q", name, ruleName)
}

func recursiveTokenError(names []string) *err.Error {
	return err.Format(ErrRecursiveToken, "recursive token rules: "+strings.Join(names, " -> "))
}

func duplicateVariantError(ruleName, tag string) *err.Error {
	return err.Format(ErrDuplicateVariantName, "duplicate variant name %q in rule %q", tag, ruleName)
}

func unknownRuleError(names []string) *err.Error {
	return err.Format(ErrUnknownRule, "undefined rules: "+strings.Join(names, ", "))
}

func invalidReferenceError(tokenRule, ref string) *err.Error {
	return err.Format(ErrInvalidReference, "token rule %q references production rule %q", tokenRule, ref)
}

// patternErrorAt rebinds a pattern compilation error to a source position.
func patternErrorAt(e error, t *token) error {
	ee, ok := e.(*err.Error)
	if !ok {
		return e
	}
	return err.FormatPos(t, ee.Code, "%s", ee.Message)
}

// patternErrorIn attributes a pattern compilation error to a rule.
func patternErrorIn(e error, ruleName string) error {
	ee, ok := e.(*err.Error)
	if !ok {
		return e
	}
	return err.Format(ee.Code, "%s in rule %q", ee.Message, ruleName)
}
