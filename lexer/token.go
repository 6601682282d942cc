package lexer

import (
	"fmt"

	"github.com/ebx-lang/ebx/source"
)

// Token is one lexeme cut from the input. Name is the token rule that
// matched it; whitespace never produces tokens.
type Token struct {
	Name string
	Text string
	Span source.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @ %s", t.Name, t.Text, t.Span.A)
}
