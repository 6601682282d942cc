package langdef

import (
	"testing"

	err "github.com/ebx-lang/ebx/errors"
	"github.com/ebx-lang/ebx/grammar"
	"github.com/ebx-lang/ebx/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, text string) *grammar.RuleSet {
	t.Helper()
	rs, e := ParseString("test", text)
	require.NoError(t, e)
	return rs
}

func compileError(t *testing.T, text string, code int) {
	t.Helper()
	_, e := ParseString("test", text)
	require.Error(t, e)
	ee, ok := e.(*err.Error)
	require.True(t, ok, "expected *errors.Error, got %T: %v", e, e)
	assert.Equal(t, code, ee.Code, "error was: %v", e)
}

const greetingGrammar = `
_ :== [ #t#n#r] ;
name :== [a-z] [a-z0-9]* ;
greeting ::= "hi" name ;
`

func TestBasicGrammar(t *testing.T) {
	rs := compile(t, greetingGrammar)

	assert.Equal(t, "_", rs.Whitespace)
	assert.Equal(t, "greeting", rs.Start)
	assert.Equal(t, []string{"name", "hi"}, rs.TokenTable)

	r := rs.Rule("greeting")
	require.NotNil(t, r)
	assert.Equal(t, grammar.ProductionRule, r.Kind)

	hi := rs.Rule("hi")
	require.NotNil(t, hi)
	assert.Equal(t, grammar.TokenRule, hi.Kind)
	assert.True(t, hi.Synthetic)

	assert.Nil(t, rs.Rule("nope"))
}

func TestTokenTableOrder(t *testing.T) {
	// synthetic "hi" is lifted at its point of use, after name but
	// before num
	rs := compile(t, `
name :== [a-z]+ ;
greeting ::= "hi" name ;
num :== [0-9]+ ;
`)
	assert.Equal(t, []string{"name", "hi", "num"}, rs.TokenTable)
}

func TestRuleMerging(t *testing.T) {
	rs := compile(t, `
num :== [0-9]+ ;
kw ::= "if" ;
num :== '0x' [0-9a-f]+ ;
`)
	r := rs.Rule("num")
	require.NotNil(t, r)
	assert.Len(t, r.Alts, 2)
	assert.Equal(t, 0, r.DefIndex, "merged rule keeps earliest definition index")
	assert.Equal(t, []string{"num", "if"}, rs.TokenTable)
}

func TestSyntheticDedupe(t *testing.T) {
	rs := compile(t, `
a ::= "::=" ;
b ::= '::=' ;
`)
	r := rs.Rule("col-col-eq")
	require.NotNil(t, r)
	assert.True(t, r.Synthetic)
	assert.Len(t, r.Alts, 1)
	assert.Equal(t, "Implicit token.", r.Doc)
}

func TestSyntheticReusesExplicitToken(t *testing.T) {
	rs := compile(t, `
hi :== 'hi' ;
greeting ::= "hi" ;
`)
	r := rs.Rule("hi")
	require.NotNil(t, r)
	assert.False(t, r.Synthetic)
	assert.Len(t, r.Alts, 1)
}

func TestLiteralJoinsNamedTokenRule(t *testing.T) {
	// '=' slugs to eq, which is already a token rule with a different
	// pattern; the literal joins its alternation
	rs := compile(t, `
eq :== '==' ;
assign ::= '=' ;
`)
	r := rs.Rule("eq")
	require.NotNil(t, r)
	assert.False(t, r.Synthetic)
	require.Len(t, r.Alts, 2)

	// same outcome when the literal is lifted before the rule is defined
	rs = compile(t, `
assign ::= '=' ;
eq :== '==' ;
`)
	r = rs.Rule("eq")
	require.NotNil(t, r)
	assert.False(t, r.Synthetic)
	require.Len(t, r.Alts, 2)
}

func TestCharLitAndSetInProduction(t *testing.T) {
	rs := compile(t, `p ::= #n [a-z] ;`)
	require.NotNil(t, rs.Rule("lf"))
	require.NotNil(t, rs.Rule("lsq-a-min-z-rsq"))
	assert.True(t, rs.Rule("lsq-a-min-z-rsq").Synthetic)
}

func TestVariantTags(t *testing.T) {
	rs := compile(t, `
num :== [0-9]+ ;
expr ::= num -> plain
       | num '+' num -> sum
       | num '-' num ;
`)
	r := rs.Rule("expr")
	require.NotNil(t, r)
	require.Len(t, r.Alts, 3)
	assert.Equal(t, "plain", r.Alts[0].Tag)
	assert.Equal(t, "sum", r.Alts[1].Tag)
	assert.Equal(t, "expr-alt-3", r.Alts[2].Tag)
}

func TestDuplicateVariantTag(t *testing.T) {
	compileError(t, `
num :== [0-9]+ ;
expr ::= num -> x | num num -> x ;
`, ErrDuplicateVariantName)
}

func TestAutoTagCollision(t *testing.T) {
	compileError(t, `
num :== [0-9]+ ;
expr ::= num -> expr-alt-2 | num num ;
`, ErrDuplicateVariantName)
}

func TestConflictingKind(t *testing.T) {
	compileError(t, `
x :== [0-9] ;
x ::= x x ;
`, ErrConflictingKind)
}

func TestLiteralClashesWithProduction(t *testing.T) {
	compileError(t, `
hi ::= "hello" ;
greeting ::= "hi" ;
`, ErrConflictingKind)
}

func TestUnknownRule(t *testing.T) {
	compileError(t, `p ::= missing ;`, ErrUnknownRule)
}

func TestTokenReferencesProduction(t *testing.T) {
	compileError(t, `
p ::= tok ;
tok :== p ;
`, ErrInvalidReference)
}

func TestRecursiveToken(t *testing.T) {
	compileError(t, `tok :== 'x' tok? ;`, ErrRecursiveToken)
	compileError(t, `
a :== 'x' b? ;
b :== 'y' a? ;
`, ErrRecursiveToken)
}

func TestFragments(t *testing.T) {
	rs := compile(t, `
digit :== [0-9] ;
num :== digit+ ;
p ::= num ;
`)
	require.NotNil(t, rs.Rule("digit"))
	assert.True(t, rs.Rule("digit").Fragment)
	assert.False(t, rs.Rule("num").Fragment)
	assert.Equal(t, []string{"num"}, rs.TokenTable)
}

func TestUnreferencedTokenIsFragment(t *testing.T) {
	rs := compile(t, `
num :== [0-9]+ ;
stray :== 'x' ;
p ::= num ;
`)
	assert.True(t, rs.Rule("stray").Fragment)
	assert.Equal(t, []string{"num"}, rs.TokenTable)
}

func TestNoProductionsKeepsAllTokens(t *testing.T) {
	rs := compile(t, `
digit :== [0-9] ;
num :== digit+ ;
`)
	assert.False(t, rs.Rule("digit").Fragment)
	assert.Equal(t, []string{"digit", "num"}, rs.TokenTable)
	assert.Equal(t, "", rs.Start)
}

func TestDocs(t *testing.T) {
	// alternative docs sit just before the ::= or | opening their branch
	rs := compile(t, `
/** A decimal number. */
num :== [0-9]+ ;

/**
 * An expression.
 * Alternatives are tried in order.
 */
expr /** Just a number. */ ::= num -> plain
     /** A sum of two numbers. */ | num '+' num -> sum
     | num '-' num -> diff ;
`)
	assert.Equal(t, "A decimal number.", rs.Rule("num").Doc)
	assert.Equal(t, "An expression.\nAlternatives are tried in order.", rs.Rule("expr").Doc)
	assert.Equal(t, "Just a number.", rs.Rule("expr").Alts[0].Doc)
	assert.Equal(t, "A sum of two numbers.", rs.Rule("expr").Alts[1].Doc)
	assert.Equal(t, "", rs.Rule("expr").Alts[2].Doc)
}

func TestMisplacedDoc(t *testing.T) {
	compileError(t, `num /** nope */ :== [0-9]+ ;`, ErrSyntax)
	compileError(t, `
num :== [0-9]+ ;
expr ::= num /** nope */ -> plain ;
`, ErrSyntax)
}

func TestPlainCommentsIgnored(t *testing.T) {
	rs := compile(t, `
/* not a doc */
num :== [0-9]+ ; /**/ /***/
p ::= num ;
`)
	assert.Equal(t, "", rs.Rule("num").Doc)
}

func TestEmptyLiteral(t *testing.T) {
	compileError(t, `tok :== '' ;`, pattern.ErrEmptyLiteral)
	compileError(t, `p ::= "" ;`, pattern.ErrEmptyLiteral)
}

func TestBadEscapeInTokenRule(t *testing.T) {
	compileError(t, `tok :== '#q' ;`, pattern.ErrInvalidEscape)
}

func TestSyntaxErrors(t *testing.T) {
	compileError(t, `p ::= `, ErrSyntax)
	compileError(t, `p == x ;`, ErrSyntax)
	compileError(t, `::= x ;`, ErrSyntax)
	compileError(t, `p ::= | x ;`, ErrSyntax)
	compileError(t, `p ::= (x ;`, ErrSyntax)
	compileError(t, `tok :== 'abc ;`, ErrSyntax)
	compileError(t, `tok :== [abc ;`, ErrSyntax)
	compileError(t, `/* never closed`, ErrSyntax)
	compileError(t, `p ::= x -> ;`, ErrSyntax)
	compileError(t, `_ ::= 'x' ;`, ErrSyntax)
}

func TestWhitespaceOnlyReferences(t *testing.T) {
	// blank is reachable only through whitespace, so it is inlined
	rs := compile(t, `
blank :== [ #t] ;
_ :== blank ;
num :== [0-9]+ ;
p ::= num ;
`)
	assert.True(t, rs.Rule("blank").Fragment)
	assert.Equal(t, []string{"num"}, rs.TokenTable)
}
