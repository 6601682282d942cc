package ebx

import (
	"testing"

	"github.com/ebx-lang/ebx/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingEndToEnd(t *testing.T) {
	g, e := CompileGrammar("greeting.ebx", `
_ :== [ #t#n#r] ;
greeting ::= "hi" name ;
name :== [a-z] [a-z0-9]* ;
`)
	require.NoError(t, e)

	toks, e := g.Tokenize("input", "hi bob")
	require.NoError(t, e)
	require.Len(t, toks, 2)
	assert.Equal(t, "hi", toks[0].Name)
	assert.Equal(t, "name", toks[1].Name)

	node, e := g.Parse("", "input", "hi bob")
	require.NoError(t, e)
	assert.Equal(t, "greeting", node.Rule)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "hi", node.Children[0].Text())
	assert.Equal(t, "bob", node.Children[1].Text())
}

func TestCompileErrorPropagates(t *testing.T) {
	_, e := CompileGrammar("bad.ebx", `p ::= missing ;`)
	require.Error(t, e)
	ee, ok := e.(*Error)
	require.True(t, ok)
	assert.GreaterOrEqual(t, ee.Code, GrammarErrors)
	assert.Less(t, ee.Code, LexicalErrors)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	g, e := CompileGrammar("greeting.ebx", `
_ :== ' ' ;
greeting ::= "hi" name ;
name :== [a-z]+ ;
`)
	require.NoError(t, e)

	_, e = g.Parse("", "input.txt", "hi 42")
	require.Error(t, e)
	ee, ok := e.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, "input.txt", ee.SourceName)
	assert.GreaterOrEqual(t, ee.Code, LexicalErrors)
}

func TestLiteralSharedWithNamedToken(t *testing.T) {
	// '=' in the production body derives the name eq; the token rule eq
	// gains it as an alternative, so both spellings tokenize as eq
	g, e := CompileGrammar("assign.ebx", `
eq :== '==' ;
assign ::= '=' ;
`)
	require.NoError(t, e)

	node, e := g.Parse("", "input", "=")
	require.NoError(t, e)
	assert.Equal(t, "=", node.First("eq").Text())

	node, e = g.Parse("", "input", "==")
	require.NoError(t, e)
	assert.Equal(t, "==", node.First("eq").Text())
}

// metaGrammar is the grammar description language described in itself.
const metaGrammar = `
/** A sequence of rule definitions. */
grammar ::= rule+ ;

rule /** A token rule. */ ::= doc? symbol ':==' alts ';' -> token-rule
     /** The whitespace rule. */ | doc? '_' ':==' alts ';' -> whitespace-rule
     /** A production rule. */ | doc? symbol falt salt* ';' -> grammar-rule ;

alts ::= items ( '|' items )* ;

falt ::= doc? '::=' items tag? ;

salt ::= doc? '|' items tag? ;

tag ::= '->' symbol ;

items ::= item+ ;

item ::= ( symbol | str | set | chr | '(' alts ')' ) ( '?' | '*' | '+' )? ;

/** Documentation comment; plain comments are whitespace. */
doc :== '/**' ( [^*] | '*'+ [^*/] )* '*'+ '/' ;

_ :== [ #t#n#r] | '/*' ( [^*] | '*'+ [^*/] )* '*'+ '/' ;

symbol :== [a-z] [a-z0-9#-]* ;

str :== "'" ( [^'##] | chr )* "'" | '"' ( [^"##] | chr )* '"' ;

set :== '[' ( [^#]##] | chr )* ']' ;

chr :== '##' [tnr##'"#-#^#]] | '##x' hexd hexd | '##u' hexd hexd hexd hexd ;

hexd :== [0-9a-f] ;
`

func TestSelfDescription(t *testing.T) {
	g, e := CompileGrammar("meta.ebx", metaGrammar)
	require.NoError(t, e)

	assert.True(t, g.Rules.Rule("hexd").Fragment)
	assert.False(t, g.Rules.Rule("doc").Fragment)
	assert.Equal(t, "A production rule.", g.Rules.Rule("rule").Alts[2].Doc)

	input := `
/** Greets or dismisses somebody. */
greeting ::= "hi" name -> hi | "bye" name -> bye ;
name :== [a-z] [a-z0-9]* ;
_ :== [ #t#n#r] ;
`
	node, e := g.Parse("grammar", "greeting.ebx", input)
	require.NoError(t, e)
	require.Len(t, node.Children, 3)

	first := node.Children[0]
	assert.Equal(t, "grammar-rule", first.Variant)
	require.NotNil(t, first.First("doc"))
	assert.Equal(t, "greeting", first.First("symbol").Text())

	falt := first.First("falt")
	require.NotNil(t, falt)
	require.NotNil(t, falt.First("col-col-eq"))
	assert.Equal(t, "hi", falt.First("tag").First("symbol").Text())
	assert.Len(t, first.Filter("salt"), 1)

	second := node.Children[1]
	assert.Equal(t, "token-rule", second.Variant)
	assert.Nil(t, second.First("doc"))
	require.NotNil(t, second.First("col-eq-eq"))

	third := node.Children[2]
	assert.Equal(t, "whitespace-rule", third.Variant)
	require.NotNil(t, third.First("usc"))
}

func TestSelfDescriptionRejectsBrokenInput(t *testing.T) {
	g, e := CompileGrammar("meta.ebx", metaGrammar)
	require.NoError(t, e)

	_, e = g.Parse("grammar", "broken.ebx", `greeting ::= "hi" name`)
	require.Error(t, e)
}
