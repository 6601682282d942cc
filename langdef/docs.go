/*
Package langdef compiles grammar description text into a grammar.RuleSet
ready for tokenizing and parsing.

A grammar description is a sequence of rule definitions. Token rules define
the lexical alphabet:

	name :== [a-z] ([a-z] | [0-9])* ;

Production rules define the syntax tree, with ordered alternatives that may
carry variant tags:

	greeting ::= "hi" name -> casual
	           | "hello" name -> formal ;

A rule named _ defines whitespace, matched and discarded between tokens:

	_ :== ' ' | #t | #n | #r ;

Rule bodies combine string literals ('...' or "..."), character literals
(#n, #x41, #u263A), character sets ([a-z0-9], [^#n]), references to other
rules, parenthesized alternations, and the ?, * and + quantifiers.

Literals and character sets inside production bodies are lifted into
implicit token rules whose names derive from their text, so "::=" in a
production behaves exactly like an explicit token rule named col-col-eq.
Token rules referenced only by other token rules are fragments: their
patterns are inlined and they never appear in the token stream.

Defining the same name twice extends the rule with more alternatives; a
name cannot be both a token and a production. Comments opened with /** are
doc comments. Placed before a rule name they document the rule; placed
before the ::= or | opening an alternative they document that alternative.
*/
package langdef
