package pattern

import (
	"testing"

	err "github.com/ebx-lang/ebx/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, e error) int {
	t.Helper()
	ee, ok := e.(*err.Error)
	require.True(t, ok, "expected *errors.Error, got %T: %v", e, e)
	return ee.Code
}

func TestCompileLiteral(t *testing.T) {
	samples := []struct {
		raw      string
		expected string
	}{
		{`'hi'`, "hi"},
		{`"hi"`, "hi"},
		{`'a#tb'`, "a\tb"},
		{`'#n#r'`, "\n\r"},
		{`'##'`, "#"},
		{`"#'#""`, `'"`},
		{`'#x41#x61'`, "Aa"},
		{`'#u263a'`, "☺"},
		{`'#U0001f600'`, "\U0001f600"},
		{`'#-#^#]'`, "-^]"},
	}
	for _, s := range samples {
		text, e := CompileLiteral(s.raw)
		require.NoError(t, e, "literal %s", s.raw)
		assert.Equal(t, s.expected, string(text), "literal %s", s.raw)
	}
}

func TestCompileLiteralErrors(t *testing.T) {
	samples := []struct {
		raw  string
		code int
	}{
		{`''`, ErrEmptyLiteral},
		{`""`, ErrEmptyLiteral},
		{`'`, ErrEmptyLiteral},
		{`'#q'`, ErrInvalidEscape},
		{`'#xZZ'`, ErrInvalidEscape},
		{`'#x4'`, ErrInvalidEscape},
		{`'#'`, ErrInvalidEscape},
		{`'#Udddddddd'`, ErrInvalidEscape},
	}
	for _, s := range samples {
		_, e := CompileLiteral(s.raw)
		require.Error(t, e, "literal %s", s.raw)
		assert.Equal(t, s.code, errCode(t, e), "literal %s", s.raw)
	}
}

func TestCompileCharLiteral(t *testing.T) {
	samples := []struct {
		raw      string
		expected rune
	}{
		{"#t", '\t'},
		{"#n", '\n'},
		{"##", '#'},
		{"#x20", ' '},
		{"#u263a", '☺'},
	}
	for _, s := range samples {
		r, e := CompileCharLiteral(s.raw)
		require.NoError(t, e, "char literal %s", s.raw)
		assert.Equal(t, s.expected, r, "char literal %s", s.raw)
	}

	_, e := CompileCharLiteral("#q")
	assert.Equal(t, ErrInvalidEscape, errCode(t, e))
	_, e = CompileCharLiteral("#nx")
	assert.Equal(t, ErrInvalidEscape, errCode(t, e))
}

func TestCompileSet(t *testing.T) {
	m, e := CompileSet("[a-z0-9_]")
	require.NoError(t, e)
	for _, r := range "az59_" {
		assert.True(t, m.Match(r), "expected %q to match", r)
	}
	for _, r := range "AZ !" {
		assert.False(t, m.Match(r), "expected %q not to match", r)
	}
}

func TestCompileSetNegated(t *testing.T) {
	m, e := CompileSet("[^#n#r]")
	require.NoError(t, e)
	assert.False(t, m.Match('\n'))
	assert.False(t, m.Match('\r'))
	assert.True(t, m.Match('x'))
	assert.True(t, m.Match(' '))
}

func TestCompileSetEscapes(t *testing.T) {
	m, e := CompileSet("[#^#-#]##]")
	require.NoError(t, e)
	for _, r := range "^-]#" {
		assert.True(t, m.Match(r), "expected %q to match", r)
	}
	assert.False(t, m.Match('a'))
}

func TestCompileSetErrors(t *testing.T) {
	samples := []struct {
		raw  string
		code int
	}{
		{"[z-a]", ErrBadRange},
		{"[a-]", ErrBadSet},
		{"[-a]", ErrBadSet},
		{"[a^b]", ErrBadSet},
		{"[#q]", ErrInvalidEscape},
	}
	for _, s := range samples {
		_, e := CompileSet(s.raw)
		require.Error(t, e, "set %s", s.raw)
		assert.Equal(t, s.code, errCode(t, e), "set %s", s.raw)
	}
}

func TestNegatedEmptySetMatchesAll(t *testing.T) {
	m, e := CompileSet("[^]")
	require.NoError(t, e)
	assert.True(t, m.Match('x'))
	assert.True(t, m.Match('\n'))
}

func TestSlug(t *testing.T) {
	samples := []struct {
		text     string
		expected string
	}{
		{"hi", "hi"},
		{"::=", "col-col-eq"},
		{":==", "col-eq-eq"},
		{"->", "min-gt"},
		{"a+b", "a-pls-b"},
		{"if", "if"},
		{"x2", "x-two"},
		{" ", "sp"},
		{"☺", "u263a"},
	}
	for _, s := range samples {
		assert.Equal(t, s.expected, Slug([]rune(s.text)), "slug of %q", s.text)
	}
}
