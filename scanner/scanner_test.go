package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	s := New(src)
	var toks []Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func texts(toks []Token) []string {
	var out []string
	for _, tok := range toks {
		if tok.Kind != EOF {
			out = append(out, tok.Text)
		}
	}
	return out
}

func TestNextTokens(t *testing.T) {
	toks := scanAll(t, "const x = a?.b ?? 'hi'; // trailing\n")
	want := []Token{
		{Kind: Ident, Text: "const", Pos: Position{1, 1}},
		{Kind: Ident, Text: "x", Pos: Position{1, 7}},
		{Kind: Punct, Text: "=", Pos: Position{1, 9}},
		{Kind: Ident, Text: "a", Pos: Position{1, 11}},
		{Kind: Punct, Text: "?.", Pos: Position{1, 12}},
		{Kind: Ident, Text: "b", Pos: Position{1, 14}},
		{Kind: Punct, Text: "??", Pos: Position{1, 16}},
		{Kind: String, Text: "hi", Pos: Position{1, 19}},
		{Kind: Punct, Text: ";", Pos: Position{1, 23}},
		{Kind: EOF, Pos: Position{2, 1}, NewlineBefore: true},
	}
	assert.Equal(t, want, toks)
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	toks := scanAll(t, "a === b !== c ... d => e **= f >>= g")
	assert.Equal(t, []string{"a", "===", "b", "!==", "c", "...", "d", "=>", "e", "**=", "f", ">>=", "g"}, texts(toks))
}

func TestConditionalBeforeDecimal(t *testing.T) {
	toks := scanAll(t, "a?.5:1")
	assert.Equal(t, []string{"a", "?", ".5", ":", "1"}, texts(toks))
	assert.Equal(t, Number, toks[2].Kind)
}

func TestNewlineBefore(t *testing.T) {
	toks := scanAll(t, "a /* one line */ b /* two\n lines */ c\nd")
	require.Len(t, toks, 5)
	assert.False(t, toks[1].NewlineBefore)
	assert.True(t, toks[2].NewlineBefore)
	assert.True(t, toks[3].NewlineBefore)
	assert.Equal(t, Position{3, 1}, toks[3].Pos)
}

func TestNumbers(t *testing.T) {
	toks := scanAll(t, "0x1F 0b101 1_000 3.14 .5 1e-3 2E+4 7.")
	assert.Equal(t, []string{"0x1F", "0b101", "1_000", "3.14", ".5", "1e-3", "2E+4", "7."}, texts(toks))
	for _, tok := range toks[:len(toks)-1] {
		assert.Equal(t, Number, tok.Kind, tok.Text)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := scanAll(t, `'a\nb' "\x41B\u{43}" 'it\'s' "tab\there" 'q\"'`)
	assert.Equal(t, []string{"a\nb", "ABC", "it's", "tab\there", `q"`}, texts(toks))
}

func TestMultibyteColumns(t *testing.T) {
	toks := scanAll(t, "ñame x")
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "ñame", toks[0].Text)
	assert.Equal(t, Position{1, 6}, toks[1].Pos)
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"'abc", "1:1: unterminated string literal"},
		{"x = 'abc\n'", "1:5: unterminated string literal"},
		{"/* open", "1:1: unterminated comment"},
		{"a \\ b", `1:3: unexpected character '\\'`},
		{`"\xZZ"`, "1:4: malformed escape sequence"},
	}
	for _, tt := range tests {
		s := New(tt.src)
		var err error
		for err == nil {
			var tok Token
			tok, err = s.Next()
			if tok.Kind == EOF && err == nil {
				break
			}
		}
		require.Error(t, err, tt.src)
		assert.Equal(t, tt.want, err.Error(), tt.src)
	}
}

func TestTokenHelpers(t *testing.T) {
	assert.True(t, Token{Kind: Punct, Text: "{"}.Is("{"))
	assert.True(t, Token{Kind: Ident, Text: "from"}.Is("from"))
	assert.False(t, Token{Kind: String, Text: "from"}.Is("from"))

	assert.Equal(t, "end of input", Token{Kind: EOF}.String())
	assert.Equal(t, `"a\"b"`, Token{Kind: String, Text: `a"b`}.String())
	assert.Equal(t, `"=>"`, Token{Kind: Punct, Text: "=>"}.String())
}

func TestCopySnapshotsCursor(t *testing.T) {
	s := New("a b")
	snap := *s
	_, err := s.Next()
	require.NoError(t, err)
	tok, err := snap.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Text)
	tok, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok.Text)
}

func TestJSXReaders(t *testing.T) {
	s := New(`data-id="x" aria-label='y'>some text{`)

	assert.Equal(t, "data-id", s.ReadJSXName())
	assert.True(t, s.LookingAt("="))
	s.Advance(1)
	v, err := s.ReadJSXString()
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	s.SkipSpace()
	assert.Equal(t, "aria-label", s.ReadJSXName())
	s.Advance(1)
	v, err = s.ReadJSXString()
	require.NoError(t, err)
	assert.Equal(t, "y", v)

	ch, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('>'), ch)
	s.Advance(1)
	assert.Equal(t, "some text", s.ReadJSXText())
	assert.True(t, s.LookingAt("{"))
	assert.Equal(t, 36, s.Offset())
}

func TestJSXReaderErrors(t *testing.T) {
	assert.Empty(t, New("-x").ReadJSXName())

	_, err := New(`"open`).ReadJSXString()
	assert.EqualError(t, err, "1:1: unterminated attribute value")

	_, err = New("{x}").ReadJSXString()
	assert.EqualError(t, err, "1:1: expected quoted attribute value")
}

func TestReadJSXTextTracksLines(t *testing.T) {
	s := New("one\ntwo<")
	assert.Equal(t, "one\ntwo", s.ReadJSXText())
	assert.Equal(t, Position{2, 4}, s.Pos())
	assert.False(t, s.AtEOF())
}

func TestReadTemplateChunk(t *testing.T) {
	s := New("Hi ${name}!`")
	raw, closed, err := s.ReadTemplateChunk()
	require.NoError(t, err)
	assert.Equal(t, "Hi ", raw)
	assert.False(t, closed)

	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "name", tok.Text)
	tok, err = s.Next()
	require.NoError(t, err)
	assert.True(t, tok.Is("}"))

	raw, closed, err = s.ReadTemplateChunk()
	require.NoError(t, err)
	assert.Equal(t, "!", raw)
	assert.True(t, closed)
	assert.True(t, s.AtEOF())
}

func TestReadTemplateChunkEscapes(t *testing.T) {
	raw, closed, err := New("a\\`b\\${c}`").ReadTemplateChunk()
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, "a\\`b\\${c}", raw)

	_, _, err = New("never closed").ReadTemplateChunk()
	assert.EqualError(t, err, "1:1: unterminated template literal")
}

func TestReadRegExp(t *testing.T) {
	tests := []struct {
		src, pattern, flags, rest string
	}{
		{`ab+c/g.test(x)`, `ab+c`, "g", ".test(x)"},
		{`[/]\/x/`, `[/]\/x`, "", ""},
		{`^\d{3}$/iu;`, `^\d{3}$`, "iu", ";"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := New(tt.src)
			pattern, flags, err := s.ReadRegExp()
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, pattern)
			assert.Equal(t, tt.flags, flags)
			assert.Equal(t, tt.rest, tt.src[s.Offset():])
		})
	}

	_, _, err := New("abc\n/").ReadRegExp()
	assert.EqualError(t, err, "1:1: unterminated regular expression")
	_, _, err = New("[/").ReadRegExp()
	assert.EqualError(t, err, "1:1: unterminated regular expression")
}
