// Package scanner tokenizes JavaScript and JSX source for the parser.
//
// The scanner has two modes that share one cursor. Next produces
// JavaScript tokens (identifiers, numbers, strings, punctuators) and
// skips whitespace and comments. The raw methods (Peek, LookingAt,
// Advance, ReadJSXText, ...) read bytes verbatim and are used by the
// parser inside markup and template literals, where JavaScript
// tokenization rules do not apply.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	String
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punctuator"
	}
	return "unknown"
}

// Position is a 1-based line and column.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is one lexical unit. Text holds the source spelling, except for
// strings where it holds the decoded value.
type Token struct {
	Kind          Kind
	Text          string
	Pos           Position
	NewlineBefore bool // a line terminator separates this token from the previous one
}

// Is reports whether the token is the punctuator or identifier text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	if t.Kind == String {
		return strconv.Quote(t.Text)
	}
	return fmt.Sprintf("%q", t.Text)
}

// Error is a lexical error at a source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// punctuators ordered longest first so the first prefix match wins.
var punctuators = []string{
	"...", "===", "!==", "**=", "&&=", "||=", "??=", "<<=", ">>=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*",
	"/", "%", "&", "|", "^", "!", "~", "?", ":", "=", ".", "@", "#", "`",
}

// Scanner reads tokens from source text. The zero value is not usable;
// call New. A Scanner is a small value type: copying it snapshots the
// cursor, which the parser uses for lookahead.
type Scanner struct {
	src  string
	pos  int
	line int
	col  int
}

// New creates a Scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Pos returns the position of the cursor.
func (s *Scanner) Pos() Position { return Position{Line: s.line, Col: s.col} }

// Offset returns the byte offset of the cursor.
func (s *Scanner) Offset() int { return s.pos }

// AtEOF reports whether the cursor is at the end of input.
func (s *Scanner) AtEOF() bool { return s.pos >= len(s.src) }

// Peek returns the byte under the cursor.
func (s *Scanner) Peek() (byte, bool) { return s.PeekAt(0) }

// PeekAt returns the byte i positions past the cursor.
func (s *Scanner) PeekAt(i int) (byte, bool) {
	if s.pos+i >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+i], true
}

// LookingAt reports whether the remaining input starts with prefix.
func (s *Scanner) LookingAt(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// Advance moves the cursor n bytes, tracking line breaks.
func (s *Scanner) Advance(n int) {
	for i := 0; i < n && s.pos < len(s.src); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else if s.src[s.pos]&0xC0 != 0x80 {
			s.col++
		}
		s.pos++
	}
}

// SkipSpace advances over whitespace only. Comments are left alone.
func (s *Scanner) SkipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.Advance(1)
	}
}

// Errorf builds an Error at the cursor.
func (s *Scanner) Errorf(format string, args ...any) *Error {
	return &Error{Pos: s.Pos(), Msg: fmt.Sprintf(format, args...)}
}

// Next scans the next JavaScript token. At end of input it returns a
// token of kind EOF.
func (s *Scanner) Next() (Token, error) {
	nl, err := s.skipTrivia()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Pos: s.Pos(), NewlineBefore: nl}
	if s.pos >= len(s.src) {
		tok.Kind = EOF
		return tok, nil
	}
	ch := s.src[s.pos]
	switch {
	case ch == '"' || ch == '\'':
		v, err := s.readString(ch)
		if err != nil {
			return Token{}, err
		}
		tok.Kind, tok.Text = String, v
	case isDigit(ch) || (ch == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])):
		tok.Kind, tok.Text = Number, s.readNumber()
	case isIdentStart(s.runeAt(s.pos)):
		tok.Kind, tok.Text = Ident, s.readIdent(false)
	default:
		for _, p := range punctuators {
			if s.LookingAt(p) {
				// a?.5 is a conditional, not optional chaining
				if p == "?." && s.pos+2 < len(s.src) && isDigit(s.src[s.pos+2]) {
					continue
				}
				s.Advance(len(p))
				tok.Kind, tok.Text = Punct, p
				return tok, nil
			}
		}
		return Token{}, s.Errorf("unexpected character %q", s.runeAt(s.pos))
	}
	return tok, nil
}

// skipTrivia skips whitespace and comments and reports whether a line
// terminator was crossed.
func (s *Scanner) skipTrivia() (bool, error) {
	nl := false
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		switch {
		case ch == '\n':
			nl = true
			s.Advance(1)
		case isSpace(ch):
			s.Advance(1)
		case s.LookingAt("//"):
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.Advance(1)
			}
		case s.LookingAt("/*"):
			start := s.Pos()
			end := strings.Index(s.src[s.pos+2:], "*/")
			if end < 0 {
				return nl, &Error{Pos: start, Msg: "unterminated comment"}
			}
			if strings.Contains(s.src[s.pos:s.pos+2+end], "\n") {
				nl = true
			}
			s.Advance(end + 4)
		default:
			return nl, nil
		}
	}
	return nl, nil
}

func (s *Scanner) runeAt(i int) rune {
	r, _ := utf8.DecodeRuneInString(s.src[i:])
	return r
}

func (s *Scanner) readIdent(allowDash bool) string {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) && !(allowDash && r == '-' && s.pos > start) {
			break
		}
		s.Advance(size)
	}
	return s.src[start:s.pos]
}

func (s *Scanner) readNumber() string {
	start := s.pos
	if s.LookingAt("0x") || s.LookingAt("0X") || s.LookingAt("0b") || s.LookingAt("0B") || s.LookingAt("0o") || s.LookingAt("0O") {
		s.Advance(2)
		for s.pos < len(s.src) && (isHexDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.Advance(1)
		}
		return s.src[start:s.pos]
	}
	digits := func() {
		for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.Advance(1)
		}
	}
	digits()
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.Advance(1)
		digits()
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		s.Advance(1)
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.Advance(1)
		}
		digits()
	}
	return s.src[start:s.pos]
}

// readString reads a quoted JavaScript string and decodes its escapes.
func (s *Scanner) readString(quote byte) (string, error) {
	start := s.Pos()
	s.Advance(1)
	var b strings.Builder
	for {
		if s.pos >= len(s.src) || s.src[s.pos] == '\n' {
			return "", &Error{Pos: start, Msg: "unterminated string literal"}
		}
		ch := s.src[s.pos]
		if ch == quote {
			s.Advance(1)
			return b.String(), nil
		}
		if ch != '\\' {
			b.WriteByte(ch)
			s.Advance(1)
			continue
		}
		if s.pos+1 >= len(s.src) {
			return "", &Error{Pos: start, Msg: "unterminated string literal"}
		}
		esc := s.src[s.pos+1]
		s.Advance(2)
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			r, err := s.readHex(2)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		case 'u':
			var (
				r   rune
				err error
			)
			if s.LookingAt("{") {
				end := strings.IndexByte(s.src[s.pos:], '}')
				if end < 0 {
					return "", s.Errorf("malformed unicode escape")
				}
				s.Advance(1)
				r, err = s.readHex(end - 1)
				s.Advance(1)
			} else {
				r, err = s.readHex(4)
			}
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(esc)
		}
	}
}

func (s *Scanner) readHex(n int) (rune, error) {
	if s.pos+n > len(s.src) {
		return 0, s.Errorf("malformed escape sequence")
	}
	v, err := strconv.ParseUint(s.src[s.pos:s.pos+n], 16, 32)
	if err != nil {
		return 0, s.Errorf("malformed escape sequence")
	}
	s.Advance(n)
	return rune(v), nil
}

// ReadJSXName reads a markup tag or attribute name. Dashes are allowed
// after the first character (data-id, aria-label).
func (s *Scanner) ReadJSXName() string {
	if s.pos >= len(s.src) || !isIdentStart(s.runeAt(s.pos)) {
		return ""
	}
	return s.readIdent(true)
}

// ReadJSXText reads markup text up to the next '{' or '<'.
func (s *Scanner) ReadJSXText() string {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '{' && s.src[s.pos] != '<' {
		s.Advance(1)
	}
	return s.src[start:s.pos]
}

// ReadJSXString reads a quoted attribute value. Markup attribute strings
// have no escape sequences.
func (s *Scanner) ReadJSXString() (string, error) {
	quote, ok := s.Peek()
	if !ok || (quote != '"' && quote != '\'') {
		return "", s.Errorf("expected quoted attribute value")
	}
	start := s.Pos()
	end := strings.IndexByte(s.src[s.pos+1:], quote)
	if end < 0 {
		return "", &Error{Pos: start, Msg: "unterminated attribute value"}
	}
	v := s.src[s.pos+1 : s.pos+1+end]
	s.Advance(end + 2)
	return v, nil
}

// ReadTemplateChunk reads raw template literal text up to the closing
// backtick or the next "${", consuming the delimiter. closed reports
// whether the literal ended.
func (s *Scanner) ReadTemplateChunk() (raw string, closed bool, err error) {
	start := s.pos
	startPos := s.Pos()
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '\\':
			s.Advance(2)
		case s.src[s.pos] == '`':
			raw = s.src[start:s.pos]
			s.Advance(1)
			return raw, true, nil
		case s.LookingAt("${"):
			raw = s.src[start:s.pos]
			s.Advance(2)
			return raw, false, nil
		default:
			s.Advance(1)
		}
	}
	return "", false, &Error{Pos: startPos, Msg: "unterminated template literal"}
}

// ReadRegExp reads the body and flags of a regular expression literal
// whose opening slash has already been consumed. A slash inside a
// character class does not end the pattern.
func (s *Scanner) ReadRegExp() (pattern, flags string, err error) {
	start := s.pos
	startPos := s.Pos()
	class := false
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		switch {
		case ch == '\n' || ch == '\r':
			return "", "", &Error{Pos: startPos, Msg: "unterminated regular expression"}
		case ch == '\\':
			s.Advance(2)
			continue
		case ch == '[':
			class = true
		case ch == ']':
			class = false
		case ch == '/' && !class:
			pattern = s.src[start:s.pos]
			s.Advance(1)
			return pattern, s.readIdent(false), nil
		}
		s.Advance(1)
	}
	return "", "", &Error{Pos: startPos, Msg: "unterminated regular expression"}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
