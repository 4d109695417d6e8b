package scanner

import (
	"unicode/utf8"

	"github.com/benbjohnson/cssselect/token"
)

// Scanner implements a cursor over the source text of a selectors group.
//
// The source is never copied or sliced per step. Each call to Scan tries the
// matchers below in order at the current offset and commits to the first one
// that matches. Token values are substrings of the source.
type Scanner struct {
	src string
	pos token.Pos
}

// New returns a new instance of Scanner.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the position of the next unscanned code point.
func (s *Scanner) Pos() token.Pos {
	return s.pos
}

// Scan returns the next token and advances past it.
//
// An Illegal token is returned when no matcher applies. The position is not
// advanced in that case, so every following call returns the same token.
func (s *Scanner) Scan() token.Token {
	pos := s.pos
	if pos.Offset >= len(s.src) {
		return token.Token{Tok: token.EOF, Pos: pos}
	}

	for _, m := range matchers {
		if n := m.match(s.src, pos.Offset); n > 0 {
			value := s.src[pos.Offset : pos.Offset+n]
			s.advance(value)
			return token.Token{Tok: m.tok, Value: value, Pos: pos}
		}
	}

	_, size := utf8.DecodeRuneInString(s.src[pos.Offset:])
	return token.Token{Tok: token.Illegal, Value: s.src[pos.Offset : pos.Offset+size], Pos: pos}
}

// advance moves the position past the consumed lexeme.
// CR, LF, FF and a CRLF pair each count as a single line break.
func (s *Scanner) advance(lexeme string) {
	for i := 0; i < len(lexeme); {
		switch ch := lexeme[i]; ch {
		case '\r':
			if i+1 < len(lexeme) && lexeme[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n', '\f':
			s.pos.Line++
			s.pos.Char = 0
			i++
		default:
			_, size := utf8.DecodeRuneInString(lexeme[i:])
			s.pos.Char++
			i += size
		}
	}
	s.pos.Offset += len(lexeme)
}

// matcher reports the byte length of a token kind at an offset, or zero.
type matcher struct {
	tok   token.Tok
	match func(src string, i int) int
}

// matchers is the fixed priority list of token kinds.
// End of input is handled by Scan before the list is consulted.
var matchers = [...]matcher{
	{token.Whitespace, matchWhitespace},
	{token.Plus, matchByte('+')},
	{token.Tilde, matchTilde},
	{token.Greater, matchByte('>')},
	{token.Match, matchOperator},
	{token.Ident, matchIdent},
	{token.String, matchString},
	{token.Comma, matchByte(',')},
	{token.Not, matchNot},
	{token.Delim, matchDelim},
}

func matchWhitespace(src string, i int) int {
	j := i
	for j < len(src) && isWhitespace(src[j]) {
		j++
	}
	return j - i
}

func matchByte(ch byte) func(string, int) int {
	return func(src string, i int) int {
		if src[i] == ch {
			return 1
		}
		return 0
	}
}

// matchTilde matches the general sibling combinator.
// A tilde directly followed by "=" is left for the include-match operator.
func matchTilde(src string, i int) int {
	if src[i] != '~' || (i+1 < len(src) && src[i+1] == '=') {
		return 0
	}
	return 1
}

// matchOperator matches "=", "^=", "$=", "*=", "~=" and "|=".
func matchOperator(src string, i int) int {
	switch src[i] {
	case '=':
		return 1
	case '^', '$', '*', '~', '|':
		if i+1 < len(src) && src[i+1] == '=' {
			return 2
		}
	}
	return 0
}

// matchIdent matches an identifier: an optional hyphen, a name start code
// point or escape, and then any number of name code points or escapes.
func matchIdent(src string, i int) int {
	j := i
	if src[j] == '-' {
		j++
	}
	n := matchNameStart(src, j)
	if n == 0 {
		return 0
	}
	for j += n; ; j += n {
		if n = matchName(src, j); n == 0 {
			return j - i
		}
	}
}

func matchNameStart(src string, i int) int {
	if i >= len(src) {
		return 0
	}
	switch ch := src[i]; {
	case isLetter(ch) || ch == '_':
		return 1
	case ch >= utf8.RuneSelf:
		_, size := utf8.DecodeRuneInString(src[i:])
		return size
	case ch == '\\':
		return matchEscape(src, i)
	}
	return 0
}

func matchName(src string, i int) int {
	if i < len(src) && (isDigit(src[i]) || src[i] == '-') {
		return 1
	}
	return matchNameStart(src, i)
}

// matchEscape matches a backslash followed by one to six hex digits and an
// optional whitespace unit, or by any single code point that is neither a
// newline nor a hex digit.
func matchEscape(src string, i int) int {
	if i+1 >= len(src) || src[i] != '\\' {
		return 0
	}
	switch ch := src[i+1]; {
	case isHexDigit(ch):
		j := i + 1
		for j < len(src) && j < i+7 && isHexDigit(src[j]) {
			j++
		}
		return j - i + whitespaceUnit(src, j)
	case isNewline(ch):
		return 0
	case ch >= utf8.RuneSelf:
		_, size := utf8.DecodeRuneInString(src[i+1:])
		return 1 + size
	}
	return 2
}

// matchString matches a single or double quoted string. Raw newlines are not
// allowed inside; an escaped newline is a line continuation.
func matchString(src string, i int) int {
	quote := src[i]
	if quote != '"' && quote != '\'' {
		return 0
	}
	for j := i + 1; j < len(src); {
		switch ch := src[j]; {
		case ch == quote:
			return j + 1 - i
		case isNewline(ch):
			return 0
		case ch == '\\':
			if n := newlineUnit(src, j+1); n > 0 {
				j += 1 + n
				continue
			}
			n := matchEscape(src, j)
			if n == 0 {
				return 0
			}
			j += n
		default:
			j++
		}
	}
	return 0
}

// matchNot matches ":not(" where each letter of "not" may be written in any
// case and may be escaped.
func matchNot(src string, i int) int {
	if src[i] != ':' {
		return 0
	}
	j := i + 1
	for _, want := range "not" {
		n, ch := matchLetter(src, j)
		if n == 0 || ch != want {
			return 0
		}
		j += n
	}
	if j >= len(src) || src[j] != '(' {
		return 0
	}
	return j + 1 - i
}

// matchLetter matches a single letter, raw or escaped, and returns its lower
// case form.
func matchLetter(src string, i int) (int, rune) {
	if i >= len(src) {
		return 0, 0
	}
	if src[i] == '\\' {
		n := matchEscape(src, i)
		if n == 0 {
			return 0, 0
		}
		ch, _ := decodeEscape(src[i : i+n])
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		return n, ch
	}
	if ch := src[i]; isLetter(ch) {
		return 1, rune(ch | 0x20)
	}
	return 0, 0
}

// matchDelim matches any other single character except a colon, which is only
// valid as part of ":not(".
func matchDelim(src string, i int) int {
	if src[i] == ':' {
		return 0
	}
	return 1
}

// whitespaceUnit returns the length of a single whitespace unit at i.
// A CRLF pair counts as one unit.
func whitespaceUnit(src string, i int) int {
	if i >= len(src) {
		return 0
	}
	switch src[i] {
	case '\r':
		if i+1 < len(src) && src[i+1] == '\n' {
			return 2
		}
		return 1
	case ' ', '\t', '\n', '\f':
		return 1
	}
	return 0
}

// newlineUnit returns the length of a newline sequence at i (LF, CRLF, CR or FF).
func newlineUnit(src string, i int) int {
	if i >= len(src) || !isNewline(src[i]) {
		return 0
	}
	return whitespaceUnit(src, i)
}

// isWhitespace returns true if the byte is a space, tab, or newline.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || isNewline(ch)
}

// isNewline returns true if the byte is a CR, LF or FF.
func isNewline(ch byte) bool {
	return ch == '\n' || ch == '\r' || ch == '\f'
}

// isLetter returns true if the byte is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the byte is a digit.
func isDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9')
}

// isHexDigit returns true if the byte is a hex digit.
func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
