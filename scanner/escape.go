package scanner

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes the escape sequences of an identifier lexeme.
//
// A backslash followed by one to six hex digits decodes to that code point and
// swallows a single following whitespace unit. A backslash followed by any
// other character decodes to that character. Code points that are zero,
// surrogates or beyond U+10FFFF decode to U+FFFD.
func Unescape(s string) string {
	return unescape(s, false)
}

// UnescapeString decodes the body of a string lexeme, without its quotes.
// In addition to the identifier escapes, a backslash followed by a newline
// sequence is a line continuation and is removed.
func UnescapeString(s string) string {
	return unescape(s, true)
}

func unescape(s string, continuations bool) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}

	var buf bytes.Buffer
	buf.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			_ = buf.WriteByte(s[i])
			i++
			continue
		}
		if continuations {
			if n := newlineUnit(s, i+1); n > 0 {
				i += 1 + n
				continue
			}
		}
		ch, n := decodeEscape(s[i:])
		if n == 0 {
			// A stray backslash is never produced by the scanner; keep it.
			_ = buf.WriteByte('\\')
			i++
			continue
		}
		_, _ = buf.WriteRune(ch)
		i += n
	}
	return buf.String()
}

// decodeEscape decodes the escape sequence at the start of s and returns the
// code point and the number of bytes consumed. It returns zero bytes if s does
// not start with a valid escape.
func decodeEscape(s string) (rune, int) {
	if len(s) < 2 || s[0] != '\\' {
		return 0, 0
	}
	if isHexDigit(s[1]) {
		j := 1
		for j < len(s) && j < 7 && isHexDigit(s[j]) {
			j++
		}
		v, _ := strconv.ParseUint(s[1:j], 16, 32)
		ch := rune(v)
		if v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			ch = utf8.RuneError
		}
		return ch, j + whitespaceUnit(s, j)
	}
	if isNewline(s[1]) {
		return 0, 0
	}
	ch, size := utf8.DecodeRuneInString(s[1:])
	return ch, 1 + size
}

// EscapeIdent returns s written as an identifier lexeme that Unescape decodes
// back to s. Characters that cannot appear raw are escaped; digits in start
// position and control characters use hex escapes.
func EscapeIdent(s string) string {
	if s == "" {
		return ""
	}

	var buf bytes.Buffer
	rest := s
	if len(s) > 1 && s[0] == '-' && startsName(s[1:]) {
		_ = buf.WriteByte('-')
		rest = s[1:]
	}

	for i := 0; i < len(rest); {
		ch, size := utf8.DecodeRuneInString(rest[i:])
		switch {
		case ch < utf8.RuneSelf && (isLetter(byte(ch)) || ch == '_'):
			_ = buf.WriteByte(byte(ch))
		case ch >= utf8.RuneSelf:
			_, _ = buf.WriteString(rest[i : i+size])
		case i > 0 && (isDigit(byte(ch)) || ch == '-'):
			_ = buf.WriteByte(byte(ch))
		case ch < 0x20 || ch == 0x7f || isDigit(byte(ch)):
			fmt.Fprintf(&buf, "\\%x ", ch)
		default:
			_ = buf.WriteByte('\\')
			_ = buf.WriteByte(byte(ch))
		}
		i += size
	}
	return buf.String()
}

// startsName returns true if s begins with a raw name start code point.
func startsName(s string) bool {
	return s != "" && (isLetter(s[0]) || s[0] == '_' || s[0] >= utf8.RuneSelf)
}

// QuoteString returns s as a double quoted string lexeme that UnescapeString
// decodes back to s.
func QuoteString(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s) + 2)
	_ = buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"', '\\':
			_ = buf.WriteByte('\\')
			_ = buf.WriteByte(ch)
		case '\n', '\r', '\f':
			fmt.Fprintf(&buf, "\\%x ", ch)
		default:
			_ = buf.WriteByte(ch)
		}
	}
	_ = buf.WriteByte('"')
	return buf.String()
}
