package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benbjohnson/cssselect/scanner"
)

// Ensure that identifier escapes are decoded.
func TestUnescape(t *testing.T) {
	var tests = []struct {
		s   string
		out string
	}{
		{s: `foo`, out: `foo`},
		{s: `\=\]`, out: `=]`},
		{s: `tes\t`, out: `test`},
		{s: `my\2603 bar`, out: `my☃bar`},
		{s: `my\2603  bar`, out: `my☃ bar`},
		{s: "\\31\r\n2", out: `12`},
		{s: "\\31\t2", out: `12`},
		{s: `\000031x`, out: `1x`},
		{s: `\0000311`, out: `11`},
		{s: `\41\42`, out: `AB`},
		{s: `\0`, out: "\uFFFD"},
		{s: `\d800`, out: "\uFFFD"},
		{s: `\110000`, out: "\uFFFD"},
		{s: `\☃`, out: `☃`},
		{s: `\ x`, out: ` x`},
		{s: `\\`, out: `\`},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.out, scanner.Unescape(tt.s), "%d. <%q>", i, tt.s)
	}
}

// Ensure that string escapes and line continuations are decoded.
func TestUnescapeString(t *testing.T) {
	var tests = []struct {
		s   string
		out string
	}{
		{s: `ya.ru+ `, out: `ya.ru+ `},
		{s: "foo\\\nbar", out: `foobar`},
		{s: "foo\\\r\nbar", out: `foobar`},
		{s: "foo\\\rbar", out: `foobar`},
		{s: "foo\\\fbar", out: `foobar`},
		{s: `foo\"bar`, out: `foo"bar`},
		{s: `frosty the \2603`, out: `frosty the ☃`},
		{s: `\\\\`, out: `\\`},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.out, scanner.UnescapeString(tt.s), "%d. <%q>", i, tt.s)
	}
}

// Ensure that identifiers are escaped so that they decode back unchanged.
func TestEscapeIdent(t *testing.T) {
	var tests = []struct {
		s   string
		out string
	}{
		{s: `foo`, out: `foo`},
		{s: `foo-bar_1`, out: `foo-bar_1`},
		{s: `-foo`, out: `-foo`},
		{s: `=]`, out: `\=\]`},
		{s: `1a`, out: `\31 a`},
		{s: `-1`, out: `\-1`},
		{s: `--x`, out: `\--x`},
		{s: `-`, out: `\-`},
		{s: `a b`, out: `a\ b`},
		{s: "a\nb", out: `a\a b`},
		{s: `*`, out: `\*`},
		{s: `☃`, out: `☃`},
	}

	for i, tt := range tests {
		out := scanner.EscapeIdent(tt.s)
		assert.Equal(t, tt.out, out, "%d. <%q>", i, tt.s)
		assert.Equal(t, tt.s, scanner.Unescape(out), "%d. <%q> round trip", i, tt.s)

		tok := scanner.New(out).Scan()
		assert.Equal(t, out, tok.Value, "%d. <%q> scans as one identifier", i, tt.s)
	}
}

// Ensure that strings are quoted so that they decode back unchanged.
func TestQuoteString(t *testing.T) {
	var tests = []struct {
		s   string
		out string
	}{
		{s: ``, out: `""`},
		{s: `ya.ru+ `, out: `"ya.ru+ "`},
		{s: `say "hi"`, out: `"say \"hi\""`},
		{s: `a\b`, out: `"a\\b"`},
		{s: "a\nb", out: `"a\a b"`},
		{s: "a\r\n", out: `"a\d \a "`},
	}

	for i, tt := range tests {
		out := scanner.QuoteString(tt.s)
		assert.Equal(t, tt.out, out, "%d. <%q>", i, tt.s)
		assert.Equal(t, tt.s, scanner.UnescapeString(out[1:len(out)-1]), "%d. <%q> round trip", i, tt.s)
	}
}
