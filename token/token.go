package token

// Tok represents the kind of a lexical token.
type Tok int

const (
	// Special tokens
	Illegal Tok = iota
	EOF

	// Selector tokens, in scanning priority order.
	Whitespace
	Plus
	Tilde
	Greater
	Match
	Ident
	String
	Comma
	Not
	Delim
)

var toks = [...]string{
	Illegal:    "ILLEGAL",
	EOF:        "EOF",
	Whitespace: "WHITESPACE",
	Plus:       "PLUS",
	Tilde:      "TILDE",
	Greater:    "GREATER",
	Match:      "MATCH",
	Ident:      "IDENT",
	String:     "STRING",
	Comma:      "COMMA",
	Not:        "NOT",
	Delim:      "DELIM",
}

// String returns the string representation of the token kind.
func (tok Tok) String() string {
	if tok >= 0 && tok < Tok(len(toks)) {
		return toks[tok]
	}
	return ""
}

// Token represents a single scanned token.
// Value holds the raw lexeme exactly as it appears in the source.
type Token struct {
	Tok   Tok
	Value string
	Pos   Pos
}

// String returns a human readable form of the token for error messages.
func (t Token) String() string {
	switch t.Tok {
	case EOF:
		return "EOF"
	case Whitespace:
		return "whitespace"
	}
	return t.Value
}

// Pos specifies the position of a token.
// Offset is a zero-based byte index into the source.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Offset int
	Line   int
	Char   int
}
