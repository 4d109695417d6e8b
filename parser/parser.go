package parser

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/scanner"
	"github.com/benbjohnson/cssselect/token"
)

// DefaultMaxDepth is the negation nesting limit used when Config.MaxDepth is not set.
const DefaultMaxDepth = 64

// ErrNestingDepth is wrapped by the syntax error returned when negations are
// nested deeper than the configured limit.
var ErrNestingDepth = errors.New("maximum nesting depth exceeded")

// Config holds the parser settings. The zero value is ready to use.
type Config struct {
	// MaxDepth limits how deeply ":not(...)" may be nested.
	MaxDepth int

	// Logger receives a debug entry for each parse. Defaults to a no-op logger.
	Logger *zap.Logger
}

// ParseSelectorsGroup parses a comma separated list of selectors using the
// default configuration.
func ParseSelectorsGroup(s string) (*ast.SelectorGroup, error) {
	return Config{}.Parse(s)
}

// Parse parses a comma separated list of selectors. Either the whole input is
// a valid selectors group or an *Error is returned and no tree is produced.
func (c Config) Parse(s string) (*ast.SelectorGroup, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &parser{scanner: scanner.New(s), maxDepth: c.MaxDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	g, err := p.parseSelectorsGroup()
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			logger.Debug("selector syntax error", zap.String("message", e.Message), zap.Int("offset", e.Pos.Offset))
		}
		return nil, err
	}
	logger.Debug("parsed selectors group", zap.Int("selectors", len(g.Selectors)))
	return g, nil
}

// parser represents a selectors group parser.
type parser struct {
	scanner *scanner.Scanner

	buf  [2]token.Token // circular buffer
	bufi int            // circular buffer index
	bufn int            // number of buffered tokens

	depth    int
	maxDepth int
}

// parseSelectorsGroup parses: selector ( ',' whitespace* selector )*
// Whitespace around the whole group is ignored.
func (p *parser) parseSelectorsGroup() (*ast.SelectorGroup, error) {
	g := &ast.SelectorGroup{}

	p.skipWhitespace()
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		g.Selectors = append(g.Selectors, sel)

		switch tok := p.scan(); tok.Tok {
		case token.EOF:
			return g, nil
		case token.Comma:
			p.skipWhitespace()
		default:
			return nil, p.expected("comma or EOF", tok)
		}
	}
}

// parseSelector parses: sequence ( combinator sequence )*
func (p *parser) parseSelector() (*ast.Selector, error) {
	seq, err := p.parseSimpleSelectorSequence()
	if err != nil {
		return nil, err
	}
	sel := &ast.Selector{Sequences: []*ast.SimpleSelectorSequence{seq}}
	sel.Span.Pos = seq.Span.Pos

	for {
		c, ok := p.parseCombinator()
		if !ok {
			sel.Span.End = sel.Sequences[len(sel.Sequences)-1].Span.End
			return sel, nil
		}

		// A combinator must always be followed by another sequence.
		seq, err := p.parseSimpleSelectorSequence()
		if err != nil {
			return nil, err
		}
		sel.Combinators = append(sel.Combinators, c)
		sel.Sequences = append(sel.Sequences, seq)
	}
}

// parseCombinator consumes a combinator, if any, along with its surrounding
// whitespace. Any other whitespace is a descendant combinator unless it ends
// the input.
func (p *parser) parseCombinator() (ast.Combinator, bool) {
	ws := false
	tok := p.scan()
	if tok.Tok == token.Whitespace {
		ws = true
		tok = p.scan()
	}

	var c ast.Combinator
	switch tok.Tok {
	case token.Plus:
		c = ast.AdjacentSibling
	case token.Tilde:
		c = ast.GeneralSibling
	case token.Greater:
		c = ast.Child
	case token.EOF:
		p.unscan()
		return 0, false
	default:
		p.unscan()
		return ast.Descendant, ws
	}

	p.skipWhitespace()
	return c, true
}

// parseSimpleSelectorSequence parses: [ type | '*' ] ( class | attrib | negation )*
// A sequence must have an explicit type or at least one qualifier.
func (p *parser) parseSimpleSelectorSequence() (*ast.SimpleSelectorSequence, error) {
	seq := &ast.SimpleSelectorSequence{}

	explicit := true
	tok := p.scan()
	seq.Span.Pos = tok.Pos
	if tok.Tok == token.Ident {
		seq.Type.Name = scanner.Unescape(tok.Value)
	} else if !isDelim(tok, "*") {
		p.unscan()
		explicit = false
	}

	for {
		tok := p.scan()
		switch {
		case isDelim(tok, "."):
			class, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			seq.Classes = append(seq.Classes, class)

		case isDelim(tok, "["):
			attr, err := p.parseAttribute(tok)
			if err != nil {
				return nil, err
			}
			seq.Attributes = append(seq.Attributes, attr)

		case tok.Tok == token.Not:
			neg, err := p.parseNegation(tok)
			if err != nil {
				return nil, err
			}
			seq.Negations = append(seq.Negations, neg)

		default:
			if !explicit && !seq.HasQualifiers() {
				return nil, p.expected("selector", tok)
			}
			p.unscan()
			seq.Span.End = tok.Pos
			return seq, nil
		}
	}
}

// parseClass parses the identifier following a ".".
func (p *parser) parseClass() (string, error) {
	tok := p.scan()
	if tok.Tok != token.Ident {
		return "", p.expected("class name", tok)
	}
	return scanner.Unescape(tok.Value), nil
}

// parseAttribute parses the remainder of an attribute selector after "[".
func (p *parser) parseAttribute(start token.Token) (*ast.AttributeSelector, error) {
	p.skipWhitespace()
	tok := p.scan()
	if tok.Tok != token.Ident {
		return nil, p.expected("attribute name", tok)
	}
	attr := &ast.AttributeSelector{Name: scanner.Unescape(tok.Value)}

	p.skipWhitespace()
	if tok = p.scan(); tok.Tok == token.Match {
		op, ok := ast.LookupOperator(tok.Value)
		if !ok {
			return nil, p.expected("attribute operator", tok)
		}
		attr.Operator = op

		p.skipWhitespace()
		switch tok = p.scan(); tok.Tok {
		case token.Ident:
			attr.Value = scanner.Unescape(tok.Value)
		case token.String:
			attr.Value = scanner.UnescapeString(tok.Value[1 : len(tok.Value)-1])
		default:
			return nil, p.expected("identifier or string", tok)
		}

		p.skipWhitespace()
		tok = p.scan()
	}

	if !isDelim(tok, "]") {
		return nil, p.expected(`"]"`, tok)
	}
	attr.Span = ast.Span{Pos: start.Pos, End: end(tok)}
	return attr, nil
}

// parseNegation parses the remainder of a negation after ":not(".
func (p *parser) parseNegation(start token.Token) (*ast.NegationSelector, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, &Error{
			Message: fmt.Sprintf("negation nested deeper than %d levels", p.maxDepth),
			Pos:     start.Pos,
			Err:     ErrNestingDepth,
		}
	}

	p.skipWhitespace()
	seq, err := p.parseSimpleSelectorSequence()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	tok := p.scan()
	if !isDelim(tok, ")") {
		return nil, p.expected(`")"`, tok)
	}
	return &ast.NegationSelector{
		Sequence: seq,
		Span:     ast.Span{Pos: start.Pos, End: end(tok)},
	}, nil
}

// scan returns the next token from the lookahead buffer or the scanner.
func (p *parser) scan() token.Token {
	// If we have tokens on our internal lookahead buffer then return those.
	if p.bufn > 0 {
		p.bufi = ((p.bufi + 1) % len(p.buf))
		p.bufn--
		return p.buf[p.bufi]
	}

	// Otherwise read from the scanner.
	tok := p.scanner.Scan()

	// Add to circular buffer.
	p.bufi = ((p.bufi + 1) % len(p.buf))
	p.buf[p.bufi] = tok
	return tok
}

// unscan pushes the previously read token back onto the buffer.
func (p *parser) unscan() {
	p.bufi = ((p.bufi + len(p.buf) - 1) % len(p.buf))
	p.bufn++
}

// skipWhitespace skips over a whitespace token, if one is next.
// The scanner returns whitespace runs as a single token.
func (p *parser) skipWhitespace() {
	if tok := p.scan(); tok.Tok != token.Whitespace {
		p.unscan()
	}
}

// expected returns a syntax error for an unexpected token.
func (p *parser) expected(what string, tok token.Token) error {
	switch tok.Tok {
	case token.Illegal:
		return &Error{Message: fmt.Sprintf("unexpected %q", tok.Value), Pos: tok.Pos}
	case token.EOF, token.Whitespace:
		return &Error{Message: fmt.Sprintf("expected %s, got %s", what, tok.String()), Pos: tok.Pos}
	}
	return &Error{Message: fmt.Sprintf("expected %s, got %q", what, tok.Value), Pos: tok.Pos}
}

// end returns the position just past a single character delimiter.
func end(tok token.Token) token.Pos {
	pos := tok.Pos
	pos.Offset += len(tok.Value)
	pos.Char++
	return pos
}

// isDelim returns true if tok is the given single character delimiter.
func isDelim(tok token.Token, value string) bool {
	return tok.Tok == token.Delim && tok.Value == value
}

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
	Err     error
}

// Error returns the formatted error message, prefixed with the one-based
// line and character of the offending token.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line+1, e.Pos.Char+1, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
