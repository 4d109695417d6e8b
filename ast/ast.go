package ast

import (
	"bytes"
	"fmt"

	"github.com/benbjohnson/cssselect/scanner"
	"github.com/benbjohnson/cssselect/token"
)

// Node represents a node in the selector abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *SelectorGroup) node()          {}
func (_ *Selector) node()               {}
func (_ *SimpleSelectorSequence) node() {}
func (_ *AttributeSelector) node()      {}
func (_ *NegationSelector) node()       {}

// SelectorGroup represents a comma separated list of selectors.
type SelectorGroup struct {
	Selectors []*Selector `json:"selectors" yaml:"selectors"`
}

// String returns the canonical text of the group.
func (g *SelectorGroup) String() string {
	var buf bytes.Buffer
	for i, sel := range g.Selectors {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(sel.String())
	}
	return buf.String()
}

// Selector represents a chain of simple selector sequences joined by
// combinators. Combinators[i] joins Sequences[i] and Sequences[i+1], so there
// is always one less combinator than sequences.
type Selector struct {
	Sequences   []*SimpleSelectorSequence `json:"sequences" yaml:"sequences"`
	Combinators []Combinator              `json:"combinators,omitempty" yaml:"combinators,omitempty"`
	Span        Span                      `json:"-" yaml:"-"`
}

// String returns the canonical text of the selector.
func (s *Selector) String() string {
	var buf bytes.Buffer
	for i, seq := range s.Sequences {
		if i > 0 {
			buf.WriteString(s.Combinators[i-1].Symbol())
		}
		buf.WriteString(seq.String())
	}
	return buf.String()
}

// SimpleSelectorSequence represents a type or universal selector followed by
// class, attribute and negation qualifiers. Qualifiers keep their order within
// each kind only.
type SimpleSelectorSequence struct {
	Type       TypeSelector         `json:"type" yaml:"type"`
	Classes    []string             `json:"classes,omitempty" yaml:"classes,omitempty"`
	Attributes []*AttributeSelector `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Negations  []*NegationSelector  `json:"negations,omitempty" yaml:"negations,omitempty"`
	Span       Span                 `json:"-" yaml:"-"`
}

// HasQualifiers returns true if the sequence has any class, attribute or
// negation qualifier.
func (s *SimpleSelectorSequence) HasQualifiers() bool {
	return len(s.Classes) > 0 || len(s.Attributes) > 0 || len(s.Negations) > 0
}

// String returns the canonical text of the sequence.
// The universal selector is omitted when qualifiers follow it.
func (s *SimpleSelectorSequence) String() string {
	var buf bytes.Buffer
	if !s.Type.IsUniversal() || !s.HasQualifiers() {
		buf.WriteString(s.Type.String())
	}
	for _, class := range s.Classes {
		buf.WriteString("." + scanner.EscapeIdent(class))
	}
	for _, attr := range s.Attributes {
		buf.WriteString(attr.String())
	}
	for _, neg := range s.Negations {
		buf.WriteString(neg.String())
	}
	return buf.String()
}

// TypeSelector represents an element type name.
// The zero value is the universal selector.
type TypeSelector struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// IsUniversal returns true if the selector matches any element type.
func (t TypeSelector) IsUniversal() bool {
	return t.Name == ""
}

// String returns "*" for the universal selector or the escaped name.
func (t TypeSelector) String() string {
	if t.IsUniversal() {
		return "*"
	}
	return scanner.EscapeIdent(t.Name)
}

// AttributeSelector represents a bracketed attribute test.
// Value is empty when Operator is Exists.
type AttributeSelector struct {
	Name     string   `json:"name" yaml:"name"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Span     Span     `json:"-" yaml:"-"`
}

// String returns the canonical text of the attribute selector.
// Values are always written as double quoted strings.
func (a *AttributeSelector) String() string {
	if a.Operator == Exists {
		return "[" + scanner.EscapeIdent(a.Name) + "]"
	}
	return "[" + scanner.EscapeIdent(a.Name) + a.Operator.String() + scanner.QuoteString(a.Value) + "]"
}

// NegationSelector represents a ":not(...)" qualifier.
type NegationSelector struct {
	Sequence *SimpleSelectorSequence `json:"sequence" yaml:"sequence"`
	Span     Span                    `json:"-" yaml:"-"`
}

// String returns the canonical text of the negation.
func (n *NegationSelector) String() string {
	return ":not(" + n.Sequence.String() + ")"
}

// Span is the source range a node was parsed from. End is exclusive.
// Nodes built by hand have a zero Span.
type Span struct {
	Pos token.Pos
	End token.Pos
}

// Raw returns the text of src covered by the span, or an empty string if the
// span does not fit within src.
func (s Span) Raw(src string) string {
	if s.Pos.Offset < 0 || s.Pos.Offset > s.End.Offset || s.End.Offset > len(src) {
		return ""
	}
	return src[s.Pos.Offset:s.End.Offset]
}

// Combinator represents the relationship between two simple selector sequences.
type Combinator int

const (
	Descendant Combinator = iota
	Child
	AdjacentSibling
	GeneralSibling
)

var combinators = [...]struct {
	name   string
	symbol string
}{
	Descendant:      {"descendant", " "},
	Child:           {"child", " > "},
	AdjacentSibling: {"adjacent", " + "},
	GeneralSibling:  {"sibling", " ~ "},
}

// String returns the name of the combinator.
func (c Combinator) String() string {
	if c >= 0 && c < Combinator(len(combinators)) {
		return combinators[c].name
	}
	return ""
}

// Symbol returns the combinator as written between two sequences.
func (c Combinator) Symbol() string {
	if c >= 0 && c < Combinator(len(combinators)) {
		return combinators[c].symbol
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (c Combinator) MarshalText() ([]byte, error) {
	if s := c.String(); s != "" {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("invalid combinator: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combinator) UnmarshalText(text []byte) error {
	for i := range combinators {
		if combinators[i].name == string(text) {
			*c = Combinator(i)
			return nil
		}
	}
	return fmt.Errorf("invalid combinator: %q", text)
}

// Operator represents an attribute comparison.
type Operator int

const (
	Exists Operator = iota
	Equals
	PrefixMatch
	SuffixMatch
	SubstringMatch
	IncludeMatch
	DashMatch
)

var operators = [...]string{
	Exists:         "",
	Equals:         "=",
	PrefixMatch:    "^=",
	SuffixMatch:    "$=",
	SubstringMatch: "*=",
	IncludeMatch:   "~=",
	DashMatch:      "|=",
}

// LookupOperator returns the operator for its textual form.
func LookupOperator(s string) (Operator, bool) {
	for i, op := range operators {
		if i > 0 && op == s {
			return Operator(i), true
		}
	}
	return Exists, false
}

// String returns the operator as written in a selector.
// Exists has no textual form and returns an empty string.
func (op Operator) String() string {
	if op >= 0 && op < Operator(len(operators)) {
		return operators[op]
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (op Operator) MarshalText() ([]byte, error) {
	if op == Exists {
		return []byte("exists"), nil
	} else if s := op.String(); s != "" {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("invalid operator: %d", int(op))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operator) UnmarshalText(text []byte) error {
	if string(text) == "exists" {
		*op = Exists
		return nil
	}
	v, ok := LookupOperator(string(text))
	if !ok {
		return fmt.Errorf("invalid operator: %q", text)
	}
	*op = v
	return nil
}
