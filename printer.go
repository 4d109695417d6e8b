package cssselect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/cssselect/ast"
)

// Printer writes an indented outline of a selector tree.
type Printer struct {
	// Indent is written once per nesting level. Defaults to two spaces.
	Indent string
}

// Print writes the outline of n to w. Nil nodes print nothing.
func (p *Printer) Print(w io.Writer, n ast.Node) error {
	return p.print(w, n, 0)
}

func (p *Printer) print(w io.Writer, n ast.Node, depth int) (err error) {
	switch n := n.(type) {
	case *ast.SelectorGroup:
		if n == nil {
			return nil
		}
		if err = p.line(w, depth, "group"); err != nil {
			return err
		}
		for _, sel := range n.Selectors {
			if err = p.print(w, sel, depth+1); err != nil {
				return err
			}
		}

	case *ast.Selector:
		if n == nil {
			return nil
		}
		if err = p.line(w, depth, "selector"); err != nil {
			return err
		}
		for i, seq := range n.Sequences {
			if i > 0 && i-1 < len(n.Combinators) {
				if err = p.line(w, depth+1, "combinator "+n.Combinators[i-1].String()); err != nil {
					return err
				}
			}
			if err = p.print(w, seq, depth+1); err != nil {
				return err
			}
		}

	case *ast.SimpleSelectorSequence:
		if n == nil {
			return nil
		}
		typ := "*"
		if !n.Type.IsUniversal() {
			typ = strconv.Quote(n.Type.Name)
		}
		if err = p.line(w, depth, "sequence type="+typ); err != nil {
			return err
		}
		for _, class := range n.Classes {
			if err = p.line(w, depth+1, "class "+strconv.Quote(class)); err != nil {
				return err
			}
		}
		for _, attr := range n.Attributes {
			if err = p.print(w, attr, depth+1); err != nil {
				return err
			}
		}
		for _, neg := range n.Negations {
			if err = p.print(w, neg, depth+1); err != nil {
				return err
			}
		}

	case *ast.AttributeSelector:
		if n == nil {
			return nil
		}
		if n.Operator == ast.Exists {
			err = p.line(w, depth, "attribute "+strconv.Quote(n.Name)+" exists")
		} else {
			err = p.line(w, depth, fmt.Sprintf("attribute %q %s %q", n.Name, n.Operator, n.Value))
		}

	case *ast.NegationSelector:
		if n == nil {
			return nil
		}
		if err = p.line(w, depth, "not"); err != nil {
			return err
		}
		err = p.print(w, n.Sequence, depth+1)
	}

	return err
}

// line writes a single indented line.
func (p *Printer) line(w io.Writer, depth int, s string) error {
	indent := p.Indent
	if indent == "" {
		indent = "  "
	}
	_, err := io.WriteString(w, strings.Repeat(indent, depth)+s+"\n")
	return err
}
