package cssselect

import (
	"strconv"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/parser"
)

// Parse parses a selectors group with the default parser configuration.
func Parse(s string) (*ast.SelectorGroup, error) {
	return parser.ParseSelectorsGroup(s)
}

// MustParse is like Parse but panics if the text cannot be parsed.
// It is meant for selectors that are fixed at compile time.
func MustParse(s string) *ast.SelectorGroup {
	g, err := Parse(s)
	if err != nil {
		panic("cssselect: Parse(" + strconv.Quote(s) + "): " + err.Error())
	}
	return g
}
