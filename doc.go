/*
Package cssselect implements a CSS3 selectors group scanner and parser. This is
meant to be a low-level library for extracting an abstract syntax tree from
selector text such as `a[href^="x"] ~ b, div.foo > span`.

The tree is a plain data structure. Matching it against a document is left to
the caller.


Basics

Parsing occurs in two steps. First the scanner breaks the source text into
tokens such as identifiers, whitespace, strings and combinators. The scanner
works on the source string in place and tries a fixed list of token kinds in
priority order, committing to the first one that matches. The second step is
to feed these tokens into a recursive descent parser which builds the tree.

Escape sequences in identifiers and strings are decoded while the tree is
built, so `.\=\]` yields the class name "=]".

Parsing is all or nothing. Any syntax error returns a *parser.Error with the
position of the offending token and no tree.


Abstract Syntax Tree

At the top-level there is a SelectorGroup, which is simply a list of
Selectors. A Selector is a list of SimpleSelectorSequences joined by
Combinators: descendant (whitespace), child (">"), adjacent sibling ("+") and
general sibling ("~").

A SimpleSelectorSequence has a type selector, which is either an element name
or the universal selector, followed by class, attribute and negation
qualifiers. Qualifiers are kept in separate lists by kind. A negation wraps
exactly one nested sequence and may itself contain negations, up to a
configurable depth.

Every node can be written back as canonical selector text with String().
Parsing that text again produces an equal tree.


*/
package cssselect
