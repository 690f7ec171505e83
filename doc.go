// Package treeparse is a parser-combinator engine producing tagged recognition trees.
//
// A Parser maps a sequence of leaves (tokens) to a Tree. Trees are tri-state: every node is
// unrecognized, recognized, or recognized under a label. Parsers never fail; a non-match is an
// unrecognized Tree over the whole input, so combinators compose by inspecting states.
//
// The supported combinators are:
//
//     - `Literal(v)` Match one leaf equal to v.
//     - `Is(predicate)` Match one leaf satisfying predicate.
//     - `Sequence(a, b, ...)` Match a, then b against what a left over, and so on.
//     - `First(a, b, ...)` The first of a, b, ... that matches.
//     - `Tag(label)(a, ...)` Name what the implicit sequence a, ... matched.
//     - `Optional(a, ...)` Match the implicit sequence a, ... or nothing.
//     - `OneOrMore(a)` Match a at least once, greedily.
//
// Here's a grammar for decimal numbers:
//
//     digit := AnyChar("0123456789")
//     integer := Tag("integer")(OneOrMore(digit))
//     floating := Tag("floating")(integer, Literal("."), integer)
//
// A fully recognized Tree is converted into an AST with Extract:
//
//     ast, err := Extract(floating(Chars("4.2")))
//     // floating[integer["4"] "." integer["2"]]
//
// Matching of nested delimiters is provided separately by the group package, and evaluation of
// arithmetic expressions built from these parts by the interp package.
package treeparse
