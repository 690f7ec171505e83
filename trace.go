package treeparse

import (
	"fmt"
	"io"
	"strings"
)

// Trace wraps "parser", writing each invocation and its result to "w".
//
// Output is of the form:
//
//     integer ["4" "." "2"] => +[integer:["4"] -["." "2"]]
func Trace(w io.Writer, name string, parser Parser) Parser {
	return func(input []Leaf) *Tree {
		result := parser(input)
		fmt.Fprintf(w, "%s %s => %s\n", name, formatLeaves(input), result)
		return result
	}
}

func formatLeaves(leaves []Leaf) string {
	out := make([]string, len(leaves))
	for i, leaf := range leaves {
		out[i] = leaf.String()
	}
	return "[" + strings.Join(out, " ") + "]"
}
