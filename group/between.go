package group

import (
	"strings"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/lexer"
)

// TransformFunc replaces the children of a matched group with a single leaf.
type TransformFunc func(children []treeparse.Leaf) treeparse.Leaf

// Group is the leaf produced by Wrap.
type Group struct {
	Children []treeparse.Leaf
}

// Position of the first child, if it has one.
func (g *Group) Position() lexer.Position {
	if len(g.Children) == 0 {
		return lexer.Position{}
	}
	return treeparse.PositionOf(g.Children[0])
}

// String renders the children in parentheses, eg. `("a" "b")`.
func (g *Group) String() string {
	out := make([]string, len(g.Children))
	for i, child := range g.Children {
		out[i] = child.String()
	}
	return "(" + strings.Join(out, " ") + ")"
}

// Wrap is a TransformFunc producing a *Group leaf.
func Wrap(children []treeparse.Leaf) treeparse.Leaf {
	return treeparse.Leaf{Value: &Group{Children: children}}
}

// Delimiters describe one kind of group.
type Delimiters struct {
	// Name is used in error messages, eg. "parenthesis".
	Name      string
	Start     Predicate
	End       Predicate
	Transform TransformFunc
}

// Between matches groups delimited by "start" and "end" across the whole input.
//
// Leaves outside any group pass through verbatim; each group, along with its delimiters, is
// replaced by "transform" of its children. Groups nest to any depth. An unterminated group or
// an end delimiter without a start is a *ParseError.
func Between(start, end Predicate, transform TransformFunc) Matcher {
	return Nested(Delimiters{Name: "group", Start: start, End: end, Transform: transform})
}

// Nested is Between for several kinds of delimiters, which may be interleaved freely.
//
// A group must be closed by the end delimiter of its own kind. A leaf that both starts and ends
// a kind, like a quote, closes the innermost group if that group is of its kind and opens a new
// group otherwise.
func Nested(kinds ...Delimiters) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		type frame struct {
			kind     int
			open     treeparse.Leaf
			children []treeparse.Leaf
		}
		stack := []*frame{{kind: -1, children: []treeparse.Leaf{}}}
		for _, leaf := range input {
			top := stack[len(stack)-1]
			if top.kind >= 0 && kinds[top.kind].End(leaf) {
				stack = stack[:len(stack)-1]
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, kinds[top.kind].Transform(top.children))
				continue
			}
			if k := indexOf(kinds, leaf, func(d Delimiters) Predicate { return d.Start }); k >= 0 {
				stack = append(stack, &frame{kind: k, open: leaf, children: []treeparse.Leaf{}})
				continue
			}
			if k := indexOf(kinds, leaf, func(d Delimiters) Predicate { return d.End }); k >= 0 {
				expected := "start of " + kinds[k].Name
				if top.kind >= 0 {
					expected = "end of " + kinds[top.kind].Name
				}
				return Match{}, &ParseError{Unexpected: leaf, Expected: expected}
			}
			top.children = append(top.children, leaf)
		}
		if top := stack[len(stack)-1]; top.kind >= 0 {
			return Match{}, &ParseError{EOF: true, Unexpected: top.open, Expected: "end of " + kinds[top.kind].Name}
		}
		return Match{Recognized: stack[0].children, Remaining: []treeparse.Leaf{}}, nil
	}
}

func indexOf(kinds []Delimiters, leaf treeparse.Leaf, predicate func(Delimiters) Predicate) int {
	for i, kind := range kinds {
		if predicate(kind)(leaf) {
			return i
		}
	}
	return -1
}
