package treeparse

// A Parser recognizes a prefix of its input.
//
// Parsers never fail: a non-match is reported as a Tree in StateUnrecognized covering the whole
// input. A successful result is recognized and its unrecognized children hold the remainder.
type Parser func(input []Leaf) *Tree

// Literal matches a single leaf equal to "target".
func Literal(target interface{}) Parser {
	want := Leaf{Value: target}
	return Is(func(leaf Leaf) bool { return leaf.Equal(want) })
}

// Is matches a single leaf satisfying "predicate".
func Is(predicate func(Leaf) bool) Parser {
	return func(input []Leaf) *Tree {
		if len(input) == 0 || !predicate(input[0]) {
			return Unrecognized(toNodes(input)...)
		}
		return Recognized(input[0], Unrecognized(toNodes(input[1:])...))
	}
}

// OneOf matches the first of "targets" equal to the next leaf.
func OneOf(targets ...interface{}) Parser {
	parsers := make([]Parser, len(targets))
	for i, target := range targets {
		parsers[i] = Literal(target)
	}
	return First(parsers...)
}

// AnyChar matches any single-character string leaf in "set".
func AnyChar(set string) Parser {
	targets := []interface{}{}
	for _, leaf := range Chars(set) {
		targets = append(targets, leaf.Value)
	}
	return OneOf(targets...)
}

// Sequence matches each of "parsers" in turn, each one against what its predecessor left
// unrecognized.
//
// If any stage fails the whole input is reported unrecognized; partial matches never leak. A
// stage that finds the input exhausted is still applied to the empty input, so trailing
// optional parsers succeed at end of input. The recognized children of the result are joined
// into a single run.
func Sequence(parsers ...Parser) Parser {
	switch len(parsers) {
	case 0:
		return nothing
	case 1:
		return parsers[0]
	}
	return func(input []Leaf) *Tree {
		result := parsers[0](input)
		if !result.State.Recognized {
			return Unrecognized(toNodes(input)...)
		}
		children := result.Nodes
		for _, parser := range parsers[1:] {
			next := make([]Node, 0, len(children)+1)
			attempted := false
			for _, child := range children {
				tree, ok := child.(*Tree)
				if !ok || tree.State.Recognized {
					next = append(next, child)
					continue
				}
				attempted = true
				stage := parser(tree.Leaves())
				if !stage.State.Recognized {
					return Unrecognized(toNodes(input)...)
				}
				next = append(next, stage.Nodes...)
			}
			if !attempted {
				stage := parser(nil)
				if !stage.State.Recognized {
					return Unrecognized(toNodes(input)...)
				}
				next = append(next, stage.Nodes...)
			}
			children = next
		}
		return Recognized(join(children)...)
	}
}

// join collapses each run of recognized children into one plain recognized tree. Plain
// children contribute their nodes, labelled children are kept whole.
func join(children []Node) []Node {
	out := make([]Node, 0, len(children))
	var run []Node
	flush := func() {
		if len(run) > 0 {
			out = append(out, &Tree{State: StateRecognized, Nodes: run})
			run = nil
		}
	}
	for _, child := range children {
		tree, ok := child.(*Tree)
		switch {
		case !ok:
			run = append(run, child)
		case !tree.State.Recognized:
			flush()
			out = append(out, tree)
		case tree.State.Label == "":
			run = append(run, tree.Nodes...)
		default:
			run = append(run, tree)
		}
	}
	flush()
	return out
}

// First returns the result of the first of "parsers" to recognize its input.
func First(parsers ...Parser) Parser {
	return func(input []Leaf) *Tree {
		for _, parser := range parsers {
			if result := parser(input); result.State.Recognized {
				return result
			}
		}
		return Unrecognized(toNodes(input)...)
	}
}

// Tag names what "parsers", as an implicit Sequence, recognize.
//
// Every recognized top-level child of the result is relabelled "label", replacing any
// previous label.
//
// eg.
//
// 		integer := Tag("integer")(OneOrMore(AnyChar("0123456789")))
func Tag(label string) func(parsers ...Parser) Parser {
	return func(parsers ...Parser) Parser {
		parser := Sequence(parsers...)
		return func(input []Leaf) *Tree {
			result := parser(input)
			if !result.State.Recognized {
				return result
			}
			nodes := make([]Node, len(result.Nodes))
			for i, n := range result.Nodes {
				if tree, ok := n.(*Tree); ok && tree.State.Recognized {
					n = &Tree{State: StateLabelled(label), Nodes: tree.Nodes}
				}
				nodes[i] = n
			}
			return Flatten(&Tree{State: result.State, Nodes: nodes})
		}
	}
}

// Optional matches "parsers" as a Sequence if possible, or succeeds recognizing nothing.
func Optional(parsers ...Parser) Parser {
	return First(Sequence(parsers...), nothing)
}

// nothing always succeeds, leaving all of its input unrecognized.
func nothing(input []Leaf) *Tree {
	return Recognized(Unrecognized(toNodes(input)...))
}

// OneOrMore greedily matches "parser" at least once.
//
// Repetition stops at the first position where "parser" fails or stops consuming input.
func OneOrMore(parser Parser) Parser {
	return func(input []Leaf) *Tree {
		result := parser(input)
		if !result.State.Recognized {
			return Unrecognized(toNodes(input)...)
		}
		matched := []Node{}
		rest := result.Nodes
		for {
			var tail *Tree
			if n := len(rest); n > 0 {
				if tree, ok := rest[n-1].(*Tree); ok && !tree.State.Recognized {
					tail = tree
					rest = rest[:n-1]
				}
			}
			matched = append(matched, rest...)
			if tail == nil {
				break
			}
			remaining := tail.Leaves()
			next := parser(remaining)
			if !next.State.Recognized || len(next.Remaining()) >= len(remaining) {
				matched = append(matched, tail)
				break
			}
			rest = next.Nodes
		}
		return Recognized(join(matched)...)
	}
}

// ZeroOrMore greedily matches "parser" any number of times.
func ZeroOrMore(parser Parser) Parser {
	return Optional(OneOrMore(parser))
}

// Lazy defers construction of a Parser until it is invoked.
//
// This allows recursive grammars, where a rule refers to itself.
func Lazy(build func() Parser) Parser {
	return func(input []Leaf) *Tree {
		return build()(input)
	}
}
