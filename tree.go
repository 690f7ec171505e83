package treeparse

import (
	"fmt"
	"reflect"
	"strings"
)

// State of a recognition Tree.
//
// A State is either unrecognized, recognized, or recognized with a Label. A labelled state
// refines a plain recognized state. Two different labels never merge.
type State struct {
	Recognized bool
	Label      string
}

var (
	// StateUnrecognized marks input a parser did not recognize.
	StateUnrecognized = State{}
	// StateRecognized marks an untyped match.
	StateRecognized = State{Recognized: true}
)

// StateLabelled returns a recognized State named "label".
func StateLabelled(label string) State {
	return State{Recognized: true, Label: label}
}

// Compatible returns true if "s" and "other" may describe the same node.
func (s State) Compatible(other State) bool {
	if s == other {
		return true
	}
	return s.Recognized && other.Recognized && (s.Label == "" || other.Label == "")
}

// Refine returns the more specific of two compatible states. Labels win.
func (s State) Refine(other State) State {
	if s.Label != "" {
		return s
	}
	return other
}

func (s State) String() string {
	switch {
	case !s.Recognized:
		return "-"
	case s.Label == "":
		return "+"
	default:
		return s.Label + ":"
	}
}

// Node is either a Leaf or a *Tree.
type Node interface {
	node()
}

// Leaf is an atomic input token.
//
// The engine never looks inside Value, it only compares it with ==.
type Leaf struct {
	Value interface{}
}

func (Leaf) node() {}

// Equal returns true if both leaves hold equal, comparable values.
func (l Leaf) Equal(other Leaf) bool {
	if l.Value == nil || other.Value == nil {
		return l.Value == other.Value
	}
	lt, ot := reflect.TypeOf(l.Value), reflect.TypeOf(other.Value)
	if lt != ot || !lt.Comparable() {
		return false
	}
	return l.Value == other.Value
}

func (l Leaf) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.Value)
}

// Leaves wraps values as input leaves.
func Leaves(values ...interface{}) []Leaf {
	out := make([]Leaf, len(values))
	for i, v := range values {
		out[i] = Leaf{Value: v}
	}
	return out
}

// Chars splits "s" into one single-character string Leaf per rune.
func Chars(s string) []Leaf {
	out := make([]Leaf, 0, len(s))
	for _, rn := range s {
		out = append(out, Leaf{Value: string(rn)})
	}
	return out
}

// Tree records what a parser recognized.
//
// The Nodes of a normalized parser result are all *Tree "segments": consecutive runs of input
// sharing one State. Plain segments only hold leaves, labelled segments may nest trees.
type Tree struct {
	State State
	Nodes []Node
}

func (*Tree) node() {}

// Recognized lifts "nodes" into a normalized recognized Tree.
func Recognized(nodes ...Node) *Tree {
	return Flatten(&Tree{State: StateRecognized, Nodes: nodes})
}

// Unrecognized lifts "nodes" into a normalized unrecognized Tree.
//
// Trees among "nodes" that are already recognized keep their state.
func Unrecognized(nodes ...Node) *Tree {
	return Flatten(&Tree{State: StateUnrecognized, Nodes: nodes})
}

// Labelled lifts "nodes" into a normalized Tree recognized as "label".
func Labelled(label string, nodes ...Node) *Tree {
	return Flatten(&Tree{State: StateLabelled(label), Nodes: nodes})
}

// Flatten normalizes the direct children of "tree".
//
// Bare leaves are promoted to singleton trees in the parent's state, empty trees are dropped,
// a tree whose only node is a tree of compatible state is replaced by that tree with the more
// specific state, and adjacent children with identical states are merged. The root keeps its
// own state even when a single child remains. The result is a new Tree, "tree" is not
// modified.
func Flatten(tree *Tree) *Tree {
	out := make([]Node, 0, len(tree.Nodes))
	// owned is true if the last child of out was allocated here and may be appended to.
	owned := false
	for _, n := range tree.Nodes {
		var child *Tree
		fresh := false
		switch n := n.(type) {
		case Leaf:
			child = &Tree{State: tree.State, Nodes: []Node{n}}
			fresh = true
		case *Tree:
			if n == nil {
				continue
			}
			child = collapse(n)
		default:
			continue
		}
		if len(child.Nodes) == 0 {
			continue
		}
		if len(out) > 0 {
			if last := out[len(out)-1].(*Tree); last.State == child.State {
				if !owned {
					nodes := make([]Node, len(last.Nodes), 2*(len(last.Nodes)+len(child.Nodes)))
					copy(nodes, last.Nodes)
					last = &Tree{State: last.State, Nodes: nodes}
					out[len(out)-1] = last
					owned = true
				}
				last.Nodes = append(last.Nodes, child.Nodes...)
				continue
			}
		}
		out = append(out, child)
		owned = fresh
	}
	return &Tree{State: tree.State, Nodes: out}
}

func collapse(tree *Tree) *Tree {
	for len(tree.Nodes) == 1 {
		inner, ok := tree.Nodes[0].(*Tree)
		if !ok || inner == nil || !tree.State.Compatible(inner.State) {
			break
		}
		tree = &Tree{State: tree.State.Refine(inner.State), Nodes: inner.Nodes}
	}
	return tree
}

// Leaves returns every leaf under the tree, in input order.
func (t *Tree) Leaves() []Leaf {
	out := []Leaf{}
	stack := []Node{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := n.(type) {
		case Leaf:
			out = append(out, n)
		case *Tree:
			for i := len(n.Nodes) - 1; i >= 0; i-- {
				stack = append(stack, n.Nodes[i])
			}
		}
	}
	return out
}

// Matched returns the leaves of the recognized top-level children.
func (t *Tree) Matched() []Leaf {
	return t.leavesWhere(true)
}

// Remaining returns the leaves of the unrecognized top-level children.
func (t *Tree) Remaining() []Leaf {
	return t.leavesWhere(false)
}

func (t *Tree) leavesWhere(recognized bool) []Leaf {
	out := []Leaf{}
	for _, n := range t.Nodes {
		switch n := n.(type) {
		case *Tree:
			if n.State.Recognized == recognized {
				out = append(out, n.Leaves()...)
			}
		case Leaf:
			if t.State.Recognized == recognized {
				out = append(out, n)
			}
		}
	}
	return out
}

// String renders the tree compactly, eg. `+[+["a"] -["b"]]`.
func (t *Tree) String() string {
	w := &strings.Builder{}
	writeNode(w, t)
	return w.String()
}

func writeNode(w *strings.Builder, n Node) {
	switch n := n.(type) {
	case Leaf:
		w.WriteString(n.String())
	case *Tree:
		w.WriteString(n.State.String())
		w.WriteString("[")
		for i, child := range n.Nodes {
			if i > 0 {
				w.WriteString(" ")
			}
			writeNode(w, child)
		}
		w.WriteString("]")
	}
}

func toNodes(leaves []Leaf) []Node {
	out := make([]Node, len(leaves))
	for i, leaf := range leaves {
		out[i] = leaf
	}
	return out
}
