package treeparse

import (
	"fmt"
	"strings"
)

// ASTNode is either a Leaf or an *AST.
type ASTNode interface {
	astNode()
}

func (Leaf) astNode() {}

// AST is the minimal typed tree derived from a fully recognized Tree.
//
// Type is the label of the rule that recognized Nodes, or empty for untyped matches.
type AST struct {
	Type  string
	Nodes []ASTNode
}

func (*AST) astNode() {}

func (a *AST) String() string {
	w := &strings.Builder{}
	writeAST(w, a)
	return w.String()
}

func writeAST(w *strings.Builder, n ASTNode) {
	switch n := n.(type) {
	case Leaf:
		w.WriteString(n.String())
	case *AST:
		w.WriteString(n.Type)
		w.WriteString("[")
		for i, child := range n.Nodes {
			if i > 0 {
				w.WriteString(" ")
			}
			writeAST(w, child)
		}
		w.WriteString("]")
	}
}

// Extract converts a fully recognized Tree into an AST.
//
// An *IncompleteParseError is returned if the tree is not recognized, if any input was left
// unrecognized, or if the grammar did not reduce the input to exactly one root.
func Extract(tree *Tree) (*AST, error) {
	if tree == nil || !tree.State.Recognized {
		var remaining []Leaf
		if tree != nil {
			remaining = tree.Leaves()
		}
		return nil, &IncompleteParseError{Reason: "input was not recognized", Remaining: remaining}
	}
	if remaining := tree.Remaining(); len(remaining) > 0 {
		return nil, &IncompleteParseError{Reason: "unrecognized input remains", Remaining: remaining}
	}
	root := simplify(tree)
	if len(root.Nodes) != 1 {
		return nil, &IncompleteParseError{Reason: fmt.Sprintf("expected a single root but got %d", len(root.Nodes))}
	}
	switch n := root.Nodes[0].(type) {
	case *AST:
		return n, nil
	default:
		return &AST{Nodes: []ASTNode{n}}, nil
	}
}

// simplify replaces every Tree with an AST carrying its label, without recursion.
func simplify(tree *Tree) *AST {
	type frame struct {
		src *Tree
		dst *AST
	}
	root := &AST{Type: tree.State.Label, Nodes: make([]ASTNode, 0, len(tree.Nodes))}
	stack := []frame{{src: tree, dst: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range f.src.Nodes {
			switch n := n.(type) {
			case Leaf:
				f.dst.Nodes = append(f.dst.Nodes, n)
			case *Tree:
				child := &AST{Type: n.State.Label, Nodes: make([]ASTNode, 0, len(n.Nodes))}
				f.dst.Nodes = append(f.dst.Nodes, child)
				stack = append(stack, frame{src: n, dst: child})
			}
		}
	}
	return root
}
