package treeparse

import (
	"fmt"

	"github.com/treeparse/treeparse/lexer"
)

// Error represents an error while parsing.
//
// The error will contain positional information if available.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() lexer.Position
}

// IncompleteParseError is returned by Extract when a Tree can not be reduced to a single AST.
type IncompleteParseError struct {
	Reason string
	// Leaves that were not recognized, if any.
	Remaining []Leaf
}

var _ Error = &IncompleteParseError{}

func (e *IncompleteParseError) Message() string {
	if len(e.Remaining) == 0 {
		return "incomplete parse: " + e.Reason
	}
	return fmt.Sprintf("incomplete parse: %s at %s", e.Reason, e.Remaining[0])
}

// Position of the first unrecognized leaf, if it carries one.
func (e *IncompleteParseError) Position() lexer.Position {
	if len(e.Remaining) == 0 {
		return lexer.Position{}
	}
	return PositionOf(e.Remaining[0])
}

func (e *IncompleteParseError) Error() string {
	return lexer.FormatError(e.Position(), e.Message())
}

type positioned interface {
	Position() lexer.Position
}

// PositionOf returns the source position of a leaf holding a lexer.Token, or anything with a
// Position() method. Other leaves have no position.
func PositionOf(leaf Leaf) lexer.Position {
	switch v := leaf.Value.(type) {
	case lexer.Token:
		return v.Pos
	case *lexer.Token:
		return v.Pos
	case positioned:
		return v.Position()
	}
	return lexer.Position{}
}
