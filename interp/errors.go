package interp

import (
	"fmt"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/lexer"
)

// ArityMismatchError is returned when an operator is applied to the wrong number of operands.
type ArityMismatchError struct {
	Operator string
	Expected int
	Actual   int
	Pos      lexer.Position
}

var _ treeparse.Error = &ArityMismatchError{}

func (a *ArityMismatchError) Message() string {
	return fmt.Sprintf("%s expects %d operands but was given %d", a.Operator, a.Expected, a.Actual)
}
func (a *ArityMismatchError) Position() lexer.Position { return a.Pos }
func (a *ArityMismatchError) Error() string            { return lexer.FormatError(a.Pos, a.Message()) }

// TypeMismatchError is returned when an operand's type differs from the operator's signature.
type TypeMismatchError struct {
	Operator string
	Expected string
	Actual   string
	Pos      lexer.Position
}

var _ treeparse.Error = &TypeMismatchError{}

func (t *TypeMismatchError) Message() string {
	return fmt.Sprintf("%s expects an operand of type %s but was given %s", t.Operator, t.Expected, t.Actual)
}
func (t *TypeMismatchError) Position() lexer.Position { return t.Pos }
func (t *TypeMismatchError) Error() string            { return lexer.FormatError(t.Pos, t.Message()) }

// OperatorError is returned when an operator can not produce a result, eg. division by zero.
type OperatorError struct {
	Operator string
	Msg      string
	Pos      lexer.Position
}

var _ treeparse.Error = &OperatorError{}

func (o *OperatorError) Message() string          { return o.Operator + ": " + o.Msg }
func (o *OperatorError) Position() lexer.Position { return o.Pos }
func (o *OperatorError) Error() string            { return lexer.FormatError(o.Pos, o.Message()) }
