package interp

import (
	"fmt"

	"github.com/treeparse/treeparse/lexer"
)

// Types of Value.
const (
	NumberType   = "number"
	FunctionType = "function"
)

// An Expr is either a Value or an *Application.
type Expr interface {
	expr()
}

// Value is a typed runtime value.
//
// Numbers are float64. A FunctionType Value holds a partially applied *Function.
type Value struct {
	Type  string
	Value interface{}
}

func (Value) expr() {}

// Number creates a NumberType Value.
func Number(n float64) Value { return Value{Type: NumberType, Value: n} }

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.Type, v.Value)
}

// A Function is a curried operator: Apply consumes one argument at a time.
//
// While Arity is greater than one, Apply returns a FunctionType Value holding the next
// *Function, which expects one fewer argument. Once Arity is one, Apply returns the result.
type Function struct {
	Name string
	// Signature lists the argument types followed by the result type.
	Signature []string
	Arity     int
	Apply     func(arg Value) (Value, error)
}

func (f *Function) String() string { return f.Name }

// Curry builds a *Function of len(signature)-1 arguments from "f", which is called once all of
// them have been applied.
func Curry(name string, signature []string, f func(args ...Value) (Value, error)) *Function {
	return curry(name, signature, nil, f)
}

func curry(name string, signature []string, bound []Value, f func(args ...Value) (Value, error)) *Function {
	return &Function{
		Name:      name,
		Signature: signature,
		Arity:     len(signature) - 1,
		Apply: func(arg Value) (Value, error) {
			args := append(bound[:len(bound):len(bound)], arg)
			if len(signature) <= 2 {
				return f(args...)
			}
			return Value{Type: FunctionType, Value: curry(name, signature[1:], args, f)}, nil
		},
	}
}

// Application of an operator to its operands.
type Application struct {
	Operator *Function
	Operands []Expr
	// Pos of the operator in the source, if known.
	Pos lexer.Position
}

func (*Application) expr() {}
