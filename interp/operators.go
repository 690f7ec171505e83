package interp

import (
	"fmt"
	"sort"
)

// OperatorTable resolves operator symbols to curried functions.
type OperatorTable interface {
	Lookup(symbol string) (*Function, bool)
}

// Operators is an OperatorTable backed by a map.
type Operators map[string]*Function

// Lookup implements OperatorTable.
func (o Operators) Lookup(symbol string) (*Function, bool) {
	fn, ok := o[symbol]
	return fn, ok
}

// Symbols returns the operator symbols in the table, sorted.
func (o Operators) Symbols() []string {
	out := make([]string, 0, len(o))
	for symbol := range o {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Standard returns the arithmetic operators + - * and /.
func Standard() Operators {
	return Operators{
		"+": arithmetic("+", func(a, b float64) (float64, error) { return a + b, nil }),
		"-": arithmetic("-", func(a, b float64) (float64, error) { return a - b, nil }),
		"*": arithmetic("*", func(a, b float64) (float64, error) { return a * b, nil }),
		"/": arithmetic("/", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, &OperatorError{Operator: "/", Msg: "division by zero"}
			}
			return a / b, nil
		}),
	}
}

func arithmetic(name string, f func(a, b float64) (float64, error)) *Function {
	return Curry(name, []string{NumberType, NumberType, NumberType}, func(args ...Value) (Value, error) {
		a, ok := args[0].Value.(float64)
		if !ok {
			return Value{}, &OperatorError{Operator: name, Msg: fmt.Sprintf("expected a float64 operand but got %T", args[0].Value)}
		}
		b, ok := args[1].Value.(float64)
		if !ok {
			return Value{}, &OperatorError{Operator: name, Msg: fmt.Sprintf("expected a float64 operand but got %T", args[1].Value)}
		}
		n, err := f(a, b)
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	})
}
