package interp

import (
	"errors"
	"fmt"
)

// Reduce evaluates an expression.
//
// Values reduce to themselves. An Application reduces its operands left to right, feeding each
// to its curried operator in turn. Nested applications are evaluated with an explicit stack, so
// arbitrarily deep expressions can be reduced.
func Reduce(expr Expr) (Value, error) {
	type frame struct {
		app     *Application
		fn      *Function
		applied int
	}
	var (
		stack  []*frame
		result Value
	)
	current := expr
	for {
		switch e := current.(type) {
		case Value:
			result = e

		case *Application:
			if e.Operator == nil {
				return Value{}, fmt.Errorf("application has no operator")
			}
			if len(e.Operands) == 0 || len(e.Operands) != e.Operator.Arity {
				return Value{}, &ArityMismatchError{Operator: e.Operator.Name, Expected: e.Operator.Arity, Actual: len(e.Operands), Pos: e.Pos}
			}
			stack = append(stack, &frame{app: e, fn: e.Operator})
			current = e.Operands[0]
			continue

		default:
			return Value{}, fmt.Errorf("can't reduce %T", current)
		}

		for {
			if len(stack) == 0 {
				return result, nil
			}
			top := stack[len(stack)-1]
			if len(top.fn.Signature) > 0 && top.fn.Signature[0] != result.Type {
				return Value{}, &TypeMismatchError{Operator: top.fn.Name, Expected: top.fn.Signature[0], Actual: result.Type, Pos: top.app.Pos}
			}
			next, err := top.fn.Apply(result)
			if err != nil {
				var operr *OperatorError
				if errors.As(err, &operr) && operr.Pos.Line == 0 {
					operr.Pos = top.app.Pos
				}
				return Value{}, err
			}
			top.applied++
			if top.applied == len(top.app.Operands) {
				stack = stack[:len(stack)-1]
				result = next
				continue
			}
			fn, ok := next.Value.(*Function)
			if !ok {
				return Value{}, &ArityMismatchError{Operator: top.fn.Name, Expected: top.applied, Actual: len(top.app.Operands), Pos: top.app.Pos}
			}
			top.fn = fn
			current = top.app.Operands[top.applied]
			break
		}
	}
}
