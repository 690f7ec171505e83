package interp

import (
	"io"

	"github.com/treeparse/treeparse/lexer"
)

// An Option to modify the behaviour of the Interpreter.
type Option func(i *Interpreter) error

// Lexer is an Option that sets the token classifier.
//
// The Definition must provide the token types Number, Operator and Punct. Tokens of type
// Whitespace, if it exists, are discarded.
func Lexer(def lexer.Definition) Option {
	return func(i *Interpreter) error {
		i.lex = def
		return nil
	}
}

// WithOperators is an Option that replaces the operator table.
//
// Operators parse with fixed precedence: "*" and "/" bind tighter than "+" and "-". The table
// determines what each symbol does, and which symbols are accepted at all.
func WithOperators(table OperatorTable) Option {
	return func(i *Interpreter) error {
		i.operators = table
		return nil
	}
}

// Trace is an Option that writes each grammar rule invocation to "w".
func Trace(w io.Writer) Option {
	return func(i *Interpreter) error {
		i.trace = w
		return nil
	}
}
