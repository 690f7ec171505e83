package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/group"
	"github.com/treeparse/treeparse/lexer"
)

func TestInterpret(t *testing.T) {
	value, err := Interpret("1 + 2")
	require.NoError(t, err)
	require.Equal(t, Value{Type: "number", Value: float64(3)}, value)

	value, err = Interpret("1 + 2 + 3")
	require.NoError(t, err)
	require.Equal(t, Value{Type: "number", Value: float64(6)}, value)
}

func TestInterpretArithmetic(t *testing.T) {
	tests := []struct {
		source   string
		expected float64
	}{
		{"42", 42},
		{"1.5 * 2", 3},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 4 - 3", 3},
		{"8 / 2 / 2", 2},
		{"((1))", 1},
		{"2 * (3 - (4 + 1)) / 4", -1},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			value, err := Interpret(test.source)
			require.NoError(t, err)
			require.Equal(t, Number(test.expected), value)
		})
	}
}

func TestInterpretErrors(t *testing.T) {
	tests := []struct {
		source string
		err    string
	}{
		{"1 / 0", "1:3: /: division by zero"},
		{"1 +", "1:3: incomplete parse: unrecognized input remains at +"},
		{"1 2", "1:3: incomplete parse: unrecognized input remains at 2"},
		{"", "incomplete parse: input was not recognized"},
		{"1 ? 2", "1:3: invalid token '?'"},
		{"(1 + 2", "1:1: unexpected end of input after ( (expected end of group)"},
		{"1 + 2)", "1:6: unexpected ) (expected start of group)"},
		{"(1)(2)", "1:5: incomplete parse: unrecognized input remains at (2)"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			_, err := Interpret(test.source)
			require.EqualError(t, err, test.err)
		})
	}

	_, err := Interpret("(1 +")
	perr := &group.ParseError{}
	require.True(t, errors.As(err, &perr))

	_, err = Interpret("2 * ()")
	ierr := &treeparse.IncompleteParseError{}
	require.True(t, errors.As(err, &ierr), repr.String(err))
}

func TestWithOperators(t *testing.T) {
	standard := Standard()
	i, err := New(WithOperators(Operators{
		"+": standard["+"],
		"-": Curry("-", []string{NumberType, NumberType, NumberType}, func(args ...Value) (Value, error) {
			return Number(args[1].Value.(float64) - args[0].Value.(float64)), nil
		}),
	}))
	require.NoError(t, err)

	value, err := i.Interpret("1 - 3 + 1")
	require.NoError(t, err)
	require.Equal(t, Number(3), value)

	_, err = i.Interpret("2 * 3")
	require.EqualError(t, err, `1:3: unknown operator "*"`)
}

func TestLexerOption(t *testing.T) {
	def, err := lexer.EBNF(`
		Number = digit { digit } [ "." digit { digit } ] .
		Operator = "+" | "-" | "*" | "/" .
		Punct = "(" | ")" .
		Whitespace = " " | "\t" | "\n" .
		digit = "0" … "9" .
	`)
	require.NoError(t, err)
	i, err := New(Lexer(def))
	require.NoError(t, err)
	value, err := i.Interpret("1 + 2 * (3.5 - 0.5)")
	require.NoError(t, err)
	require.Equal(t, Number(7), value)

	_, err = New(Lexer(lexer.Must(lexer.Regexp(`(?P<Number>\d+)|(?P<Punct>[()])`))))
	require.EqualError(t, err, `lexer has no symbol "Operator"`)
}

func TestTrace(t *testing.T) {
	w := &bytes.Buffer{}
	i, err := New(Trace(w))
	require.NoError(t, err)
	_, err = i.Interpret("1 + 2")
	require.NoError(t, err)
	require.Contains(t, w.String(), "sum [1 + 2] => ")
	require.Contains(t, w.String(), "operand [2] => ")
}

func TestAST(t *testing.T) {
	i, err := New()
	require.NoError(t, err)
	ast, err := i.AST("1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, "sum[product[1] apply[+ product[number[2] apply[* number[3]]]]]", ast.String())

	tree, err := i.Tree("1 +")
	require.NoError(t, err)
	require.True(t, tree.State.Recognized)
	require.Len(t, tree.Remaining(), 1)
}

func TestRun(t *testing.T) {
	i, err := New()
	require.NoError(t, err)
	result, ok := <-i.Run("1 + 2 + 3")
	require.True(t, ok)
	require.NoError(t, result.Err)
	require.Equal(t, Number(6), result.Value)

	result = <-i.Run("1 +")
	require.Error(t, result.Err)
}

func TestInterpretLongInput(t *testing.T) {
	value, err := Interpret(strings.TrimSuffix(strings.Repeat("1 + ", 1000), " + "))
	require.NoError(t, err)
	require.Equal(t, Number(1000), value)

	const depth = 10000
	value, err = Interpret(strings.Repeat("(", depth) + "2 * 3" + strings.Repeat(")", depth))
	require.NoError(t, err)
	require.Equal(t, Number(6), value)
}
