// Package interp evaluates arithmetic expressions built from treeparse grammars.
//
// Source is classified into tokens by a lexer.Definition, parenthesised groups are matched with
// the group package, each group is parsed with a treeparse grammar and the resulting AST is
// lowered into curried operator Applications, which Reduce evaluates.
//
//     value, err := interp.Interpret("1 + 2 * (3 - 1)")
//     // number(5)
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/group"
	"github.com/treeparse/treeparse/lexer"
)

// DefaultLexer classifies numbers, the four arithmetic operators and parentheses.
var DefaultLexer = lexer.Must(lexer.Regexp(
	`(?P<Number>\d+(?:\.\d+)?)|(?P<Operator>[-+*/])|(?P<Punct>[()])|(?P<Whitespace>\s+)`,
))

// Interpreter for arithmetic expressions.
type Interpreter struct {
	lex       lexer.Definition
	operators OperatorTable
	trace     io.Writer

	number   rune
	operator rune
	punct    rune
	groups   group.Matcher
	grammar  treeparse.Parser
}

// New creates an Interpreter.
func New(options ...Option) (*Interpreter, error) {
	i := &Interpreter{
		lex:       DefaultLexer,
		operators: Standard(),
	}
	for _, option := range options {
		if err := option(i); err != nil {
			return nil, err
		}
	}
	i.lex = lexer.Elide(i.lex, "Whitespace")
	for symbol, rn := range map[string]*rune{"Number": &i.number, "Operator": &i.operator, "Punct": &i.punct} {
		t, err := lexer.TokenType(i.lex, symbol)
		if err != nil {
			return nil, err
		}
		*rn = t
	}
	i.groups = group.Between(i.punctuation("("), i.punctuation(")"), group.Wrap)
	i.grammar = i.build()
	return i, nil
}

// Interpret evaluates "source" with a default Interpreter.
func Interpret(source string) (Value, error) {
	i, err := New()
	if err != nil {
		return Value{}, err
	}
	return i.Interpret(source)
}

// Interpret parses and evaluates "source".
func (i *Interpreter) Interpret(source string) (Value, error) {
	expr, err := i.Parse(source)
	if err != nil {
		return Value{}, err
	}
	return Reduce(expr)
}

// Result of an evaluation delivered by Run.
type Result struct {
	Value Value
	Err   error
}

// Run evaluates "source" and delivers the result on the returned channel, which is closed
// afterwards.
//
// Evaluation happens before Run returns; the channel only defers delivery to the receiver.
func (i *Interpreter) Run(source string) <-chan Result {
	out := make(chan Result, 1)
	value, err := i.Interpret(source)
	out <- Result{Value: value, Err: err}
	close(out)
	return out
}

// Parse "source" into an expression without evaluating it.
//
// Groups are parsed innermost first, so the grammar itself never recurses.
func (i *Interpreter) Parse(source string) (Expr, error) {
	top, err := i.tokenize(source)
	if err != nil {
		return nil, err
	}

	// Pre-order, so that reversed every group follows the groups it contains.
	order := []*group.Group{}
	stack := groupsIn(top)
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, g)
		stack = append(stack, groupsIn(g.Children)...)
	}
	lowered := make(map[*group.Group]Expr, len(order))
	for n := len(order) - 1; n >= 0; n-- {
		expr, err := i.parseLeaves(order[n].Children, lowered)
		if err != nil {
			return nil, err
		}
		lowered[order[n]] = expr
	}
	return i.parseLeaves(top, lowered)
}

// AST returns the syntax tree of the top level of "source", with parenthesised groups left as
// *group.Group leaves.
func (i *Interpreter) AST(source string) (*treeparse.AST, error) {
	tree, err := i.Tree(source)
	if err != nil {
		return nil, err
	}
	return treeparse.Extract(tree)
}

// Tree returns the recognition tree of the top level of "source".
func (i *Interpreter) Tree(source string) (*treeparse.Tree, error) {
	top, err := i.tokenize(source)
	if err != nil {
		return nil, err
	}
	return i.grammar(top), nil
}

// tokenize "source" into leaves, with parenthesised groups replaced by *group.Group leaves.
func (i *Interpreter) tokenize(source string) ([]treeparse.Leaf, error) {
	tokens, err := lexer.LexString(i.lex, source)
	if err != nil {
		return nil, err
	}
	leaves := make([]treeparse.Leaf, len(tokens))
	for n, token := range tokens {
		leaves[n] = treeparse.Leaf{Value: token}
	}
	match, err := i.groups(leaves)
	if err != nil {
		return nil, err
	}
	return match.Recognized, nil
}

func (i *Interpreter) parseLeaves(leaves []treeparse.Leaf, lowered map[*group.Group]Expr) (Expr, error) {
	ast, err := treeparse.Extract(i.grammar(leaves))
	if err != nil {
		return nil, err
	}
	return i.lower(ast, lowered)
}

// lower converts an AST into an expression. Each node is an operand followed by any number of
// [operator, operand] pairs, folded to the left.
func (i *Interpreter) lower(node treeparse.ASTNode, lowered map[*group.Group]Expr) (Expr, error) {
	switch node := node.(type) {
	case treeparse.Leaf:
		return i.lowerLeaf(node, lowered)

	case *treeparse.AST:
		if len(node.Nodes) == 0 {
			return nil, fmt.Errorf("empty %q node", node.Type)
		}
		acc, err := i.lower(node.Nodes[0], lowered)
		if err != nil {
			return nil, err
		}
		for _, child := range node.Nodes[1:] {
			token, operand, err := i.operation(child)
			if err != nil {
				return nil, err
			}
			fn, ok := i.operators.Lookup(token.Value)
			if !ok {
				return nil, lexer.Errorf(token.Pos, "unknown operator %q", token.Value)
			}
			rhs, err := i.lower(operand, lowered)
			if err != nil {
				return nil, err
			}
			acc = &Application{Operator: fn, Operands: []Expr{acc, rhs}, Pos: token.Pos}
		}
		return acc, nil
	}
	return nil, fmt.Errorf("unsupported node %T", node)
}

func (i *Interpreter) operation(node treeparse.ASTNode) (lexer.Token, treeparse.ASTNode, error) {
	ast, ok := node.(*treeparse.AST)
	if !ok || len(ast.Nodes) != 2 {
		return lexer.Token{}, nil, fmt.Errorf("expected an operation but got %v", node)
	}
	leaf, ok := ast.Nodes[0].(treeparse.Leaf)
	if !ok {
		return lexer.Token{}, nil, fmt.Errorf("expected an operator but got %v", ast.Nodes[0])
	}
	token, ok := leaf.Value.(lexer.Token)
	if !ok || token.Type != i.operator {
		return lexer.Token{}, nil, fmt.Errorf("expected an operator but got %v", leaf)
	}
	return token, ast.Nodes[1], nil
}

func (i *Interpreter) lowerLeaf(leaf treeparse.Leaf, lowered map[*group.Group]Expr) (Expr, error) {
	switch value := leaf.Value.(type) {
	case lexer.Token:
		if value.Type != i.number {
			return nil, lexer.Errorf(value.Pos, "unexpected %q", value.Value)
		}
		n, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return nil, lexer.Errorf(value.Pos, "invalid number %q: %s", value.Value, err)
		}
		return Number(n), nil

	case *group.Group:
		expr, ok := lowered[value]
		if !ok {
			return nil, fmt.Errorf("group at %s was not parsed", value.Position())
		}
		return expr, nil
	}
	return nil, fmt.Errorf("unexpected leaf %v", leaf)
}

func groupsIn(leaves []treeparse.Leaf) []*group.Group {
	var out []*group.Group
	for _, leaf := range leaves {
		if g, ok := leaf.Value.(*group.Group); ok {
			out = append(out, g)
		}
	}
	return out
}
