package interp

import (
	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/group"
	"github.com/treeparse/treeparse/lexer"
)

// build the expression grammar:
//
//     operand = number | group
//     product = operand ("*" | "/" operand)*
//     sum     = product ("+" | "-" product)*
func (i *Interpreter) build() treeparse.Parser {
	operand := i.rule("operand", treeparse.First(
		treeparse.Tag("number")(treeparse.Is(i.tokenOf(i.number))),
		treeparse.Tag("group")(treeparse.Is(isGroup)),
	))
	product := i.rule("product", treeparse.Tag("product")(
		operand,
		treeparse.ZeroOrMore(treeparse.Tag("apply")(treeparse.Is(i.operatorIn("*", "/")), operand)),
	))
	return i.rule("sum", treeparse.Tag("sum")(
		product,
		treeparse.ZeroOrMore(treeparse.Tag("apply")(treeparse.Is(i.operatorIn("+", "-")), product)),
	))
}

func (i *Interpreter) rule(name string, parser treeparse.Parser) treeparse.Parser {
	if i.trace == nil {
		return parser
	}
	return treeparse.Trace(i.trace, name, parser)
}

func (i *Interpreter) tokenOf(types ...rune) func(treeparse.Leaf) bool {
	return func(leaf treeparse.Leaf) bool {
		token, ok := leaf.Value.(lexer.Token)
		if !ok {
			return false
		}
		for _, t := range types {
			if token.Type == t {
				return true
			}
		}
		return false
	}
}

func (i *Interpreter) operatorIn(symbols ...string) func(treeparse.Leaf) bool {
	isOperator := i.tokenOf(i.operator)
	return func(leaf treeparse.Leaf) bool {
		if !isOperator(leaf) {
			return false
		}
		value := leaf.Value.(lexer.Token).Value
		for _, symbol := range symbols {
			if value == symbol {
				return true
			}
		}
		return false
	}
}

func (i *Interpreter) punctuation(symbol string) group.Predicate {
	isPunct := i.tokenOf(i.punct)
	return func(leaf treeparse.Leaf) bool {
		return isPunct(leaf) && leaf.Value.(lexer.Token).Value == symbol
	}
}

func isGroup(leaf treeparse.Leaf) bool {
	_, ok := leaf.Value.(*group.Group)
	return ok
}
