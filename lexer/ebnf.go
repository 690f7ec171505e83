package lexer

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"text/scanner"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type ebnfRange struct {
	start, end rune
}

// characterSet replaces an alternative of single-rune tokens.
type characterSet struct {
	pos scanner.Position
	Set string
}

func (c *characterSet) Pos() scanner.Position { return c.pos }

type ebnfDefinition struct {
	grammar ebnf.Grammar
	symbols map[string]rune
	// Exported productions, in symbol order.
	roots  []string
	ranges map[*ebnf.Range]ebnfRange
}

// EBNF creates a token classifier from an EBNF grammar.
//
// The EBNF grammar syntax is as defined by "golang.org/x/exp/ebnf". Upper-case productions are
// exported as token types, lower-case productions are helpers. At each position the longest
// match wins; ties go to the alphabetically first production.
//
// Here's an example grammar for the arithmetic language:
//
// 		Number = digit { digit } [ "." digit { digit } ] .
//		Operator = "+" | "-" | "*" | "/" .
//		Whitespace = " " | "\t" | "\n" | "\r" .
//		digit = "0"…"9" .
func EBNF(grammar string) (Definition, error) {
	ast, err := ebnf.Parse("<grammar>", strings.NewReader(grammar))
	if err != nil {
		return nil, err
	}
	for _, production := range ast {
		if err = validate(ast, production); err != nil {
			return nil, err
		}
	}

	def := &ebnfDefinition{
		grammar: ast,
		symbols: map[string]rune{"EOF": EOF},
		ranges:  map[*ebnf.Range]ebnfRange{},
	}
	for symbol := range ast {
		ch := symbol[0:1]
		if strings.ToUpper(ch) == ch {
			def.roots = append(def.roots, symbol)
		}
	}
	sort.Strings(def.roots)
	for i, symbol := range def.roots {
		def.symbols[symbol] = EOF - 1 - rune(i)
	}
	for _, production := range ast {
		production.Expr = def.optimize(production.Expr)
	}
	return def, nil
}

func (d *ebnfDefinition) Symbols() map[string]rune {
	return d.symbols
}

func (d *ebnfDefinition) Lex(r io.Reader) (Lexer, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &ebnfLexer{
		def:   d,
		input: []rune(string(b)),
		pos: Position{
			Filename: NameOfReader(r),
			Line:     1,
			Column:   1,
		},
	}, nil
}

type ebnfLexer struct {
	def    *ebnfDefinition
	input  []rune
	cursor int
	pos    Position
}

func (e *ebnfLexer) Next() (Token, error) {
	if e.cursor >= len(e.input) {
		return EOFToken(e.pos), nil
	}
	best, bestLen := "", 0
	for _, name := range e.def.roots {
		end, ok := e.match(e.def.grammar[name].Expr, e.cursor)
		if ok && end-e.cursor > bestLen {
			best, bestLen = name, end-e.cursor
		}
	}
	if bestLen == 0 {
		return Token{}, Errorf(e.pos, "invalid token %q", e.input[e.cursor])
	}
	value := string(e.input[e.cursor : e.cursor+bestLen])
	token := Token{Type: e.def.symbols[best], Value: value, Pos: e.pos}
	e.pos.Advance(value)
	e.cursor += bestLen
	return token, nil
}

// match "expr" at "at", returning the cursor after the match.
func (e *ebnfLexer) match(expr ebnf.Expression, at int) (int, bool) { // nolint: gocyclo
	switch n := expr.(type) {
	case ebnf.Alternative:
		for _, an := range n {
			if end, ok := e.match(an, at); ok {
				return end, true
			}
		}
		return at, false

	case *ebnf.Group:
		return e.match(n.Body, at)

	case *ebnf.Name:
		return e.match(e.def.grammar[n.String].Expr, at)

	case *ebnf.Option:
		if end, ok := e.match(n.Body, at); ok {
			return end, true
		}
		return at, true

	case *ebnf.Range:
		erange := e.def.ranges[n]
		if at >= len(e.input) || e.input[at] < erange.start || e.input[at] > erange.end {
			return at, false
		}
		return at + 1, true

	case *ebnf.Repetition:
		for {
			end, ok := e.match(n.Body, at)
			if !ok || end == at {
				return at, true
			}
			at = end
		}

	case ebnf.Sequence:
		for _, sn := range n {
			end, ok := e.match(sn, at)
			if !ok {
				return at, false
			}
			at = end
		}
		return at, true

	case *ebnf.Token:
		for _, rn := range n.String {
			if at >= len(e.input) || e.input[at] != rn {
				return at, false
			}
			at++
		}
		return at, true

	case *characterSet:
		if at < len(e.input) && strings.ContainsRune(n.Set, e.input[at]) {
			return at + 1, true
		}
		return at, false

	case nil:
		return at, true
	}
	panic(fmt.Sprintf("unsupported lexer expression type %T", expr))
}

// Convert alternate characters into a character set (eg. "a" | "b" | "c" | "true" becomes
// set("abc") | "true") and precompute ranges.
func (d *ebnfDefinition) optimize(expr ebnf.Expression) ebnf.Expression {
	switch n := expr.(type) {
	case ebnf.Alternative:
		out := make(ebnf.Alternative, 0, len(n))
		set := ""
		for _, expr := range n {
			if t, ok := expr.(*ebnf.Token); ok && utf8.RuneCountInString(t.String) == 1 {
				set += t.String
				continue
			}
			if set != "" {
				out = append(out, &characterSet{Set: set})
				set = ""
			}
			out = append(out, d.optimize(expr))
		}
		if set != "" {
			out = append(out, &characterSet{Set: set})
		}
		return out

	case ebnf.Sequence:
		for i, expr := range n {
			n[i] = d.optimize(expr)
		}

	case *ebnf.Group:
		n.Body = d.optimize(n.Body)

	case *ebnf.Option:
		n.Body = d.optimize(n.Body)

	case *ebnf.Repetition:
		n.Body = d.optimize(n.Body)

	case *ebnf.Range:
		start, _ := utf8.DecodeRuneInString(n.Begin.String)
		end, _ := utf8.DecodeRuneInString(n.End.String)
		d.ranges[n] = ebnfRange{start: start, end: end}
	}
	return expr
}

// Validate the grammar against the lexer rules.
func validate(grammar ebnf.Grammar, expr ebnf.Expression) error { // nolint: gocyclo
	switch n := expr.(type) {
	case *ebnf.Production:
		return validate(grammar, n.Expr)

	case ebnf.Alternative:
		for _, e := range n {
			if err := validate(grammar, e); err != nil {
				return err
			}
		}
		return nil

	case *ebnf.Group:
		return validate(grammar, n.Body)

	case *ebnf.Name:
		if grammar[n.String] == nil {
			return Errorf(Position(n.Pos()), "unknown production %q", n.String)
		}
		return nil

	case *ebnf.Option:
		return validate(grammar, n.Body)

	case *ebnf.Range:
		if utf8.RuneCountInString(n.Begin.String) != 1 {
			return Errorf(Position(n.Pos()), "start of range must be a single rune")
		}
		if utf8.RuneCountInString(n.End.String) != 1 {
			return Errorf(Position(n.Pos()), "end of range must be a single rune")
		}
		return nil

	case *ebnf.Repetition:
		return validate(grammar, n.Body)

	case ebnf.Sequence:
		for _, e := range n {
			if err := validate(grammar, e); err != nil {
				return err
			}
		}
		return nil

	case *ebnf.Token:
		return nil

	case nil:
		return nil
	}
	return Errorf(Position(expr.Pos()), "unknown EBNF expression %T", expr)
}
