// Package lexer classifies source text into the typed tokens consumed by treeparse grammars.
//
// A Definition is the "token classifier" collaborator: it assigns each run of input an initial
// type ("Number", "Operator", ...) before any combinator runs. Two implementations are
// provided:
//
// Regexp() classifies with a single regular expression whose named sub-expressions are token
// types. This mirrors the classifier the arithmetic interpreter has always used.
//
// EBNF() accepts a lexical grammar in EBNF. Each capitalised production is a token type.
package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// EOF represents an end of file.
	EOF rune = -(iota + 1)
)

type namedReader interface {
	Name() string
}

// NameOfReader attempts to retrieve the filename of a reader.
func NameOfReader(r io.Reader) string {
	if nr, ok := r.(namedReader); ok {
		return nr.Name()
	}
	return ""
}

// Must takes the result of a Definition constructor call and returns the definition, but panics if
// it errors
//
// eg.
//
// 		lex = lexer.Must(lexer.Regexp(`(?P<Number>\d+)|(\s+)`))
func Must(def Definition, err error) Definition {
	if err != nil {
		panic(err)
	}
	return def
}

// ConsumeAll returns all tokens from a Lexer, excluding the trailing EOF token.
func ConsumeAll(lexer Lexer) ([]Token, error) {
	out := []Token{}
	for {
		token, err := lexer.Next()
		if err != nil {
			return out, err
		}
		if token.EOF() {
			return out, nil
		}
		out = append(out, token)
	}
}

// LexString classifies all of "source" with "def".
func LexString(def Definition, source string) ([]Token, error) {
	lex, err := def.Lex(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	return ConsumeAll(lex)
}

// Position of a token.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Advance moves the position past "text".
func (p *Position) Advance(text string) {
	for _, rn := range text {
		p.Offset += utf8.RuneLen(rn)
		if rn == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		filename = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// A Token returned by a Lexer.
type Token struct {
	// Type of token. This is the value keyed by symbol as returned by Definition.Symbols().
	Type  rune
	Value string
	Pos   Position
}

// EOFToken creates a new EOF token at the given position.
func EOFToken(pos Position) Token {
	return Token{Type: EOF, Value: "<<EOF>>", Pos: pos}
}

// EOF returns true if this Token is an EOF token.
func (t Token) EOF() bool {
	return t.Type == EOF
}

func (t Token) String() string {
	return t.Value
}

// Definition provides the parser with metadata for a lexer.
type Definition interface {
	// Lex an io.Reader.
	Lex(io.Reader) (Lexer, error)
	// Symbols returns a map of symbolic names to the corresponding pseudo-runes for those symbols.
	// "EOF" is always -1.
	Symbols() map[string]rune
}

// A Lexer returns tokens from a source.
type Lexer interface {
	// Next consumes and returns the next token.
	Next() (Token, error)
}

// SymbolsByRune returns the inverse of Definition.Symbols().
func SymbolsByRune(def Definition) map[rune]string {
	out := map[rune]string{}
	for s, r := range def.Symbols() {
		out[r] = s
	}
	return out
}

// TokenType resolves a symbol name to its pseudo-rune.
func TokenType(def Definition, symbol string) (rune, error) {
	rn, ok := def.Symbols()[symbol]
	if !ok {
		return 0, fmt.Errorf("lexer has no symbol %q", symbol)
	}
	return rn, nil
}
