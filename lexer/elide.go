package lexer

import "io"

// MapFunc transforms tokens.
//
// If nil is returned that token will be discarded.
type MapFunc func(*Token) *Token

type mapperDef struct {
	def Definition
	f   MapFunc
}

// Map is a Definition that applies a mapping function to a Lexer's tokens.
func Map(def Definition, f MapFunc) Definition {
	return &mapperDef{def, f}
}

func (m *mapperDef) Lex(r io.Reader) (Lexer, error) {
	lex, err := m.def.Lex(r)
	if err != nil {
		return nil, err
	}
	return &mapper{lexer: lex, f: m.f}, nil
}

func (m *mapperDef) Symbols() map[string]rune {
	return m.def.Symbols()
}

type mapper struct {
	lexer Lexer
	f     MapFunc
}

func (m *mapper) Next() (Token, error) {
	for {
		t, err := m.lexer.Next()
		if err != nil || t.EOF() {
			return t, err
		}
		if mapped := m.f(&t); mapped != nil {
			return *mapped, nil
		}
	}
}

// Elide wraps a Definition, removing tokens of the named types.
//
// Unknown type names are ignored.
func Elide(def Definition, types ...string) Definition {
	symbols := def.Symbols()
	table := map[rune]bool{}
	for _, name := range types {
		if rn, ok := symbols[name]; ok {
			table[rn] = true
		}
	}
	return Map(def, func(token *Token) *Token {
		if table[token.Type] {
			return nil
		}
		return token
	})
}
