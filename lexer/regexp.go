package lexer

import (
	"io"
	"io/ioutil"
	"regexp"
	"unicode/utf8"
)

type regexpDefinition struct {
	re      *regexp.Regexp
	symbols map[string]rune
	// Token type for each sub-expression, or 0 if matches are skipped.
	types []rune
}

// Regexp creates a lexer definition from a regular expression.
//
// Each named sub-expression in the regular expression matches a token type. Anonymous
// sub-expressions cause the matching text to be skipped.
//
// eg.
//
//     	def, err := Regexp(`(?P<Number>\d+(?:\.\d+)?)|(?P<Operator>[-+*/])|(\s+)`)
func Regexp(pattern string) (Definition, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	def := &regexpDefinition{
		re:      re,
		symbols: map[string]rune{"EOF": EOF},
		types:   make([]rune, re.NumSubexp()+1),
	}
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		def.types[i] = EOF - rune(i)
		def.symbols[name] = def.types[i]
	}
	return def, nil
}

func (d *regexpDefinition) Lex(r io.Reader) (Lexer, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &regexpLexer{
		def:    d,
		source: string(b),
		pos:    Position{Filename: NameOfReader(r), Line: 1, Column: 1},
	}, nil
}

func (d *regexpDefinition) Symbols() map[string]rune {
	return d.symbols
}

type regexpLexer struct {
	def    *regexpDefinition
	source string
	pos    Position
}

func (r *regexpLexer) Next() (Token, error) {
	for r.pos.Offset < len(r.source) {
		rest := r.source[r.pos.Offset:]
		loc := r.def.re.FindStringSubmatchIndex(rest)
		if loc == nil || loc[1] == 0 {
			rn, _ := utf8.DecodeRuneInString(rest)
			return Token{}, Errorf(r.pos, "invalid token %q", rn)
		}
		token := Token{Type: r.def.typeOf(loc), Value: rest[:loc[1]], Pos: r.pos}
		r.pos.Advance(token.Value)
		if token.Type != 0 {
			return token, nil
		}
	}
	return EOFToken(r.pos), nil
}

// typeOf returns the type of the first sub-expression that participated in a match.
func (d *regexpDefinition) typeOf(loc []int) rune {
	for i := 1; i < len(d.types); i++ {
		if loc[2*i] != -1 {
			return d.types[i]
		}
	}
	return 0
}
