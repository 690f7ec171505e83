package group

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/lexer"
)

type Leaf = treeparse.Leaf

var (
	chars   = treeparse.Chars
	parens  = Between(Is("("), Is(")"), Wrap)
	letters = func(leaf Leaf) bool {
		s, ok := leaf.Value.(string)
		return ok && s >= "a" && s <= "z"
	}
)

func wrap(children ...Leaf) Leaf {
	if children == nil {
		children = []Leaf{}
	}
	return Wrap(children)
}

func TestEatWhile(t *testing.T) {
	match, err := EatWhile(letters)(chars("ab1c"))
	require.NoError(t, err)
	require.Equal(t, chars("ab"), match.Recognized)
	require.Equal(t, chars("1c"), match.Remaining)

	match, err = EatWhile(letters)(chars("1"))
	require.NoError(t, err)
	require.Empty(t, match.Recognized)
	require.Equal(t, chars("1"), match.Remaining)
}

func TestEatExactlyOne(t *testing.T) {
	match, err := EatExactlyOne(Is("("), "start")(chars("(a"))
	require.NoError(t, err)
	require.Equal(t, chars("("), match.Recognized)
	require.Equal(t, chars("a"), match.Remaining)

	_, err = EatExactlyOne(Is("("), "start")(chars("a"))
	require.EqualError(t, err, `unexpected "a" (expected start)`)

	_, err = EatExactlyOne(Is("("), "start")(nil)
	require.EqualError(t, err, `unexpected end of input (expected start)`)
}

func TestSequenceAndFirst(t *testing.T) {
	digit := EatExactlyOne(Is("1"), "one")
	match, err := Sequence(EatWhile(letters), digit)(chars("ab1c"))
	require.NoError(t, err)
	require.Equal(t, chars("ab1"), match.Recognized)
	require.Equal(t, chars("c"), match.Remaining)

	_, err = Sequence(EatWhile(letters), digit)(chars("abc"))
	require.Error(t, err)

	match, err = First(EatWhile(letters), AllowFailure(digit))(chars("1c"))
	require.NoError(t, err)
	require.Equal(t, chars("1"), match.Recognized)

	_, err = First(EatWhile(letters), digit)(chars("2"))
	require.Error(t, err, "errors are not caught by First")

	match, err = First(EatWhile(letters), AllowFailure(digit))(chars("2"))
	require.NoError(t, err)
	require.Empty(t, match.Recognized)
	require.Equal(t, chars("2"), match.Remaining)
}

func TestZeroOrMoreAndTransform(t *testing.T) {
	upper := Transform(func(recognized []Leaf) []Leaf {
		return []Leaf{{Value: strings.ToUpper(recognized[0].Value.(string))}}
	})
	match, err := ZeroOrMore(upper(EatExactlyOne(letters, "letter")))(chars("ab1"))
	require.Error(t, err)

	match, err = ZeroOrMore(AllowFailure(upper(EatExactlyOne(letters, "letter"))))(chars("ab1"))
	require.NoError(t, err)
	require.Equal(t, chars("AB"), match.Recognized)
	require.Equal(t, chars("1"), match.Remaining)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Leaf
	}{
		{"Nested", "(a(b)c)", []Leaf{wrap(Leaf{Value: "a"}, wrap(Leaf{Value: "b"}), Leaf{Value: "c"})}},
		{"PassThrough", "x(a)y", []Leaf{{Value: "x"}, wrap(Leaf{Value: "a"}), {Value: "y"}}},
		{"Adjacent", "(a)(b)", []Leaf{wrap(Leaf{Value: "a"}), wrap(Leaf{Value: "b"})}},
		{"Empty", "()", []Leaf{wrap()}},
		{"NoGroups", "abc", chars("abc")},
		{"SameDelimiterNesting", "((a))", []Leaf{wrap(wrap(Leaf{Value: "a"}))}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			match, err := parens(chars(test.input))
			require.NoError(t, err)
			require.Equal(t, test.expected, match.Recognized, repr.String(match.Recognized))
			require.Empty(t, match.Remaining)
		})
	}
}

func TestBetweenErrors(t *testing.T) {
	_, err := parens(chars("(a"))
	perr := &ParseError{}
	require.True(t, errors.As(err, &perr))
	require.True(t, perr.EOF)
	require.Equal(t, "end of group", perr.Expected)
	require.EqualError(t, err, `unexpected end of input after "(" (expected end of group)`)

	_, err = parens(chars(")a"))
	require.True(t, errors.As(err, &perr))
	require.False(t, perr.EOF)
	require.Equal(t, Leaf{Value: ")"}, perr.Unexpected)
	require.EqualError(t, err, `unexpected ")" (expected start of group)`)

	_, err = parens(chars("(a))"))
	require.EqualError(t, err, `unexpected ")" (expected start of group)`)
}

func TestGroupString(t *testing.T) {
	require.Equal(t, `("a" ("b"))`, wrap(Leaf{Value: "a"}, wrap(Leaf{Value: "b"})).String())
	require.Equal(t, "()", wrap().String())
}

func TestBetweenDeepNesting(t *testing.T) {
	const depth = 100000
	input := chars(strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth))
	match, err := parens(input)
	require.NoError(t, err)
	require.Len(t, match.Recognized, 1)
	leaf := match.Recognized[0]
	for i := 0; i < depth; i++ {
		group, ok := leaf.Value.(*Group)
		require.True(t, ok)
		require.Len(t, group.Children, 1)
		leaf = group.Children[0]
	}
	require.Equal(t, Leaf{Value: "x"}, leaf)
}

func TestNested(t *testing.T) {
	mixed := Nested(
		Delimiters{Name: "parenthesis", Start: Is("("), End: Is(")"), Transform: Wrap},
		Delimiters{Name: "bracket", Start: Is("["), End: Is("]"), Transform: func(children []Leaf) Leaf {
			return Leaf{Value: len(children)}
		}},
		Delimiters{Name: "quote", Start: Is(`"`), End: Is(`"`), Transform: Wrap},
	)

	match, err := mixed(chars(`([ab](c))"d"`))
	require.NoError(t, err)
	require.Equal(t, []Leaf{
		wrap(Leaf{Value: 2}, wrap(Leaf{Value: "c"})),
		wrap(Leaf{Value: "d"}),
	}, match.Recognized)

	match, err = mixed(chars(`"(x)"`))
	require.NoError(t, err)
	require.Equal(t, []Leaf{wrap(wrap(Leaf{Value: "x"}))}, match.Recognized)

	_, err = mixed(chars("([a)]"))
	require.EqualError(t, err, `unexpected ")" (expected end of bracket)`)

	_, err = mixed(chars("a]"))
	require.EqualError(t, err, `unexpected "]" (expected start of bracket)`)

	_, err = mixed(chars(`("a)`))
	require.EqualError(t, err, `unexpected ")" (expected end of quote)`)
}

// betweenRecursive expresses group matching with the primitives alone.
func betweenRecursive(start, end Predicate, transform TransformFunc) Matcher {
	var between Matcher
	group := Transform(func(recognized []Leaf) []Leaf {
		return []Leaf{transform(recognized[1 : len(recognized)-1])}
	})(Sequence(
		EatExactlyOne(start, "start"),
		Lazy(func() Matcher { return between }),
		EatExactlyOne(end, "end"),
	))
	between = ZeroOrMore(First(EatWhile(NoneOf(start, end)), AllowFailure(group)))
	return between
}

func TestBetweenMatchesRecursiveDefinition(t *testing.T) {
	recursive := betweenRecursive(Is("("), Is(")"), Wrap)
	for _, input := range []string{"(a(b)c)", "x(a)(b)y", "((a)b(c(d)))", "abc"} {
		expected, err := recursive(chars(input))
		require.NoError(t, err)
		require.Empty(t, expected.Remaining, input)
		actual, err := parens(chars(input))
		require.NoError(t, err)
		require.Equal(t, expected.Recognized, actual.Recognized, input)
	}
}

func TestParseErrorPosition(t *testing.T) {
	tokens := []Leaf{
		{Value: lexer.Token{Value: "(", Pos: lexer.Position{Filename: "expr", Line: 1, Column: 1}}},
		{Value: lexer.Token{Value: "1", Pos: lexer.Position{Filename: "expr", Line: 1, Column: 2}}},
	}
	isOpen := func(leaf Leaf) bool { return leaf.Value.(lexer.Token).Value == "(" }
	isClose := func(leaf Leaf) bool { return leaf.Value.(lexer.Token).Value == ")" }
	_, err := Between(isOpen, isClose, Wrap)(tokens)
	require.EqualError(t, err, `expr:1:1: unexpected end of input after ( (expected end of group)`)

	group := &Group{Children: tokens[1:]}
	require.Equal(t, "(1)", group.String())
	require.Equal(t, 2, group.Position().Column)
	require.Equal(t, lexer.Position{}, (&Group{}).Position())
}
