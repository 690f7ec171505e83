// Package group matches balanced delimiters in a leaf sequence.
//
// This is a separate protocol from the recognition trees of package treeparse: a Matcher
// consumes a prefix of its input and returns a Match of what it recognized and what remains.
// Missing or stray delimiters can not be expressed as "nothing recognized", so Matchers fail
// explicitly with a *ParseError instead.
package group

import (
	"errors"

	"github.com/treeparse/treeparse"
)

// Match is the result of a Matcher.
type Match struct {
	Recognized []treeparse.Leaf
	Remaining  []treeparse.Leaf
}

// A Matcher consumes a prefix of its input.
type Matcher func(input []treeparse.Leaf) (Match, error)

// Predicate selects leaves.
type Predicate func(treeparse.Leaf) bool

// Is returns a Predicate matching leaves equal to "value".
func Is(value interface{}) Predicate {
	want := treeparse.Leaf{Value: value}
	return func(leaf treeparse.Leaf) bool { return leaf.Equal(want) }
}

// NoneOf returns a Predicate matching leaves that match none of "predicates".
func NoneOf(predicates ...Predicate) Predicate {
	return func(leaf treeparse.Leaf) bool {
		for _, predicate := range predicates {
			if predicate(leaf) {
				return false
			}
		}
		return true
	}
}

// EatWhile consumes the longest prefix of leaves satisfying "predicate". It never fails.
func EatWhile(predicate Predicate) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		n := 0
		for n < len(input) && predicate(input[n]) {
			n++
		}
		return Match{Recognized: input[:n:n], Remaining: input[n:]}, nil
	}
}

// EatExactlyOne consumes a single leaf satisfying "predicate", failing with a *ParseError
// naming "expected" otherwise.
func EatExactlyOne(predicate Predicate, expected string) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		if len(input) == 0 {
			return Match{}, &ParseError{EOF: true, Expected: expected}
		}
		if !predicate(input[0]) {
			return Match{}, &ParseError{Unexpected: input[0], Expected: expected}
		}
		return Match{Recognized: input[:1:1], Remaining: input[1:]}, nil
	}
}

// Sequence applies each of "matchers" to what the previous one left, concatenating what they
// recognize. The first error aborts the sequence.
func Sequence(matchers ...Matcher) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		out := Match{Recognized: []treeparse.Leaf{}, Remaining: input}
		for _, matcher := range matchers {
			next, err := matcher(out.Remaining)
			if err != nil {
				return Match{}, err
			}
			out.Recognized = append(out.Recognized, next.Recognized...)
			out.Remaining = next.Remaining
		}
		return out, nil
	}
}

// First returns the result of the first of "matchers" to recognize at least one leaf.
//
// Errors are not caught; wrap a matcher with AllowFailure to fall through on error.
func First(matchers ...Matcher) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		for _, matcher := range matchers {
			match, err := matcher(input)
			if err != nil {
				return Match{}, err
			}
			if len(match.Recognized) > 0 {
				return match, nil
			}
		}
		return Match{Recognized: []treeparse.Leaf{}, Remaining: input}, nil
	}
}

// AllowFailure converts a *ParseError from "matcher" into an empty Match.
func AllowFailure(matcher Matcher) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		match, err := matcher(input)
		var perr *ParseError
		if errors.As(err, &perr) {
			return Match{Recognized: []treeparse.Leaf{}, Remaining: input}, nil
		}
		return match, err
	}
}

// ZeroOrMore applies "matcher" until it stops recognizing leaves.
func ZeroOrMore(matcher Matcher) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		out := Match{Recognized: []treeparse.Leaf{}, Remaining: input}
		for len(out.Remaining) > 0 {
			next, err := matcher(out.Remaining)
			if err != nil {
				return Match{}, err
			}
			if len(next.Recognized) == 0 {
				break
			}
			out.Recognized = append(out.Recognized, next.Recognized...)
			out.Remaining = next.Remaining
		}
		return out, nil
	}
}

// Transform returns a function that rewrites what a Matcher recognized with "transform".
func Transform(transform func([]treeparse.Leaf) []treeparse.Leaf) func(Matcher) Matcher {
	return func(matcher Matcher) Matcher {
		return func(input []treeparse.Leaf) (Match, error) {
			match, err := matcher(input)
			if err != nil {
				return Match{}, err
			}
			match.Recognized = transform(match.Recognized)
			return match, nil
		}
	}
}

// Lazy defers construction of a Matcher until it is invoked.
func Lazy(build func() Matcher) Matcher {
	return func(input []treeparse.Leaf) (Match, error) {
		return build()(input)
	}
}
