package group

import (
	"fmt"

	"github.com/treeparse/treeparse"
	"github.com/treeparse/treeparse/lexer"
)

// ParseError is returned when a required delimiter is missing.
type ParseError struct {
	// Unexpected is the offending leaf. At end of input it is the unclosed start delimiter, if
	// any.
	Unexpected treeparse.Leaf
	// EOF is true if input ended early.
	EOF      bool
	Expected string
}

var _ treeparse.Error = &ParseError{}

func (p *ParseError) Message() string {
	if p.EOF {
		if p.Unexpected.Value != nil {
			return fmt.Sprintf("unexpected end of input after %s (expected %s)", p.Unexpected, p.Expected)
		}
		return fmt.Sprintf("unexpected end of input (expected %s)", p.Expected)
	}
	return fmt.Sprintf("unexpected %s (expected %s)", p.Unexpected, p.Expected)
}

func (p *ParseError) Position() lexer.Position { return treeparse.PositionOf(p.Unexpected) }

func (p *ParseError) Error() string {
	return lexer.FormatError(p.Position(), p.Message())
}
