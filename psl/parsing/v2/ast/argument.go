package ast

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Argument represents a single argument (named or positional).
type Argument struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *Identifier `(@@ ":")?`
	Value  Expression  `@@`
}

// String returns the string representation of the argument.
func (a *Argument) String() string {
	if a.Name != nil {
		return fmt.Sprintf("%s: %s", a.Name.Name, a.Value.String())
	}
	return a.Value.String()
}

// IsNamed returns true if this is a named argument.
func (a *Argument) IsNamed() bool {
	return a.Name != nil
}

// GetName returns the argument name or empty string if positional.
func (a *Argument) GetName() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.Name
}

// Span returns the source span of the whole argument.
func (a *Argument) Span() Span {
	return SpanFromPositions(a.Pos, a.EndPos)
}

func joinArguments(args []*Argument) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, ", ")
}

// findArgument returns the argument called name, or the unnamed argument at
// position 0 when name is empty.
func findArgument(args []*Argument, name string) *Argument {
	for i, arg := range args {
		if name == "" && i == 0 && !arg.IsNamed() {
			return arg
		}
		if name != "" && arg.GetName() == name {
			return arg
		}
	}
	return nil
}
