package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Attribute represents a field-level attribute (@attribute).
type Attribute struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Name      *Identifier `"@" @@`
	HasParens bool        `( @"("`
	Arguments []*Argument `  (@@ ("," @@)* ","?)? ")" )?`
}

// String returns the string representation of the attribute.
func (a *Attribute) String() string {
	if !a.HasParens {
		return "@" + a.GetName()
	}
	return "@" + a.GetName() + "(" + joinArguments(a.Arguments) + ")"
}

// GetName returns the attribute name.
func (a *Attribute) GetName() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.Name
}

// Argument returns the named argument, or the leading positional argument
// when name is empty.
func (a *Attribute) Argument(name string) *Argument {
	return findArgument(a.Arguments, name)
}

// Span returns the source span of the attribute including its arguments.
func (a *Attribute) Span() Span {
	return SpanFromPositions(a.Pos, a.EndPos)
}

// BlockAttribute represents a block-level attribute (@@attribute).
type BlockAttribute struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Name      *Identifier `"@@" @@`
	HasParens bool        `( @"("`
	Arguments []*Argument `  (@@ ("," @@)* ","?)? ")" )?`
}

// String returns the string representation of the block attribute.
func (b *BlockAttribute) String() string {
	if !b.HasParens {
		return "@@" + b.GetName()
	}
	return "@@" + b.GetName() + "(" + joinArguments(b.Arguments) + ")"
}

// GetName returns the block attribute name.
func (b *BlockAttribute) GetName() string {
	if b.Name == nil {
		return ""
	}
	return b.Name.Name
}

// Argument returns the named argument, or the leading positional argument
// when name is empty.
func (b *BlockAttribute) Argument(name string) *Argument {
	return findArgument(b.Arguments, name)
}
