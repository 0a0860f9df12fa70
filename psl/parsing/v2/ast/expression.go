package ast

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Expression represents a value expression in the schema.
// This is a union type that can be one of several expression types.
type Expression interface {
	isExpression()
	Span() Span
	String() string
}

// StringValue represents a quoted string literal. Value is unquoted.
type StringValue struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@String`
}

// NumericValue represents a numeric literal (int or float).
type NumericValue struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Number`
}

// ConstantValue represents a constant/identifier value (true, false, enum values, field references).
type ConstantValue struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@(Ident | Keyword)`
}

// FunctionCall represents a function call expression like env("DATABASE_URL").
type FunctionCall struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Name      string      `@Ident "("`
	Arguments []*Argument `(@@ ("," @@)* ","?)? ")"`
}

// ArrayExpression represents an array literal like [1, 2, 3] or [field1, field2].
type ArrayExpression struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Elements []Expression `"[" (@@ ("," @@)* ","?)? "]"`
}

func (*StringValue) isExpression()     {}
func (*NumericValue) isExpression()    {}
func (*ConstantValue) isExpression()   {}
func (*FunctionCall) isExpression()    {}
func (*ArrayExpression) isExpression() {}

// Span returns the source position.
func (s *StringValue) Span() Span { return SpanFromPositions(s.Pos, s.EndPos) }

// Span returns the source position.
func (n *NumericValue) Span() Span { return SpanFromPositions(n.Pos, n.EndPos) }

// Span returns the source position.
func (c *ConstantValue) Span() Span { return SpanFromPositions(c.Pos, c.EndPos) }

// Span returns the source position.
func (f *FunctionCall) Span() Span { return SpanFromPositions(f.Pos, f.EndPos) }

// Span returns the source position.
func (a *ArrayExpression) Span() Span { return SpanFromPositions(a.Pos, a.EndPos) }

func (s *StringValue) String() string   { return fmt.Sprintf("%q", s.Value) }
func (n *NumericValue) String() string  { return n.Value }
func (c *ConstantValue) String() string { return c.Value }

func (f *FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, joinArguments(f.Arguments))
}

func (a *ArrayExpression) String() string {
	parts := make([]string, len(a.Elements))
	for i, elem := range a.Elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// AsString returns the string literal value of expr.
func AsString(expr Expression) (string, bool) {
	if s, ok := expr.(*StringValue); ok {
		return s.Value, true
	}
	return "", false
}

// AsConstant returns the constant name of expr.
func AsConstant(expr Expression) (string, bool) {
	if c, ok := expr.(*ConstantValue); ok {
		return c.Value, true
	}
	return "", false
}

// AsConstantList returns the constant names of an array expression. A single
// constant is accepted as a one-element list.
func AsConstantList(expr Expression) ([]string, bool) {
	switch v := expr.(type) {
	case *ConstantValue:
		return []string{v.Value}, true
	case *ArrayExpression:
		names := make([]string, 0, len(v.Elements))
		for _, elem := range v.Elements {
			name, ok := AsConstant(elem)
			if !ok {
				return nil, false
			}
			names = append(names, name)
		}
		return names, true
	default:
		return nil, false
	}
}

// AsBool returns the boolean value if expr is the constant true or false.
func AsBool(expr Expression) (value bool, ok bool) {
	name, isConst := AsConstant(expr)
	switch {
	case !isConst:
		return false, false
	case name == "true":
		return true, true
	case name == "false":
		return false, true
	default:
		return false, false
	}
}
