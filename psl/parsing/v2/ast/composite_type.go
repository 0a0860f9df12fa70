package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// CompositeType represents a type (composite type) declaration.
type CompositeType struct {
	Pos     lexer.Position
	Keyword string      `@"type"`
	Name    *Identifier `@@`
	Fields  []*Field    `"{" @@* "}"`
}

// GetName returns the composite type name.
func (c *CompositeType) GetName() string {
	if c.Name == nil {
		return ""
	}
	return c.Name.Name
}
