package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Enum represents an enum declaration.
type Enum struct {
	Pos     lexer.Position
	Keyword string        `@"enum"`
	Name    *Identifier   `@@`
	Members []*EnumMember `"{" @@* "}"`
}

// EnumMember is either a value or a block attribute inside an enum body.
type EnumMember struct {
	BlockAttribute *BlockAttribute `  @@`
	Value          *EnumValue      `| @@`
}

// GetName returns the enum name.
func (e *Enum) GetName() string {
	if e.Name == nil {
		return ""
	}
	return e.Name.Name
}

// Values returns the enum values in source order.
func (e *Enum) Values() []*EnumValue {
	var values []*EnumValue
	for _, m := range e.Members {
		if m.Value != nil {
			values = append(values, m.Value)
		}
	}
	return values
}

// EnumValue represents a single enum value.
type EnumValue struct {
	Pos        lexer.Position
	Name       *Identifier  `@@`
	Attributes []*Attribute `@@*`
}

// GetName returns the enum value name.
func (v *EnumValue) GetName() string {
	if v.Name == nil {
		return ""
	}
	return v.Name.Name
}
