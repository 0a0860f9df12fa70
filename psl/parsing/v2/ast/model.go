package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Model represents a model or view declaration.
type Model struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Keyword string         `@("model" | "view")`
	Name    *Identifier    `@@`
	Members []*ModelMember `"{" @@* "}"`

	// Fields and BlockAttributes split Members by kind, in source order.
	Fields          []*Field
	BlockAttributes []*BlockAttribute
}

// ModelMember is either a field or a block attribute inside a model body.
type ModelMember struct {
	BlockAttribute *BlockAttribute `  @@`
	Field          *Field          `| @@`
}

// IsView returns true if this is a view declaration.
func (m *Model) IsView() bool {
	return m.Keyword == "view"
}

// GetName returns the model name.
func (m *Model) GetName() string {
	if m.Name == nil {
		return ""
	}
	return m.Name.Name
}

// Field returns the field with the given name.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

// BlockAttribute returns the first block attribute with the given name.
func (m *Model) BlockAttribute(name string) *BlockAttribute {
	for _, attr := range m.BlockAttributes {
		if attr.GetName() == name {
			return attr
		}
	}
	return nil
}

func (m *Model) splitMembers() {
	m.Fields = m.Fields[:0]
	m.BlockAttributes = m.BlockAttributes[:0]
	for _, member := range m.Members {
		switch {
		case member.Field != nil:
			member.Field.resolveArity()
			m.Fields = append(m.Fields, member.Field)
		case member.BlockAttribute != nil:
			m.BlockAttributes = append(m.BlockAttributes, member.BlockAttribute)
		}
	}
}
