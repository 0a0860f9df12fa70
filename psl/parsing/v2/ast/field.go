package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// FieldArity represents the arity/cardinality of a field.
type FieldArity int

const (
	// FieldArityRequired means the field must have a value.
	FieldArityRequired FieldArity = iota
	// FieldArityOptional means the field can be null (Type?).
	FieldArityOptional
	// FieldArityList means the field is an array (Type[]).
	FieldArityList
)

// String returns the type suffix of the arity.
func (a FieldArity) String() string {
	switch a {
	case FieldArityOptional:
		return "?"
	case FieldArityList:
		return "[]"
	default:
		return ""
	}
}

// IsRequired returns true if the field is required.
func (a FieldArity) IsRequired() bool { return a == FieldArityRequired }

// IsOptional returns true if the field is optional.
func (a FieldArity) IsOptional() bool { return a == FieldArityOptional }

// IsList returns true if the field is a list.
func (a FieldArity) IsList() bool { return a == FieldArityList }

// FieldType represents the type of a field.
type FieldType struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Unsupported *string `  "Unsupported" "(" @String ")"`
	Name        string  `| @Ident`
}

// String returns the string representation of the field type.
func (f *FieldType) String() string {
	if f.Unsupported != nil {
		return fmt.Sprintf("Unsupported(%q)", *f.Unsupported)
	}
	return f.Name
}

// Span returns the source span of the type name.
func (f *FieldType) Span() Span {
	return SpanFromPositions(f.Pos, f.EndPos)
}

// IsUnsupported returns true if this is an Unsupported type.
func (f *FieldType) IsUnsupported() bool {
	return f.Unsupported != nil
}

// Field represents a field in a model or composite type.
type Field struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Name       *Identifier  `@@`
	Type       *FieldType   `@@`
	List       bool         `@("[" "]")?`
	Optional   bool         `@"?"?`
	Attributes []*Attribute `@@*`

	// Arity is derived from List and Optional after parsing.
	Arity FieldArity
}

// GetName returns the field name.
func (f *Field) GetName() string {
	if f.Name == nil {
		return ""
	}
	return f.Name.Name
}

// GetTypeName returns the type name.
func (f *Field) GetTypeName() string {
	if f.Type == nil {
		return ""
	}
	return f.Type.Name
}

// String returns a string representation of the field.
func (f *Field) String() string {
	typeName := ""
	if f.Type != nil {
		typeName = f.Type.String()
	}
	return fmt.Sprintf("%s %s%s", f.GetName(), typeName, f.Arity.String())
}

// Attribute returns the first attribute with the given name.
func (f *Field) Attribute(name string) *Attribute {
	for _, attr := range f.Attributes {
		if attr.GetName() == name {
			return attr
		}
	}
	return nil
}

// Span returns the source span of the field declaration.
func (f *Field) Span() Span {
	return SpanFromPositions(f.Pos, f.EndPos)
}

func (f *Field) resolveArity() {
	switch {
	case f.List:
		f.Arity = FieldArityList
	case f.Optional:
		f.Arity = FieldArityOptional
	default:
		f.Arity = FieldArityRequired
	}
}
