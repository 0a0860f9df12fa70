package database

import (
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
)

// ScalarType represents a built-in Prisma scalar type.
type ScalarType string

const (
	ScalarTypeString   ScalarType = "String"
	ScalarTypeInt      ScalarType = "Int"
	ScalarTypeFloat    ScalarType = "Float"
	ScalarTypeBoolean  ScalarType = "Boolean"
	ScalarTypeDateTime ScalarType = "DateTime"
	ScalarTypeJson     ScalarType = "Json"
	ScalarTypeBytes    ScalarType = "Bytes"
	ScalarTypeBigInt   ScalarType = "BigInt"
	ScalarTypeDecimal  ScalarType = "Decimal"
)

// IsBuiltInScalar reports whether name is one of the built-in scalar types.
func IsBuiltInScalar(name string) bool {
	switch ScalarType(name) {
	case ScalarTypeString, ScalarTypeInt, ScalarTypeFloat, ScalarTypeBoolean,
		ScalarTypeDateTime, ScalarTypeJson, ScalarTypeBytes, ScalarTypeBigInt, ScalarTypeDecimal:
		return true
	default:
		return false
	}
}

// fieldKind classifies a model field by what its type resolves to.
type fieldKind int

const (
	fieldKindScalar fieldKind = iota
	fieldKindRelation
	fieldKindUnknown
)

// topKind names the namespace entry a top-level declaration occupies.
type topKind string

const (
	topModel         topKind = "model"
	topView          topKind = "view"
	topEnum          topKind = "enum"
	topCompositeType topKind = "composite type"
)

// relationField is a relation field as written in the schema, before it
// becomes a graph edge.
type relationField struct {
	model *v2ast.Model
	field *v2ast.Field
	attr  *v2ast.Attribute

	target       *v2ast.Model
	name         string
	explicitName bool
	fields       []string
	references   []string
	onDelete     *actionArg
	onUpdate     *actionArg
}

// isForward reports whether the field holds the foreign key of its relation.
func (rf *relationField) isForward() bool {
	return len(rf.fields) > 0 || len(rf.references) > 0
}

// actionArg is a parsed onDelete/onUpdate argument.
type actionArg struct {
	name string
	span diagnostics.Span
}

// toSpan converts an AST span into a diagnostics span of the single schema file.
func toSpan(s v2ast.Span) diagnostics.Span {
	return diagnostics.NewSpan(s.Start.Offset, s.End.Offset, diagnostics.FileIDZero)
}

// nameSpan returns the span of a declaration name.
func nameSpan(id *v2ast.Identifier) diagnostics.Span {
	if id == nil {
		return diagnostics.EmptySpan()
	}
	return diagnostics.NewSpan(id.Pos.Offset, id.Pos.Offset+len(id.Name), diagnostics.FileIDZero)
}
