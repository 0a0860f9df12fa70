package database

import (
	"sort"
	"strings"

	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
)

// resolveNames fills the top-level namespace and reports duplicates. The
// first declaration of a name wins.
func resolveNames(ctx *Context) {
	for _, top := range ctx.schema.Tops {
		var (
			kind topKind
			id   *v2ast.Identifier
		)
		switch t := top.(type) {
		case *v2ast.Model:
			kind, id = topModel, t.Name
			if t.IsView() {
				kind = topView
			}
		case *v2ast.Enum:
			kind, id = topEnum, t.Name
		case *v2ast.CompositeType:
			kind, id = topCompositeType, t.Name
		default:
			continue
		}

		name := top.GetName()
		validateIdentifier(name, nameSpan(id), string(kind), ctx)
		if existing, ok := ctx.names[name]; ok {
			ctx.PushError(diagnostics.NewDuplicateTopError(name, string(kind), string(existing), nameSpan(id)))
			continue
		}
		ctx.names[name] = kind
		if m, ok := top.(*v2ast.Model); ok {
			ctx.models[name] = m
		}
	}
}

// validateIdentifier validates that an identifier follows naming rules.
func validateIdentifier(name string, span diagnostics.Span, schemaItem string, ctx *Context) {
	switch {
	case name == "":
		ctx.PushError(diagnostics.NewValidationError("The name of a "+schemaItem+" must not be empty.", span))
	case strings.ContainsRune(name, '-'):
		ctx.PushError(diagnostics.NewValidationError("The character `-` is not allowed in "+schemaItem+" names.", span))
	}
}

// DefaultRelationName returns the name Prisma gives a relation between two
// models when @relation does not name it: both model names, sorted, joined
// with "To".
func DefaultRelationName(modelA, modelB string) string {
	names := []string{modelA, modelB}
	sort.Strings(names)
	return names[0] + "To" + names[1]
}

// classifyField decides whether a field is scalar, a relation, or of an
// unknown type.
func classifyField(ctx *Context, field *v2ast.Field) fieldKind {
	if field.Type == nil || field.Type.IsUnsupported() {
		return fieldKindScalar
	}
	typeName := field.GetTypeName()
	if IsBuiltInScalar(typeName) {
		return fieldKindScalar
	}
	switch ctx.names[typeName] {
	case topModel, topView:
		return fieldKindRelation
	case topEnum, topCompositeType:
		return fieldKindScalar
	default:
		return fieldKindUnknown
	}
}
