package database

import (
	"fmt"
	"slices"
	"strings"

	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

var relationArguments = []string{"name", "fields", "references", "onDelete", "onUpdate", "map"}

// HandleRelation reads the @relation attribute of a relation field, if any,
// into rf. Argument problems are reported against the attribute.
func HandleRelation(ctx *Context, rf *relationField) {
	attrs := relationAttributes(rf.field)
	if len(attrs) == 0 {
		return
	}
	for _, dup := range attrs[1:] {
		ctx.PushError(diagnostics.NewDuplicateAttributeError("relation", toSpan(dup.Span())))
	}

	attr := attrs[0]
	rf.attr = attr
	ctx.visitAttribute(attr)
	defer ctx.discardAttribute()

	seen := make(map[string]bool, len(attr.Arguments))
	for i, arg := range attr.Arguments {
		name := arg.GetName()
		if !arg.IsNamed() {
			if i != 0 {
				ctx.PushAttributeValidationError("No unnamed argument is allowed after named arguments.")
				continue
			}
			name = "name"
		}
		if !slices.Contains(relationArguments, name) {
			ctx.PushAttributeValidationError(fmt.Sprintf("No such argument `%s`.", name))
			continue
		}
		if seen[name] {
			ctx.PushAttributeValidationError(fmt.Sprintf("Argument \"%s\" is already specified.", name))
			continue
		}
		seen[name] = true

		switch name {
		case "name":
			handleRelationName(ctx, rf, arg.Value)
		case "fields":
			rf.fields = fieldList(ctx, "fields", arg.Value)
		case "references":
			rf.references = fieldList(ctx, "references", arg.Value)
		case "onDelete":
			rf.onDelete = referentialAction(ctx, arg.Value)
		case "onUpdate":
			rf.onUpdate = referentialAction(ctx, arg.Value)
		case "map":
			if mapped, ok := v2ast.AsString(arg.Value); !ok || mapped == "" {
				ctx.PushAttributeValidationError("The `map` argument must be a non-empty string.")
			}
		}
	}
}

func relationAttributes(field *v2ast.Field) []*v2ast.Attribute {
	var attrs []*v2ast.Attribute
	for _, attr := range field.Attributes {
		if attr.GetName() == "relation" {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func handleRelationName(ctx *Context, rf *relationField, expr v2ast.Expression) {
	name, ok := v2ast.AsString(expr)
	switch {
	case !ok:
		ctx.PushAttributeValidationError("The relation name must be a string literal.")
	case name == "":
		ctx.PushAttributeValidationError("A relation cannot have an empty name.")
	default:
		rf.name = name
		rf.explicitName = true
	}
}

// fieldList reads `[a, b]` (or a bare `a`) as a list of field names.
func fieldList(ctx *Context, argument string, expr v2ast.Expression) []string {
	names, ok := v2ast.AsConstantList(expr)
	if !ok {
		ctx.PushAttributeValidationError(fmt.Sprintf("The `%s` argument must be a list of field names.", argument))
		return nil
	}
	if len(names) == 0 {
		ctx.PushAttributeValidationError(fmt.Sprintf("The `%s` argument must not be empty.", argument))
	}
	return names
}

// referentialAction parses an onDelete/onUpdate value. The value is checked
// against the connector once the datasource is known.
func referentialAction(ctx *Context, expr v2ast.Expression) *actionArg {
	name, ok := v2ast.AsConstant(expr)
	if !ok {
		ctx.PushAttributeValidationError(fmt.Sprintf("Expected a referential action, but found %s.", expr.String()))
		return nil
	}
	if _, known := validation.ParseReferentialAction(name); !known {
		ctx.PushError(diagnostics.NewInvalidReferentialActionError(
			name, actionNames(validation.ReferentialActions), toSpan(expr.Span())))
		return nil
	}
	return &actionArg{name: name, span: toSpan(expr.Span())}
}

// checkConnectorActions reports actions that are valid in general but not on
// the active connector or relation mode.
func checkConnectorActions(ctx *Context, rf *relationField) {
	allowed := allowedActions(ctx.provider(), ctx.relationMode())
	for _, arg := range []*actionArg{rf.onDelete, rf.onUpdate} {
		if arg == nil {
			continue
		}
		if !slices.Contains(allowed, validation.ReferentialAction(arg.name)) {
			ctx.PushError(diagnostics.NewInvalidReferentialActionError(arg.name, actionNames(allowed), arg.span))
		}
	}
}

func joinFields(names []string) string {
	return strings.Join(names, ", ")
}
