package database

import (
	"fmt"
	"slices"

	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// collectFields walks every model, reports duplicate and unknown fields, and
// gathers the scalar fields of the graph node and the relation fields for
// edge resolution.
func collectFields(ctx *Context, m *v2ast.Model) validation.Model {
	node := validation.Model{Name: m.GetName()}
	seen := make(map[string]bool, len(m.Fields))
	container := "model"
	if m.IsView() {
		container = "view"
	}

	for _, field := range m.Fields {
		name := field.GetName()
		if seen[name] {
			ctx.PushError(diagnostics.NewDuplicateFieldError(m.GetName(), name, container, nameSpan(field.Name)))
			continue
		}
		seen[name] = true

		switch classifyField(ctx, field) {
		case fieldKindScalar:
			node.ScalarFields = append(node.ScalarFields, validation.ScalarField{
				Name:     name,
				Optional: field.Arity.IsOptional(),
			})
		case fieldKindRelation:
			rf := &relationField{model: m, field: field, target: ctx.models[field.GetTypeName()]}
			HandleRelation(ctx, rf)
			ctx.relations = append(ctx.relations, rf)
		case fieldKindUnknown:
			ctx.PushError(diagnostics.NewTypeNotFoundError(field.GetTypeName(), toSpan(field.Type.Span())))
		}
	}
	return node
}

// resolveRelations validates every relation field and returns the edges of
// the forward sides, keyed by owning model, together with their spans.
func resolveRelations(ctx *Context, nodes map[string]*validation.Model, spans map[validation.EdgeRef]EdgeSpans) {
	for _, rf := range ctx.relations {
		if !rf.explicitName {
			rf.name = DefaultRelationName(rf.model.GetName(), rf.target.GetName())
		}
	}

	for _, rf := range ctx.relations {
		if !rf.isForward() {
			validateBackRelation(ctx, rf)
			continue
		}
		if !validateForwardRelation(ctx, rf) {
			continue
		}
		checkConnectorActions(ctx, rf)

		// Views have no foreign keys, so relations touching them are not
		// enforced by the database.
		if rf.model.IsView() || rf.target.IsView() {
			continue
		}

		node := nodes[rf.model.GetName()]
		optional := fkOptional(rf, node)
		if !rf.field.Arity.IsOptional() && optional {
			ctx.PushError(relationFieldError(rf, fmt.Sprintf(
				"The relation field `%s` uses the scalar fields %s. At least one of those fields is optional. Hence the relation field must be optional as well.",
				rf.field.GetName(), joinFields(rf.fields))))
		}
		if rf.onDelete != nil && rf.onDelete.name == string(validation.ReferentialActionSetNull) && !optional {
			ctx.PushWarning(diagnostics.NewFieldValidationWarning(
				"The `onDelete` referential action of a relation should not be set to `SetNull` when a referenced field is required.",
				rf.model.GetName(), rf.field.GetName(), rf.onDelete.span))
		}
		if ctx.relationMode() == core.RelationModePrisma && !coveredByIndex(rf.model, rf.fields) {
			ctx.PushWarning(diagnostics.NewMissingIndexOnEmulatedRelationWarning(toSpan(rf.attr.Span())))
		}

		edge := validation.RelationField{
			Name:         rf.field.GetName(),
			RelationName: rf.name,
			References:   rf.target.GetName(),
			Fields:       slices.Clone(rf.fields),
			Optional:     optional,
			OnDelete:     validation.ResolveAction(validation.OnDelete, rf.onDelete.action(), optional),
			OnUpdate:     validation.ResolveAction(validation.OnUpdate, rf.onUpdate.action(), optional),
		}
		node.Relations = append(node.Relations, edge)
		spans[validation.EdgeRef{Model: node.Name, Field: edge.Name}] = rf.spans()
	}
}

// validateForwardRelation checks the fields/references pair of a forward
// relation field.
func validateForwardRelation(ctx *Context, rf *relationField) bool {
	ok := true
	if rf.field.Arity.IsList() {
		ctx.PushError(relationFieldError(rf, fmt.Sprintf(
			"The relation field `%s` on Model `%s` must not specify the `fields` or `references` argument in the @relation attribute. You must only specify it on the opposite field.",
			rf.field.GetName(), rf.model.GetName())))
		return false
	}
	if len(rf.references) == 0 {
		ctx.PushError(relationFieldError(rf, fmt.Sprintf(
			"The relation field `%s` on Model `%s` must specify the `references` argument in the @relation attribute.",
			rf.field.GetName(), rf.model.GetName())))
		ok = false
	}
	if len(rf.fields) == 0 {
		ctx.PushError(relationFieldError(rf, fmt.Sprintf(
			"The relation field `%s` on Model `%s` must specify the `fields` argument in the @relation attribute.",
			rf.field.GetName(), rf.model.GetName())))
		ok = false
	}
	if !ok {
		return false
	}
	if len(rf.fields) != len(rf.references) {
		ctx.PushError(relationFieldError(rf, "You must specify the same number of fields in `fields` and `references`."))
		ok = false
	}

	var unknown, relational []string
	for _, name := range rf.fields {
		field := rf.model.Field(name)
		switch {
		case field == nil:
			unknown = append(unknown, name)
		case classifyField(ctx, field) == fieldKindRelation:
			relational = append(relational, name)
		case classifyField(ctx, field) == fieldKindUnknown:
			// Already reported as an unknown type.
			ok = false
		}
	}
	if len(unknown) > 0 {
		ctx.PushError(diagnostics.NewValidationError(
			"The argument fields must refer only to existing fields. The following fields do not exist in this model: "+joinFields(unknown),
			toSpan(rf.attr.Span())))
		ok = false
	}
	if len(relational) > 0 {
		ctx.PushError(diagnostics.NewValidationError(
			"The argument fields must refer only to scalar fields. But it is referencing the following relation fields: "+joinFields(relational),
			toSpan(rf.attr.Span())))
		ok = false
	}

	var missing []string
	for _, name := range rf.references {
		if rf.target.Field(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		ctx.PushError(diagnostics.NewValidationError(fmt.Sprintf(
			"The argument `references` must refer only to existing fields in the related model `%s`. The following fields do not exist in the related model: %s",
			rf.target.GetName(), joinFields(missing)),
			toSpan(rf.attr.Span())))
		ok = false
	}
	return ok
}

// validateBackRelation rejects referential actions on the side of a relation
// that does not hold the foreign key.
func validateBackRelation(ctx *Context, rf *relationField) {
	if rf.onDelete == nil && rf.onUpdate == nil {
		return
	}
	message := fmt.Sprintf(
		"The relation field `%s` on Model `%s` must not specify the `onDelete` or `onUpdate` argument in the @relation attribute.",
		rf.field.GetName(), rf.model.GetName())
	if opposite := findOpposite(ctx, rf); opposite != nil {
		message += fmt.Sprintf(" You must only specify it on the opposite field `%s` on model `%s`.",
			opposite.field.GetName(), opposite.model.GetName())
	} else {
		message += " You must only specify it on the opposite field, or in case of a many to many relation, in an explicit join table."
	}
	ctx.PushError(relationFieldError(rf, message))
}

// findOpposite returns the forward field of the same relation on the target model.
func findOpposite(ctx *Context, rf *relationField) *relationField {
	for _, other := range ctx.relations {
		if other == rf || !other.isForward() {
			continue
		}
		if other.model == rf.target && other.target == rf.model && other.name == rf.name {
			return other
		}
	}
	return nil
}

// fkOptional reports whether any foreign key scalar of the relation is optional.
func fkOptional(rf *relationField, node *validation.Model) bool {
	for _, name := range rf.fields {
		for _, sf := range node.ScalarFields {
			if sf.Name == name && sf.Optional {
				return true
			}
		}
	}
	return false
}

// coveredByIndex reports whether fields form a prefix of an index, unique
// constraint or primary key of the model.
func coveredByIndex(m *v2ast.Model, fields []string) bool {
	if len(fields) == 1 {
		if f := m.Field(fields[0]); f != nil && (f.Attribute("id") != nil || f.Attribute("unique") != nil) {
			return true
		}
	}
	for _, attr := range m.BlockAttributes {
		switch attr.GetName() {
		case "index", "unique", "id":
		default:
			continue
		}
		arg := attr.Argument("")
		if arg == nil {
			arg = attr.Argument("fields")
		}
		if arg == nil {
			continue
		}
		cols, ok := v2ast.AsConstantList(arg.Value)
		if ok && len(cols) >= len(fields) && slices.Equal(cols[:len(fields)], fields) {
			return true
		}
	}
	return false
}

func relationFieldError(rf *relationField, message string) diagnostics.DatamodelError {
	span := toSpan(rf.field.Span())
	if rf.attr != nil {
		span = toSpan(rf.attr.Span())
	}
	return diagnostics.NewFieldValidationError(message, "model", rf.model.GetName(), rf.field.GetName(), span)
}

func (a *actionArg) action() *validation.ReferentialAction {
	if a == nil {
		return nil
	}
	ra := validation.ReferentialAction(a.name)
	return &ra
}

func (rf *relationField) spans() EdgeSpans {
	s := EdgeSpans{
		Field:    toSpan(rf.field.Span()),
		Relation: toSpan(rf.attr.Span()),
	}
	if rf.onDelete != nil {
		span := rf.onDelete.span
		s.OnDelete = &span
	}
	if rf.onUpdate != nil {
		span := rf.onUpdate.span
		s.OnUpdate = &span
	}
	return s
}
