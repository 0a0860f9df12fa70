package validation

import (
	"fmt"
)

// ReferentialAction is the behavior a database applies to referencing rows
// when the referenced row is updated or deleted.
type ReferentialAction string

const (
	ReferentialActionCascade    ReferentialAction = "Cascade"
	ReferentialActionRestrict   ReferentialAction = "Restrict"
	ReferentialActionNoAction   ReferentialAction = "NoAction"
	ReferentialActionSetNull    ReferentialAction = "SetNull"
	ReferentialActionSetDefault ReferentialAction = "SetDefault"
)

// ReferentialActions lists every known action in documentation order.
var ReferentialActions = []ReferentialAction{
	ReferentialActionCascade,
	ReferentialActionRestrict,
	ReferentialActionNoAction,
	ReferentialActionSetNull,
	ReferentialActionSetDefault,
}

// ParseReferentialAction returns the action named by s.
func ParseReferentialAction(s string) (ReferentialAction, bool) {
	for _, a := range ReferentialActions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Valid reports whether a is one of the known actions.
func (a ReferentialAction) Valid() bool {
	_, ok := ParseReferentialAction(string(a))
	return ok
}

// IsCascading reports whether the action takes part in cascade path analysis.
// SQL Server treats every choice other than NO ACTION as a cascade.
func (a ReferentialAction) IsCascading() bool {
	return a != ReferentialActionNoAction
}

// ActionKind selects which of the two referential actions is inspected.
type ActionKind int

const (
	OnDelete ActionKind = iota
	OnUpdate
)

// ActionKinds returns the kinds in reporting order.
func ActionKinds() []ActionKind {
	return []ActionKind{OnDelete, OnUpdate}
}

// String returns the attribute argument name of the kind.
func (k ActionKind) String() string {
	switch k {
	case OnDelete:
		return "onDelete"
	case OnUpdate:
		return "onUpdate"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// verb is the past participle used in messages ("deleted", "updated").
func (k ActionKind) verb() string {
	if k == OnDelete {
		return "deleted"
	}
	return "updated"
}

// Action is a resolved referential action. Explicit is false when the value
// comes from the implicit defaults rather than the schema.
type Action struct {
	Value    ReferentialAction
	Explicit bool
}

// Explicit returns an action that was spelled out in the schema.
func Explicit(a ReferentialAction) Action {
	return Action{Value: a, Explicit: true}
}

// Implicit returns an action produced by the default rules.
func Implicit(a ReferentialAction) Action {
	return Action{Value: a}
}

// describe renders the action for messages, e.g. "Implicit default `onUpdate`: `Cascade`".
func (a Action) describe(kind ActionKind) string {
	if a.Explicit {
		return fmt.Sprintf("`%s`: `%s`", kind, a.Value)
	}
	return fmt.Sprintf("Implicit default `%s`: `%s`", kind, a.Value)
}

// DefaultAction returns the action a relation gets when the schema leaves the
// kind unspecified. onDelete is SetNull for optional relations and NoAction
// otherwise; onUpdate is always Cascade.
func DefaultAction(kind ActionKind, optional bool) ReferentialAction {
	if kind == OnUpdate {
		return ReferentialActionCascade
	}
	if optional {
		return ReferentialActionSetNull
	}
	return ReferentialActionNoAction
}

// ResolveAction resolves an optional explicit action against the defaults.
func ResolveAction(kind ActionKind, explicit *ReferentialAction, optional bool) Action {
	if explicit != nil {
		return Explicit(*explicit)
	}
	return Implicit(DefaultAction(kind, optional))
}

// ScalarField is a non-relation field of a model.
type ScalarField struct {
	Name     string
	Optional bool
}

// RelationField is the foreign-key holding side of a relation. It belongs to
// the model it is declared in and points at References.
type RelationField struct {
	Name string
	// RelationName is the name of the relation the field belongs to.
	RelationName string
	References   string
	// Fields are the scalar fields on the owning model that hold the foreign key.
	Fields   []string
	Optional bool
	OnDelete Action
	OnUpdate Action
}

// Action returns the action of the given kind.
func (r *RelationField) Action(kind ActionKind) Action {
	if kind == OnDelete {
		return r.OnDelete
	}
	return r.OnUpdate
}

// Model is a node of the schema graph.
type Model struct {
	Name         string
	ScalarFields []ScalarField
	Relations    []RelationField
}

// Graph is a schema snapshot: models in declaration order, each listing its
// outgoing relation fields in declaration order. Validation only reads it.
type Graph struct {
	Models []Model
}

// Model returns the model with the given name.
func (g *Graph) Model(name string) *Model {
	for i := range g.Models {
		if g.Models[i].Name == name {
			return &g.Models[i]
		}
	}
	return nil
}

// EdgeCount returns the number of relation fields in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, m := range g.Models {
		n += len(m.Relations)
	}
	return n
}

// EdgeRef identifies a relation field by owning model and field name.
type EdgeRef struct {
	Model string
	Field string
}

// String returns the `Model.field` form.
func (e EdgeRef) String() string {
	return e.Model + "." + e.Field
}
