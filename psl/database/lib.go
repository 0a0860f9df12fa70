// Package database resolves the models and relations of a parsed schema into
// the referential action graph checked by the validation package.
//
// Only the side of a relation that holds the foreign key (the field with
// `@relation(fields: [...], references: [...])`) becomes an edge; back
// relation fields are validated but produce no edge.
package database

import (
	"time"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// EdgeSpans locates an edge in the schema source.
type EdgeSpans struct {
	// Field covers the whole relation field declaration.
	Field diagnostics.Span
	// Relation covers the @relation attribute including its arguments.
	Relation diagnostics.Span
	// OnDelete and OnUpdate cover explicit action values.
	OnDelete *diagnostics.Span
	OnUpdate *diagnostics.Span
}

// Result is the outcome of BuildGraph.
type Result struct {
	Graph *validation.Graph
	// Datasource is nil when the schema has no datasource block.
	Datasource *core.Datasource

	spans map[validation.EdgeRef]EdgeSpans
}

// Provider returns the datasource provider, or "" without a datasource.
func (r *Result) Provider() string {
	if r.Datasource == nil {
		return ""
	}
	return r.Datasource.Provider
}

// RelationMode returns the active relation mode.
func (r *Result) RelationMode() core.RelationMode {
	if r.Datasource == nil {
		return core.RelationModeForeignKeys
	}
	return r.Datasource.RelationMode()
}

// Spans returns the source spans of an edge.
func (r *Result) Spans(edge validation.EdgeRef) (EdgeSpans, bool) {
	s, ok := r.spans[edge]
	return s, ok
}

// IssueSpan returns where a finding about edge should point: the explicit
// action value of kind when there is one, else the @relation attribute.
func (r *Result) IssueSpan(edge validation.EdgeRef, kind validation.ActionKind) diagnostics.Span {
	s, ok := r.spans[edge]
	if !ok {
		return diagnostics.EmptySpan()
	}
	switch {
	case kind == validation.OnDelete && s.OnDelete != nil:
		return *s.OnDelete
	case kind == validation.OnUpdate && s.OnUpdate != nil:
		return *s.OnUpdate
	default:
		return s.Relation
	}
}

// BuildGraph resolves the relations of schema. The graph is always returned,
// containing every edge that could be resolved; schema problems are
// reported in the diagnostics.
func BuildGraph(schema *v2ast.SchemaAst) (*Result, diagnostics.Diagnostics) {
	started := time.Now()
	diags := diagnostics.NewDiagnostics()
	ctx := newContext(schema, &diags)

	resolveDatasource(ctx)
	resolveNames(ctx)

	var order []string
	nodes := make(map[string]*validation.Model)
	for _, m := range schema.Models() {
		if ctx.models[m.GetName()] != m {
			continue
		}
		node := collectFields(ctx, m)
		if m.IsView() {
			continue
		}
		order = append(order, node.Name)
		nodes[node.Name] = &node
	}

	spans := make(map[validation.EdgeRef]EdgeSpans)
	resolveRelations(ctx, nodes, spans)

	graph := &validation.Graph{Models: make([]validation.Model, 0, len(order))}
	for _, name := range order {
		graph.Models = append(graph.Models, *nodes[name])
	}

	debug.Debug("Built relation graph",
		"models", len(graph.Models),
		"edges", graph.EdgeCount(),
		"errors", len(diags.Errors()),
		"warnings", len(diags.Warnings()),
		"duration", time.Since(started))

	return &Result{Graph: graph, Datasource: ctx.datasource, spans: spans}, diags
}
