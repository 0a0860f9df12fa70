package database

import (
	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
)

// Context carries the state of one BuildGraph run. It is discarded once the
// graph is produced.
//
// While a @relation attribute is being resolved, the attribute is held as the
// current attribute so that argument errors can be reported against it.
type Context struct {
	schema      *v2ast.SchemaAst
	diagnostics *diagnostics.Diagnostics
	datasource  *core.Datasource

	// names maps every top-level model, view, enum and composite type name
	// to the kind of declaration that claimed it first.
	names  map[string]topKind
	models map[string]*v2ast.Model

	relations []*relationField

	attribute *v2ast.Attribute
}

func newContext(schema *v2ast.SchemaAst, diags *diagnostics.Diagnostics) *Context {
	return &Context{
		schema:      schema,
		diagnostics: diags,
		names:       make(map[string]topKind),
		models:      make(map[string]*v2ast.Model),
	}
}

// PushError adds an error to the run's diagnostics.
func (ctx *Context) PushError(err diagnostics.DatamodelError) {
	ctx.diagnostics.PushError(err)
}

// PushWarning adds a warning to the run's diagnostics.
func (ctx *Context) PushWarning(warning diagnostics.DatamodelWarning) {
	ctx.diagnostics.PushWarning(warning)
}

// PushAttributeValidationError reports a problem with the current attribute.
func (ctx *Context) PushAttributeValidationError(message string) {
	span := diagnostics.EmptySpan()
	if ctx.attribute != nil {
		span = toSpan(ctx.attribute.Span())
	}
	ctx.PushError(diagnostics.NewAttributeValidationError(message, "@relation", span))
}

func (ctx *Context) visitAttribute(attr *v2ast.Attribute) {
	ctx.attribute = attr
}

func (ctx *Context) discardAttribute() {
	ctx.attribute = nil
}

// relationMode returns the active relation mode.
func (ctx *Context) relationMode() core.RelationMode {
	if ctx.datasource == nil {
		return core.RelationModeForeignKeys
	}
	return ctx.datasource.RelationMode()
}

// provider returns the active datasource provider, or "" without a datasource.
func (ctx *Context) provider() string {
	if ctx.datasource == nil {
		return ""
	}
	return ctx.datasource.Provider
}
