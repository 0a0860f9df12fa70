// Package psl provides the main API for checking the referential actions of a
// Prisma schema.
package psl

import (
	"fmt"
	"strings"
	"time"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/database"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	parser "github.com/satishbabariya/prisma-cascade/psl/parsing/v2"
	"github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// Re-export key types for convenience
type (
	SourceFile  = core.SourceFile
	Diagnostics = diagnostics.Diagnostics
	SchemaAst   = ast.SchemaAst
)

// NewSourceFile creates a new source file.
func NewSourceFile(path, data string) core.SourceFile {
	return core.NewSourceFile(path, data)
}

// ParseSchema parses a Prisma schema string and returns the AST and diagnostics.
func ParseSchema(input string) (*ast.SchemaAst, diagnostics.Diagnostics) {
	return ParseSchemaFromFile(core.NewSourceFile("schema.prisma", input))
}

// ParseSchemaFromFile parses a Prisma schema from a source file. A parse
// failure is returned as a single positioned diagnostic.
func ParseSchemaFromFile(file core.SourceFile) (*ast.SchemaAst, diagnostics.Diagnostics) {
	diags := diagnostics.NewDiagnostics()
	schema, err := parser.ParseSchema(file.Path, strings.NewReader(file.Data))
	if err != nil {
		span := diagnostics.EmptySpan()
		if pos, ok := parser.ErrorPosition(err); ok {
			span = diagnostics.NewSpan(pos.Offset, pos.Offset, diagnostics.FileIDZero)
		}
		diags.PushError(diagnostics.NewParserError(parser.ErrorMessage(err), span))
		return nil, diags
	}
	return schema, diags
}

// CheckOptions tunes how Check reports referential action issues.
type CheckOptions struct {
	// Strict reports issues as errors regardless of the provider.
	Strict bool
	// Provider, when set, replaces the datasource provider for the decision
	// between errors and warnings.
	Provider string
}

// Report is the outcome of Check.
type Report struct {
	File   core.SourceFile
	Schema *ast.SchemaAst
	// Result is nil when the schema could not be parsed.
	Result *database.Result
	Issues []validation.ValidationIssue
	// Diagnostics holds schema problems and the issues rendered at their
	// @relation attributes.
	Diagnostics diagnostics.Diagnostics
	// IssuesAsErrors reports whether Issues were pushed as errors.
	IssuesAsErrors bool
}

// HasErrors reports whether the schema has any error diagnostics.
func (r *Report) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Check parses file, resolves its relations and validates the referential
// actions. Issues are errors on SQL Server, which refuses such schemas, and
// when opts.Strict is set; they are warnings otherwise.
//
// The returned error is reserved for failures that are not schema problems.
func Check(file core.SourceFile, opts CheckOptions) (*Report, error) {
	started := time.Now()
	report := &Report{File: file}

	schema, diags := ParseSchemaFromFile(file)
	report.Diagnostics = diags
	if schema == nil {
		return report, nil
	}
	report.Schema = schema

	result, buildDiags := database.BuildGraph(schema)
	report.Result = result
	report.Diagnostics.Merge(buildDiags)

	issues, err := validation.Validate(result.Graph)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", file.Path, err)
	}
	report.Issues = issues

	provider := opts.Provider
	if provider == "" {
		provider = result.Provider()
	}
	asErrors := opts.Strict || provider == core.ProviderSQLServer
	report.IssuesAsErrors = asErrors
	for _, issue := range issues {
		span := result.IssueSpan(issue.Edge, issue.ActionKind)
		if asErrors {
			report.Diagnostics.PushError(diagnostics.NewAttributeValidationError(issue.Message, "@relation", span))
		} else {
			report.Diagnostics.PushWarning(diagnostics.NewFieldValidationWarning(issue.Message, issue.Edge.Model, issue.Edge.Field, span))
		}
	}

	debug.Debug("Checked schema",
		"path", file.Path,
		"lines", file.Lines(),
		"provider", provider,
		"issues", len(issues),
		"as_errors", asErrors,
		"duration", time.Since(started))

	return report, nil
}
