package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	psl "github.com/satishbabariya/prisma-cascade/psl"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

type diagnosticRecord struct {
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
}

type issueRecord struct {
	Severity string   `json:"severity" yaml:"severity"`
	Kind     string   `json:"kind" yaml:"kind"`
	Action   string   `json:"action" yaml:"action"`
	Model    string   `json:"model" yaml:"model"`
	Field    string   `json:"field" yaml:"field"`
	Paths    []string `json:"paths" yaml:"paths"`
	Message  string   `json:"message" yaml:"message"`
}

type checkOutput struct {
	Schema       string             `json:"schema" yaml:"schema"`
	Provider     string             `json:"provider,omitempty" yaml:"provider,omitempty"`
	RelationMode string             `json:"relationMode,omitempty" yaml:"relationMode,omitempty"`
	Models       int                `json:"models" yaml:"models"`
	Relations    int                `json:"relations" yaml:"relations"`
	Errors       int                `json:"errors" yaml:"errors"`
	Warnings     int                `json:"warnings" yaml:"warnings"`
	Issues       []issueRecord      `json:"issues" yaml:"issues"`
	Diagnostics  []diagnosticRecord `json:"diagnostics" yaml:"diagnostics"`
}

type dbCheckOutput struct {
	Provider    string        `json:"provider" yaml:"provider"`
	Tables      int           `json:"tables" yaml:"tables"`
	ForeignKeys int           `json:"foreignKeys" yaml:"foreignKeys"`
	Issues      []issueRecord `json:"issues" yaml:"issues"`
}

func severity(asErrors bool) string {
	if asErrors {
		return "error"
	}
	return "warning"
}

func issueRecords(issues []validation.ValidationIssue, asErrors bool) []issueRecord {
	records := make([]issueRecord, 0, len(issues))
	for _, issue := range issues {
		paths := make([]string, len(issue.Paths))
		for i, p := range issue.Paths {
			paths[i] = validation.FormatPath(p)
		}
		records = append(records, issueRecord{
			Severity: severity(asErrors),
			Kind:     issue.Kind.String(),
			Action:   issue.ActionKind.String(),
			Model:    issue.Edge.Model,
			Field:    issue.Edge.Field,
			Paths:    paths,
			Message:  issue.Message,
		})
	}
	return records
}

func newCheckOutput(report *psl.Report) checkOutput {
	out := checkOutput{
		Schema:      report.File.Path,
		Errors:      len(report.Diagnostics.Errors()),
		Warnings:    len(report.Diagnostics.Warnings()),
		Issues:      issueRecords(report.Issues, report.IssuesAsErrors),
		Diagnostics: []diagnosticRecord{},
	}
	if report.Result != nil {
		out.Provider = report.Result.Provider()
		out.RelationMode = string(report.Result.RelationMode())
		out.Models = len(report.Result.Graph.Models)
		out.Relations = report.Result.Graph.EdgeCount()
	}

	for _, e := range report.Diagnostics.Errors() {
		line, col := e.Span().Location(report.File.Data)
		out.Diagnostics = append(out.Diagnostics, diagnosticRecord{Severity: "error", Message: e.Message(), Line: line, Column: col})
	}
	for _, w := range report.Diagnostics.Warnings() {
		line, col := w.Span().Location(report.File.Data)
		out.Diagnostics = append(out.Diagnostics, diagnosticRecord{Severity: "warning", Message: w.Message(), Line: line, Column: col})
	}
	return out
}

// encodeOutput writes v as JSON or YAML.
func encodeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
