package diagnostics

import (
	"bytes"
	"fmt"
)

// Diagnostics represents a list of validation or parser errors and warnings.
// It is used to not error out early and instead show multiple errors at once.
type Diagnostics struct {
	errors   []DatamodelError
	warnings []DatamodelWarning
}

// NewDiagnostics creates a new empty Diagnostics collection.
func NewDiagnostics() Diagnostics {
	return Diagnostics{
		errors:   make([]DatamodelError, 0),
		warnings: make([]DatamodelWarning, 0),
	}
}

// FromError creates a Diagnostics from a single error.
func FromError(err DatamodelError) Diagnostics {
	d := NewDiagnostics()
	d.PushError(err)
	return d
}

// Warnings returns all warnings in the collection.
func (d *Diagnostics) Warnings() []DatamodelWarning {
	return d.warnings
}

// Errors returns all errors in the collection.
func (d *Diagnostics) Errors() []DatamodelError {
	return d.errors
}

// PushError adds an error to the collection.
func (d *Diagnostics) PushError(err DatamodelError) {
	d.errors = append(d.errors, err)
}

// PushWarning adds a warning to the collection.
func (d *Diagnostics) PushWarning(warning DatamodelWarning) {
	d.warnings = append(d.warnings, warning)
}

// Merge appends all errors and warnings of other, keeping their order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.errors = append(d.errors, other.errors...)
	d.warnings = append(d.warnings, other.warnings...)
}

// HasErrors returns true if there is at least one error in this collection.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// HasWarnings returns true if there is at least one warning in this collection.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.warnings) > 0
}

// ToResult returns an error if there are errors, otherwise returns nil.
func (d *Diagnostics) ToResult() error {
	if d.HasErrors() {
		return fmt.Errorf("validation failed with %d errors", len(d.errors))
	}
	return nil
}

// ToPrettyString formats all errors as a pretty-printed string.
func (d *Diagnostics) ToPrettyString(fileName, datamodelString string) string {
	var buf bytes.Buffer
	for _, err := range d.errors {
		_ = err.PrettyPrint(&buf, fileName, datamodelString)
	}
	return buf.String()
}

// WarningsToPrettyString formats all warnings as a pretty-printed string.
func (d *Diagnostics) WarningsToPrettyString(fileName, datamodelString string) string {
	var buf bytes.Buffer
	for _, warn := range d.warnings {
		_ = warn.PrettyPrint(&buf, fileName, datamodelString)
	}
	return buf.String()
}
