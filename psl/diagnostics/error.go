package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

// DatamodelError represents a validation or parser error in a Prisma schema.
type DatamodelError struct {
	span    Span
	message string
}

// NewDatamodelError creates a new DatamodelError with the given message and span.
func NewDatamodelError(message string, span Span) DatamodelError {
	return DatamodelError{
		message: message,
		span:    span,
	}
}

// NewParserError creates an error for input the grammar could not parse.
func NewParserError(message string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Error parsing schema: %s", message), span)
}

// NewAttributeValidationError creates an error for invalid attribute parsing.
func NewAttributeValidationError(message, attributeName string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Error parsing attribute \"%s\": %s", attributeName, message), span)
}

// NewDuplicateAttributeError creates an error for duplicate attributes.
func NewDuplicateAttributeError(attributeName string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Attribute \"@%s\" can only be defined once.", attributeName), span)
}

// NewDuplicateTopError creates an error for duplicate top-level definitions.
func NewDuplicateTopError(name, topType, existingTopType string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("The %s \"%s\" cannot be defined because a %s with that name already exists.", topType, name, existingTopType), span)
}

// NewDuplicateFieldError creates an error for duplicate fields.
func NewDuplicateFieldError(modelName, fieldName, container string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Field \"%s\" is already defined on %s \"%s\".", fieldName, container, modelName), span)
}

// NewFieldValidationError creates an error for field validation issues.
func NewFieldValidationError(message, containerType, containerName, field string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Error validating field `%s` in %s `%s`: %s", field, containerType, containerName, message), span)
}

// NewSourceValidationError creates an error for datasource validation issues.
func NewSourceValidationError(message, source string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Error validating datasource `%s`: %s", source, message), span)
}

// NewValidationError creates a generic validation error.
func NewValidationError(message string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Error validating: %s", message), span)
}

// NewTypeNotFoundError creates an error for unknown types.
func NewTypeNotFoundError(typeName string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Type \"%s\" is neither a built-in type, nor refers to another model, composite type, or enum.", typeName), span)
}

// NewDatasourceProviderNotKnownError creates an error for unknown datasource providers.
func NewDatasourceProviderNotKnownError(provider string, span Span) DatamodelError {
	return NewDatamodelError(fmt.Sprintf("Datasource provider not known: \"%s\".", provider), span)
}

// NewInvalidReferentialActionError creates the error reported when an action
// name is unknown or not supported by the active connector.
func NewInvalidReferentialActionError(action string, allowed []string, span Span) DatamodelError {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "`" + a + "`"
	}
	message := fmt.Sprintf("Invalid referential action: `%s`. Allowed values: (%s)", action, strings.Join(quoted, ", "))
	return NewAttributeValidationError(message, "@relation", span)
}

// NewReferentialIntegrityAndRelationModeCooccurError creates an error when both attributes are set.
func NewReferentialIntegrityAndRelationModeCooccurError(span Span) DatamodelError {
	return NewDatamodelError("The `referentialIntegrity` and `relationMode` attributes cannot be used together. Please use only `relationMode` instead.", span)
}

// Span returns the span of the error.
func (e DatamodelError) Span() Span {
	return e.span
}

// Message returns the error message.
func (e DatamodelError) Message() string {
	return e.message
}

// Error implements the error interface.
func (e DatamodelError) Error() string {
	return e.message
}

// PrettyPrint writes a pretty-printed representation of the error to the writer.
func (e DatamodelError) PrettyPrint(w io.Writer, fileName, text string) error {
	return PrettyPrint(w, fileName, text, e.span, e.message, ErrorColorer{})
}
