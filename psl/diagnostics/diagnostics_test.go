package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaText = "model Post {\n  id     Int  @id\n  author User @relation(fields: [authorId], references: [id])\n}\n"

func relationSpan(t *testing.T) Span {
	t.Helper()
	start := strings.Index(schemaText, "@relation")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(schemaText, "])\n") + 2
	return NewSpan(start, end, FileIDZero)
}

func TestSpanLocation(t *testing.T) {
	span := relationSpan(t)

	line, col := span.Location(schemaText)
	assert.Equal(t, 3, line)
	assert.Equal(t, 15, col)

	line, col = EmptySpan().Location(schemaText)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, _ = NewSpan(10_000, 10_001, FileIDZero).Location(schemaText)
	assert.Equal(t, 5, line, "out of range offsets clamp to end of text")
}

func TestSpanContainsAndOverlaps(t *testing.T) {
	a := NewSpan(10, 20, FileIDZero)
	b := NewSpan(15, 30, FileIDZero)
	c := NewSpan(15, 30, FileID(1))

	assert.True(t, a.Contains(10))
	assert.True(t, a.Contains(20))
	assert.False(t, a.Contains(21))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "spans in different files never overlap")
	assert.True(t, EmptySpan().IsEmpty())
}

func TestDiagnosticsMerge(t *testing.T) {
	d := NewDiagnostics()
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.ToResult())

	other := FromError(NewValidationError("first", EmptySpan()))
	other.PushWarning(NewDatamodelWarning("careful", EmptySpan()))

	d.PushError(NewValidationError("zeroth", EmptySpan()))
	d.Merge(other)

	require.Len(t, d.Errors(), 2)
	assert.Equal(t, "Error validating: zeroth", d.Errors()[0].Message())
	assert.Equal(t, "Error validating: first", d.Errors()[1].Message())
	assert.True(t, d.HasWarnings())
	assert.EqualError(t, d.ToResult(), "validation failed with 2 errors")
}

func TestInvalidReferentialActionError(t *testing.T) {
	err := NewInvalidReferentialActionError("Explode", []string{"Cascade", "NoAction"}, EmptySpan())
	assert.Equal(t,
		"Error parsing attribute \"@relation\": Invalid referential action: `Explode`. Allowed values: (`Cascade`, `NoAction`)",
		err.Error())
}

func TestFieldValidationMessages(t *testing.T) {
	err := NewFieldValidationError("boom", "model", "Post", "author", EmptySpan())
	assert.Equal(t, "Error validating field `author` in model `Post`: boom", err.Message())

	warn := NewFieldValidationWarning("hmm", "Post", "author", EmptySpan())
	assert.Equal(t, "Warning validating field `author` in model `Post`: hmm", warn.Message())
}

func TestPrettyPrint(t *testing.T) {
	color.NoColor = true
	span := relationSpan(t)

	var buf bytes.Buffer
	err := NewDatamodelError("Reference causes a cycle.", span).PrettyPrint(&buf, "schema.prisma", schemaText)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "error: Reference causes a cycle.\n")
	assert.Contains(t, out, "  --> schema.prisma:3\n")
	assert.Contains(t, out, " 2 |   id     Int  @id\n")
	assert.Contains(t, out, " 3 |   author User @relation(fields: [authorId], references: [id])\n")
	assert.Contains(t, out, "   | "+strings.Repeat(" ", 14)+strings.Repeat("^", span.End-span.Start)+"\n")
}

func TestPrettyPrintWarningAtEndOfFile(t *testing.T) {
	color.NoColor = true

	d := NewDiagnostics()
	d.PushWarning(NewDatamodelWarning("trailing", NewSpan(len(schemaText), len(schemaText), FileIDZero)))

	out := d.WarningsToPrettyString("schema.prisma", schemaText)
	assert.Contains(t, out, "warning: trailing\n")
	assert.Contains(t, out, "^ Unexpected token.")
}
