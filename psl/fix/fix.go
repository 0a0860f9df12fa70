// Package fix rewrites schema source so that a relation stops taking part in
// cascade paths, by setting both of its referential actions to NoAction.
//
// Rewrites work on byte offsets of the parsed schema, so everything outside
// the touched @relation attributes, comments and layout included, is kept.
package fix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

var (
	// ErrFieldNotFound is returned when the model or field does not exist.
	ErrFieldNotFound = errors.New("relation field not found")
	// ErrNoRelationAttribute is returned when the field has no @relation attribute.
	ErrNoRelationAttribute = errors.New("field has no @relation attribute")
)

const noAction = string(validation.ReferentialActionNoAction)

// BreakRelation returns source with the @relation attribute of model.field
// rewritten to use `onDelete: NoAction` and `onUpdate: NoAction`. Existing
// action arguments are replaced in place; other arguments are kept verbatim.
func BreakRelation(source string, schema *ast.SchemaAst, model, field string) (string, error) {
	e, err := planEdit(source, schema, validation.EdgeRef{Model: model, Field: field})
	if err != nil {
		return "", err
	}
	return source[:e.start] + e.text + source[e.end:], nil
}

// BreakRelations applies BreakRelation to every edge. Edits are applied from
// the end of the file backwards so that earlier offsets stay valid.
func BreakRelations(source string, schema *ast.SchemaAst, edges []validation.EdgeRef) (string, error) {
	edits := make([]edit, 0, len(edges))
	for _, ref := range edges {
		e, err := planEdit(source, schema, ref)
		if err != nil {
			return "", err
		}
		if slices.ContainsFunc(edits, func(o edit) bool { return o.start == e.start }) {
			continue
		}
		edits = append(edits, e)
	}
	slices.SortFunc(edits, func(a, b edit) int { return b.start - a.start })

	out := source
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out, nil
}

type edit struct {
	start, end int
	text       string
}

func planEdit(source string, schema *ast.SchemaAst, ref validation.EdgeRef) (edit, error) {
	m := schema.Model(ref.Model)
	if m == nil {
		return edit{}, fmt.Errorf("%s: %w", ref, ErrFieldNotFound)
	}
	f := m.Field(ref.Field)
	if f == nil {
		return edit{}, fmt.Errorf("%s: %w", ref, ErrFieldNotFound)
	}
	attr := f.Attribute("relation")
	if attr == nil {
		return edit{}, fmt.Errorf("%s: %w", ref, ErrNoRelationAttribute)
	}

	start := attr.Pos.Offset
	end, err := attributeEnd(source, start)
	if err != nil {
		return edit{}, fmt.Errorf("%s: %w", ref, err)
	}
	return edit{start: start, end: end, text: renderRelation(source, attr)}, nil
}

// renderRelation renders attr with both actions set to NoAction.
func renderRelation(source string, attr *ast.Attribute) string {
	args := make([]string, 0, len(attr.Arguments)+2)
	var hasDelete, hasUpdate bool
	for _, arg := range attr.Arguments {
		switch arg.GetName() {
		case "onDelete":
			hasDelete = true
			args = append(args, "onDelete: "+noAction)
		case "onUpdate":
			hasUpdate = true
			args = append(args, "onUpdate: "+noAction)
		default:
			args = append(args, argumentText(source, arg))
		}
	}
	if !hasDelete {
		args = append(args, "onDelete: "+noAction)
	}
	if !hasUpdate {
		args = append(args, "onUpdate: "+noAction)
	}
	return "@relation(" + strings.Join(args, ", ") + ")"
}

// argumentText returns the argument as written, falling back to its
// rendered form when the recorded offsets do not fit the source.
func argumentText(source string, arg *ast.Argument) string {
	start, end := arg.Pos.Offset, arg.EndPos.Offset
	if start < 0 || end > len(source) || end <= start {
		return arg.String()
	}
	text := strings.TrimSpace(source[start:end])
	text = strings.TrimSuffix(text, ",")
	return strings.TrimSpace(text)
}

// attributeEnd returns the offset just past the attribute starting at start:
// after its closing parenthesis, or after its name when it has no arguments.
func attributeEnd(source string, start int) (int, error) {
	const name = "@relation"
	if !strings.HasPrefix(source[start:], name) {
		return 0, fmt.Errorf("no @relation attribute at offset %d", start)
	}
	i := start + len(name)
	j := i
	for j < len(source) && (source[j] == ' ' || source[j] == '\t') {
		j++
	}
	if j >= len(source) || source[j] != '(' {
		return i, nil
	}

	depth := 0
	inString := false
	for k := j; k < len(source); k++ {
		c := source[k]
		switch {
		case inString && c == '\\':
			k++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return k + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated @relation attribute at offset %d", start)
}
