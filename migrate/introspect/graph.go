package introspect

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// ToGraph converts an introspected schema into a validation graph. Tables
// become models and every foreign key becomes a relation field named after
// its constraint, with the rules the database reports as explicit actions.
//
// Table names are qualified with their schema when the database spans more
// than one schema. Foreign keys to tables outside the introspected set are
// skipped.
func ToGraph(schema *DatabaseSchema) (*validation.Graph, error) {
	qualify := spansSchemas(schema)
	name := func(schemaName, table string) string {
		if qualify {
			return schemaName + "." + table
		}
		return table
	}

	g := &validation.Graph{Models: make([]validation.Model, 0, len(schema.Tables))}
	for _, t := range schema.Tables {
		m := validation.Model{Name: name(t.Schema, t.Name)}
		for _, c := range t.Columns {
			m.ScalarFields = append(m.ScalarFields, validation.ScalarField{Name: c.Name, Optional: c.Nullable})
		}

		for _, fk := range t.ForeignKeys {
			if schema.Table(fk.ReferencedSchema, fk.ReferencedTable) == nil {
				debug.Warn("Skipping foreign key to a table outside the schema", "constraint", fk.Name, "table", fk.ReferencedTable)
				continue
			}
			onDelete, err := ParseRule(fk.OnDelete)
			if err != nil {
				return nil, fmt.Errorf("%w: foreign key %s on %s: %w", ErrIntrospectionFailed, fk.Name, m.Name, err)
			}
			onUpdate, err := ParseRule(fk.OnUpdate)
			if err != nil {
				return nil, fmt.Errorf("%w: foreign key %s on %s: %w", ErrIntrospectionFailed, fk.Name, m.Name, err)
			}

			m.Relations = append(m.Relations, validation.RelationField{
				Name:         fk.Name,
				RelationName: fk.Name,
				References:   name(fk.ReferencedSchema, fk.ReferencedTable),
				Fields:       fk.Columns,
				Optional:     nullableKey(&t, fk.Columns),
				OnDelete:     validation.Explicit(onDelete),
				OnUpdate:     validation.Explicit(onUpdate),
			})
		}
		g.Models = append(g.Models, m)
	}
	return g, nil
}

// ParseRule maps a foreign key rule as reported by the database catalogs to a
// referential action. An empty rule means NO ACTION.
func ParseRule(rule string) (validation.ReferentialAction, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rule), "_", " ")) {
	case "CASCADE":
		return validation.ReferentialActionCascade, nil
	case "SET NULL":
		return validation.ReferentialActionSetNull, nil
	case "SET DEFAULT":
		return validation.ReferentialActionSetDefault, nil
	case "RESTRICT":
		return validation.ReferentialActionRestrict, nil
	case "NO ACTION", "":
		return validation.ReferentialActionNoAction, nil
	default:
		return "", fmt.Errorf("unknown foreign key rule %q", rule)
	}
}

func spansSchemas(schema *DatabaseSchema) bool {
	for _, t := range schema.Tables {
		if t.Schema != schema.Tables[0].Schema {
			return true
		}
	}
	return false
}

// nullableKey reports whether any of the key columns is nullable.
func nullableKey(t *Table, columns []string) bool {
	for _, name := range columns {
		if c := t.Column(name); c != nil && c.Nullable {
			return true
		}
	}
	return false
}
