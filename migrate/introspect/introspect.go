// Package introspect reads tables, columns and foreign keys from a live
// database so that its referential actions can be validated like a schema.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
)

// Introspector reads the foreign key structure of a database.
type Introspector interface {
	Introspect(ctx context.Context) (*DatabaseSchema, error)
}

// DatabaseSchema represents the introspected database schema
type DatabaseSchema struct {
	Provider string
	Tables   []Table
}

// Table returns the table with the given schema and name.
func (s *DatabaseSchema) Table(schema, name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Schema == schema && s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// Table represents a database table
type Table struct {
	Name        string
	Schema      string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Column returns the column with the given name.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Column represents a table column
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// ForeignKey represents a foreign key constraint. OnDelete and OnUpdate hold
// the rule as the database reports it, e.g. `CASCADE` or `NO_ACTION`.
type ForeignKey struct {
	Name              string
	Columns           []string
	ReferencedSchema  string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          string
	OnUpdate          string
}

// NewIntrospector creates a new introspector for the given database
func NewIntrospector(db *sql.DB, provider string) (Introspector, error) {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresIntrospector(db), nil
	case "cockroachdb":
		return NewCockroachDBIntrospector(db), nil
	case "mysql":
		return NewMySQLIntrospector(db), nil
	case "sqlite":
		return NewSQLiteIntrospector(db), nil
	case "sqlserver", "mssql":
		return NewSQLServerIntrospector(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

// loader runs the two catalog queries every introspector is built from.
//
// The columns query yields (schema, table, column, type, is_nullable) with
// is_nullable as 'YES' or 'NO', ordered by table and column position. The
// foreign keys query yields one row per key column: (constraint, schema,
// table, column, referenced schema, referenced table, referenced column,
// update rule, delete rule), ordered by table, constraint and key position.
type loader struct {
	db               *sql.DB
	provider         string
	columnsQuery     string
	foreignKeysQuery string
}

func (l loader) load(ctx context.Context) (*DatabaseSchema, error) {
	schema := &DatabaseSchema{Provider: l.provider}
	index := make(map[[2]string]int)

	rows, err := l.db.QueryContext(ctx, l.columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query columns: %w", ErrIntrospectionFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableSchema, tableName, isNullable string
		var col Column
		if err := rows.Scan(&tableSchema, &tableName, &col.Name, &col.Type, &isNullable); err != nil {
			return nil, fmt.Errorf("%w: failed to scan column: %w", ErrIntrospectionFailed, err)
		}
		col.Nullable = isNullable == "YES"

		key := [2]string{tableSchema, tableName}
		ti, ok := index[key]
		if !ok {
			ti = len(schema.Tables)
			index[key] = ti
			schema.Tables = append(schema.Tables, Table{Name: tableName, Schema: tableSchema})
		}
		schema.Tables[ti].Columns = append(schema.Tables[ti].Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read columns: %w", ErrIntrospectionFailed, err)
	}

	if err := l.loadForeignKeys(ctx, schema, index); err != nil {
		return nil, err
	}
	return schema, nil
}

func (l loader) loadForeignKeys(ctx context.Context, schema *DatabaseSchema, index map[[2]string]int) error {
	rows, err := l.db.QueryContext(ctx, l.foreignKeysQuery)
	if err != nil {
		return fmt.Errorf("%w: failed to query foreign keys: %w", ErrIntrospectionFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, tableSchema, tableName, column string
			refSchema, refTable                  string
			refColumn                            sql.NullString
			onUpdate, onDelete                   string
		)
		if err := rows.Scan(&name, &tableSchema, &tableName, &column, &refSchema, &refTable, &refColumn, &onUpdate, &onDelete); err != nil {
			return fmt.Errorf("%w: failed to scan foreign key: %w", ErrIntrospectionFailed, err)
		}

		ti, ok := index[[2]string{tableSchema, tableName}]
		if !ok {
			continue
		}
		table := &schema.Tables[ti]

		// Rows of one constraint are adjacent.
		n := len(table.ForeignKeys)
		if n == 0 || table.ForeignKeys[n-1].Name != name {
			table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
				Name:             name,
				ReferencedSchema: refSchema,
				ReferencedTable:  refTable,
				OnUpdate:         onUpdate,
				OnDelete:         onDelete,
			})
			n++
		}
		fk := &table.ForeignKeys[n-1]
		fk.Columns = append(fk.Columns, column)
		if refColumn.Valid {
			fk.ReferencedColumns = append(fk.ReferencedColumns, refColumn.String)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: failed to read foreign keys: %w", ErrIntrospectionFailed, err)
	}
	return nil
}
