package introspect

import (
	"context"
	"database/sql"
)

// PostgresIntrospector implements introspection for PostgreSQL
type PostgresIntrospector struct {
	db *sql.DB
}

// NewPostgresIntrospector creates a new PostgreSQL introspector
func NewPostgresIntrospector(db *sql.DB) *PostgresIntrospector {
	return &PostgresIntrospector{db: db}
}

const postgresColumnsQuery = `
	SELECT c.table_schema, c.table_name, c.column_name, c.data_type, c.is_nullable
	FROM information_schema.columns c
	JOIN information_schema.tables t
		ON t.table_schema = c.table_schema AND t.table_name = c.table_name
	WHERE t.table_type = 'BASE TABLE'
		AND c.table_schema NOT IN ('pg_catalog', 'information_schema', 'crdb_internal', 'pg_extension')
	ORDER BY c.table_schema, c.table_name, c.ordinal_position
`

// Key columns are paired through position_in_unique_constraint so that
// composite keys line up with the referenced columns.
const postgresForeignKeysQuery = `
	SELECT
		kcu.constraint_name,
		kcu.table_schema,
		kcu.table_name,
		kcu.column_name,
		rkcu.table_schema,
		rkcu.table_name,
		rkcu.column_name,
		rc.update_rule,
		rc.delete_rule
	FROM information_schema.referential_constraints rc
	JOIN information_schema.key_column_usage kcu
		ON kcu.constraint_schema = rc.constraint_schema
		AND kcu.constraint_name = rc.constraint_name
	JOIN information_schema.key_column_usage rkcu
		ON rkcu.constraint_schema = rc.unique_constraint_schema
		AND rkcu.constraint_name = rc.unique_constraint_name
		AND rkcu.ordinal_position = kcu.position_in_unique_constraint
	WHERE kcu.table_schema NOT IN ('pg_catalog', 'information_schema', 'crdb_internal', 'pg_extension')
	ORDER BY kcu.table_schema, kcu.table_name, kcu.constraint_name, kcu.ordinal_position
`

// Introspect introspects a PostgreSQL database
func (p *PostgresIntrospector) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	return loader{
		db:               p.db,
		provider:         "postgresql",
		columnsQuery:     postgresColumnsQuery,
		foreignKeysQuery: postgresForeignKeysQuery,
	}.load(ctx)
}
