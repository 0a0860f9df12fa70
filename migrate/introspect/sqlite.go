package introspect

import (
	"context"
	"database/sql"
)

// SQLiteIntrospector implements introspection for SQLite
type SQLiteIntrospector struct {
	db *sql.DB
}

// NewSQLiteIntrospector creates a new SQLite introspector
func NewSQLiteIntrospector(db *sql.DB) *SQLiteIntrospector {
	return &SQLiteIntrospector{db: db}
}

// SQLite exposes its pragmas as table-valued functions, which lets one query
// cover every table. Everything lives in the "main" schema.
const sqliteColumnsQuery = `
	SELECT 'main', m.name, p.name, p.type,
		CASE WHEN p."notnull" = 0 AND p.pk = 0 THEN 'YES' ELSE 'NO' END
	FROM sqlite_master m
	JOIN pragma_table_info(m.name) p
	WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
	ORDER BY m.name, p.cid
`

// Foreign keys are unnamed in SQLite; they are named after the table and
// the key id. "to" is NULL when the key references the primary key implicitly.
const sqliteForeignKeysQuery = `
	SELECT m.name || '_fk_' || f.id, 'main', m.name, f."from",
		'main', f."table", f."to", f.on_update, f.on_delete
	FROM sqlite_master m
	JOIN pragma_foreign_key_list(m.name) f
	WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
	ORDER BY m.name, f.id, f.seq
`

// Introspect introspects a SQLite database
func (s *SQLiteIntrospector) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	return loader{
		db:               s.db,
		provider:         "sqlite",
		columnsQuery:     sqliteColumnsQuery,
		foreignKeysQuery: sqliteForeignKeysQuery,
	}.load(ctx)
}
