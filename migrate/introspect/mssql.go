package introspect

import (
	"context"
	"database/sql"
)

// SQLServerIntrospector implements introspection for SQL Server
type SQLServerIntrospector struct {
	db *sql.DB
}

// NewSQLServerIntrospector creates a new SQL Server introspector
func NewSQLServerIntrospector(db *sql.DB) *SQLServerIntrospector {
	return &SQLServerIntrospector{db: db}
}

const sqlserverColumnsQuery = `
	SELECT c.TABLE_SCHEMA, c.TABLE_NAME, c.COLUMN_NAME, c.DATA_TYPE, c.IS_NULLABLE
	FROM INFORMATION_SCHEMA.COLUMNS c
	JOIN INFORMATION_SCHEMA.TABLES t
		ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
	WHERE t.TABLE_TYPE = 'BASE TABLE'
	ORDER BY c.TABLE_SCHEMA, c.TABLE_NAME, c.ORDINAL_POSITION
`

// The catalog views report rules as NO_ACTION, CASCADE, SET_NULL and SET_DEFAULT.
const sqlserverForeignKeysQuery = `
	SELECT
		fk.name,
		SCHEMA_NAME(pt.schema_id),
		pt.name,
		pc.name,
		SCHEMA_NAME(rt.schema_id),
		rt.name,
		rc.name,
		fk.update_referential_action_desc,
		fk.delete_referential_action_desc
	FROM sys.foreign_keys fk
	JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
	JOIN sys.tables pt ON pt.object_id = fkc.parent_object_id
	JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
	JOIN sys.tables rt ON rt.object_id = fkc.referenced_object_id
	JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
	ORDER BY SCHEMA_NAME(pt.schema_id), pt.name, fk.name, fkc.constraint_column_id
`

// Introspect introspects a SQL Server database
func (s *SQLServerIntrospector) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	return loader{
		db:               s.db,
		provider:         "sqlserver",
		columnsQuery:     sqlserverColumnsQuery,
		foreignKeysQuery: sqlserverForeignKeysQuery,
	}.load(ctx)
}
