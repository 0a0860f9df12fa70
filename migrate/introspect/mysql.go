package introspect

import (
	"context"
	"database/sql"
)

// MySQLIntrospector implements introspection for MySQL
type MySQLIntrospector struct {
	db *sql.DB
}

// NewMySQLIntrospector creates a new MySQL introspector
func NewMySQLIntrospector(db *sql.DB) *MySQLIntrospector {
	return &MySQLIntrospector{db: db}
}

const mysqlColumnsQuery = `
	SELECT c.TABLE_SCHEMA, c.TABLE_NAME, c.COLUMN_NAME, c.DATA_TYPE, c.IS_NULLABLE
	FROM information_schema.COLUMNS c
	JOIN information_schema.TABLES t
		ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
	WHERE c.TABLE_SCHEMA = DATABASE() AND t.TABLE_TYPE = 'BASE TABLE'
	ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION
`

const mysqlForeignKeysQuery = `
	SELECT
		kcu.CONSTRAINT_NAME,
		kcu.TABLE_SCHEMA,
		kcu.TABLE_NAME,
		kcu.COLUMN_NAME,
		kcu.REFERENCED_TABLE_SCHEMA,
		kcu.REFERENCED_TABLE_NAME,
		kcu.REFERENCED_COLUMN_NAME,
		rc.UPDATE_RULE,
		rc.DELETE_RULE
	FROM information_schema.KEY_COLUMN_USAGE kcu
	JOIN information_schema.REFERENTIAL_CONSTRAINTS rc
		ON rc.CONSTRAINT_SCHEMA = kcu.CONSTRAINT_SCHEMA
		AND rc.TABLE_NAME = kcu.TABLE_NAME
		AND rc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
	WHERE kcu.TABLE_SCHEMA = DATABASE() AND kcu.REFERENCED_TABLE_NAME IS NOT NULL
	ORDER BY kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION
`

// Introspect introspects a MySQL database
func (m *MySQLIntrospector) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	return loader{
		db:               m.db,
		provider:         "mysql",
		columnsQuery:     mysqlColumnsQuery,
		foreignKeysQuery: mysqlForeignKeysQuery,
	}.load(ctx)
}
