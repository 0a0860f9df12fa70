package introspect

import (
	"context"
	"database/sql"
)

// CockroachDBIntrospector implements introspection for CockroachDB.
// CockroachDB serves the PostgreSQL information_schema, so the PostgreSQL
// queries are reused.
type CockroachDBIntrospector struct {
	*PostgresIntrospector
}

// NewCockroachDBIntrospector creates a new CockroachDB introspector
func NewCockroachDBIntrospector(db *sql.DB) *CockroachDBIntrospector {
	return &CockroachDBIntrospector{PostgresIntrospector: NewPostgresIntrospector(db)}
}

// Introspect introspects a CockroachDB database
func (c *CockroachDBIntrospector) Introspect(ctx context.Context) (*DatabaseSchema, error) {
	schema, err := c.PostgresIntrospector.Introspect(ctx)
	if err != nil {
		return nil, err
	}
	schema.Provider = "cockroachdb"
	return schema, nil
}
