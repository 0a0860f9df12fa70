package core

import "github.com/satishbabariya/prisma-cascade/psl/diagnostics"

// RelationMode represents the relation mode.
type RelationMode string

const (
	RelationModePrisma      RelationMode = "prisma"
	RelationModeForeignKeys RelationMode = "foreignKeys"
)

// ParseRelationMode returns the mode named by s.
func ParseRelationMode(s string) (RelationMode, bool) {
	switch RelationMode(s) {
	case RelationModePrisma, RelationModeForeignKeys:
		return RelationMode(s), true
	default:
		return "", false
	}
}

// Datasource providers understood by the relation checks.
const (
	ProviderPostgreSQL  = "postgresql"
	ProviderPostgres    = "postgres"
	ProviderCockroachDB = "cockroachdb"
	ProviderMySQL       = "mysql"
	ProviderSQLite      = "sqlite"
	ProviderSQLServer   = "sqlserver"
	ProviderMongoDB     = "mongodb"
)

// KnownProviders lists every accepted datasource provider.
var KnownProviders = []string{
	ProviderPostgreSQL,
	ProviderPostgres,
	ProviderCockroachDB,
	ProviderMySQL,
	ProviderSQLite,
	ProviderSQLServer,
	ProviderMongoDB,
}

// IsKnownProvider reports whether provider is one of KnownProviders.
func IsKnownProvider(provider string) bool {
	for _, p := range KnownProviders {
		if p == provider {
			return true
		}
	}
	return false
}

// Datasource represents a datasource configuration.
type Datasource struct {
	Name         string
	Provider     string
	relationMode RelationMode
	Span         diagnostics.Span
	ProviderSpan diagnostics.Span
}

// NewDatasource creates a datasource using the provider's default relation mode.
func NewDatasource(name, provider string) Datasource {
	return Datasource{
		Name:         name,
		Provider:     provider,
		relationMode: DefaultRelationMode(provider),
	}
}

// DefaultRelationMode returns the mode a provider uses when the schema does not set one.
func DefaultRelationMode(provider string) RelationMode {
	if provider == ProviderMongoDB {
		return RelationModePrisma
	}
	return RelationModeForeignKeys
}

// RelationMode returns the relation mode for this datasource.
func (d *Datasource) RelationMode() RelationMode {
	if d.relationMode == "" {
		return DefaultRelationMode(d.Provider)
	}
	return d.relationMode
}

// SetRelationMode sets the relation mode.
func (d *Datasource) SetRelationMode(mode RelationMode) {
	d.relationMode = mode
}

// IsSQLServer reports whether the datasource targets SQL Server, where cyclic
// and multi-path cascades are rejected by the database.
func (d *Datasource) IsSQLServer() bool {
	return d != nil && d.Provider == ProviderSQLServer
}
