package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	prev := AppFs
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })
}

func TestLoadDefaults(t *testing.T) {
	memFs(t, nil)
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load("/project", "/home/dev")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.SchemaPath)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadProjectFile(t *testing.T) {
	memFs(t, map[string]string{
		"/project/.prisma-cascade.yaml": "schema_path: prisma/schema.prisma\nstrict: true\nformat: json\nrequired_version: \">= 0.1\"\n",
		"/home/dev/.prisma-cascade.yaml": "format: yaml\n",
	})

	cfg, err := Load("/project", "/home/dev")
	require.NoError(t, err)
	assert.Equal(t, "prisma/schema.prisma", cfg.SchemaPath)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "json", cfg.Format, "project config comes before home")
	assert.Equal(t, ">= 0.1", cfg.RequiredVersion)
}

func TestLoadEnvFiles(t *testing.T) {
	memFs(t, map[string]string{
		"/project/.env":       "DATABASE_URL=postgresql://env/db\nPRISMA_CASCADE_PROVIDER=mysql\n",
		"/project/.env.local": "DATABASE_URL=postgresql://local/db\n",
	})
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PRISMA_CASCADE_PROVIDER", "")

	cfg, err := Load("/project", "/home/dev")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://local/db", cfg.DatabaseURL, ".env.local overrides .env")
}

func TestLoadEnvPrefix(t *testing.T) {
	memFs(t, nil)
	t.Setenv("PRISMA_CASCADE_DATABASE_URL", "sqlserver://db:1433")
	t.Setenv("PRISMA_CASCADE_STRICT", "true")

	cfg, err := Load("/project", "/home/dev")
	require.NoError(t, err)
	assert.Equal(t, "sqlserver://db:1433", cfg.DatabaseURL)
	assert.True(t, cfg.Strict)
}

func TestFindSchema(t *testing.T) {
	memFs(t, map[string]string{"/project/prisma/schema.prisma": "model A { id Int @id }"})
	assert.Equal(t, filepath.Join("/project", "prisma", "schema.prisma"), FindSchema("/project"))
	assert.Empty(t, FindSchema("/elsewhere"))
}
