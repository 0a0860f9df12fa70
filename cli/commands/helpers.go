package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/satishbabariya/prisma-cascade/cli/internal/config"
	psl "github.com/satishbabariya/prisma-cascade/psl"
)

// errCheckFailed makes the process exit non-zero after the findings were printed.
var errCheckFailed = errors.New("referential action check failed")

// getSchemaPath returns the schema path using consistent logic:
// 1. Use the first argument if provided
// 2. Use the explicit flag value if set
// 3. Use schema_path from the configuration
// 4. Look for schema.prisma or prisma/schema.prisma
func getSchemaPath(flagValue string, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.SchemaPath != "" {
		return cfg.SchemaPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if path := config.FindSchema(wd); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no schema file found; pass a path or set schema_path")
}

func readSchema(path string) (psl.SourceFile, error) {
	data, err := afero.ReadFile(config.AppFs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return psl.SourceFile{}, fmt.Errorf("schema file not found: %s", path)
		}
		return psl.SourceFile{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	return psl.NewSourceFile(path, string(data)), nil
}

func writeSchema(path, content string) error {
	info, err := config.AppFs.Stat(path)
	if err != nil {
		return err
	}
	return afero.WriteFile(config.AppFs, path, []byte(content), info.Mode().Perm())
}

func validFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
