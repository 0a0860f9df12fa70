package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/config"
	"github.com/satishbabariya/prisma-cascade/cli/internal/ui"
	"github.com/satishbabariya/prisma-cascade/cli/internal/version"
	"github.com/satishbabariya/prisma-cascade/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:   "prisma-cascade",
	Short: "Check the referential actions of Prisma schemas",
	Long: `prisma-cascade finds relations whose onDelete and onUpdate actions form
cascade cycles or multiple cascade paths, which SQL Server rejects.

It checks schema files, live databases, and can rewrite a schema to break
the offending relations.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	debugFlag bool
	cfg       = &config.Config{Format: "text"}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute is the main entry point for the CLI
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	debug.Init(debugFlag || debug.FromEnv())
	ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg = loaded
	debug.Debug("Configuration loaded",
		"schema_path", cfg.SchemaPath,
		"format", cfg.Format,
		"strict", cfg.Strict,
		"provider", cfg.Provider)

	return version.Satisfies(version.Version, cfg.RequiredVersion)
}
