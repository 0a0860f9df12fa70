package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/ui"
	"github.com/satishbabariya/prisma-cascade/internal/debug"
	"github.com/satishbabariya/prisma-cascade/migrate/introspect"
	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect a live database",
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the foreign keys of a live database",
	Long: `Introspect the foreign keys of a database and check their ON DELETE and
ON UPDATE rules for cascade cycles and multiple cascade paths.

This is useful for databases that predate the schema, before baselining.`,
	Args: cobra.NoArgs,
	RunE: runDBCheck,
}

var (
	dbURL      string
	dbProvider string
	dbStrict   bool
	dbFormat   string
)

func init() {
	dbCheckCmd.Flags().StringVar(&dbURL, "url", "", "Database connection URL (defaults to DATABASE_URL)")
	dbCheckCmd.Flags().StringVar(&dbProvider, "provider", "", "Database provider (detected from the URL when empty)")
	dbCheckCmd.Flags().BoolVar(&dbStrict, "strict", false, "Report findings as errors for every provider")
	dbCheckCmd.Flags().StringVarP(&dbFormat, "format", "f", "text", "Output format: text, json or yaml")

	dbCmd.AddCommand(dbCheckCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBCheck(cmd *cobra.Command, args []string) error {
	url := dbURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		return fmt.Errorf("no database url; pass --url or set DATABASE_URL")
	}

	provider := dbProvider
	if provider == "" {
		provider = cfg.Provider
	}
	if provider == "" {
		provider = detectProvider(url)
	}
	if provider == "" {
		return fmt.Errorf("cannot detect the provider of %q; pass --provider", redact(url))
	}

	format := dbFormat
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	if err := validFormat(format); err != nil {
		return err
	}

	ctx := cmd.Context()
	var spinner interface{ Stop() error }
	if format == "text" {
		ui.PrintHeader("Prisma Cascade", "Check Database Foreign Keys")
		if s, err := ui.PrintSpinner(fmt.Sprintf("Introspecting %s database...", provider)); err == nil {
			spinner = s
		}
	}
	stopSpinner := func() {
		if spinner != nil {
			_ = spinner.Stop()
			spinner = nil
		}
	}
	defer stopSpinner()

	db, err := introspect.Open(ctx, provider, url)
	if err != nil {
		return err
	}
	defer db.Close()

	in, err := introspect.NewIntrospector(db, provider)
	if err != nil {
		return err
	}
	schema, err := in.Introspect(ctx)
	if err != nil {
		return err
	}
	graph, err := introspect.ToGraph(schema)
	if err != nil {
		return err
	}
	issues, err := validation.Validate(graph)
	if err != nil {
		return err
	}
	stopSpinner()

	asErrors := dbStrict || cfg.Strict || provider == core.ProviderSQLServer || provider == "mssql"
	fkCount := 0
	for _, t := range schema.Tables {
		fkCount += len(t.ForeignKeys)
	}
	debug.Debug("Checked database", "provider", provider, "tables", len(schema.Tables), "foreign_keys", fkCount, "issues", len(issues))

	records := issueRecords(issues, asErrors)
	if format != "text" {
		if err := encodeOutput(cmd.OutOrStdout(), format, dbCheckOutput{
			Provider:    provider,
			Tables:      len(schema.Tables),
			ForeignKeys: fkCount,
			Issues:      records,
		}); err != nil {
			return err
		}
	} else {
		ui.PrintInfo("Found %d table(s) and %d foreign key(s)", len(schema.Tables), fkCount)
		if len(issues) == 0 {
			ui.PrintSuccess("No referential action conflicts")
			return nil
		}
		fmt.Fprintln(ui.Out)
		ui.PrintSection("Conflicting foreign keys")
		printIssueTable(records)
		for _, r := range records {
			fmt.Fprintln(ui.Out)
			if asErrors {
				ui.PrintError("%s", r.Message)
			} else {
				ui.PrintWarning("%s", r.Message)
			}
		}
	}

	if asErrors && len(issues) > 0 {
		return errCheckFailed
	}
	return nil
}

// detectProvider guesses the provider from a connection URL scheme.
func detectProvider(url string) string {
	scheme, _, found := strings.Cut(url, ":")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return core.ProviderPostgreSQL
	case "mysql":
		return core.ProviderMySQL
	case "file", "sqlite":
		return core.ProviderSQLite
	case "sqlserver":
		return core.ProviderSQLServer
	default:
		return ""
	}
}

// redact hides the password of a connection URL in messages.
func redact(url string) string {
	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		return url
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return url
	}
	user, _, _ := strings.Cut(rest[:at], ":")
	return scheme + "://" + user + ":***" + rest[at:]
}
