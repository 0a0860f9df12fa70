package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/ui"
	"github.com/satishbabariya/prisma-cascade/cli/internal/watch"
	psl "github.com/satishbabariya/prisma-cascade/psl"
)

var checkCmd = &cobra.Command{
	Use:   "check [schema-path]",
	Short: "Check the referential actions of a Prisma schema",
	Long: `Check a Prisma schema for relations whose referential actions form
cascade cycles or multiple cascade paths.

Findings are errors on SQL Server and with --strict, warnings otherwise.
The command exits non-zero when the schema has errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var (
	checkSchemaPath string
	checkStrict     bool
	checkFormat     string
	checkProvider   string
	checkWatch      bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkSchemaPath, "schema", "s", "", "Path to schema file")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Report findings as errors for every provider")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text, json or yaml")
	checkCmd.Flags().StringVar(&checkProvider, "provider", "", "Check as if the datasource used this provider")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check whenever the schema changes")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	schemaPath, err := getSchemaPath(checkSchemaPath, args)
	if err != nil {
		return err
	}

	format := cfg.Format
	if cmd.Flags().Changed("format") || format == "" {
		format = checkFormat
	}
	if err := validFormat(format); err != nil {
		return err
	}

	provider := checkProvider
	if provider == "" {
		provider = cfg.Provider
	}
	opts := psl.CheckOptions{Strict: checkStrict || cfg.Strict, Provider: provider}

	if !checkWatch {
		failed, err := checkOnce(cmd.OutOrStdout(), schemaPath, opts, format)
		if err != nil {
			return err
		}
		if failed {
			return errCheckFailed
		}
		return nil
	}

	rerun := func() error {
		_, err := checkOnce(cmd.OutOrStdout(), schemaPath, opts, format)
		return err
	}
	if err := rerun(); err != nil {
		return err
	}
	w, err := watch.New(schemaPath, rerun)
	if err != nil {
		return err
	}
	ui.PrintInfo("Watching %s for changes (Ctrl+C to stop)", schemaPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}

// checkOnce checks the schema at path and prints the report. It reports
// whether the schema has errors.
func checkOnce(out io.Writer, path string, opts psl.CheckOptions, format string) (bool, error) {
	file, err := readSchema(path)
	if err != nil {
		return false, err
	}
	report, err := psl.Check(file, opts)
	if err != nil {
		return false, err
	}

	if format != "text" {
		return report.HasErrors(), encodeOutput(out, format, newCheckOutput(report))
	}
	printReport(out, report)
	return report.HasErrors(), nil
}

// printReport writes the text report to out. Status lines go through ui.
func printReport(out io.Writer, report *psl.Report) {
	ui.PrintHeader("Prisma Cascade", "Check Referential Actions")

	path, data := report.File.Path, report.File.Data
	if errs := report.Diagnostics.Errors(); len(errs) > 0 {
		ui.PrintError("Schema has %d error(s):", len(errs))
		fmt.Fprintf(out, "\n%s\n", report.Diagnostics.ToPrettyString(path, data))
	}
	if warns := report.Diagnostics.Warnings(); len(warns) > 0 {
		ui.PrintWarning("Schema has %d warning(s):", len(warns))
		fmt.Fprintf(out, "\n%s\n", report.Diagnostics.WarningsToPrettyString(path, data))
	}

	if report.Result == nil {
		return
	}
	if len(report.Issues) > 0 {
		ui.PrintSection("Conflicting relations")
		printIssueTable(issueRecords(report.Issues, report.IssuesAsErrors))
		fmt.Fprintln(out)
		ui.PrintInfo("Run `prisma-cascade fix %s` to break them, or `prisma-cascade explain` to learn why.", path)
		return
	}
	if !report.HasErrors() {
		ui.PrintSuccess("No referential action conflicts in %s (%d models, %d relations)",
			path, len(report.Result.Graph.Models), report.Result.Graph.EdgeCount())
	}
}

func printIssueTable(records []issueRecord) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		path := ""
		if len(r.Paths) > 0 {
			path = r.Paths[0]
		}
		rows = append(rows, []string{r.Model + "." + r.Field, r.Action, r.Kind, r.Severity, path})
	}
	if err := ui.PrintTable([]string{"Relation", "Action", "Kind", "Severity", "Path"}, rows); err != nil {
		ui.PrintError("%v", err)
	}
}
