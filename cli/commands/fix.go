package commands

import (
	"fmt"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/ui"
	psl "github.com/satishbabariya/prisma-cascade/psl"
	"github.com/satishbabariya/prisma-cascade/psl/fix"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

var fixCmd = &cobra.Command{
	Use:   "fix [schema-path]",
	Short: "Break cascade cycles and multiple cascade paths",
	Long: `Pick one relation per conflict and set its onDelete and onUpdate
referential actions to NoAction.

Every other part of the schema, comments and formatting included, is kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

var (
	fixSchemaPath string
	fixDryRun     bool
	fixYes        bool
)

const skipOption = "(skip)"

func init() {
	fixCmd.Flags().StringVarP(&fixSchemaPath, "schema", "s", "", "Path to schema file")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Print the changes instead of writing them")
	fixCmd.Flags().BoolVarP(&fixYes, "yes", "y", false, "Break the first relation of every conflict without asking")

	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	schemaPath, err := getSchemaPath(fixSchemaPath, args)
	if err != nil {
		return err
	}
	file, err := readSchema(schemaPath)
	if err != nil {
		return err
	}

	ui.PrintHeader("Prisma Cascade", "Fix Referential Actions")

	report, err := psl.Check(file, psl.CheckOptions{})
	if err != nil {
		return err
	}
	if report.Schema == nil {
		printReport(cmd.OutOrStdout(), report)
		return errCheckFailed
	}

	conflicts := fix.Conflicts(report.Issues)
	if len(conflicts) == 0 {
		ui.PrintSuccess("Nothing to fix in %s", schemaPath)
		return nil
	}
	ui.PrintInfo("Found %d conflict(s)", len(conflicts))

	chosen, err := chooseEdges(conflicts)
	if err != nil {
		return err
	}
	if len(chosen) == 0 {
		ui.PrintWarning("No relation selected, schema left unchanged")
		return nil
	}

	fixed, err := fix.BreakRelations(file.Data, report.Schema, chosen)
	if err != nil {
		return err
	}

	if fixDryRun {
		ui.PrintDiff(schemaPath, file.Data, fixed)
		return nil
	}

	if !fixYes {
		write := true
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Write %d change(s) to %s?", len(chosen), schemaPath),
			Default: true,
		}, &write); err != nil {
			return err
		}
		if !write {
			ui.PrintWarning("Schema left unchanged")
			return nil
		}
	}

	if err := writeSchema(schemaPath, fixed); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	ui.PrintSuccess("Updated %s", schemaPath)

	after, err := psl.Check(psl.NewSourceFile(schemaPath, fixed), psl.CheckOptions{})
	if err != nil {
		return err
	}
	if n := len(fix.Conflicts(after.Issues)); n > 0 {
		ui.PrintWarning("%d conflict(s) remain; run fix again", n)
	}
	return nil
}

// chooseEdges selects one edge per conflict. Conflicts that already contain a
// chosen edge are resolved by it, and conflicts with a single edge need no
// question.
func chooseEdges(conflicts []fix.Conflict) ([]validation.EdgeRef, error) {
	var chosen []validation.EdgeRef
	for i, c := range conflicts {
		if slices.ContainsFunc(c.Edges, func(e validation.EdgeRef) bool { return slices.Contains(chosen, e) }) {
			continue
		}
		if fixYes || len(c.Edges) == 1 {
			chosen = append(chosen, c.Edges[0])
			continue
		}

		options := make([]string, 0, len(c.Edges)+1)
		for _, e := range c.Edges {
			options = append(options, e.String())
		}
		options = append(options, skipOption)

		fmt.Fprintln(ui.Out)
		ui.PrintInfo("%s", c.Message)
		var answer string
		if err := survey.AskOne(&survey.Select{
			Message: fmt.Sprintf("[%d/%d] %s (%s): which relation should stop cascading?", i+1, len(conflicts), c.Kind, c.ActionKind),
			Options: options,
		}, &answer); err != nil {
			return nil, err
		}
		if answer == skipOption {
			continue
		}
		chosen = append(chosen, c.Edges[slices.Index(options, answer)])
	}
	return chosen, nil
}
