package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	// Out and Err receive everything this package prints.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr

	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	InfoColor      = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// SetOutput redirects the package output.
func SetOutput(out, err io.Writer) {
	Out, Err = out, err
}

func terminalWidth() int {
	if w := pterm.GetTerminalWidth(); w > 0 {
		return w
	}
	return 80
}

// PrintHeader prints a boxed title
func PrintHeader(title string, subtitle string) {
	width := terminalWidth()

	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render(title),
				SecondaryStyle.Render(subtitle),
			),
		)

	fmt.Fprintln(Out, header)
	fmt.Fprintln(Out)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(Out, SuccessStyle.Render("✓ " + message))
}

// PrintError prints an error message
func PrintError(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(Err, ErrorStyle.Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(Out, WarningStyle.Render("⚠ " + message))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(Out, InfoStyle.Render("ℹ " + message))
}

// PrintTable prints a table using pterm
func PrintTable(headers []string, rows [][]string) error {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).WithWriter(Out).Render()
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintf(Out, "  • %s\n", item)
	}
}

// PrintMarkdown renders markdown content
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(content)
	if err != nil {
		return err
	}

	fmt.Fprint(Out, out)
	return nil
}

// PrintSpinner starts a spinner with the given message
func PrintSpinner(message string) (*pterm.SpinnerPrinter, error) {
	return pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
}

// PrintSection prints a section header
func PrintSection(title string) {
	width := terminalWidth()

	section := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(SecondaryColor).
		Padding(0, 0, 1, 0).
		Render(title)

	fmt.Fprintln(Out, section)
}

// PrintDiff prints the lines that differ between old and new, prefixed with
// their line numbers. Both texts are expected to have the same line count.
func PrintDiff(path string, old string, new string) {
	oldLines := strings.Split(old, "\n")
	newLines := strings.Split(new, "\n")

	fmt.Fprintln(Out, SecondaryStyle.Render("--- " + path))
	fmt.Fprintln(Out, SecondaryStyle.Render("+++ " + path))
	for i := 0; i < len(oldLines) || i < len(newLines); i++ {
		var o, n string
		if i < len(oldLines) {
			o = oldLines[i]
		}
		if i < len(newLines) {
			n = newLines[i]
		}
		if o == n {
			continue
		}
		fmt.Fprintln(Out, SecondaryStyle.Render(fmt.Sprintf("@@ line %d @@", i+1)))
		if i < len(oldLines) {
			fmt.Fprintln(Out, ErrorStyle.Render("- " + o))
		}
		if i < len(newLines) {
			fmt.Fprintln(Out, SuccessStyle.Render("+ " + n))
		}
	}
}
