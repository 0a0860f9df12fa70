package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// DiagnosticColorer defines the interface for coloring diagnostic output.
type DiagnosticColorer interface {
	Title() string
	PrimaryColor(text string) string
}

// ErrorColorer provides coloring for error diagnostics.
type ErrorColorer struct{}

// Title returns the title for errors.
func (ErrorColorer) Title() string {
	return "error"
}

// PrimaryColor returns the colored text for errors.
func (ErrorColorer) PrimaryColor(text string) string {
	return color.New(color.FgRed, color.Bold).Sprint(text)
}

// WarningColorer provides coloring for warning diagnostics.
type WarningColorer struct{}

// Title returns the title for warnings.
func (WarningColorer) Title() string {
	return "warning"
}

// PrimaryColor returns the colored text for warnings.
func (WarningColorer) PrimaryColor(text string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(text)
}

// PrettyPrint pretty prints an error or warning, including the offending portion
// of the source code, for human-friendly reading.
//
//	error: <description>
//	  --> schema.prisma:12
//	   |
//	11 | previous line
//	12 | offending line
//	   | ^^^^^^^^^
//	   |
func PrettyPrint(
	w io.Writer,
	fileName string,
	text string,
	span Span,
	description string,
	colorer DiagnosticColorer,
) error {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	start := clamp(span.Start, len(text))
	end := clamp(span.End, len(text))
	if end < start {
		end = start
	}

	startLine := strings.Count(text[:start], "\n")
	endLine := strings.Count(text[:end], "\n")
	fileLines := strings.Split(text, "\n")

	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	line := fileLines[startLine]
	startInLine := start - lineStart
	endInLine := min(startInLine+(end-start), len(line))

	prefix := line[:startInLine]
	offending := line[startInLine:endInLine]
	suffix := line[endInLine:]

	titleColor := color.New(color.Bold)
	arrowColor := color.New(color.FgCyan, color.Bold)
	filePathColor := color.New(color.Underline)
	lineNumColor := color.New(color.FgCyan, color.Bold)

	if _, err := fmt.Fprintf(w, "%s: %s\n", colorer.PrimaryColor(colorer.Title()), titleColor.Sprint(description)); err != nil {
		return err
	}
	arrowColor.Fprint(w, "  --> ")
	filePathColor.Fprintf(w, "%s:%d\n", fileName, startLine+1)
	lineNumColor.Fprint(w, "   | \n")

	if startLine > 0 {
		lineNumColor.Fprintf(w, "%2d | ", startLine)
		fmt.Fprintf(w, "%s\n", fileLines[startLine-1])
	}

	lineNumColor.Fprintf(w, "%2d | ", startLine+1)
	fmt.Fprintf(w, "%s%s%s\n", prefix, colorer.PrimaryColor(offending), suffix)

	lineNumColor.Fprint(w, "   | ")
	fmt.Fprint(w, strings.Repeat(" ", startInLine))
	if len(offending) == 0 {
		fmt.Fprintf(w, "%s\n", colorer.PrimaryColor("^ Unexpected token."))
	} else {
		fmt.Fprintf(w, "%s\n", colorer.PrimaryColor(strings.Repeat("^", len(offending))))
	}

	for n := startLine + 1; n <= endLine && n < len(fileLines); n++ {
		lineNumColor.Fprintf(w, "%2d | ", n+1)
		fmt.Fprintf(w, "%s\n", fileLines[n])
	}

	_, err := lineNumColor.Fprint(w, "   | \n")
	return err
}
