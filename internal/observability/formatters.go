// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintImportSummary outputs a human-readable summary of one import run.
func (p *Printer) PrintImportSummary(source string, result *importer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	sb.WriteString(fmt.Sprintf("Total:    %d records\n", result.TotalRecords))
	sb.WriteString(fmt.Sprintf("Valid:    %d records\n", len(result.ValidResumes)))
	sb.WriteString(fmt.Sprintf("Errors:   %d\n", len(result.ValidationErrors)))

	if len(result.ValidResumes) > 0 {
		sb.WriteString("\nSample records:\n")
		for i, resume := range result.ValidResumes {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.ValidResumes)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  %s\n", describeResume(resume)))
		}
	}

	p.printBox("Import Summary", strings.TrimRight(sb.String(), "\n"))
}

// PrintValidationErrors outputs the recorded row errors for verbose mode.
func (p *Printer) PrintValidationErrors(errors []types.ValidationError) {
	if len(errors) == 0 {
		return
	}

	var sb strings.Builder
	for i, verr := range errors {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(errors)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("Row %d: %s - %s\n", verr.RowIndex, verr.Field, verr.Message))
	}

	p.printBox("Validation Errors", strings.TrimRight(sb.String(), "\n"))
}

func describeResume(resume *types.Resume) string {
	name := "(no name)"
	if resume.FullName != nil {
		name = *resume.FullName
	}
	email := "(no email)"
	if resume.Email != nil {
		email = *resume.Email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
