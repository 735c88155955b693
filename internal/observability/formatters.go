// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/textpipe/internal/pipeline"
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

// PrintOutcome outputs a human-readable summary of one processed input.
func (p *Printer) PrintOutcome(out *pipeline.Outcome) {
	if out == nil {
		return
	}

	var sb strings.Builder

	if out.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:     %s\n", out.URL))
		sb.WriteString(fmt.Sprintf("Domain:  %s\n", out.Domain))
	}
	sb.WriteString(fmt.Sprintf("Chars:   %d\n", out.Stats.Characters))
	sb.WriteString(fmt.Sprintf("Words:   %d\n", out.Stats.Words))

	if out.Summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(wrapText(out.Summary, boxWidth-6))
		sb.WriteString("\n")
	}

	if out.Analysis != nil {
		sb.WriteString("\n")
		sb.WriteString(formatList("Skills", out.Analysis.Skills))
		sb.WriteString(formatList("Languages", out.Analysis.Languages))
		sb.WriteString(formatList("Tech", out.Analysis.TechStack))
		sb.WriteString(fmt.Sprintf("Fit score: %d\n", out.Analysis.JobFitScore))
	}

	if len(out.Keywords) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatList("Keywords", out.Keywords))
	}

	title := "PROCESSED TEXT"
	if out.URL != "" {
		title = "ANALYZED PAGE"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintError outputs a failure box for one input.
func (p *Printer) PrintError(input string, err error) {
	p.printBox("FAILED", fmt.Sprintf("Input: %s\nError: %s", input, err))
}

// formatList renders up to maxItemsToShow items as a bulleted block.
func formatList(label string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(label + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	return sb.String()
}

// wrapText breaks text into lines of at most width characters at word
// boundaries.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
