// Package report renders lint issues and generation summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// Options controls issue rendering
type Options struct {
	UseColors        bool // Force colors on
	PrintIssuedLines bool // Show source lines with a caret under the offending class
	PrintLinterName  bool // Append (spritelint) to every issue
}

// Reporter handles formatting and outputting linting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.UseColors),
		printLines:      opts.PrintIssuedLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// GitHub Actions and friends
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintIssues outputs issues in golangci-lint format, sorted by position
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: message (linter)
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	if issue.Pos.Line == 0 {
		location = issue.Pos.Filename + ":"
	}

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if role, ok := SeverityRole(issue.Severity); ok {
		text = Paint(role, text, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		Paint(RoleLocation, location, r.useColors),
		text,
		Paint(RoleMuted, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", Paint(RoleWarning, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(issues []Issue, truncated int) {
	total := len(issues)
	errors, warnings := CountSeverities(issues)

	fmt.Fprintln(r.w, "")

	counts := []string{}
	if errors > 0 && warnings > 0 {
		counts = append(counts,
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	}

	header := pluralizeCount(total, "issue", "issues")
	switch {
	case len(counts) > 0 && truncated > 0:
		header += fmt.Sprintf(" (%s; %s truncated)", strings.Join(counts, ", "), pluralizeCount(truncated, "issue", "issues"))
	case len(counts) > 0:
		header += fmt.Sprintf(" (%s)", strings.Join(counts, ", "))
	case truncated > 0:
		header += fmt.Sprintf(" (%s truncated)", pluralizeCount(truncated, "issue", "issues"))
	}
	fmt.Fprintf(r.w, "%s:\n", header)

	linterCounts := make(map[string]int)
	for _, issue := range issues {
		linterCounts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(linterCounts))
	for linter := range linterCounts {
		linters = append(linters, linter)
	}
	sort.Strings(linters)
	for _, linter := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", linter, linterCounts[linter])
	}

	if total > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, Paint(RoleMuted, "Hint: Run with --output-format full to see statistics", r.useColors))
	}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
