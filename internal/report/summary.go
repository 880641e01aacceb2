package report

import (
	"fmt"
	"io"
	"time"
)

// GenerateSummary is what the summary reporter shows about a sprite run
type GenerateSummary struct {
	ImagePath string
	CSSPath   string
	Images    int
	Width     int
	Height    int
	Rules     int
	Duration  time.Duration
	UpToDate  bool
	Errors    []string
	Warnings  []string
}

// LintStats is the statistics block of a lint run
type LintStats struct {
	Classes      int // Base classes defined in the stylesheet
	Referenced   int // Defined classes referenced at least once
	Unused       int
	Unknown      int // Distinct undefined classes under the namespace
	References   int // Sprite class tokens found in scanned files
	FilesScanned int
}

// VerboseReporter handles summaries and statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintGenerate outputs the result of a sprite run
func (r *VerboseReporter) PrintGenerate(s GenerateSummary) {
	if s.UpToDate {
		fmt.Fprintf(r.w, "%s %s\n",
			Paint(RoleSuccess, "✓ Sprite is up to date", r.useColors),
			Paint(RoleMuted, s.ImagePath, r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s %s\n",
		Paint(RoleSuccess, fmt.Sprintf("✓ Packed %s into %dx%d sprite", pluralizeCount(s.Images, "image", "images"), s.Width, s.Height), r.useColors),
		Paint(RoleMuted, fmt.Sprintf("(%s)", s.Duration.Round(time.Millisecond)), r.useColors))
	fmt.Fprintf(r.w, "  image: %s\n", s.ImagePath)
	fmt.Fprintf(r.w, "  css:   %s (%s)\n", s.CSSPath, pluralizeCount(s.Rules, "rule", "rules"))

	r.printList(RoleError, "Errors", s.Errors)
	r.printList(RoleWarning, "Warnings", s.Warnings)
}

// PrintLintStatistics outputs the lint statistics block
func (r *VerboseReporter) PrintLintStatistics(s LintStats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, Paint(RoleLocation, "Sprite Class Statistics", r.useColors))
	fmt.Fprintln(r.w, "-----------------------")

	usage := 0.0
	if s.Classes > 0 {
		usage = float64(s.Referenced) / float64(s.Classes) * 100
	}

	fmt.Fprintf(r.w, "Sprite Classes:    %d\n", s.Classes)
	fmt.Fprintf(r.w, "Referenced:        %d (%.1f%%)\n", s.Referenced, usage)
	fmt.Fprintf(r.w, "Never Referenced:  %d\n", s.Unused)
	fmt.Fprintf(r.w, "Unknown Classes:   %d\n", s.Unknown)
	fmt.Fprintf(r.w, "References Found:  %d\n", s.References)
	fmt.Fprintf(r.w, "Files Scanned:     %d\n", s.FilesScanned)
}

// PrintWarnings shows free-form warnings under a header
func (r *VerboseReporter) PrintWarnings(warnings []string) {
	r.printList(RoleWarning, "Warnings", warnings)
}

func (r *VerboseReporter) printList(role Role, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, Paint(role, title, r.useColors))
	for _, item := range items {
		fmt.Fprintf(r.w, "• %s\n", item)
	}
}
