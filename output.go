package cssprite

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/cssprite/internal/report"
)

// OutputFormat selects how lint results are printed
type OutputFormat string

// Lint output formats
const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint style issues (default)
	OutputSummary OutputFormat = "summary" // Statistics only
	OutputFull    OutputFormat = "full"    // Issues and statistics
	OutputJSON    OutputFormat = "json"
)

// GenerateFormat selects how a generate run is reported
type GenerateFormat string

// Generate output formats
const (
	GenerateText GenerateFormat = "text" // Human summary (default)
	GenerateJSON GenerateFormat = "json" // Manifest of every placed image
	GenerateTags GenerateFormat = "tags" // One HTML tag per line
)

// DetermineOutputFormat selects the lint output format from the flag value.
// Unknown values fall back to issues.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch OutputFormat(strings.ToLower(formatFlag)) {
	case OutputSummary:
		return OutputSummary
	case OutputFull:
		return OutputFull
	case OutputJSON:
		return OutputJSON
	default:
		return OutputIssues
	}
}

// ParseGenerateFormat validates a generate output format
func ParseGenerateFormat(s string) (GenerateFormat, error) {
	switch GenerateFormat(strings.ToLower(s)) {
	case "", GenerateText:
		return GenerateText, nil
	case GenerateJSON:
		return GenerateJSON, nil
	case GenerateTags:
		return GenerateTags, nil
	default:
		return "", configError("unknown output format %q (want text, json or tags)", s)
	}
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) error {
	opts := report.Options{
		UseColors:        config.UseColors,
		PrintIssuedLines: config.PrintIssuedLines,
		PrintLinterName:  config.PrintLinterName,
	}

	switch format {
	case OutputJSON:
		return WriteLintJSON(w, result)

	case OutputSummary:
		verbose := report.NewVerboseReporter(w, report.ShouldUseColors(config.UseColors))
		verbose.PrintLintStatistics(result.Stats())
		verbose.PrintWarnings(result.Warnings)

	case OutputFull:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Issues, result.TruncatedCount)

		verbose := report.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintLintStatistics(result.Stats())
		verbose.PrintWarnings(result.Warnings)

	default:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Issues, result.TruncatedCount)
	}
	return nil
}

// WriteGenerateOutput reports a generate run
func WriteGenerateOutput(w io.Writer, result *GenerateResult, format GenerateFormat, useColors bool) error {
	switch format {
	case GenerateJSON:
		return WriteManifest(w, result)

	case GenerateTags:
		for _, tag := range result.Tags {
			if _, err := fmt.Fprintln(w, tag); err != nil {
				return err
			}
		}
		return nil

	default:
		summary := report.GenerateSummary{
			ImagePath: result.ImagePath,
			CSSPath:   result.CSSPath,
			Images:    result.Images,
			Width:     result.Width,
			Height:    result.Height,
			Rules:     result.Rules,
			Duration:  result.Duration,
			UpToDate:  result.UpToDate,
			Warnings:  result.Warnings,
		}
		for _, e := range result.Errors {
			summary.Errors = append(summary.Errors, e.Error())
		}
		for _, path := range result.Skipped {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("skipped %s (over the skip size)", path))
		}
		report.NewVerboseReporter(w, useColors).PrintGenerate(summary)
		return nil
	}
}
