package cssprite

import (
	"encoding/json"
	"io"
	"time"
)

// JSONLintOutput represents the structured JSON export schema of a lint run
type JSONLintOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Prefix    string      `json:"prefix"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains sprite class usage statistics
type JSONStats struct {
	Classes         int      `json:"classes"`
	Referenced      int      `json:"referenced"`
	UsagePercentage float64  `json:"usage_percentage"`
	References      int      `json:"references"`
	Unused          []string `json:"unused"`
	Unknown         []string `json:"unknown"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// JSONManifest describes a generated sprite
type JSONManifest struct {
	Version  string   `json:"version"`
	Image    string   `json:"image"`
	CSS      string   `json:"css"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	UpToDate bool     `json:"up_to_date"`
	Status   *Error   `json:"status,omitempty"`
	Entries  []Entry  `json:"entries"`
	Tags     []string `json:"tags"`
	Errors   []*Error `json:"errors"`
	Warnings []string `json:"warnings"`
	Skipped  []string `json:"skipped"`
}

// WriteLintJSON writes the lint result as JSON
func WriteLintJSON(w io.Writer, result *LintResult) error {
	return writeIndented(w, buildLintJSON(result))
}

// WriteManifest writes the generate result as a JSON manifest
func WriteManifest(w io.Writer, result *GenerateResult) error {
	return writeIndented(w, buildManifest(result))
}

func writeIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// buildLintJSON converts LintResult to JSONLintOutput
func buildLintJSON(result *LintResult) JSONLintOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	usage := 0.0
	if len(result.Classes) > 0 {
		usage = float64(len(result.Referenced)) / float64(len(result.Classes)) * 100
	}

	return JSONLintOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Prefix:    result.Prefix,
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			Classes:         len(result.Classes),
			Referenced:      len(result.Referenced),
			UsagePercentage: usage,
			References:      result.References,
			Unused:          nonNil(result.Unused),
			Unknown:         nonNil(result.Unknown),
		},
		Issues: jsonIssues,
	}
}

// buildManifest converts GenerateResult to JSONManifest
func buildManifest(result *GenerateResult) JSONManifest {
	entries := result.Entries
	if entries == nil {
		entries = []Entry{}
	}
	errs := result.Errors
	if errs == nil {
		errs = []*Error{}
	}

	return JSONManifest{
		Version:  "1.0",
		Image:    result.ImagePath,
		CSS:      result.CSSPath,
		Width:    result.Width,
		Height:   result.Height,
		UpToDate: result.UpToDate,
		Status:   result.Status,
		Entries:  entries,
		Tags:     nonNil(result.Tags),
		Errors:   errs,
		Warnings: nonNil(result.Warnings),
		Skipped:  nonNil(result.Skipped),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
