package cssprite

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/cssprite/internal/report"
	"github.com/yacobolo/cssprite/internal/sprite"
)

// LintConfig holds linting configuration
type LintConfig struct {
	CSSPath   string   // Generated stylesheet
	ScanPaths []string // Globs of files to check: "templates/**/*.html"
	Prefix    string   // Class prefix; read from the namespace rule when empty
	Verbose   bool
	Strict    bool // Exit with code 1 on warnings too

	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues
	PrintLinterName    bool // Show (spritelint) suffix
	UseColors          bool // Force color output
}

// LintResult contains linting analysis results
type LintResult struct {
	Prefix       string
	Classes      []string // Base classes defined by the stylesheet, in stylesheet order
	Referenced   []string // Defined classes found in scanned files
	Unused       []string // Defined classes never referenced
	Unknown      []string // Distinct undefined classes carrying the prefix
	References   int      // Prefixed class tokens found
	FilesScanned int

	Issues         []Issue
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	Warnings []string
}

// HasErrors reports whether any error issue survived the limits
func (r *LintResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// Stats returns the statistics block for the verbose reporter
func (r *LintResult) Stats() report.LintStats {
	return report.LintStats{
		Classes:      len(r.Classes),
		Referenced:   len(r.Referenced),
		Unused:       len(r.Unused),
		Unknown:      len(r.Unknown),
		References:   r.References,
		FilesScanned: r.FilesScanned,
	}
}

// stylesheetClasses is what the linter knows about a generated stylesheet
type stylesheetClasses struct {
	prefix  string
	classes []string
	defined map[string]bool
	content string
}

// Lint checks scanned files against the classes a generated stylesheet defines
func Lint(config LintConfig) (*LintResult, error) {
	// Step 1: Parse the stylesheet
	sheet, err := loadStylesheet(config.CSSPath, config.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
	}

	// Step 2: Scan files for class references
	references, stats, err := ScanFiles(config.ScanPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}

	// Step 3: Analyze usage
	result := analyzeUsage(sheet, references, config.CSSPath)
	result.FilesScanned = stats.FilesScanned
	if stats.FilesDiscovered == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("no files matched %s", strings.Join(config.ScanPaths, ", ")))
	}

	// Step 4: Apply issue limiting if configured
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
	result.ErrorCount, result.WarningCount = report.CountSeverities(result.Issues)

	return result, nil
}

// loadStylesheet reads the generated stylesheet and extracts its base classes.
// A base rule is a rule with the single selector ".class".
func loadStylesheet(path, prefix string) (*stylesheetClasses, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rules, err := sprite.ParseStylesheet(string(content))
	if err != nil {
		return nil, err
	}

	sheet := &stylesheetClasses{
		prefix:  prefix,
		defined: make(map[string]bool),
		content: string(content),
	}

	for _, rule := range rules {
		if sheet.prefix == "" {
			for _, sel := range rule.Selectors {
				if p, ok := sprite.ClassPrefix(sel); ok && p != "" {
					sheet.prefix = p
					break
				}
			}
		}

		if len(rule.Selectors) != 1 {
			continue
		}
		classes := sprite.SelectorClasses(rule.Selectors[0])
		if len(classes) == 1 && rule.Selectors[0] == sprite.ClassSelector(classes[0]) && !sheet.defined[classes[0]] {
			sheet.defined[classes[0]] = true
			sheet.classes = append(sheet.classes, classes[0])
		}
	}

	if sheet.prefix == "" {
		return nil, fmt.Errorf("%s: no namespace rule found, set the class prefix explicitly", path)
	}
	return sheet, nil
}

// analyzeUsage matches references against the defined classes
func analyzeUsage(sheet *stylesheetClasses, references []ClassReference, cssPath string) *LintResult {
	result := &LintResult{
		Prefix:  sheet.prefix,
		Classes: sheet.classes,
	}

	used := make(map[string]bool)
	unknown := make(map[string]bool)
	var issues []Issue

	for _, ref := range references {
		if !strings.HasPrefix(ref.ClassName, sheet.prefix) {
			continue
		}
		result.References++

		if sheet.defined[ref.ClassName] {
			used[ref.ClassName] = true
			continue
		}

		if !unknown[ref.ClassName] {
			unknown[ref.ClassName] = true
			result.Unknown = append(result.Unknown, ref.ClassName)
		}
		issues = append(issues, Issue{
			FromLinter:  report.LinterName,
			Text:        fmt.Sprintf(IssueUnknownClass, ref.ClassName),
			Severity:    SeverityError,
			SourceLines: []string{ref.Location.Text},
			Pos: IssuePos{
				Filename: GetRelativePath(ref.Location.File),
				Line:     ref.Location.Line,
				Column:   ref.Location.Column,
			},
		})
	}

	for _, class := range sheet.classes {
		if used[class] {
			result.Referenced = append(result.Referenced, class)
			continue
		}
		result.Unused = append(result.Unused, class)

		line, col := sheet.position(sprite.ClassSelector(class) + "{")
		issues = append(issues, Issue{
			FromLinter: report.LinterName,
			Text:       fmt.Sprintf(IssueUnusedClass, class),
			Severity:   SeverityWarning,
			Pos: IssuePos{
				Filename: GetRelativePath(cssPath),
				Line:     line,
				Column:   col,
			},
		})
	}

	sort.Strings(result.Unknown)
	result.Issues = issues
	return result
}

// position returns the 1-based line and column of needle in the stylesheet,
// 0, 0 when it cannot be found.
func (s *stylesheetClasses) position(needle string) (int, int) {
	idx := strings.Index(s.content, needle)
	if idx < 0 {
		return 0, 0
	}
	before := s.content[:idx]
	line := strings.Count(before, "\n") + 1
	col := idx - strings.LastIndex(before, "\n")
	return line, col
}

// limitIssues applies max-issues-per-linter, then max-same-issues
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues keeps at most maxSame issues with identical text
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
