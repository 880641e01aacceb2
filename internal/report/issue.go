package report

// LinterName tags every issue produced by the sprite class linter
const LinterName = "spritelint"

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "spritelint"
	Text        string   `json:"Text"`        // "unknown sprite class \"img-sav\" not found in stylesheet"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "templates/toolbar.html"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 1-based, start of the offending class
}

// Severity values
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueUnknownClass = "unknown sprite class %q not found in stylesheet"
	IssueUnusedClass  = "sprite class %q is never referenced"
)

// CountSeverities returns the number of error and warning issues
func CountSeverities(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
