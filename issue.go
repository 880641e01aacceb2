package cssprite

import "github.com/yacobolo/cssprite/internal/report"

// Issue represents a single linting violation in golangci-lint format
type Issue = report.Issue

// IssuePos specifies the exact location of an issue
type IssuePos = report.IssuePos

// IssueSeverity constants
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
	SeverityInfo    = report.SeverityInfo
)

// Issue texts
const (
	IssueUnknownClass = report.IssueUnknownClass
	IssueUnusedClass  = report.IssueUnusedClass
)
