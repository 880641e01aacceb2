package cssprite

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ClassReference is one class token found in a class attribute
type ClassReference struct {
	ClassName      string       // Single token: "img-ok"
	FullClassValue string       // Whole attribute: "btn img-ok"
	Location       FileLocation // Where the token starts
}

// FileLocation tracks where a class reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column of the token
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped by .gitignore
}

// scanPattern is a regex whose first group captures a class attribute value
type scanPattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Ordered from most specific to least specific
	patterns = []scanPattern{
		{name: "class attribute with double quotes", regex: regexp.MustCompile(`\bclass="([^"]*)"`)},
		{name: "class attribute with single quotes", regex: regexp.MustCompile(`\bclass='([^']*)'`)},
		{name: "jsx className", regex: regexp.MustCompile(`\bclassName="([^"]*)"`)},
		{name: "templ class expression", regex: regexp.MustCompile(`\bclass=\{\s*"([^"]+)"`)},
	}

	// Comment patterns to skip
	commentPattern = regexp.MustCompile(`^\s*(//|<!--)`)
)

// scanner expands globs and extracts class references
type scanner struct {
	ignore *ignore.GitIgnore
}

// newScanner loads .gitignore from the working directory if there is one
func newScanner() *scanner {
	s := &scanner{}
	if gi, err := ignore.CompileIgnoreFile(".gitignore"); err == nil {
		s.ignore = gi
	}
	return s
}

// shouldSkipFile reports whether a relative path is gitignored.
// Absolute paths (like /tmp/...) are not affected by the project .gitignore.
func (s *scanner) shouldSkipFile(path string) bool {
	if s.ignore == nil || filepath.IsAbs(path) {
		return false
	}
	return s.ignore.MatchesPath(filepath.ToSlash(path))
}

// ScanFiles scans files matching the given patterns for class references
func ScanFiles(scanPatterns []string) ([]ClassReference, ScanStats, error) {
	s := newScanner()

	files, stats, err := s.expandGlobPatterns(scanPatterns)
	if err != nil {
		return nil, stats, err
	}

	var allRefs []ClassReference
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			continue
		}
		allRefs = append(allRefs, refs...)
	}

	return allRefs, stats, nil
}

// expandGlobPatterns expands globs to regular files, deduplicated, in pattern order
func (s *scanner) expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file for class references
func scanFile(filePath string) ([]ClassReference, error) {
	// #nosec G304 - path comes from configured globs
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractClassesFromLine(scanner.Text(), lineNum, filePath)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// extractClassesFromLine returns one reference per class token on the line
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	if commentPattern.MatchString(line) {
		return nil
	}

	var refs []ClassReference
	claimed := make(map[int]bool) // value offsets already taken by an earlier pattern

	for _, pattern := range patterns {
		for _, match := range pattern.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 || claimed[match[2]] {
				continue
			}
			claimed[match[2]] = true

			value := line[match[2]:match[3]]
			for _, tok := range classTokens(value) {
				refs = append(refs, ClassReference{
					ClassName:      tok.name,
					FullClassValue: value,
					Location: FileLocation{
						File:   file,
						Line:   lineNum,
						Column: match[2] + tok.offset + 1,
						Text:   line,
					},
				})
			}
		}
	}

	return refs
}

type classToken struct {
	name   string
	offset int // byte offset inside the attribute value
}

// classTokens splits a class attribute value on whitespace, keeping offsets
func classTokens(value string) []classToken {
	var tokens []classToken
	start := -1
	for i, r := range value {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
		switch {
		case space && start >= 0:
			tokens = append(tokens, classToken{name: value[start:i], offset: start})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, classToken{name: value[start:], offset: start})
	}
	return tokens
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}

	return rel
}
