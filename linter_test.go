package cssprite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStylesheet = `[class^="img-"],[class*=" img-"]{background-image:url("s.png");}
.img-ok{background-position:0px 0;width:10px;height:10px;}
.img-ok:hover,.img-ok.hover,.wrap-img:hover .img-ok,.wrap-img.hover .img-ok{background-position:-10px 0;}
.img-save{background-position:-20px 0;width:16px;height:8px;}
`

const testPage = `<div class="wrap-img">
  <i class="img-ok"></i>
  <i class="img-sav big"></i>
</div>
`

func writeLintFixture(t *testing.T, css, page string) (cssPath, pagePath string) {
	t.Helper()
	dir := t.TempDir()
	cssPath = filepath.Join(dir, "sprite.css")
	pagePath = filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(cssPath, []byte(css), 0o644))
	require.NoError(t, os.WriteFile(pagePath, []byte(page), 0o644))
	return cssPath, pagePath
}

func TestLint(t *testing.T) {
	cssPath, pagePath := writeLintFixture(t, testStylesheet, testPage)

	result, err := Lint(LintConfig{
		CSSPath:   cssPath,
		ScanPaths: []string{filepath.Join(filepath.Dir(pagePath), "*.html")},
	})
	require.NoError(t, err)

	assert.Equal(t, "img-", result.Prefix)
	assert.Equal(t, []string{"img-ok", "img-save"}, result.Classes)
	assert.Equal(t, []string{"img-ok"}, result.Referenced)
	assert.Equal(t, []string{"img-save"}, result.Unused)
	assert.Equal(t, []string{"img-sav"}, result.Unknown)
	assert.Equal(t, 2, result.References)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.True(t, result.HasErrors())
	assert.Empty(t, result.Warnings)

	require.Len(t, result.Issues, 2)

	unknown := result.Issues[0]
	assert.Equal(t, SeverityError, unknown.Severity)
	assert.Equal(t, `unknown sprite class "img-sav" not found in stylesheet`, unknown.Text)
	assert.Equal(t, IssuePos{Filename: pagePath, Line: 3, Column: 13}, unknown.Pos)
	assert.Equal(t, []string{`  <i class="img-sav big"></i>`}, unknown.SourceLines)
	assert.Equal(t, "spritelint", unknown.FromLinter)

	unused := result.Issues[1]
	assert.Equal(t, SeverityWarning, unused.Severity)
	assert.Equal(t, `sprite class "img-save" is never referenced`, unused.Text)
	assert.Equal(t, IssuePos{Filename: cssPath, Line: 4, Column: 1}, unused.Pos)
}

func TestLint_PrefixOverride(t *testing.T) {
	css := `.icon-a{width:1px;}` + "\n" + `.icon-b{width:1px;}`
	cssPath, pagePath := writeLintFixture(t, css, `<i class="icon-a icon-c"></i>`)

	_, err := Lint(LintConfig{CSSPath: cssPath, ScanPaths: []string{pagePath}})
	require.Error(t, err, "no namespace rule and no prefix")

	result, err := Lint(LintConfig{CSSPath: cssPath, ScanPaths: []string{pagePath}, Prefix: "icon-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"icon-a", "icon-b"}, result.Classes)
	assert.Equal(t, []string{"icon-c"}, result.Unknown)
	assert.Equal(t, IssuePos{Filename: cssPath, Line: 2, Column: 1}, result.Issues[1].Pos)
}

func TestLint_GeneratedStylesheet(t *testing.T) {
	config := testConfig(t)
	gen, err := Generate(config)
	require.NoError(t, err)

	page := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(page, []byte(gen.Tags[0]+"\n"+gen.Tags[1]+"\n"), 0o644))

	result, err := Lint(LintConfig{CSSPath: config.CSSPath, ScanPaths: []string{page}})
	require.NoError(t, err)
	assert.Equal(t, gen.Classes, result.Classes)
	assert.Equal(t, gen.Classes, result.Referenced)
	assert.Empty(t, result.Issues)
}

func TestLint_EscapedClassNames(t *testing.T) {
	css := `[class^="img-"],[class*=" img-"]{width:64px;}` + "\n" +
		`.img-icon\.small{background-position:0px 0;}` + "\n" +
		`.img-a\+b{background-position:-2px 0;}` + "\n"
	cssPath, pagePath := writeLintFixture(t, css, `<i class="img-icon.small img-icon"></i>`)

	result, err := Lint(LintConfig{CSSPath: cssPath, ScanPaths: []string{pagePath}})
	require.NoError(t, err)

	assert.Equal(t, []string{"img-icon.small", "img-a+b"}, result.Classes)
	assert.Equal(t, []string{"img-icon.small"}, result.Referenced)
	assert.Equal(t, []string{"img-icon"}, result.Unknown)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, IssuePos{Filename: cssPath, Line: 3, Column: 1}, result.Issues[1].Pos)
}

func TestLint_NoMatchingFiles(t *testing.T) {
	cssPath, _ := writeLintFixture(t, testStylesheet, "")

	result, err := Lint(LintConfig{CSSPath: cssPath, ScanPaths: []string{filepath.Join(t.TempDir(), "*.html")}})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no files matched")
	assert.Equal(t, 2, result.WarningCount)
}

func TestLint_MissingStylesheet(t *testing.T) {
	_, err := Lint(LintConfig{CSSPath: filepath.Join(t.TempDir(), "missing.css")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse stylesheet")
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{Text: "a"}, {Text: "a"}, {Text: "a"}, {Text: "b"}, {Text: "c"},
	}

	tests := []struct {
		name          string
		config        LintConfig
		wantTexts     []string
		wantTruncated int
	}{
		{
			name:          "per linter limit",
			config:        LintConfig{MaxIssuesPerLinter: 2},
			wantTexts:     []string{"a", "a"},
			wantTruncated: 3,
		},
		{
			name:          "same issue limit",
			config:        LintConfig{MaxSameIssues: 1},
			wantTexts:     []string{"a", "b", "c"},
			wantTruncated: 2,
		},
		{
			name:          "both",
			config:        LintConfig{MaxIssuesPerLinter: 4, MaxSameIssues: 2},
			wantTexts:     []string{"a", "a", "b"},
			wantTruncated: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := limitIssues(append([]Issue(nil), issues...), tt.config)
			var texts []string
			for _, issue := range got {
				texts = append(texts, issue.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}
