package cssprite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClassesFromLine_Columns(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		className string
		wantCol   int
	}{
		{
			name:      "single class",
			line:      `<i class="img-ok">`,
			className: "img-ok",
			wantCol:   11,
		},
		{
			name:      "multiple classes - first",
			line:      `<i class="img-ok big">`,
			className: "img-ok",
			wantCol:   11,
		},
		{
			name:      "multiple classes - second",
			line:      `<i class="big img-ok">`,
			className: "img-ok",
			wantCol:   15,
		},
		{
			name:      "with leading spaces",
			line:      `  <span class="x  img-save">`,
			className: "img-save",
			wantCol:   19,
		},
		{
			name:      "single quotes",
			line:      `<i class='icon img-ok'>`,
			className: "img-ok",
			wantCol:   16,
		},
		{
			name:      "prefix of another token is not a match",
			line:      `<i class="img-okay img-ok">`,
			className: "img-ok",
			wantCol:   20,
		},
		{
			name:      "class not found",
			line:      `<i class="img-ok">`,
			className: "nonexistent",
			wantCol:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := 0
			for _, ref := range extractClassesFromLine(tt.line, 1, "f.html") {
				if ref.ClassName == tt.className {
					col = ref.Location.Column
					break
				}
			}
			require.Equal(t, tt.wantCol, col)
		})
	}
}

func TestExtractClassesFromLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "html", line: `<i class="img-a img-b"></i>`, want: []string{"img-a", "img-b"}},
		{name: "two attributes", line: `<i class="img-a"></i><i class='img-b'></i>`, want: []string{"img-a", "img-b"}},
		{name: "jsx", line: `<i className="img-a" />`, want: []string{"img-a"}},
		{name: "templ", line: `<i class={ "img-a" }></i>`, want: []string{"img-a"}},
		{name: "go comment", line: `// <i class="img-a">`, want: nil},
		{name: "html comment", line: `  <!-- <i class="img-a"> -->`, want: nil},
		{name: "empty attribute", line: `<i class="">`, want: nil},
		{name: "data-class is not class", line: `<i data-xclass="img-a">`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ref := range extractClassesFromLine(tt.line, 1, "f.html") {
				got = append(got, ref.ClassName)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "pages", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(page), 0o755))
	require.NoError(t, os.WriteFile(page, []byte("<p>\n  <i class=\"img-ok\"></i>\n</p>\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`class="img-x"`), 0o644))

	refs, stats, err := ScanFiles([]string{
		filepath.Join(dir, "**", "*.html"),
		filepath.Join(dir, "pages", "*.html"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesScanned)
	require.Len(t, refs, 1)
	assert.Equal(t, "img-ok", refs[0].ClassName)
	assert.Equal(t, FileLocation{File: page, Line: 2, Column: 13, Text: `  <i class="img-ok"></i>`}, refs[0].Location)
}

func TestScanFiles_GitIgnore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(".gitignore", []byte("build/\n"), 0o644))
	require.NoError(t, os.MkdirAll("build", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("build", "a.html"), []byte(`<i class="img-a">`), 0o644))
	require.NoError(t, os.WriteFile("b.html", []byte(`<i class="img-b">`), 0o644))

	refs, stats, err := ScanFiles([]string{"**/*.html"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 1, stats.FilesSkipped)
	require.Len(t, refs, 1)
	assert.Equal(t, "img-b", refs[0].ClassName)
}

func TestClassTokens(t *testing.T) {
	assert.Equal(t, []classToken{{name: "a", offset: 1}, {name: "bc", offset: 4}}, classTokens(" a\t bc"))
	assert.Nil(t, classTokens("   "))
}
