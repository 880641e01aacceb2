package sprite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_Layout(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 10, 20, red)
	writeImage(t, filepath.Join(root, "b.png"), 30, 5, green)

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, Layout{Width: 40, Height: 20}, col.Layout)
	require.Len(t, col.Images, 2)

	a, b := col.Images[0], col.Images[1]
	assert.Equal(t, "a.png", a.Rel)
	assert.Equal(t, 0, a.X)
	assert.Equal(t, 10, a.Width)
	assert.Equal(t, 20, a.Height)
	assert.Equal(t, FormatPNG, a.Format)

	assert.Equal(t, "b.png", b.Rel)
	assert.Equal(t, 10, b.X)
	assert.Equal(t, 30, b.Width)
	assert.Equal(t, 5, b.Height)
}

func TestCollect_SkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, ".hover.png"), 2, 2, red)
	writeFile(t, filepath.Join(root, "._a.png"), "resource fork")
	writeImage(t, filepath.Join(root, ".cache", "b.png"), 2, 2, green)

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, keys(col))
	assert.Empty(t, col.Errors)
	assert.Equal(t, 2, col.Layout.Width)
}

func TestCollect_OffsetsPartitionWidth(t *testing.T) {
	root := t.TempDir()
	widths := map[string]int{"a.png": 3, "b.gif": 7, "c.jpg": 11, "d/e.png": 2, "d/f/g.png": 5}
	for name, w := range widths {
		writeImage(t, filepath.Join(root, name), w, 4, blue)
	}

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)
	require.Len(t, col.Images, len(widths))

	x := 0
	for _, rec := range col.Images {
		assert.Equal(t, x, rec.X, rec.Rel)
		x += rec.Width
	}
	assert.Equal(t, x, col.Layout.Width)
	assert.Equal(t, 4, col.Layout.Height)
}

func TestCollect_Order(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		order Order
		want  []string
	}{
		{
			name:  "files before subdirectories",
			files: []string{"z.png", "a/b.png", "a/c/d.png", "a/a.png"},
			want:  []string{"z", "a/a", "a/b", "a/c/d"},
		},
		{
			name:  "lexical by default",
			files: []string{"icon10.png", "icon2.png", "icon1.png"},
			want:  []string{"icon1", "icon10", "icon2"},
		},
		{
			name:  "natural",
			files: []string{"icon10.png", "icon2.png", "icon1.png"},
			order: OrderNatural,
			want:  []string{"icon1", "icon2", "icon10"},
		},
		{
			name:  "sibling directories sorted",
			files: []string{"b/x.png", "a/x.png", "c/x.png"},
			want:  []string{"a/x", "b/x", "c/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeImage(t, filepath.Join(root, f), 2, 2, red)
			}

			col, err := Collect(CollectOptions{Root: root, Order: tt.order})
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(col))
		})
	}
}

func TestCollect_Extensions(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, "b.gif"), 2, 2, red)
	writeImage(t, filepath.Join(root, "c.jpg"), 2, 2, red)
	writeImage(t, filepath.Join(root, "UPPER.PNG"), 2, 2, red)
	writeFile(t, filepath.Join(root, "notes.txt"), "hello")

	col, err := Collect(CollectOptions{Root: root, Extensions: []string{"png", "jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys(col))
	assert.Empty(t, col.Errors)
	assert.Equal(t, FormatJPEG, col.Images[1].Format)
}

func TestCollect_WrongImageFormat(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 4, 4, red)
	writeFile(t, filepath.Join(root, "broken.png"), "this is not an image")
	writeFile(t, filepath.Join(root, "truncated.png"), "\x89PNG\r\n\x1a\n")
	writeImage(t, filepath.Join(root, "z.png"), 6, 4, red)

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "z"}, keys(col))
	assert.Equal(t, 4, col.Images[1].X)

	require.Len(t, col.Errors, 2)
	for _, e := range col.Errors {
		assert.Equal(t, KindWrongImageFormat, e.Kind)
		assert.True(t, errors.Is(e, ErrWrongImageFormat))
	}
	assert.Equal(t, filepath.Join(root, "broken.png"), col.Errors[0].Path)
	assert.Equal(t, filepath.Join(root, "truncated.png"), col.Errors[1].Path)
}

func TestCollect_MislabelledImageKeepsRealFormat(t *testing.T) {
	root := t.TempDir()
	// GIF data behind a png extension
	writeImage(t, filepath.Join(root, "x.gif"), 3, 3, red)
	require.NoError(t, os.Rename(filepath.Join(root, "x.gif"), filepath.Join(root, "x.png")))

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)
	require.Len(t, col.Images, 1)
	assert.Equal(t, FormatGIF, col.Images[0].Format)
}

func TestCollect_SkipSize(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "big.png"), 100, 10, red)
	writeImage(t, filepath.Join(root, "tall.png"), 10, 100, red)
	writeImage(t, filepath.Join(root, "small.png"), 16, 16, red)

	col, err := Collect(CollectOptions{Root: root, SkipSize: 64})
	require.NoError(t, err)

	assert.Equal(t, []string{"small"}, keys(col))
	assert.Equal(t, Layout{Width: 16, Height: 16}, col.Layout)
	assert.Equal(t, []string{filepath.Join(root, "big.png"), filepath.Join(root, "tall.png")}, col.Skipped)
	assert.Empty(t, col.Errors)
}

func TestCollect_SkipSizeEdge(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "exact.png"), 64, 64, red)

	col, err := Collect(CollectOptions{Root: root, SkipSize: 64})
	require.NoError(t, err)
	assert.Equal(t, []string{"exact"}, keys(col))
}

func TestCollect_IgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, "b.gif"), 2, 2, red)
	writeImage(t, filepath.Join(root, "drafts/c.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, "keep/d.png"), 2, 2, red)
	writeFile(t, filepath.Join(root, DefaultIgnoreFile), "*.gif\ndrafts/\n")

	col, err := Collect(CollectOptions{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "keep/d"}, keys(col))
}

func TestCollect_CustomIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, "b.png"), 2, 2, red)
	writeFile(t, filepath.Join(root, ".icons-ignore"), "b.png\n")

	col, err := Collect(CollectOptions{Root: root, IgnoreFile: ".icons-ignore"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys(col))
}

func TestCollect_ExcludesDestination(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), 2, 2, red)
	writeImage(t, filepath.Join(root, "sprite.png"), 50, 2, red)

	col, err := Collect(CollectOptions{
		Root:    root,
		Exclude: []string{filepath.Join(root, "sprite.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys(col))
	assert.Equal(t, 2, col.Layout.Width)
}

func TestCollect_NoSourceImages(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		col, err := Collect(CollectOptions{Root: t.TempDir()})
		require.ErrorIs(t, err, ErrNoSourceImages)
		require.NotNil(t, col)
		assert.Empty(t, col.Images)
	})

	t.Run("only broken files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "x.png"), "nope")

		col, err := Collect(CollectOptions{Root: root})
		require.ErrorIs(t, err, ErrNoSourceImages)
		require.NotNil(t, col)
		assert.Len(t, col.Errors, 1)
	})
}

func TestCollect_MissingRoot(t *testing.T) {
	_, err := Collect(CollectOptions{Root: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindIO, serr.Kind)
	assert.NotErrorIs(t, err, ErrNoSourceImages)
}

func TestCollect_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writeImage(t, path, 2, 2, red)

	_, err := Collect(CollectOptions{Root: path})
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindIO, serr.Kind)
}

func TestExtensionPattern(t *testing.T) {
	assert.Equal(t, "*.png", extensionPattern([]string{"png"}))
	assert.Equal(t, "*.{jpg,png}", extensionPattern([]string{"jpg", ".png"}))
	assert.Equal(t, "*.{jpg,jpeg,gif,png}", extensionPattern(DefaultExtensions))
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "jpg,png", want: []string{"jpg", "png"}},
		{in: " jpg , .png ,", want: []string{"jpg", "png"}},
		{in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExtensions(tt.in))
		})
	}
}
