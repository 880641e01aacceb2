package sprite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/maruel/natural"
	ignore "github.com/sabhiram/go-gitignore"
)

// CollectOptions configures a directory scan
type CollectOptions struct {
	Root       string   // Directory to scan
	Extensions []string // Allowed extensions, matched literally: ["jpg", "png"]
	SkipSize   int      // Skip images wider or taller than this (0 = no limit)
	Order      Order    // Directory entry order (default: name)
	IgnoreFile string   // Gitignore-style file inside Root (default: .spriteignore)
	Exclude    []string // Paths never collected, e.g. the sprite itself
	Logger     *log.Logger
}

// scanContext carries the running layout through the recursive walk.
// It is owned by a single Collect call.
type scanContext struct {
	opts    CollectOptions
	pattern string
	ignore  *ignore.GitIgnore
	exclude map[string]bool
	log     *log.Logger

	x      int
	height int
	images []ImageRecord
	errors []*Error
	skip   []string
}

// Collect walks opts.Root depth-first and lays the images it finds out in a
// single row. In every directory the matching files come first, then the
// subdirectories. Hidden entries (names starting with a dot) are never visited. Undecodable files are recorded as WrongImageFormat errors
// and do not stop the scan. When no image qualifies the returned error is
// ErrNoSourceImages; the collection is still returned for its errors.
func Collect(opts CollectOptions) (*Collection, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = DefaultIgnoreFile
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, NewError(KindIO, opts.Root, err, "source directory not readable")
	}
	if !info.IsDir() {
		return nil, NewError(KindIO, opts.Root, nil, "source path is not a directory")
	}

	ctx := &scanContext{
		opts:    opts,
		pattern: extensionPattern(opts.Extensions),
		ignore:  loadIgnoreFile(filepath.Join(opts.Root, opts.IgnoreFile)),
		exclude: make(map[string]bool),
		log:     loggerOrDiscard(opts.Logger),
	}
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			ctx.exclude[abs] = true
		}
	}

	if err := ctx.walk(opts.Root); err != nil {
		return nil, err
	}

	col := &Collection{
		Root:    opts.Root,
		Images:  ctx.images,
		Layout:  Layout{Width: ctx.x, Height: ctx.height},
		Errors:  ctx.errors,
		Skipped: ctx.skip,
	}

	if len(col.Images) == 0 {
		return col, ErrNoSourceImages
	}

	ctx.log.Debug("collected images", "count", len(col.Images), "width", col.Layout.Width, "height", col.Layout.Height)
	return col, nil
}

// walk processes the files of dir, then descends into its subdirectories
func (c *scanContext) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return NewError(KindIO, dir, err, "reading directory")
	}
	c.sortEntries(entries)

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if strings.HasPrefix(entry.Name(), ".") {
			c.log.Debug("skipping hidden entry", "path", path)
			continue
		}
		if c.ignored(path, entry.IsDir()) {
			c.log.Debug("ignored", "path", path)
			continue
		}

		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		if !c.matches(entry.Name()) {
			continue
		}
		c.visit(path)
	}

	for _, sub := range subdirs {
		if err := c.walk(sub); err != nil {
			return err
		}
	}
	return nil
}

// visit probes a single candidate and appends it to the layout
func (c *scanContext) visit(path string) {
	if abs, err := filepath.Abs(path); err == nil && c.exclude[abs] {
		c.log.Debug("skipping excluded file", "path", path)
		return
	}

	cfg, format, err := probeImage(path)
	if err != nil {
		c.log.Warn("wrong image format", "path", path, "err", err)
		c.errors = append(c.errors, NewError(KindWrongImageFormat, path, err, "cannot read image header"))
		return
	}

	if c.opts.SkipSize > 0 && (cfg.Width > c.opts.SkipSize || cfg.Height > c.opts.SkipSize) {
		c.log.Debug("skipping oversized image", "path", path, "width", cfg.Width, "height", cfg.Height)
		c.skip = append(c.skip, path)
		return
	}

	rel, err := filepath.Rel(c.opts.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	c.images = append(c.images, ImageRecord{
		Path:   path,
		Rel:    filepath.ToSlash(rel),
		Width:  cfg.Width,
		Height: cfg.Height,
		X:      c.x,
		Format: format,
	})
	c.x += cfg.Width
	if cfg.Height > c.height {
		c.height = cfg.Height
	}
}

// matches reports whether name has one of the allowed extensions
func (c *scanContext) matches(name string) bool {
	ok, err := doublestar.Match(c.pattern, name)
	return err == nil && ok
}

func (c *scanContext) ignored(path string, isDir bool) bool {
	if c.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(c.opts.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return c.ignore.MatchesPath(rel)
}

func (c *scanContext) sortEntries(entries []os.DirEntry) {
	if c.opts.Order == OrderNatural {
		sort.SliceStable(entries, func(i, j int) bool {
			return natural.Less(entries[i].Name(), entries[j].Name())
		})
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
}

// extensionPattern builds a brace glob such as "*.{jpg,png}"
func extensionPattern(exts []string) string {
	cleaned := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			cleaned = append(cleaned, ext)
		}
	}
	if len(cleaned) == 1 {
		return "*." + cleaned[0]
	}
	return fmt.Sprintf("*.{%s}", strings.Join(cleaned, ","))
}

// loadIgnoreFile compiles the ignore file if there is one
func loadIgnoreFile(path string) *ignore.GitIgnore {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// ParseExtensions splits a comma separated extension list: "jpg, .png" -> [jpg png]
func ParseExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), ".")
		if part != "" {
			exts = append(exts, part)
		}
	}
	return exts
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
