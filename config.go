package cssprite

import (
	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/yacobolo/cssprite/internal/sprite"
)

// Config holds sprite generation configuration
type Config struct {
	SourcePath     string         // "images/source" (required)
	SourceExt      string         // Comma separated extensions (default: "jpg,jpeg,gif,png")
	SkipSize       int            // Skip images wider or taller than this, 0 = off
	Order          Order          // Directory entry order: name (default) or natural
	IgnoreFile     string         // Gitignore-style file inside SourcePath (default: ".spriteignore")
	ImagePath      string         // "public/img/sprite.png" (required), extension picks the format
	CSSPath        string         // "public/css/sprite.css" (required)
	ImageURL       string         // Sprite URL written into the stylesheet (required unless InlineImage)
	Namespace      string         // Class prefix (default: "img")
	NamespaceStyle NamespaceStyle // hyphen (default): img-ok, concat: imgok
	DefaultSize    int            // Box size of the namespace rule in px (default: 64)
	States         []string       // State suffixes (default: hover, active, target)
	Tag            string         // Element of the generated tags: "i" (default) or "span"
	InlineImage    bool           // Embed the sprite into the stylesheet as a data URL
	CacheBust      bool           // Append ?v=<content hash> to ImageURL
	Slug           bool           // Transliterate class name segments: "Save File" -> "save-file"
	JPEGQuality    int            // 1-100 (default: 90)
	Workers        int            // Parallel decoders (default: 1)
	CheckFresh     bool           // Skip generation when the sprite is newer than every source
	Logger         *log.Logger    // Debug logging, discarded when nil
}

// withDefaults fills in zero values
func (c Config) withDefaults() Config {
	if c.SourceExt == "" {
		c.SourceExt = "jpg,jpeg,gif,png"
	}
	if c.Order == "" {
		c.Order = OrderName
	}
	if c.IgnoreFile == "" {
		c.IgnoreFile = sprite.DefaultIgnoreFile
	}
	if c.Namespace == "" {
		c.Namespace = sprite.DefaultNamespace
	}
	if c.NamespaceStyle == "" {
		c.NamespaceStyle = StyleHyphen
	}
	if c.DefaultSize == 0 {
		c.DefaultSize = sprite.DefaultSize
	}
	if len(c.States) == 0 {
		c.States = sprite.DefaultStates
	}
	if c.Tag == "" {
		c.Tag = sprite.DefaultTag
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = sprite.DefaultJPEGQuality
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	return c
}

// Validate reports every problem with the configuration at once
func (c Config) Validate() error {
	var err error

	if c.SourcePath == "" {
		err = multierr.Append(err, configError("source path is required"))
	}
	if c.ImagePath == "" {
		err = multierr.Append(err, configError("image path is required"))
	}
	if c.CSSPath == "" {
		err = multierr.Append(err, configError("css path is required"))
	}
	if c.ImageURL == "" && !c.InlineImage {
		err = multierr.Append(err, configError("image url is required unless the image is inlined"))
	}
	if len(sprite.ParseExtensions(c.SourceExt)) == 0 && c.SourceExt != "" {
		err = multierr.Append(err, configError("source extensions %q list no extension", c.SourceExt))
	}

	switch c.NamespaceStyle {
	case "", StyleHyphen, StyleConcat:
	default:
		err = multierr.Append(err, configError("unknown namespace style %q (want hyphen or concat)", c.NamespaceStyle))
	}
	switch c.Order {
	case "", OrderName, OrderNatural:
	default:
		err = multierr.Append(err, configError("unknown order %q (want name or natural)", c.Order))
	}

	if c.SkipSize < 0 {
		err = multierr.Append(err, configError("skip size must not be negative"))
	}
	if c.DefaultSize < 0 {
		err = multierr.Append(err, configError("default size must not be negative"))
	}
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		err = multierr.Append(err, configError("jpeg quality %d out of range 1-100", c.JPEGQuality))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, configError("workers must not be negative"))
	}
	if !validTag(c.Tag) {
		err = multierr.Append(err, configError("tag %q is not an element name", c.Tag))
	}

	return err
}

func validTag(tag string) bool {
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func (c Config) collectOptions() sprite.CollectOptions {
	return sprite.CollectOptions{
		Root:       c.SourcePath,
		Extensions: sprite.ParseExtensions(c.SourceExt),
		SkipSize:   c.SkipSize,
		Order:      c.Order,
		IgnoreFile: c.IgnoreFile,
		Exclude:    []string{c.ImagePath},
		Logger:     c.Logger,
	}
}

func (c Config) emitOptions() sprite.EmitOptions {
	return sprite.EmitOptions{
		ImagePath:      c.ImagePath,
		CSSPath:        c.CSSPath,
		ImageURL:       c.ImageURL,
		Namespace:      c.Namespace,
		NamespaceStyle: c.NamespaceStyle,
		DefaultSize:    c.DefaultSize,
		States:         c.States,
		Tag:            c.Tag,
		InlineImage:    c.InlineImage,
		CacheBust:      c.CacheBust,
		Slug:           c.Slug,
		JPEGQuality:    c.JPEGQuality,
		Workers:        c.Workers,
		Logger:         c.Logger,
	}
}
