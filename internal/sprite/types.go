// Package sprite packs a directory of icon images into a single sprite sheet
// and synthesizes the stylesheet that exposes every icon as a CSS class.
package sprite

// Format is the closed set of source image formats a sprite can be built from.
type Format string

// Supported image formats
const (
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatPNG  Format = "png"
)

// NamespaceStyle selects how the namespace prefix is joined to an image key
type NamespaceStyle string

const (
	// StyleHyphen joins with a hyphen: img-buttons-ok, wildcard [class^="img-"]
	StyleHyphen NamespaceStyle = "hyphen"
	// StyleConcat appends the key directly: imgbuttons-ok, wildcard [class^="img"]
	StyleConcat NamespaceStyle = "concat"
)

// Order controls how directory entries are enumerated during collection
type Order string

const (
	// OrderName sorts entries lexically by file name
	OrderName Order = "name"
	// OrderNatural sorts entries so that "icon2" comes before "icon10"
	OrderNatural Order = "natural"
)

// Default configuration values
var (
	DefaultExtensions = []string{"jpg", "jpeg", "gif", "png"}
	DefaultStates     = []string{"hover", "active", "target"}
)

const (
	DefaultNamespace   = "img"
	DefaultSize        = 64
	DefaultTag         = "i"
	DefaultIgnoreFile  = ".spriteignore"
	DefaultJPEGQuality = 90
)

// ImageRecord is one source image placed in the sprite
type ImageRecord struct {
	Path   string // Filesystem path as visited: "images/source/buttons/ok.png"
	Rel    string // Slash-separated path relative to the root: "buttons/ok.png"
	Width  int
	Height int
	X      int // Horizontal offset in the sprite
	Format Format
}

// Key returns the relative path without its extension ("buttons/ok")
func (r ImageRecord) Key() string {
	return trimExt(r.Rel)
}

// Layout is the size of the sprite canvas
type Layout struct {
	Width  int // Sum of all image widths
	Height int // Tallest image
}

// Collection is the ordered output of the collector
type Collection struct {
	Root    string
	Images  []ImageRecord
	Layout  Layout
	Errors  []*Error // Per-file problems, scanning continued past them
	Skipped []string // Images skipped because they exceed the skip size
}

// Entry describes where one placed image ended up.
// State images carry the class of their base image; orphans have no class.
type Entry struct {
	Source string `json:"source"`
	Class  string `json:"class,omitempty"`
	State  string `json:"state,omitempty"`
	X      int    `json:"x"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Declaration is a single property: value pair inside a rule
type Declaration struct {
	Property string
	Value    string
}

// Rule is one stylesheet rule with ordered selectors and declarations
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Set appends a declaration, keeping insertion order
func (r *Rule) Set(property, value string) *Rule {
	r.Declarations = append(r.Declarations, Declaration{Property: property, Value: value})
	return r
}

// Get returns the value of the first declaration for property
func (r Rule) Get(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}
