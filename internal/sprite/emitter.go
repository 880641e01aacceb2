package sprite

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"image"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/sync/errgroup"
)

// EmitOptions configures sprite and stylesheet output
type EmitOptions struct {
	ImagePath      string         // Sprite destination, its extension selects the encoder
	CSSPath        string         // Stylesheet destination
	ImageURL       string         // URL of the sprite as seen from the stylesheet
	Namespace      string         // Class prefix (default: img)
	NamespaceStyle NamespaceStyle // hyphen (default) or concat
	DefaultSize    int            // Box size of the namespace rule in px (default: 64)
	States         []string       // State words (default: hover, active, target)
	Tag            string         // Element of generated tags (default: i)
	InlineImage    bool           // Embed the sprite as a data URL instead of ImageURL
	CacheBust      bool           // Append a content hash to ImageURL
	Slug           bool           // Transliterate class name segments
	Workers        int            // Parallel decoders (default: 1)
	Codecs         Codecs         // Default: DefaultCodecs(JPEGQuality)
	JPEGQuality    int
	Logger         *log.Logger
}

func (o EmitOptions) withDefaults() EmitOptions {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.NamespaceStyle == "" {
		o.NamespaceStyle = StyleHyphen
	}
	if o.DefaultSize <= 0 {
		o.DefaultSize = DefaultSize
	}
	if o.States == nil {
		o.States = DefaultStates
	}
	if o.Tag == "" {
		o.Tag = DefaultTag
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Codecs == nil {
		o.Codecs = DefaultCodecs(o.JPEGQuality)
	}
	o.Logger = loggerOrDiscard(o.Logger)
	return o
}

// Emission is a fully rendered sprite and stylesheet, not yet written
type Emission struct {
	ImagePath  string
	CSSPath    string
	Format     Format
	Image      *image.NRGBA
	ImageData  []byte // Encoded sprite
	Stylesheet Stylesheet
	CSS        []byte
	Tags       []string // One marker tag per base image: <i class="img-ok"></i>
	Classes    []string // Class of every base image, same order as Tags
	Placed     []ImageRecord
	Entries    []Entry // One per placed image, same order
	Errors     []*Error // Sources that failed to decode
	Warnings   []string
}

// Emit composites the collected images onto one canvas and builds the
// stylesheet and tags for them. Nothing is written; call Commit for that.
// An unsupported sprite extension fails with ErrUnknownImageExtension before
// any image is decoded.
func Emit(col *Collection, opts EmitOptions) (*Emission, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	format, ok := FormatFromPath(opts.ImagePath)
	if !ok {
		return nil, NewError(KindUnknownImageExtension, opts.ImagePath, nil,
			"no encoder for extension %q", filepath.Ext(opts.ImagePath))
	}
	codec, ok := opts.Codecs[format]
	if !ok || codec.Encode == nil {
		return nil, NewError(KindUnknownImageExtension, opts.ImagePath, nil,
			"no encoder for format %s", format)
	}
	if col == nil || len(col.Images) == 0 {
		return nil, ErrNoSourceImages
	}

	em := &Emission{
		ImagePath: opts.ImagePath,
		CSSPath:   opts.CSSPath,
		Format:    format,
		Image:     newCanvas(col.Layout),
	}

	sources, errs := decodeAll(col.Images, opts)
	em.Errors = errs
	for i, rec := range col.Images {
		if sources[i] == nil {
			continue
		}
		composite(em.Image, sources[i], rec)
		em.Placed = append(em.Placed, rec)
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, em.Image); err != nil {
		return nil, NewError(KindIO, opts.ImagePath, err, "encoding sprite as %s", format)
	}
	em.ImageData = buf.Bytes()

	imageURL, err := spriteURL(opts, codec, em.ImageData)
	if err != nil {
		return nil, err
	}

	namer := Namer{Namespace: opts.Namespace, Style: opts.NamespaceStyle, Slug: opts.Slug}
	em.buildStylesheet(namer, opts, imageURL)
	em.CSS = []byte(em.Stylesheet.String())

	logger.Debug("rendered sprite",
		"format", format,
		"images", len(em.Placed),
		"rules", len(em.Stylesheet.Rules),
		"bytes", len(em.ImageData))
	return em, nil
}

// Commit writes the sprite and the stylesheet, both or neither
func (e *Emission) Commit() error {
	return commitFiles([]pendingFile{
		{path: e.ImagePath, data: e.ImageData},
		{path: e.CSSPath, data: e.CSS},
	})
}

// buildStylesheet emits the namespace rule, then for every base image its
// rule followed by the rules of its state variants.
func (e *Emission) buildStylesheet(namer Namer, opts EmitOptions, imageURL string) {
	byKey := make(map[string]ImageRecord, len(e.Placed))
	for _, rec := range e.Placed {
		if _, dup := byKey[rec.Key()]; dup {
			e.Warnings = append(e.Warnings, fmt.Sprintf("duplicate image key %q (%s)", rec.Key(), rec.Rel))
			continue
		}
		byKey[rec.Key()] = rec
	}

	e.Stylesheet.Add(namespaceRule(namer, imageURL, opts.DefaultSize))

	bases := make(map[string]bool)
	for _, rec := range e.Placed {
		name := ParseName(rec.Key(), opts.States)
		if name.Kind == NameState || bases[name.Key] {
			continue
		}
		bases[name.Key] = true

		class := namer.Class(name.Key)
		e.Stylesheet.Add(imageRule(class, rec))
		for _, state := range opts.States {
			if variant, ok := byKey[name.Key+"."+state]; ok {
				e.Stylesheet.Add(stateRule(namer, class, state, variant))
			}
		}

		e.Classes = append(e.Classes, class)
		e.Tags = append(e.Tags, markerTag(opts.Tag, class))
	}

	for _, rec := range e.Placed {
		name := ParseName(rec.Key(), opts.States)
		entry := Entry{Source: rec.Rel, X: rec.X, Width: rec.Width, Height: rec.Height}
		switch {
		case name.Kind == NameBase:
			entry.Class = namer.Class(name.Key)
		case bases[name.BaseKey]:
			entry.Class = namer.Class(name.BaseKey)
			entry.State = name.State
		default:
			entry.State = name.State
			e.Warnings = append(e.Warnings, fmt.Sprintf("%s state image %s has no base image", name.State, rec.Rel))
		}
		e.Entries = append(e.Entries, entry)
	}
}

// decodeAll decodes every source with at most opts.Workers decoders running.
// Results keep record order; failed or unsupported sources are nil.
func decodeAll(records []ImageRecord, opts EmitOptions) ([]image.Image, []*Error) {
	sources := make([]image.Image, len(records))
	failures := make([]*Error, len(records))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, rec := range records {
		codec, ok := opts.Codecs[rec.Format]
		if !ok || codec.Decode == nil {
			opts.Logger.Debug("no decoder, skipping", "path", rec.Path, "format", rec.Format)
			continue
		}
		g.Go(func() error {
			img, err := codec.Decode(rec.Path)
			if err != nil {
				failures[i] = NewError(KindWrongImageFormat, rec.Path, err, "cannot decode image")
				return nil
			}
			sources[i] = img
			return nil
		})
	}
	_ = g.Wait()

	var errs []*Error
	for _, f := range failures {
		if f != nil {
			errs = append(errs, f)
		}
	}
	return sources, errs
}

// spriteURL is the background-image URL written into the namespace rule
func spriteURL(opts EmitOptions, codec Codec, data []byte) (string, error) {
	if opts.InlineImage {
		text, err := dataurl.New(data, codec.MIME).MarshalText()
		if err != nil {
			return "", NewError(KindIO, opts.ImagePath, err, "encoding data url")
		}
		return string(text), nil
	}
	if !opts.CacheBust {
		return opts.ImageURL, nil
	}

	sum := sha256.Sum256(data)
	sep := "?"
	if strings.Contains(opts.ImageURL, "?") {
		sep = "&"
	}
	return opts.ImageURL + sep + "v=" + hex.EncodeToString(sum[:4]), nil
}

func markerTag(element, class string) string {
	return "<" + element + ` class="` + html.EscapeString(class) + `"></` + element + ">"
}
