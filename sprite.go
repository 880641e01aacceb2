package cssprite

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/yacobolo/cssprite/internal/sprite"
)

// GenerateResult describes a finished (or skipped) sprite run
type GenerateResult struct {
	ImagePath string
	CSSPath   string
	Images    int // Images drawn into the sprite
	Width     int
	Height    int
	Rules     int      // Stylesheet rules, namespace rule included
	Tags      []string // <i class="img-ok"></i>, one per base image
	Classes   []string // Same order as Tags
	Entries   []Entry  // Placement of every drawn image
	Errors    []*Error // Per-file problems; the run went on without those files
	Warnings  []string
	Skipped   []string // Images over the skip size
	UpToDate  bool     // Nothing was generated, the sprite is fresh
	Status    *Error   // Why nothing was generated, kind sprite-up-to-date
	Duration  time.Duration
}

// Err combines the per-file errors, nil when there were none
func (r *GenerateResult) Err() error {
	var err error
	for _, e := range r.Errors {
		err = multierr.Append(err, e)
	}
	return err
}

// Generate is the main entry point: collect the source images, render the
// sprite and stylesheet, then write both. Per-file problems end up in
// result.Errors; the returned error is reserved for conditions that stop the
// run, in which case nothing is written.
func Generate(config Config) (*GenerateResult, error) {
	start := time.Now()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()
	logger := loggerOrDiscard(config.Logger)

	result := &GenerateResult{
		ImagePath: config.ImagePath,
		CSSPath:   config.CSSPath,
	}

	// 1. Freshness
	if config.CheckFresh {
		fresh, err := sprite.IsFresh(config.SourcePath, config.ImagePath, config.CSSPath)
		if err != nil {
			return nil, fmt.Errorf("freshness check failed: %w", err)
		}
		if fresh {
			logger.Info("sprite is up to date", "image", config.ImagePath)
			result.UpToDate = true
			result.Status = sprite.NewError(KindSpriteUpToDate, config.ImagePath, nil, "sprite is up to date")
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	// 2. Collect
	col, err := Collect(config)
	if col != nil {
		result.Errors = append(result.Errors, col.Errors...)
		result.Skipped = col.Skipped
	}
	if err != nil {
		return result, err
	}

	// 3. Render
	em, err := Emit(col, config)
	if err != nil {
		return result, err
	}
	result.Errors = append(result.Errors, em.Errors...)
	result.Warnings = append(result.Warnings, em.Warnings...)

	// 4. Write
	if err := em.Commit(); err != nil {
		return result, err
	}

	result.Images = len(em.Placed)
	result.Width = col.Layout.Width
	result.Height = col.Layout.Height
	result.Rules = len(em.Stylesheet.Rules)
	result.Tags = em.Tags
	result.Classes = em.Classes
	result.Entries = em.Entries
	result.Duration = time.Since(start)

	logger.Info("sprite generated",
		"images", result.Images,
		"width", result.Width,
		"height", result.Height,
		"errors", len(result.Errors))
	return result, nil
}

// Collect runs only the scanning stage
func Collect(config Config) (*Collection, error) {
	config = config.withDefaults()
	col, err := sprite.Collect(config.collectOptions())
	if err != nil && !errors.Is(err, ErrNoSourceImages) {
		return col, fmt.Errorf("scan failed: %w", err)
	}
	return col, err
}

// Emit renders a collection in memory; call Commit on the emission to write it
func Emit(col *Collection, config Config) (*Emission, error) {
	config = config.withDefaults()
	return sprite.Emit(col, config.emitOptions())
}

// IsFresh reports whether the configured sprite is at least as new as its sources
func IsFresh(config Config) (bool, error) {
	return sprite.IsFresh(config.SourcePath, config.ImagePath, config.CSSPath)
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
