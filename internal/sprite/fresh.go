package sprite

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// IsFresh reports whether the sprite at imagePath is at least as new as
// everything under root. Paths in exclude (the generated outputs, when they
// live inside root) are not taken into account.
func IsFresh(root, imagePath string, exclude ...string) (bool, error) {
	dst, err := os.Stat(imagePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	skip := make(map[string]bool, len(exclude)+1)
	for _, p := range append(exclude, imagePath) {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	newest, err := newestModTime(root, skip)
	if err != nil {
		return false, err
	}
	return !dst.ModTime().Before(newest), nil
}

// newestModTime returns the latest modification time of root and anything below it
func newestModTime(root string, skip map[string]bool) (time.Time, error) {
	var newest time.Time
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if abs, err := filepath.Abs(path); err == nil && skip[abs] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	return newest, err
}
