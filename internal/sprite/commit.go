package sprite

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.uber.org/multierr"
)

type pendingFile struct {
	path string
	data []byte
}

// commitFiles writes and syncs every file next to its destination first and
// renames them into place only once all of them were written. A failure
// leaves the destinations untouched (up to the first rename).
func commitFiles(files []pendingFile) (err error) {
	pending := make([]*renameio.PendingFile, 0, len(files))
	defer func() {
		for _, p := range pending {
			// no-op for files already renamed into place
			if cerr := p.Cleanup(); cerr != nil && err != nil {
				err = multierr.Append(err, cerr)
			}
		}
	}()

	for _, f := range files {
		p, werr := writePending(f)
		if p != nil {
			pending = append(pending, p)
		}
		if werr != nil {
			return NewError(KindIO, f.path, werr, "writing output")
		}
	}

	for i, p := range pending {
		if rerr := p.CloseAtomicallyReplace(); rerr != nil {
			return NewError(KindIO, files[i].path, rerr, "replacing output")
		}
	}
	return nil
}

// writePending writes f into a temporary file in the destination directory
func writePending(f pendingFile) (*renameio.PendingFile, error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	p, err := renameio.NewPendingFile(f.path,
		renameio.WithTempDir(dir),
		renameio.WithPermissions(0o644))
	if err != nil {
		return nil, err
	}
	if _, err := p.Write(f.data); err != nil {
		return p, err
	}
	return p, nil
}
