package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"portfolioapi/internal/storage"
)

// ErrSourceNotFound is returned by a Source for a file it does not hold.
var ErrSourceNotFound = errors.New("content file not found")

// Source opens raw content files by file name (for example "profile.yaml").
type Source interface {
	Open(ctx context.Context, file string) (io.ReadCloser, error)
}

// DirSource reads content files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, file string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(file)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", file, ErrSourceNotFound)
		}
		return nil, err
	}
	return f, nil
}

// ObjectSource reads content files from an object store.
type ObjectSource struct {
	Store storage.Storage
}

func (s ObjectSource) Open(ctx context.Context, file string) (io.ReadCloser, error) {
	rc, _, err := s.Store.Get(ctx, file)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%s: %w", file, ErrSourceNotFound)
		}
		return nil, err
	}
	return rc, nil
}
