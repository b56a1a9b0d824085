package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docscan/internal/filex"
	"github.com/dmitrijs2005/docscan/internal/logging"
)

// FileStore copies images into a private directory, one file per document,
// named by the document id.
type FileStore struct {
	dir string
	log logging.Logger
}

func NewFileStore(dir string, log logging.Logger) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}
	return &FileStore{dir: abs, log: log.With("component", "imagestore")}, nil
}

func (s *FileStore) Add(ctx context.Context, sourceURI, documentID string) (string, int64, error) {
	// inline payloads stay inline; size is estimated, not exact
	if IsDataURI(sourceURI) {
		return sourceURI, EstimateDataURISize(sourceURI), nil
	}

	ext := filepath.Ext(sourceURI)
	if ext == "" {
		ext = ".jpg"
	}
	dst := filepath.Join(s.dir, documentID+ext)

	size, err := filex.CopyFile(sourceURI, dst)
	if err != nil {
		return "", 0, fmt.Errorf("copying image: %w", err)
	}
	return dst, size, nil
}

// Remove deletes the stored image file. Data URIs and paths outside the
// store directory are left alone.
func (s *FileStore) Remove(ctx context.Context, uri string) error {
	if IsDataURI(uri) {
		return nil
	}
	if !strings.HasPrefix(uri, s.dir+string(os.PathSeparator)) {
		s.log.Warn(ctx, "refusing to remove image outside store dir", "uri", uri)
		return nil
	}
	if err := os.Remove(uri); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}

// Clear deletes the whole image directory and recreates it empty.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clearing image store: %w", err)
	}
	if _, err := filex.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("recreating image store: %w", err)
	}
	return nil
}
