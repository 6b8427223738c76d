package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/martijn/secondchance/internal/core/repository"
)

// LocalStore writes images below a directory that the API serves under
// URLPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

var _ repository.ImageStore = (*LocalStore)(nil)

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	objName := objectName(name)
	dst := filepath.Join(s.dir, objName)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return path.Join(s.urlPrefix, objName), nil
}

// Delete removes an image previously returned by Save. A missing file is
// not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	objName := path.Base(ref)
	if path.Dir(ref) != path.Clean(s.urlPrefix) || !validObjectName(objName) {
		return fmt.Errorf("not a local image reference: %q", ref)
	}

	if err := os.Remove(filepath.Join(s.dir, objName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
