package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps uploaded blobs on local disk, addressed by their access
// token. The token both names the file on disk and appears in download
// URLs, so it is never derived from user input.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// Save writes the blob for a token and returns its storage path.
func (s *FileStore) Save(token uuid.UUID, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, token.String())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", fmt.Errorf("write blob: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

// Open returns a reader over a stored blob.
func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
