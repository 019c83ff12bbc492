package artifact

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks promptstudio/internal/artifact Store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrWrite is returned when an artifact cannot be written or removed
// for a reason other than "not found".
var ErrWrite = errors.New("artifact write failed")

// Store defines the interface for image artifact storage.
type Store interface {
	// Save writes the image bytes to a fresh file and returns its path.
	Save(data []byte) (string, error)
	// Remove deletes the file at path if present and reports whether a
	// file was actually removed. A missing file is not an error.
	Remove(path string) (bool, error)
	// Exists reports whether a file exists at path.
	Exists(path string) bool
}

// DiskStore stores image artifacts as uuid-named .png files under a
// fixed root directory, created on first use.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{root: dir}
}

// Save writes data to a fresh uuid-named file under the store root and
// returns the file path.
func (s *DiskStore) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("%w: creating artifact root %s: %v", ErrWrite, s.root, err)
	}

	path := filepath.Join(s.root, uuid.New().String()+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrWrite, path, err)
	}

	return path, nil
}

// Remove deletes the file at path. Removing a path that does not exist
// reports false with no error, so deletes are idempotent.
func (s *DiskStore) Remove(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: removing %s: %v", ErrWrite, path, err)
}

// Exists reports whether a regular file exists at path.
func (s *DiskStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
