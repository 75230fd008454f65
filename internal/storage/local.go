// Package storage persists uploaded files to a local directory and serves
// them by URL. Metadata lives in the media table; this package only handles
// the bytes.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// urlPrefix is the public path uploads are served under.
const urlPrefix = "/uploads/"

// Local stores uploaded files in a directory on the local filesystem.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed and returns the store.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the reader's content under the given storage name and returns
// the number of bytes written.
func (l *Local) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return 0, fmt.Errorf("write file: %w", err)
	}
	return n, nil
}

// Remove deletes the stored file. Removing a file that is already gone is
// not an error.
func (l *Local) Remove(name string) error {
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// URL returns the public URL for a stored file.
func (l *Local) URL(name string) string {
	return urlPrefix + name
}
