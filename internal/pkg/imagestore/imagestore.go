package imagestore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Store writes uploaded product images to a filesystem directory and maps
// them to the public URL path they are served under. Files are named
// {productID}_{originalFilename}; uploading the same filename for the same
// product overwrites the previous file.
type Store struct {
	fs         afero.Fs
	dir        string
	publicPath string
}

// New creates an image store rooted at dir
func New(fs afero.Fs, dir, publicPath string) *Store {
	return &Store{
		fs:         fs,
		dir:        dir,
		publicPath: strings.TrimRight(publicPath, "/"),
	}
}

// Save writes data to {dir}/{productID}_{filename} and returns the public
// URL path of the stored file.
func (s *Store) Save(productID uuid.UUID, filename string, data []byte) (string, error) {
	// Strip any path components a client may have smuggled into the
	// original filename.
	name := fmt.Sprintf("%s_%s", productID, filepath.Base(filename))

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

// Dir returns the directory files are written to
func (s *Store) Dir() string {
	return s.dir
}
