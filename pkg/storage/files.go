// Package storage persists uploaded artifact files on the local filesystem
// under <media_root>/<owner_id>/artifacts/<filename>.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactsDir is the fixed path segment under each owner's directory.
const ArtifactsDir = "artifacts"

// FileStore saves, opens and removes uploaded files. Filenames are not
// de-duplicated: saving under an existing name overwrites the previous blob.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at the given media directory,
// creating it if necessary.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Path returns the on-disk location of an owner's stored file. The filename
// is reduced to its base to keep traversal segments out of the media tree.
func (s *FileStore) Path(ownerID uuid.UUID, filename string) string {
	return filepath.Join(s.root, ownerID.String(), ArtifactsDir, filepath.Base(filename))
}

// Save writes the uploaded content under the owner's artifacts directory and
// returns the stored filename.
func (s *FileStore) Save(ownerID uuid.UUID, filename string, content io.Reader) (string, error) {
	name := filepath.Base(filename)
	path := s.Path(ownerID, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file. A missing file is not an error; removal is
// best effort when replacing attachments.
func (s *FileStore) Remove(ownerID uuid.UUID, filename string) error {
	err := os.Remove(s.Path(ownerID, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Open opens a stored file for reading. Returns os.ErrNotExist if absent.
func (s *FileStore) Open(ownerID uuid.UUID, filename string) (*os.File, error) {
	return os.Open(s.Path(ownerID, filename))
}

// Lookup resolves an owner's stored file under an arbitrary kind segment and
// verifies it exists. Kind and filename are reduced to their base to keep
// traversal segments out of the media tree. Returns os.ErrNotExist if absent.
func (s *FileStore) Lookup(ownerID uuid.UUID, kind, filename string) (string, error) {
	kind = filepath.Base(kind)
	filename = filepath.Base(filename)
	if kind == ".." || filename == ".." {
		return "", os.ErrNotExist
	}

	path := filepath.Join(s.root, ownerID.String(), kind, filename)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return path, nil
}
