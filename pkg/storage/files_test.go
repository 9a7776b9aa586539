package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ownerID := uuid.New()
	name, err := store.Save(ownerID, "report.pdf", strings.NewReader("contents"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)

	f, err := store.Open(ownerID, "report.pdf")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ownerID := uuid.New()
	_, err = store.Save(ownerID, "notes.txt", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save(ownerID, "notes.txt", strings.NewReader("second"))
	require.NoError(t, err)

	f, err := store.Open(ownerID, "notes.txt")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileStore_PathStripsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	ownerID := uuid.New()
	path := store.Path(ownerID, "../../etc/passwd")
	assert.Equal(t, filepath.Join(root, ownerID.String(), ArtifactsDir, "passwd"), path)
}

func TestFileStore_RemoveMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(uuid.New(), "never-existed.txt"))
}

func TestFileStore_Remove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ownerID := uuid.New()
	_, err = store.Save(ownerID, "gone.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ownerID, "gone.txt"))

	_, err = store.Open(ownerID, "gone.txt")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_Lookup(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ownerID := uuid.New()
	_, err = store.Save(ownerID, "doc.md", strings.NewReader("x"))
	require.NoError(t, err)

	path, err := store.Lookup(ownerID, ArtifactsDir, "doc.md")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = store.Lookup(ownerID, ArtifactsDir, "missing.md")
	assert.True(t, os.IsNotExist(err))

	// Parent segments never resolve.
	_, err = store.Lookup(ownerID, "..", "doc.md")
	assert.True(t, os.IsNotExist(err))
}
