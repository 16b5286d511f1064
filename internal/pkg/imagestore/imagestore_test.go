package imagestore

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "uploads/images", "/images")

	id := uuid.New()

	url, err := store.Save(id, "photo.png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("/images/%s_photo.png", id), url)

	data, err := afero.ReadFile(fs, fmt.Sprintf("uploads/images/%s_photo.png", id))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestStore_Save_OverwritesSameFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "uploads/images", "/images")

	id := uuid.New()

	_, err := store.Save(id, "photo.png", []byte("first"))
	require.NoError(t, err)

	url, err := store.Save(id, "photo.png", []byte("second"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, fmt.Sprintf("uploads/images/%s_photo.png", id))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
	assert.Equal(t, fmt.Sprintf("/images/%s_photo.png", id), url)
}

func TestStore_Save_StripsPathFromFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "uploads/images", "/images")

	id := uuid.New()

	url, err := store.Save(id, "../../etc/passwd", []byte("nope"))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("/images/%s_passwd", id), url)

	exists, err := afero.Exists(fs, fmt.Sprintf("uploads/images/%s_passwd", id))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_Save_TrailingSlashInPublicPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, "uploads/images", "/images/")

	id := uuid.New()

	url, err := store.Save(id, "photo.png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("/images/%s_photo.png", id), url)
}
