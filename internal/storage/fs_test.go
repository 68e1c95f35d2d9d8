package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/cloud-jukebox/internal/constants"
)

func newTestFSBackend(t *testing.T) *FSBackend {
	t.Helper()

	backend, err := NewFSBackend(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)

	return backend
}

// TestFSBackendContainers tests container creation, listing and deletion.
func TestFSBackendContainers(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	backend := newTestFSBackend(t)

	exists, err := backend.HasContainer(ctx, "q-artist-songs")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, backend.CreateContainer(ctx, "q-artist-songs"))
	require.NoError(t, backend.CreateContainer(ctx, "playlists"))

	exists, err = backend.HasContainer(ctx, "q-artist-songs")
	require.NoError(t, err)
	assert.True(t, exists)

	containers, err := backend.ListContainers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"q-artist-songs", "playlists"}, containers)

	require.NoError(t, backend.DeleteContainer(ctx, "playlists"))
	require.ErrorIs(t, backend.DeleteContainer(ctx, "playlists"), ErrContainerNotFound)

	_, err = backend.HasContainer(ctx, "")
	require.ErrorIs(t, err, ErrEmptyContainerName)
}

// TestFSBackendObjects tests the object lifecycle including properties.
func TestFSBackendObjects(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	backend := newTestFSBackend(t)

	const (
		container = "q-artist-songs"
		object    = "Queen--Jazz--Mustapha.mp3"
	)

	require.ErrorIs(t,
		backend.PutObject(ctx, container, object, []byte("audio"), nil),
		ErrContainerNotFound)

	require.NoError(t, backend.CreateContainer(ctx, container))
	require.NoError(t, backend.PutObject(ctx, container, object, []byte("audio"), Properties{
		"md5_hash":         "abc",
		"origin_file_size": "5",
	}))
	require.NoError(t, backend.PutObject(ctx, container, "Queen--Jazz--Bicycle-Race.mp3", []byte("more audio"), nil))

	objects, err := backend.ListObjects(ctx, container)
	require.NoError(t, err)
	assert.Equal(t, []string{"Queen--Jazz--Bicycle-Race.mp3", object}, objects)

	props, err := backend.GetObjectMetadata(ctx, container, object)
	require.NoError(t, err)
	assert.Equal(t, "abc", props["md5_hash"])
	assert.Equal(t, "5", props["origin_file_size"])

	props, err = backend.GetObjectMetadata(ctx, container, "Queen--Jazz--Bicycle-Race.mp3")
	require.NoError(t, err)
	assert.Empty(t, props)

	localPath := filepath.Join(t.TempDir(), "song.download")
	written, err := backend.GetObject(ctx, container, object, localPath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	content, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(content))

	require.NoError(t, backend.DeleteObject(ctx, container, object))
	require.ErrorIs(t, backend.DeleteObject(ctx, container, object), ErrObjectNotFound)

	_, err = backend.GetObject(ctx, container, object, localPath)
	require.ErrorIs(t, err, ErrObjectNotFound)

	_, err = backend.GetObjectMetadata(ctx, container, object)
	require.ErrorIs(t, err, ErrObjectNotFound)
}

// TestFSBackendPutObjectLeavesNoProvisionalFiles tests that writes are renamed into place
// and that unfinished files are hidden from listings.
func TestFSBackendPutObjectLeavesNoProvisionalFiles(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	backend := newTestFSBackend(t)

	const (
		container = "q-artist-songs"
		object    = "Queen--Jazz--Mustapha.mp3"
	)

	require.NoError(t, backend.CreateContainer(ctx, container))
	require.NoError(t, backend.PutObject(ctx, container, object, []byte("audio"), Properties{"md5_hash": "abc"}))
	require.NoError(t, backend.PutObject(ctx, container, object, []byte("new audio"), nil))

	entries, err := os.ReadDir(backend.containerPath(container))
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal(t, []string{object}, names)

	props, err := backend.GetObjectMetadata(ctx, container, object)
	require.NoError(t, err)
	assert.Empty(t, props)

	unfinishedPath := backend.objectPath(container, "Queen--Jazz--Bicycle-Race.mp3") + constants.ExtensionDownload
	require.NoError(t, os.WriteFile(unfinishedPath, []byte("partial"), constants.DefaultFilePermissions))

	objects, err := backend.ListObjects(ctx, container)
	require.NoError(t, err)
	assert.Equal(t, []string{object}, objects)
}

// TestFSBackendValidation tests argument validation.
func TestFSBackendValidation(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	backend := newTestFSBackend(t)

	tests := []struct {
		name      string
		container string
		object    string
		data      []byte
		wantErr   error
	}{
		{
			name:    "empty container",
			object:  "a.mp3",
			data:    []byte("x"),
			wantErr: ErrEmptyContainerName,
		},
		{
			name:      "empty object",
			container: "c",
			data:      []byte("x"),
			wantErr:   ErrEmptyObjectName,
		},
		{
			name:      "empty content",
			container: "c",
			object:    "a.mp3",
			wantErr:   ErrEmptyObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, backend.PutObject(ctx, tt.container, tt.object, tt.data, nil), tt.wantErr)
		})
	}
}

// TestFSBackendListMissingContainer tests listing a container that does not exist.
func TestFSBackendListMissingContainer(t *testing.T) {
	t.Parallel()

	backend := newTestFSBackend(t)

	_, err := backend.ListObjects(t.Context(), "missing")
	require.ErrorIs(t, err, ErrContainerNotFound)
}
