package jukebox

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // Test fixtures mirror the catalog hash.
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/constants"
	mock_metadata "github.com/oshokin/cloud-jukebox/internal/metadata/mocks"
	"github.com/oshokin/cloud-jukebox/internal/model"
	mock_storage "github.com/oshokin/cloud-jukebox/internal/storage/mocks"
)

// testJukeboxSetup encapsulates common test dependencies and configuration.
type testJukeboxSetup struct {
	ctrl     *gomock.Controller
	backend  *mock_storage.MockBackend
	store    *mock_metadata.MockStore
	jukebox  *Jukebox
	config   *config.Config
	registry *prometheus.Registry
	tempDir  string
}

// newTestJukeboxSetup creates a jukebox with simulated playback and short timings.
func newTestJukeboxSetup(t *testing.T, configOverrides ...func(*config.Config)) *testJukeboxSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	backend := mock_storage.NewMockBackend(ctrl)
	store := mock_metadata.NewMockStore(ctrl)
	tempDir := t.TempDir()

	cfg := &config.Config{
		Storage:                     "fs",
		FileCacheCount:              2,
		MaxConcurrentDownloads:      1,
		SongPlayDir:                 filepath.Join(tempDir, "song-play"),
		SongImportDir:               filepath.Join(tempDir, "song-import"),
		PlaylistImportDir:           filepath.Join(tempDir, "playlist-import"),
		AlbumArtImportDir:           filepath.Join(tempDir, "album-art-import"),
		MetadataDBFile:              filepath.Join(tempDir, config.MetadataDBFilename),
		PIDFile:                     filepath.Join(tempDir, "jukebox.pid"),
		MissingFilesLog:             filepath.Join(tempDir, "404.txt"),
		ParsedSongPlayLength:        20 * time.Millisecond,
		ParsedPlayedFileDeleteDelay: 5 * time.Millisecond,
		ParsedPausePollInterval:     5 * time.Millisecond,
		AudioPlayers:                map[string]config.AudioPlayerConfig{},
	}

	// Apply overrides.
	for _, override := range configOverrides {
		override(cfg)
	}

	for _, dir := range []string{cfg.SongPlayDir, cfg.SongImportDir, cfg.PlaylistImportDir, cfg.AlbumArtImportDir} {
		require.NoError(t, os.MkdirAll(dir, constants.DefaultFolderPermissions))
	}

	registry := prometheus.NewRegistry()
	jb := New(cfg, backend, store, NewMetrics(registry))
	jb.tagReader = new(stubTagReader)

	return &testJukeboxSetup{
		ctrl:     ctrl,
		backend:  backend,
		store:    store,
		jukebox:  jb,
		config:   cfg,
		registry: registry,
		tempDir:  tempDir,
	}
}

// stubTagReader returns fixed tags keyed by file name.
type stubTagReader struct {
	tags map[string]*SongTags
}

func (r *stubTagReader) ReadTags(path string) (*SongTags, error) {
	if tags, ok := r.tags[filepath.Base(path)]; ok {
		return tags, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoTags, path)
}

// songContent returns the deterministic audio bytes of a test song.
func songContent(song *model.SongMetadata) []byte {
	return bytes.Repeat([]byte(song.FM.FileUID), 64)
}

// newTestSongs creates songs whose size and hash match songContent.
func newTestSongs(count int) []*model.SongMetadata {
	songs := make([]*model.SongMetadata, 0, count)

	for i := range count {
		songName := fmt.Sprintf("Song %d", i)
		objectName := model.SongObjectName("Test Artist", "Test Album", songName, constants.ExtensionMP3)

		song := &model.SongMetadata{
			FM:         model.NewFileMetadata(objectName, model.ContainerForSong(objectName), objectName),
			ArtistName: "Test Artist",
			SongName:   songName,
		}

		content := songContent(song)
		hash := md5.Sum(content) //nolint:gosec // See the import comment.
		song.FM.StoredFileSize = int64(len(content))
		song.FM.MD5Hash = hex.EncodeToString(hash[:])

		songs = append(songs, song)
	}

	return songs
}

// serveObject writes content to the requested local path like a backend would.
func serveObject(content []byte) func(context.Context, string, string, string) (int64, error) {
	return func(_ context.Context, _, _, localFilePath string) (int64, error) {
		if err := os.WriteFile(localFilePath, content, constants.DefaultFilePermissions); err != nil {
			return 0, err
		}

		return int64(len(content)), nil
	}
}

// expectDownload expects exactly one retrieval of the song.
func (s *testJukeboxSetup) expectDownload(song *model.SongMetadata) *gomock.Call {
	return s.backend.EXPECT().
		GetObject(gomock.Any(), song.FM.ContainerName, song.FM.ObjectName, gomock.Any()).
		DoAndReturn(serveObject(songContent(song))).
		Times(1)
}

// cachePath returns the play cache path of a song.
func (s *testJukeboxSetup) cachePath(song *model.SongMetadata) string {
	return filepath.Join(s.config.SongPlayDir, song.FM.FileUID)
}

// residentFiles counts the fully written files in the play cache.
func (s *testJukeboxSetup) residentFiles(t *testing.T) int {
	t.Helper()

	entries, err := os.ReadDir(s.config.SongPlayDir)
	require.NoError(t, err)

	count := 0

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), constants.ExtensionDownload) {
			count++
		}
	}

	return count
}

// writeCachedSong places a song in the play cache.
func (s *testJukeboxSetup) writeCachedSong(t *testing.T, song *model.SongMetadata) string {
	t.Helper()

	path := s.cachePath(song)
	require.NoError(t, os.WriteFile(path, songContent(song), constants.DefaultFilePermissions))

	return path
}

// hasTask reports whether a play task is registered.
func (s *testJukeboxSetup) hasTask() bool {
	s.jukebox.taskMutex.Lock()
	defer s.jukebox.taskMutex.Unlock()

	return s.jukebox.task != nil
}

// currentTask returns the registered play task.
func (s *testJukeboxSetup) currentTask() *playTask {
	s.jukebox.taskMutex.Lock()
	defer s.jukebox.taskMutex.Unlock()

	return s.jukebox.task
}
