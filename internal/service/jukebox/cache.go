package jukebox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// SongPath returns the play cache path of a song.
func (j *Jukebox) SongPath(song *model.SongMetadata) string {
	return filepath.Join(j.cfg.SongPlayDir, song.FM.FileUID)
}

// prepareCacheDir creates the play cache directory or empties an existing one.
func (j *Jukebox) prepareCacheDir(ctx context.Context) error {
	entries, err := os.ReadDir(j.cfg.SongPlayDir)
	if os.IsNotExist(err) {
		logger.Debugf(ctx, "song-play directory does not exist, creating it")

		return os.MkdirAll(j.cfg.SongPlayDir, constants.DefaultFolderPermissions)
	}

	if err != nil {
		return fmt.Errorf("failed to read %s: %w", j.cfg.SongPlayDir, err)
	}

	if len(entries) > 0 {
		logger.Debugf(ctx, "deleting existing files in song-play directory")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err = utils.RemoveIfExists(filepath.Join(j.cfg.SongPlayDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear %s: %w", j.cfg.SongPlayDir, err)
		}
	}

	return nil
}

// cachedFiles returns the names of the fully written files in the play cache.
func (j *Jukebox) cachedFiles() (map[string]struct{}, error) {
	entries, err := os.ReadDir(j.cfg.SongPlayDir)
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), constants.ExtensionDownload) {
			continue
		}

		files[entry.Name()] = struct{}{}
	}

	return files, nil
}
