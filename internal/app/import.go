package app

import (
	"context"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/logger"
)

// ExecuteImportSongsCommand uploads the songs of the song import directory.
func ExecuteImportSongsCommand(ctx context.Context, cfg *config.Config) {
	runImport(ctx, cfg, "Song import", func(ctx context.Context, s *session) error {
		return s.jukebox.ImportSongs(ctx)
	})
}

// ExecuteImportPlaylistsCommand uploads the playlists of the playlist import directory.
func ExecuteImportPlaylistsCommand(ctx context.Context, cfg *config.Config) {
	runImport(ctx, cfg, "Playlist import", func(ctx context.Context, s *session) error {
		return s.jukebox.ImportPlaylists(ctx)
	})
}

// ExecuteImportAlbumArtCommand uploads the images of the album art import directory.
func ExecuteImportAlbumArtCommand(ctx context.Context, cfg *config.Config) {
	runImport(ctx, cfg, "Album art import", func(ctx context.Context, s *session) error {
		return s.jukebox.ImportAlbumArt(ctx)
	})
}

func runImport(ctx context.Context, cfg *config.Config, action string, run func(context.Context, *session) error) {
	s := mustOpenSession(ctx, cfg)
	defer s.close(ctx)

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.jukebox.PrintImportSummary(ctx)
	}()

	if err := run(ctx, s); err != nil {
		logger.Errorf(ctx, "%s failed: %v", action, err)
	}
}
