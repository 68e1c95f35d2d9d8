package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/logger"
)

// ExecuteListSongsCommand prints "artist, song" for every song of the catalog.
func ExecuteListSongsCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing songs", func(ctx context.Context, s *session) error {
		songs, err := s.store.ListSongs(ctx)
		if err != nil {
			return err
		}

		for _, song := range songs {
			fmt.Fprintf(w, "%s, %s\n", song.ArtistName, song.SongName)
		}

		return nil
	})
}

// ExecuteListArtistsCommand prints every artist of the catalog.
func ExecuteListArtistsCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing artists", func(ctx context.Context, s *session) error {
		artists, err := s.store.ListArtists(ctx)

		return printLines(w, artists, err)
	})
}

// ExecuteListGenresCommand prints every genre of the catalog.
func ExecuteListGenresCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing genres", func(ctx context.Context, s *session) error {
		genres, err := s.store.ListGenres(ctx)

		return printLines(w, genres, err)
	})
}

// ExecuteListAlbumsCommand prints "album (artist)" for every album of the catalog.
func ExecuteListAlbumsCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing albums", func(ctx context.Context, s *session) error {
		albums, err := s.store.ListAlbums(ctx)
		if err != nil {
			return err
		}

		for _, album := range albums {
			fmt.Fprintf(w, "%s (%s)\n", album.AlbumName, album.ArtistName)
		}

		return nil
	})
}

// ExecuteListPlaylistsCommand prints "uid - name" for every playlist.
func ExecuteListPlaylistsCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing playlists", func(ctx context.Context, s *session) error {
		playlists, err := s.store.ListPlaylists(ctx)
		if err != nil {
			return err
		}

		for _, playlist := range playlists {
			fmt.Fprintf(w, "%s - %s\n", playlist.PlaylistUID, playlist.PlaylistName)
		}

		return nil
	})
}

// ExecuteListContainersCommand prints every container of the storage backend.
func ExecuteListContainersCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	withSession(ctx, cfg, "Listing containers", func(ctx context.Context, s *session) error {
		containers, err := s.jukebox.ListContainers(ctx)

		return printLines(w, containers, err)
	})
}

// ExecuteShowPlaylistCommand prints the songs of a playlist in playlist order.
func ExecuteShowPlaylistCommand(ctx context.Context, cfg *config.Config, name string, w io.Writer) {
	withSession(ctx, cfg, "Showing playlist", func(ctx context.Context, s *session) error {
		songs, err := s.jukebox.ShowPlaylist(ctx, name)
		if err != nil {
			return err
		}

		for _, song := range songs {
			fmt.Fprintf(w, "%s, %s, %s\n", song.ArtistName, song.AlbumName(), song.SongName)
		}

		return nil
	})
}

// ExecuteDeleteSongCommand deletes one song by its uid.
func ExecuteDeleteSongCommand(ctx context.Context, cfg *config.Config, songUID string) {
	withSession(ctx, cfg, "Deleting song", func(ctx context.Context, s *session) error {
		return reportDone(ctx, "song deleted", s.jukebox.DeleteSong(ctx, songUID))
	})
}

// ExecuteDeleteArtistCommand deletes every song of an artist.
func ExecuteDeleteArtistCommand(ctx context.Context, cfg *config.Config, artist string) {
	withSession(ctx, cfg, "Deleting artist", func(ctx context.Context, s *session) error {
		return reportDone(ctx, "artist deleted", s.jukebox.DeleteArtist(ctx, artist))
	})
}

// ExecuteDeleteAlbumCommand deletes every song of an album given as "artist--album".
func ExecuteDeleteAlbumCommand(ctx context.Context, cfg *config.Config, album string) {
	withSession(ctx, cfg, "Deleting album", func(ctx context.Context, s *session) error {
		return reportDone(ctx, "album deleted", s.jukebox.DeleteAlbum(ctx, album))
	})
}

// ExecuteDeletePlaylistCommand deletes a playlist.
func ExecuteDeletePlaylistCommand(ctx context.Context, cfg *config.Config, name string) {
	withSession(ctx, cfg, "Deleting playlist", func(ctx context.Context, s *session) error {
		return reportDone(ctx, "playlist deleted", s.jukebox.DeletePlaylist(ctx, name))
	})
}

// ExecuteUploadMetadataDBCommand uploads the local catalog database.
func ExecuteUploadMetadataDBCommand(ctx context.Context, cfg *config.Config) {
	withSession(ctx, cfg, "Uploading metadata DB", func(ctx context.Context, s *session) error {
		return reportDone(ctx, "metadata db uploaded", s.jukebox.UploadMetadataDB(ctx))
	})
}

// ExecuteRetrieveCatalogCommand downloads the metadata container into destDir.
func ExecuteRetrieveCatalogCommand(ctx context.Context, cfg *config.Config, destDir string) {
	withSession(ctx, cfg, "Retrieving catalog", func(ctx context.Context, s *session) error {
		count, err := s.jukebox.RetrieveCatalog(ctx, destDir)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "%d catalog files retrieved to %s", count, destDir)

		return nil
	})
}

// withSession runs fn on an open session and terminates the process when it fails.
func withSession(ctx context.Context, cfg *config.Config, action string, fn func(context.Context, *session) error) {
	s := mustOpenSession(ctx, cfg)

	err := fn(ctx, s)

	s.close(ctx)
	fatalOnError(ctx, action, err)
}

func printLines(w io.Writer, lines []string, err error) error {
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return nil
}

func reportDone(ctx context.Context, message string, err error) error {
	if err == nil {
		logger.Info(ctx, message)
	}

	return err
}
