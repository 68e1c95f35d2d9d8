package metadata

//go:generate $MOCKGEN -source=store.go -destination=mocks/store_mock.go

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oshokin/cloud-jukebox/internal/model"
)

// Store is the song and playlist catalog.
type Store interface {
	// RetrieveSong returns the song with the given uid or ErrSongNotFound.
	RetrieveSong(ctx context.Context, songUID string) (*model.SongMetadata, error)
	// InsertSong adds a new song row.
	InsertSong(ctx context.Context, song *model.SongMetadata) error
	// UpdateSong replaces the row of an existing song.
	UpdateSong(ctx context.Context, song *model.SongMetadata) error
	// StoreSong inserts the song, or updates it when the stored row differs.
	StoreSong(ctx context.Context, song *model.SongMetadata) error
	// DeleteSong removes a song and its playlist references.
	DeleteSong(ctx context.Context, songUID string) error
	// RetrieveSongs returns songs filtered by artist and album; empty filters match everything.
	RetrieveSongs(ctx context.Context, artist, album string) ([]*model.SongMetadata, error)
	// SongsForArtist returns every song of an artist.
	SongsForArtist(ctx context.Context, artist string) ([]*model.SongMetadata, error)
	// SongsForAlbum returns every song of an artist's album.
	SongsForAlbum(ctx context.Context, artist, album string) ([]*model.SongMetadata, error)
	// FindSong resolves a song by its decoded artist, album and song names.
	FindSong(ctx context.Context, artist, album, song string) (*model.SongMetadata, error)
	// ListSongs returns artist and song names of the whole catalog.
	ListSongs(ctx context.Context) ([]model.SongListing, error)
	// ListArtists returns the distinct artist names.
	ListArtists(ctx context.Context) ([]string, error)
	// ListAlbums returns album and artist names.
	ListAlbums(ctx context.Context) ([]model.AlbumListing, error)
	// ListGenres returns the genre names.
	ListGenres(ctx context.Context) ([]string, error)
	// ListPlaylists returns every playlist.
	ListPlaylists(ctx context.Context) ([]model.PlaylistListing, error)
	// GetPlaylist returns the playlist with the given name or ErrPlaylistNotFound.
	GetPlaylist(ctx context.Context, name string) (model.PlaylistListing, error)
	// InsertPlaylist adds or replaces a playlist row.
	InsertPlaylist(ctx context.Context, playlistUID, name, description string) error
	// SetPlaylistSongs replaces the ordered song list of a playlist.
	SetPlaylistSongs(ctx context.Context, playlistUID string, songUIDs []string) error
	// PlaylistSongs returns the songs of a playlist in playlist order.
	PlaylistSongs(ctx context.Context, name string) ([]*model.SongMetadata, error)
	// DeletePlaylist removes a playlist and its song list.
	DeletePlaylist(ctx context.Context, name string) error
	// Close closes the database.
	Close() error
}

// Static error definitions for better error handling.
var (
	// ErrSongNotFound indicates that no song has the requested uid or names.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound indicates that no playlist has the requested name.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrNilSong indicates that a nil song was passed to a write operation.
	ErrNilSong = errors.New("song is nil")
	// ErrEmptyDatabasePath indicates that no database file was configured.
	ErrEmptyDatabasePath = errors.New("database path cannot be empty")
)

// catalogNamespace seeds the name-based identifiers of artists and albums.
var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cloud-jukebox:catalog"))

// ArtistUID returns the stable identifier of an artist name.
func ArtistUID(artist string) string {
	return uuid.NewSHA1(catalogNamespace, []byte("artist:"+strings.ToLower(artist))).String()
}

// AlbumUID returns the stable identifier of an artist's album.
func AlbumUID(artist, album string) string {
	return uuid.NewSHA1(catalogNamespace, []byte("album:"+strings.ToLower(artist)+"\x00"+strings.ToLower(album))).String()
}
