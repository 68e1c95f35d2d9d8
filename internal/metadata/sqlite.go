package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
)

// DefaultSongCacheSize is the number of songs kept in the lookup cache.
const DefaultSongCacheSize = 256

// SQLiteStore implements Store on top of a SQLite database file.
type SQLiteStore struct {
	// db is the database handle.
	db *sql.DB
	// songCache caches RetrieveSong results by uid.
	songCache *lru.Cache[string, model.SongMetadata]
}

// OpenSQLiteStore opens (creating when missing) the catalog database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, ErrEmptyDatabasePath
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata database '%s': %w", path, err)
	}

	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck,gosec // The ping error is the one worth reporting.

		return nil, fmt.Errorf("failed to connect to metadata database '%s': %w", path, err)
	}

	for _, statement := range schemaStatements {
		if _, err = db.ExecContext(ctx, statement); err != nil {
			db.Close() //nolint:errcheck,gosec // The schema error is the one worth reporting.

			return nil, fmt.Errorf("failed to create metadata schema: %w", err)
		}
	}

	songCache, err := lru.New[string, model.SongMetadata](DefaultSongCacheSize)
	if err != nil {
		db.Close() //nolint:errcheck,gosec // The cache error is the one worth reporting.

		return nil, fmt.Errorf("failed to create song cache: %w", err)
	}

	logger.Debugf(ctx, "Metadata database opened: %s", path)

	return &SQLiteStore{
		db:        db,
		songCache: songCache,
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.songCache.Purge()

	return s.db.Close()
}

// RetrieveSong returns the song with the given uid.
func (s *SQLiteStore) RetrieveSong(ctx context.Context, songUID string) (*model.SongMetadata, error) {
	if cached, ok := s.songCache.Get(songUID); ok {
		return &cached, nil
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM song s WHERE s.song_uid = ?`, songUID)

	song, err := scanSong(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSongNotFound, songUID)
		}

		return nil, fmt.Errorf("failed to retrieve song '%s': %w", songUID, err)
	}

	s.songCache.Add(songUID, *song)

	return song, nil
}

// InsertSong adds a new song row together with its artist and album rows.
func (s *SQLiteStore) InsertSong(ctx context.Context, song *model.SongMetadata) error {
	if song == nil {
		return ErrNilSong
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := upsertArtistAndAlbum(ctx, tx, song); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO song (song_uid, file_time, origin_file_size, stored_file_size, pad_char_count,
				artist_name, artist_uid, song_name, md5_hash, compressed, encrypted,
				container_name, object_name, album_uid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, songArgs(song)...)
		if err != nil {
			return fmt.Errorf("failed to insert song '%s': %w", song.FM.FileUID, err)
		}

		return nil
	})
}

// UpdateSong replaces the row of an existing song.
func (s *SQLiteStore) UpdateSong(ctx context.Context, song *model.SongMetadata) error {
	if song == nil {
		return ErrNilSong
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := upsertArtistAndAlbum(ctx, tx, song); err != nil {
			return err
		}

		args := append(songArgs(song)[1:], song.FM.FileUID)

		result, err := tx.ExecContext(ctx, `
			UPDATE song SET file_time = ?, origin_file_size = ?, stored_file_size = ?, pad_char_count = ?,
				artist_name = ?, artist_uid = ?, song_name = ?, md5_hash = ?, compressed = ?, encrypted = ?,
				container_name = ?, object_name = ?, album_uid = ?
			WHERE song_uid = ?
		`, args...)
		if err != nil {
			return fmt.Errorf("failed to update song '%s': %w", song.FM.FileUID, err)
		}

		return requireAffected(result, fmt.Errorf("%w: %s", ErrSongNotFound, song.FM.FileUID))
	})

	s.songCache.Remove(song.FM.FileUID)

	return err
}

// StoreSong inserts the song when missing and updates it when the stored row differs.
func (s *SQLiteStore) StoreSong(ctx context.Context, song *model.SongMetadata) error {
	if song == nil {
		return ErrNilSong
	}

	existing, err := s.RetrieveSong(ctx, song.FM.FileUID)

	switch {
	case errors.Is(err, ErrSongNotFound):
		return s.InsertSong(ctx, song)
	case err != nil:
		return err
	case existing.Equal(song):
		return nil
	default:
		return s.UpdateSong(ctx, song)
	}
}

// DeleteSong removes a song and every playlist reference to it.
func (s *SQLiteStore) DeleteSong(ctx context.Context, songUID string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_song WHERE song_uid = ?`, songUID); err != nil {
			return fmt.Errorf("failed to delete playlist references of '%s': %w", songUID, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM song WHERE song_uid = ?`, songUID)
		if err != nil {
			return fmt.Errorf("failed to delete song '%s': %w", songUID, err)
		}

		return requireAffected(result, fmt.Errorf("%w: %s", ErrSongNotFound, songUID))
	})

	s.songCache.Remove(songUID)

	return err
}

// RetrieveSongs returns songs ordered by object name, filtered by artist and album names.
func (s *SQLiteStore) RetrieveSongs(ctx context.Context, artist, album string) ([]*model.SongMetadata, error) {
	var (
		query strings.Builder
		args  []any
	)

	query.WriteString(`SELECT ` + songColumns + ` FROM song s`)

	if album != "" {
		query.WriteString(` JOIN album a ON a.album_uid = s.album_uid AND a.album_name = ?`)

		args = append(args, album)
	}

	if artist != "" {
		query.WriteString(` WHERE s.artist_name = ?`)

		args = append(args, artist)
	}

	query.WriteString(` ORDER BY s.object_name`)

	return s.querySongs(ctx, query.String(), args...)
}

// SongsForArtist returns every song of an artist.
func (s *SQLiteStore) SongsForArtist(ctx context.Context, artist string) ([]*model.SongMetadata, error) {
	return s.RetrieveSongs(ctx, artist, "")
}

// SongsForAlbum returns every song of an artist's album.
func (s *SQLiteStore) SongsForAlbum(ctx context.Context, artist, album string) ([]*model.SongMetadata, error) {
	return s.RetrieveSongs(ctx, artist, album)
}

// FindSong resolves a song by its decoded names.
func (s *SQLiteStore) FindSong(ctx context.Context, artist, album, song string) (*model.SongMetadata, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM song s
		JOIN album a ON a.album_uid = s.album_uid
		WHERE s.artist_name = ? AND a.album_name = ? AND s.song_name = ?
		ORDER BY s.object_name
		LIMIT 1
	`, artist, album, song)

	result, err := scanSong(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s / %s / %s", ErrSongNotFound, artist, album, song)
		}

		return nil, fmt.Errorf("failed to find song: %w", err)
	}

	return result, nil
}

// ListSongs returns artist and song names ordered by object name.
func (s *SQLiteStore) ListSongs(ctx context.Context) ([]model.SongListing, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT artist_name, song_name FROM song ORDER BY object_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	defer rows.Close() //nolint:errcheck // Error on close is not critical here.

	var listings []model.SongListing

	for rows.Next() {
		var (
			artistName sql.NullString
			listing    model.SongListing
		)

		if err = rows.Scan(&artistName, &listing.SongName); err != nil {
			return nil, err
		}

		listing.ArtistName = artistName.String
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// ListArtists returns the distinct artist names of stored songs.
func (s *SQLiteStore) ListArtists(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `
		SELECT DISTINCT artist_name FROM song
		WHERE artist_name IS NOT NULL AND artist_name != ''
		ORDER BY artist_name
	`)
}

// ListGenres returns the genre names.
func (s *SQLiteStore) ListGenres(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT genre_name FROM genre ORDER BY genre_name`)
}

// ListAlbums returns album and artist names ordered by artist.
func (s *SQLiteStore) ListAlbums(ctx context.Context) ([]model.AlbumListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.album_name, ar.artist_name
		FROM album a
		JOIN artist ar ON ar.artist_uid = a.artist_uid
		ORDER BY ar.artist_name, a.album_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	defer rows.Close() //nolint:errcheck // Error on close is not critical here.

	var listings []model.AlbumListing

	for rows.Next() {
		var listing model.AlbumListing
		if err = rows.Scan(&listing.AlbumName, &listing.ArtistName); err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// ListPlaylists returns every playlist ordered by name.
func (s *SQLiteStore) ListPlaylists(ctx context.Context) ([]model.PlaylistListing, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT playlist_uid, playlist_name FROM playlist ORDER BY playlist_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	defer rows.Close() //nolint:errcheck // Error on close is not critical here.

	var listings []model.PlaylistListing

	for rows.Next() {
		var listing model.PlaylistListing
		if err = rows.Scan(&listing.PlaylistUID, &listing.PlaylistName); err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// GetPlaylist returns the playlist with the given name.
func (s *SQLiteStore) GetPlaylist(ctx context.Context, name string) (model.PlaylistListing, error) {
	var listing model.PlaylistListing

	err := s.db.QueryRowContext(ctx,
		`SELECT playlist_uid, playlist_name FROM playlist WHERE playlist_name = ?`, name,
	).Scan(&listing.PlaylistUID, &listing.PlaylistName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing, fmt.Errorf("%w: %s", ErrPlaylistNotFound, name)
		}

		return listing, fmt.Errorf("failed to get playlist '%s': %w", name, err)
	}

	return listing, nil
}

// InsertPlaylist adds a playlist row, replacing one with the same uid or name.
func (s *SQLiteStore) InsertPlaylist(ctx context.Context, playlistUID, name, description string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO playlist (playlist_uid, playlist_name, playlist_description)
		VALUES (?, ?, ?)
	`, playlistUID, name, description)
	if err != nil {
		return fmt.Errorf("failed to insert playlist '%s': %w", name, err)
	}

	return nil
}

// SetPlaylistSongs replaces the ordered song list of a playlist.
func (s *SQLiteStore) SetPlaylistSongs(ctx context.Context, playlistUID string, songUIDs []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_song WHERE playlist_uid = ?`, playlistUID); err != nil {
			return fmt.Errorf("failed to clear playlist '%s': %w", playlistUID, err)
		}

		for position, songUID := range songUIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO playlist_song (playlist_song_uid, playlist_uid, song_uid, position)
				VALUES (?, ?, ?, ?)
			`, uuid.NewString(), playlistUID, songUID, position)
			if err != nil {
				return fmt.Errorf("failed to add song '%s' to playlist '%s': %w", songUID, playlistUID, err)
			}
		}

		return nil
	})
}

// PlaylistSongs returns the songs of a playlist in playlist order.
func (s *SQLiteStore) PlaylistSongs(ctx context.Context, name string) ([]*model.SongMetadata, error) {
	playlist, err := s.GetPlaylist(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM playlist_song ps
		JOIN song s ON s.song_uid = ps.song_uid
		WHERE ps.playlist_uid = ?
		ORDER BY ps.position
	`, playlist.PlaylistUID)
}

// DeletePlaylist removes a playlist and its song list.
func (s *SQLiteStore) DeletePlaylist(ctx context.Context, name string) error {
	playlist, err := s.GetPlaylist(ctx, name)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM playlist_song WHERE playlist_uid = ?`, playlist.PlaylistUID)
		if err != nil {
			return fmt.Errorf("failed to delete songs of playlist '%s': %w", name, err)
		}

		if _, err = tx.ExecContext(ctx, `DELETE FROM playlist WHERE playlist_uid = ?`, playlist.PlaylistUID); err != nil {
			return fmt.Errorf("failed to delete playlist '%s': %w", name, err)
		}

		return nil
	})
}

// withTx executes fn within a transaction, rolling back when fn fails.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) querySongs(ctx context.Context, query string, args ...any) ([]*model.SongMetadata, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}

	defer rows.Close() //nolint:errcheck // Error on close is not critical here.

	var songs []*model.SongMetadata

	for rows.Next() {
		song, scanErr := scanSong(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		songs = append(songs, song)
	}

	return songs, rows.Err()
}

func (s *SQLiteStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close() //nolint:errcheck // Error on close is not critical here.

	var values []string

	for rows.Next() {
		var value string
		if err = rows.Scan(&value); err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*model.SongMetadata, error) {
	var (
		fileTime, artistName, artistUID, albumUID sql.NullString
		originSize, storedSize, padCount          sql.NullInt64
		compressed, encrypted                     sql.NullInt64
		song                                      model.SongMetadata
	)

	err := row.Scan(
		&song.FM.FileUID,
		&fileTime,
		&originSize,
		&storedSize,
		&padCount,
		&artistName,
		&artistUID,
		&song.SongName,
		&song.FM.MD5Hash,
		&compressed,
		&encrypted,
		&song.FM.ContainerName,
		&song.FM.ObjectName,
		&albumUID,
	)
	if err != nil {
		return nil, err
	}

	song.FM.FileTime = fileTime.String
	song.FM.OriginFileSize = originSize.Int64
	song.FM.StoredFileSize = storedSize.Int64
	song.FM.PadCharCount = int(padCount.Int64)
	song.FM.Compressed = compressed.Int64 != 0
	song.FM.Encrypted = encrypted.Int64 != 0
	song.ArtistName = artistName.String
	song.ArtistUID = artistUID.String
	song.AlbumUID = albumUID.String

	return &song, nil
}

func songArgs(song *model.SongMetadata) []any {
	return []any{
		song.FM.FileUID,
		song.FM.FileTime,
		song.FM.OriginFileSize,
		song.FM.StoredFileSize,
		song.FM.PadCharCount,
		song.ArtistName,
		nullIfEmpty(song.ArtistUID),
		song.SongName,
		song.FM.MD5Hash,
		boolToInt(song.FM.Compressed),
		boolToInt(song.FM.Encrypted),
		song.FM.ContainerName,
		song.FM.ObjectName,
		nullIfEmpty(song.AlbumUID),
	}
}

func upsertArtistAndAlbum(ctx context.Context, tx *sql.Tx, song *model.SongMetadata) error {
	if song.ArtistUID == "" {
		return nil
	}

	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO artist (artist_uid, artist_name) VALUES (?, ?)`,
		song.ArtistUID, song.ArtistName)
	if err != nil {
		return fmt.Errorf("failed to store artist '%s': %w", song.ArtistName, err)
	}

	albumName := song.AlbumName()
	if song.AlbumUID == "" || albumName == "" {
		return nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO album (album_uid, album_name, artist_uid) VALUES (?, ?, ?)`,
		song.AlbumUID, albumName, song.ArtistUID)
	if err != nil {
		return fmt.Errorf("failed to store album '%s': %w", albumName, err)
	}

	return nil
}

func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return notFound
	}

	return nil
}

func nullIfEmpty(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func boolToInt(value bool) int {
	if value {
		return 1
	}

	return 0
}
