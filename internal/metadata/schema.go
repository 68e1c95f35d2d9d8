package metadata

// schemaStatements create the catalog tables when they are missing.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS genre (
		genre_uid TEXT UNIQUE NOT NULL,
		genre_name TEXT UNIQUE NOT NULL,
		genre_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS artist (
		artist_uid TEXT UNIQUE NOT NULL,
		artist_name TEXT UNIQUE NOT NULL,
		artist_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS album (
		album_uid TEXT UNIQUE NOT NULL,
		album_name TEXT NOT NULL,
		album_description TEXT,
		artist_uid TEXT NOT NULL REFERENCES artist(artist_uid),
		genre_uid TEXT REFERENCES genre(genre_uid),
		UNIQUE (album_name, artist_uid)
	)`,
	`CREATE TABLE IF NOT EXISTS song (
		song_uid TEXT UNIQUE NOT NULL,
		file_time TEXT,
		origin_file_size INTEGER,
		stored_file_size INTEGER,
		pad_char_count INTEGER,
		artist_name TEXT,
		artist_uid TEXT REFERENCES artist(artist_uid),
		song_name TEXT NOT NULL,
		md5_hash TEXT NOT NULL,
		compressed INTEGER,
		encrypted INTEGER,
		container_name TEXT NOT NULL,
		object_name TEXT NOT NULL,
		album_uid TEXT REFERENCES album(album_uid)
	)`,
	`CREATE TABLE IF NOT EXISTS playlist (
		playlist_uid TEXT UNIQUE NOT NULL,
		playlist_name TEXT UNIQUE NOT NULL,
		playlist_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_song (
		playlist_song_uid TEXT UNIQUE NOT NULL,
		playlist_uid TEXT NOT NULL REFERENCES playlist(playlist_uid),
		song_uid TEXT NOT NULL REFERENCES song(song_uid),
		position INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_song_artist_name ON song(artist_name)`,
	`CREATE INDEX IF NOT EXISTS idx_playlist_song_playlist ON playlist_song(playlist_uid, position)`,
}

// songColumns is the column list matching scanSong.
const songColumns = `s.song_uid, s.file_time, s.origin_file_size, s.stored_file_size, s.pad_char_count,
	s.artist_name, s.artist_uid, s.song_name, s.md5_hash, s.compressed, s.encrypted,
	s.container_name, s.object_name, s.album_uid`
