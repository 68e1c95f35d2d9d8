package model

import (
	"strings"
	"unicode/utf8"
)

const (
	// componentSeparator separates artist, album and song in an object name.
	componentSeparator = "--"
	// artistSongsSuffix is appended to the artist letter to form a song container name.
	artistSongsSuffix = "-artist-songs"
)

// EncodeValue encodes spaces as dashes so a value can be embedded in an object name.
func EncodeValue(value string) string {
	return strings.ReplaceAll(value, " ", "-")
}

// DecodeValue reverses EncodeValue.
func DecodeValue(encoded string) string {
	return strings.ReplaceAll(encoded, "-", " ")
}

// SongObjectName builds "artist--album--song<ext>" from decoded components.
func SongObjectName(artist, album, song, extension string) string {
	return EncodeValue(artist) + componentSeparator +
		EncodeValue(album) + componentSeparator +
		EncodeValue(song) + extension
}

// AlbumPrefix builds the "artist--album" prefix shared by every song of an album.
func AlbumPrefix(artist, album string) string {
	return EncodeValue(artist) + componentSeparator + EncodeValue(album)
}

// ComponentsFromFileName splits "artist--album--song.ext" into its decoded components.
// ok is false when the name does not follow the convention.
func ComponentsFromFileName(fileName string) (artist, album, song string, ok bool) {
	if fileName == "" {
		return "", "", "", false
	}

	baseName := fileName
	if pos := strings.Index(fileName, "."); pos > -1 {
		baseName = fileName[:pos]
	}

	components := strings.Split(baseName, componentSeparator)
	if len(components) != 3 {
		return "", "", "", false
	}

	artist = DecodeValue(components[0])
	album = DecodeValue(components[1])
	song = DecodeValue(components[2])

	if artist == "" || album == "" || song == "" {
		return "", "", "", false
	}

	return artist, album, song, true
}

// ArtistFromFileName returns the decoded artist component of a file name.
func ArtistFromFileName(fileName string) string {
	artist, _, _, _ := ComponentsFromFileName(fileName)

	return artist
}

// AlbumFromFileName returns the decoded album component of a file name.
func AlbumFromFileName(fileName string) string {
	_, album, _, _ := ComponentsFromFileName(fileName)

	return album
}

// SongFromFileName returns the decoded song component of a file name.
func SongFromFileName(fileName string) string {
	_, _, song, _ := ComponentsFromFileName(fileName)

	return song
}

// ContainerForArtist returns the song container for an artist:
// the first letter of the name, ignoring a leading "A " or "The ", lower-cased, plus "-artist-songs".
func ContainerForArtist(artist string) string {
	name := artist

	switch {
	case strings.HasPrefix(name, "A ") && len(name) > len("A "):
		name = name[len("A "):]
	case strings.HasPrefix(name, "The ") && len(name) > len("The "):
		name = name[len("The "):]
	}

	letter, size := utf8.DecodeRuneInString(name)
	if size == 0 || letter == utf8.RuneError {
		return ""
	}

	return strings.ToLower(string(letter)) + artistSongsSuffix
}

// ContainerForSong returns the song container for a song object name.
func ContainerForSong(songUID string) string {
	artist := ArtistFromFileName(songUID)
	if artist == "" {
		return ""
	}

	return ContainerForArtist(artist)
}
