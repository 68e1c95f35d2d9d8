package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComponentsFromFileName tests splitting object names into artist, album and song.
func TestComponentsFromFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fileName   string
		wantArtist string
		wantAlbum  string
		wantSong   string
		wantOK     bool
	}{
		{
			name:       "well formed",
			fileName:   "The-Beatles--Abbey-Road--Come-Together.mp3",
			wantArtist: "The Beatles",
			wantAlbum:  "Abbey Road",
			wantSong:   "Come Together",
			wantOK:     true,
		},
		{
			name:       "no extension",
			fileName:   "Queen--Jazz--Mustapha",
			wantArtist: "Queen",
			wantAlbum:  "Jazz",
			wantSong:   "Mustapha",
			wantOK:     true,
		},
		{
			name:     "two components",
			fileName: "Queen--Jazz.mp3",
		},
		{
			name:     "empty component",
			fileName: "Queen----Mustapha.flac",
		},
		{
			name: "empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			artist, album, song, ok := ComponentsFromFileName(tt.fileName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantArtist, artist)
			assert.Equal(t, tt.wantAlbum, album)
			assert.Equal(t, tt.wantSong, song)
		})
	}
}

// TestSongObjectName tests that building and splitting object names agree.
func TestSongObjectName(t *testing.T) {
	t.Parallel()

	objectName := SongObjectName("Pink Floyd", "The Wall", "Hey You", ".flac")
	assert.Equal(t, "Pink-Floyd--The-Wall--Hey-You.flac", objectName)

	assert.Equal(t, "Pink Floyd", ArtistFromFileName(objectName))
	assert.Equal(t, "The Wall", AlbumFromFileName(objectName))
	assert.Equal(t, "Hey You", SongFromFileName(objectName))
	assert.Equal(t, "Pink-Floyd--The-Wall", AlbumPrefix("Pink Floyd", "The Wall"))
}

// TestContainerForSong tests the container naming rule.
func TestContainerForSong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		songUID  string
		expected string
	}{
		{
			name:     "plain artist",
			songUID:  "Queen--Jazz--Mustapha.mp3",
			expected: "q-artist-songs",
		},
		{
			name:     "leading The",
			songUID:  "The-Beatles--Abbey-Road--Something.mp3",
			expected: "b-artist-songs",
		},
		{
			name:     "leading A",
			songUID:  "A-Perfect-Circle--Thirteenth-Step--Weak-and-Powerless.mp3",
			expected: "p-artist-songs",
		},
		{
			name:     "not a song name",
			songUID:  "cover.jpg",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ContainerForSong(tt.songUID))
		})
	}
}

// TestSongMetadataEqual tests structural equality of song records.
func TestSongMetadataEqual(t *testing.T) {
	t.Parallel()

	first := &SongMetadata{
		FM:         NewFileMetadata("a--b--c.mp3", "a-artist-songs", "a--b--c.mp3"),
		ArtistName: "a",
		SongName:   "c",
	}
	second := *first

	assert.True(t, first.Equal(&second))
	assert.Equal(t, "b", first.AlbumName())

	second.FM.MD5Hash = "changed"
	assert.False(t, first.Equal(&second))

	var nilSong *SongMetadata
	assert.False(t, first.Equal(nilSong))
	assert.True(t, nilSong.Equal(nil))
}
