package jukebox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oshokin/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/cloud-jukebox/internal/constants"
)

// writeTaggedMP3 creates an MP3 file carrying ID3v2 tags.
func writeTaggedMP3(t *testing.T, path, artist, album, title string, cover []byte) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte("not really mpeg frames"), constants.DefaultFilePermissions))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)

	defer tag.Close() //nolint:errcheck // Error on close is not critical here.

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	tag.SetTitle(title)

	if cover != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     cover,
		})
	}

	require.NoError(t, tag.Save())
}

// TestReadTagsMP3 tests reading ID3v2 tags and the embedded cover.
func TestReadTagsMP3(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "song.mp3")
	cover := []byte("\x89PNG cover")
	writeTaggedMP3(t, path, "The Beatles", "Abbey Road", " Something ", cover)

	tags, err := NewTagReader().ReadTags(path)
	require.NoError(t, err)

	assert.Equal(t, "The Beatles", tags.Artist)
	assert.Equal(t, "Abbey Road", tags.Album)
	assert.Equal(t, "Something", tags.Title)
	require.NotNil(t, tags.Cover)
	assert.Equal(t, cover, tags.Cover.Data)
	assert.Equal(t, constants.ExtensionPNG, tags.Cover.Extension())
}

// TestReadTagsIncomplete tests that files without complete tags are rejected.
func TestReadTagsIncomplete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	untitled := filepath.Join(dir, "untitled.mp3")
	writeTaggedMP3(t, untitled, "The Beatles", "Abbey Road", "", nil)

	_, err := NewTagReader().ReadTags(untitled)
	require.ErrorIs(t, err, ErrNoTags)

	bare := filepath.Join(dir, "bare.mp3")
	require.NoError(t, os.WriteFile(bare, []byte("no tags at all"), constants.DefaultFilePermissions))

	_, err = NewTagReader().ReadTags(bare)
	require.ErrorIs(t, err, ErrNoTags)
}

// TestReadTagsUnreadable tests that files no tag format recognizes return an error.
func TestReadTagsUnreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"song.flac", "song.ogg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("garbage"), constants.DefaultFilePermissions))

		_, err := NewTagReader().ReadTags(path)
		require.Error(t, err, name)
	}
}

// TestCoverArtExtension tests the file extension chosen for a cover image.
func TestCoverArtExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, constants.ExtensionPNG, (&CoverArt{MIMEType: "image/PNG"}).Extension())
	assert.Equal(t, constants.ExtensionJPG, (&CoverArt{MIMEType: "image/jpeg"}).Extension())
	assert.Equal(t, constants.ExtensionJPG, (&CoverArt{}).Extension())
}
