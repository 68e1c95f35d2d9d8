package jukebox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/cloud-jukebox/internal/constants"
)

// ErrNoTags indicates that the file carries none of the tags needed to name a song.
var ErrNoTags = errors.New("no artist, album and title tags")

// SongTags are the tag fields used to name an imported song.
type SongTags struct {
	Artist string
	Album  string
	Title  string
	Genre  string
	// Cover is the embedded front cover, if any.
	Cover *CoverArt
}

// CoverArt is an embedded cover image.
type CoverArt struct {
	MIMEType string
	Data     []byte
}

// Extension returns the file extension matching the image type.
func (c *CoverArt) Extension() string {
	if strings.Contains(strings.ToLower(c.MIMEType), "png") {
		return constants.ExtensionPNG
	}

	return constants.ExtensionJPG
}

// TagReader reads song tags from audio files.
type TagReader interface {
	// ReadTags returns the tags of the audio file at path.
	ReadTags(path string) (*SongTags, error)
}

// TagReaderImpl reads ID3v2 tags of MP3 files, Vorbis comments of FLAC files
// and the common tag formats of everything else.
type TagReaderImpl struct{}

// NewTagReader creates a new tag reader.
func NewTagReader() TagReader {
	return &TagReaderImpl{}
}

// ReadTags returns the tags of the audio file at path.
func (tr *TagReaderImpl) ReadTags(path string) (*SongTags, error) {
	var (
		tags *SongTags
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtensionMP3:
		tags, err = tr.readMP3Tags(path)
	case constants.ExtensionFLAC:
		tags, err = tr.readFLACTags(path)
	default:
		tags, err = tr.readGenericTags(path)
	}

	if err != nil {
		return nil, err
	}

	if tags.Artist == "" || tags.Album == "" || tags.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoTags, path)
	}

	return tags, nil
}

func (tr *TagReaderImpl) readMP3Tags(path string) (*SongTags, error) {
	mp3Tag, err := id3v2.Open(filepath.Clean(path), id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read ID3 tags: %w", err)
	}

	defer mp3Tag.Close() //nolint:errcheck // Error on close is not critical here.

	tags := &SongTags{
		Artist: strings.TrimSpace(mp3Tag.Artist()),
		Album:  strings.TrimSpace(mp3Tag.Album()),
		Title:  strings.TrimSpace(mp3Tag.Title()),
		Genre:  strings.TrimSpace(mp3Tag.Genre()),
	}

	for _, frame := range mp3Tag.GetFrames(mp3Tag.CommonID("Attached picture")) {
		picture, ok := frame.(id3v2.PictureFrame)
		if !ok || len(picture.Picture) == 0 {
			continue
		}

		tags.Cover = &CoverArt{
			MIMEType: picture.MimeType,
			Data:     picture.Picture,
		}

		if picture.PictureType == id3v2.PTFrontCover {
			break
		}
	}

	return tags, nil
}

func (tr *TagReaderImpl) readFLACTags(path string) (*SongTags, error) {
	f, err := flac.ParseFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	tags := new(SongTags)

	for _, meta := range f.Meta {
		switch meta.Type {
		case flac.VorbisComment:
			comment, parseErr := flacvorbis.ParseFromMetaDataBlock(*meta)
			if parseErr != nil {
				continue
			}

			tags.Artist = firstComment(comment, flacvorbis.FIELD_ARTIST)
			tags.Album = firstComment(comment, flacvorbis.FIELD_ALBUM)
			tags.Title = firstComment(comment, flacvorbis.FIELD_TITLE)
			tags.Genre = firstComment(comment, flacvorbis.FIELD_GENRE)
		case flac.Picture:
			picture, parseErr := flacpicture.ParseFromMetaDataBlock(*meta)
			if parseErr != nil || len(picture.ImageData) == 0 {
				continue
			}

			if tags.Cover == nil || picture.PictureType == flacpicture.PictureTypeFrontCover {
				tags.Cover = &CoverArt{
					MIMEType: picture.MIME,
					Data:     picture.ImageData,
				}
			}
		default:
		}
	}

	return tags, nil
}

func firstComment(comment *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := comment.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}

	return strings.TrimSpace(values[0])
}

func (tr *TagReaderImpl) readGenericTags(path string) (*SongTags, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	fileTags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	tags := &SongTags{
		Artist: strings.TrimSpace(fileTags.Artist()),
		Album:  strings.TrimSpace(fileTags.Album()),
		Title:  strings.TrimSpace(fileTags.Title()),
		Genre:  strings.TrimSpace(fileTags.Genre()),
	}

	if tags.Artist == "" {
		tags.Artist = strings.TrimSpace(fileTags.AlbumArtist())
	}

	if picture := fileTags.Picture(); picture != nil && len(picture.Data) > 0 {
		tags.Cover = &CoverArt{
			MIMEType: picture.MIMEType,
			Data:     picture.Data,
		}
	}

	return tags, nil
}
