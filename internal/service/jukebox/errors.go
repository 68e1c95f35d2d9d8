package jukebox

import (
	"context"
	"errors"
)

// Common errors for the jukebox service.
var (
	// ErrNoSongs indicates that the play order is empty.
	ErrNoSongs = errors.New("no songs to play")
	// ErrNoAudioPlayer indicates that no audio player is configured for this operating system.
	ErrNoAudioPlayer = errors.New("no audio player configured for this operating system")
	// ErrFirstSongDownload indicates that the first song of the play order could not be downloaded.
	ErrFirstSongDownload = errors.New("unable to download the first song")
	// ErrDownloadCanceled indicates that a download was abandoned because exit was requested.
	ErrDownloadCanceled = errors.New("download canceled")
	// ErrIncompleteDownload indicates that the downloaded file size doesn't match the stored size.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrIntegrityMismatch indicates that the MD5 hash of a downloaded file doesn't match the catalog.
	ErrIntegrityMismatch = errors.New("data integrity check failed")
	// ErrPlayerStart indicates that the external audio player could not be started.
	ErrPlayerStart = errors.New("unable to start audio player")
	// ErrInvalidAlbumArgument indicates an album argument not in "artist--album" form.
	ErrInvalidAlbumArgument = errors.New("album must be given as artist--album")
	// ErrNotImportable indicates a file whose artist, album and song could not be determined.
	ErrNotImportable = errors.New("unable to determine artist, album and song")
	// ErrEmptyPlaylist indicates a playlist document without a name.
	ErrEmptyPlaylist = errors.New("playlist has no name")
)

// ImportCategory is the kind of item an import error refers to.
type ImportCategory string

const (
	// ImportCategorySong is an audio file.
	ImportCategorySong ImportCategory = "song"
	// ImportCategoryPlaylist is a playlist document.
	ImportCategoryPlaylist ImportCategory = "playlist"
	// ImportCategoryAlbumArt is a cover image.
	ImportCategoryAlbumArt ImportCategory = "album art"
)

// ErrorContext provides context information for import errors.
type ErrorContext struct {
	// Category is the type of item that failed.
	Category ImportCategory
	// Path is the local file being imported.
	Path string
	// ObjectName is the target object name, when already known.
	ObjectName string
	// Phase indicates when the error occurred (e.g., "uploading", "storing metadata").
	Phase string
}

// ImportError represents a single error that occurred during an import.
type ImportError struct {
	ErrorContext

	// ErrorMessage is the error text.
	ErrorMessage string
}

// recordError records an error in the import statistics with proper context.
// Context cancellation errors are ignored as they are expected during graceful shutdown.
func (j *Jukebox) recordError(errCtx *ErrorContext, err error) {
	if errCtx == nil || err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	j.stats.Errors = append(j.stats.Errors, ImportError{
		ErrorContext: *errCtx,
		ErrorMessage: err.Error(),
	})
}
