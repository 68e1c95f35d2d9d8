package jukebox

import (
	"context"
	"crypto/md5" //nolint:gosec // MD5 is the content hash recorded in the catalog, not a security primitive.
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/metadata"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/storage"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

const (
	// fileTimeLayout is the format of FileMetadata.FileTime.
	fileTimeLayout = "2006-01-02 15:04:05"
	// propertyMD5 is the object property holding the content hash.
	propertyMD5 = "md5"
	// propertyContentType is the object property holding the MIME type.
	propertyContentType = "content-type"
)

// ImportSongs uploads every audio file of the song import directory and records it in the catalog.
// Files named "artist--album--song.ext" are named by their file name, others by their tags.
// When the catalog write fails the uploaded object is deleted again.
// The catalog database is uploaded when at least one song was imported.
func (j *Jukebox) ImportSongs(ctx context.Context) error {
	files, err := listImportFiles(j.cfg.SongImportDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Info(ctx, "no songs found to import")

		return nil
	}

	j.markImportStarted()
	defer j.markImportFinished()

	bar := newImportProgressBar(len(files), "Importing songs")

	for _, filePath := range files {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			goto finish
		default:
		}

		if err = j.importSong(ctx, filePath); err != nil {
			j.incrementSongFailed()
			logger.Errorf(ctx, "Failed to import '%s': %v", filePath, err)
		}

		_ = bar.Add(1)
	}

finish:
	_ = bar.Finish()

	if j.Statistics().SongsImported == 0 {
		return nil
	}

	return j.UploadMetadataDB(ctx)
}

func (j *Jukebox) importSong(ctx context.Context, filePath string) error {
	errCtx := &ErrorContext{
		Category: ImportCategorySong,
		Path:     filePath,
		Phase:    "naming",
	}

	song, tags, err := j.songFromFile(filePath)
	if err != nil {
		j.recordError(errCtx, err)

		return err
	}

	errCtx.ObjectName = song.FM.ObjectName
	errCtx.Phase = "reading"

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		j.recordError(errCtx, err)

		return err
	}

	hash := md5.Sum(data) //nolint:gosec // See the import comment.
	song.FM.StoredFileSize = int64(len(data))
	song.FM.MD5Hash = hex.EncodeToString(hash[:])

	errCtx.Phase = "uploading"

	if err = j.ensureContainer(ctx, song.FM.ContainerName); err != nil {
		j.recordError(errCtx, err)

		return err
	}

	startTime := time.Now()

	err = j.backend.PutObject(ctx, song.FM.ContainerName, song.FM.ObjectName, data, storage.Properties{
		propertyMD5: song.FM.MD5Hash,
	})
	if err != nil {
		err = fmt.Errorf("unable to upload '%s' to '%s': %w", song.FM.ObjectName, song.FM.ContainerName, err)
		j.recordError(errCtx, err)

		return err
	}

	elapsed := time.Since(startTime)

	errCtx.Phase = "storing metadata"

	if err = j.store.StoreSong(ctx, song); err != nil {
		logger.Errorf(ctx, "Unable to store metadata, deleting object %s", song.FM.ObjectName)

		if deleteErr := j.backend.DeleteObject(ctx, song.FM.ContainerName, song.FM.ObjectName); deleteErr != nil {
			logger.Errorf(ctx, "Failed to delete orphaned object '%s': %v", song.FM.ObjectName, deleteErr)
		}

		err = fmt.Errorf("unable to store metadata: %w", err)
		j.recordError(errCtx, err)

		return err
	}

	j.incrementSongImported(song.FM.StoredFileSize, elapsed)

	if tags != nil && tags.Cover != nil {
		j.uploadCover(ctx, song.ArtistName, song.AlbumName(), tags.Cover)
	}

	return nil
}

// songFromFile builds the catalog record of an import file. The tags are returned when they were read.
func (j *Jukebox) songFromFile(filePath string) (*model.SongMetadata, *SongTags, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, nil, err
	}

	fileName := filepath.Base(filePath)
	objectName := fileName

	tags, tagErr := j.tagReader.ReadTags(filePath)

	artist, album, songName, ok := model.ComponentsFromFileName(fileName)
	if !ok {
		if tagErr != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrNotImportable, tagErr)
		}

		artist, album, songName = cleanComponent(tags.Artist), cleanComponent(tags.Album), cleanComponent(tags.Title)
		if artist == "" || album == "" || songName == "" {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotImportable, filePath)
		}

		objectName = model.SongObjectName(artist, album, songName, strings.ToLower(filepath.Ext(fileName)))
	}

	container := model.ContainerForArtist(artist)
	if container == "" {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotImportable, filePath)
	}

	fm := model.NewFileMetadata(objectName, container, objectName)
	fm.OriginFileSize = info.Size()
	fm.FileTime = info.ModTime().Format(fileTimeLayout)

	song := &model.SongMetadata{
		FM:         fm,
		ArtistName: artist,
		SongName:   songName,
		ArtistUID:  metadata.ArtistUID(artist),
		AlbumUID:   metadata.AlbumUID(artist, album),
	}

	if tagErr != nil {
		tags = nil
	}

	return song, tags, nil
}

// cleanComponent makes a tag value safe to embed in an object name.
// Dashes separate components, so they become spaces.
func cleanComponent(value string) string {
	cleaned := strings.ReplaceAll(utils.SanitizeFilename(strings.TrimSpace(value)), "-", " ")

	return strings.Join(strings.Fields(cleaned), " ")
}

// uploadCover stores an embedded cover as the album art of an album unless one is already present.
func (j *Jukebox) uploadCover(ctx context.Context, artist, album string, cover *CoverArt) {
	if artist == "" || album == "" {
		return
	}

	objectName := model.AlbumPrefix(artist, album) + cover.Extension()

	_, err := j.backend.GetObjectMetadata(ctx, constants.AlbumArtContainer, objectName)
	if err == nil {
		return
	}

	if !errors.Is(err, storage.ErrObjectNotFound) && !errors.Is(err, storage.ErrContainerNotFound) {
		logger.Warnf(ctx, "Failed to check album art '%s': %v", objectName, err)

		return
	}

	if err = j.ensureContainer(ctx, constants.AlbumArtContainer); err != nil {
		logger.Warnf(ctx, "Failed to create the album art container: %v", err)

		return
	}

	err = j.backend.PutObject(ctx, constants.AlbumArtContainer, objectName, cover.Data, storage.Properties{
		propertyContentType: cover.MIMEType,
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to upload album art '%s': %v", objectName, err)

		return
	}

	logger.Debugf(ctx, "album art uploaded: %s", objectName)
	j.incrementCoverUploaded()
}

// ImportPlaylists uploads every playlist document of the playlist import directory and records it in the catalog.
// Songs are resolved by artist, album and song name; unknown songs are skipped.
func (j *Jukebox) ImportPlaylists(ctx context.Context) error {
	files, err := listImportFiles(j.cfg.PlaylistImportDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Info(ctx, "no playlists found")

		return nil
	}

	j.markImportStarted()
	defer j.markImportFinished()

	if err = j.ensureContainer(ctx, constants.PlaylistContainer); err != nil {
		return fmt.Errorf("unable to create container for playlists: %w", err)
	}

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}

		err = j.importPlaylist(ctx, filePath)
		if err != nil {
			logger.Errorf(ctx, "Failed to import playlist '%s': %v", filePath, err)
			j.recordError(&ErrorContext{
				Category:   ImportCategoryPlaylist,
				Path:       filePath,
				ObjectName: filepath.Base(filePath),
				Phase:      "importing",
			}, err)
		}

		j.incrementPlaylist(err == nil)
	}

	if j.Statistics().PlaylistsImported == 0 {
		logger.Info(ctx, "no files imported")

		return nil
	}

	return j.UploadMetadataDB(ctx)
}

func (j *Jukebox) importPlaylist(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return err
	}

	var playlist model.Playlist

	// YAML is a superset of JSON, so both playlist formats decode here.
	if err = yaml.Unmarshal(data, &playlist); err != nil {
		return fmt.Errorf("failed to parse playlist: %w", err)
	}

	playlist.Name = strings.TrimSpace(playlist.Name)
	if playlist.Name == "" {
		return ErrEmptyPlaylist
	}

	songUIDs := make([]string, 0, len(playlist.Songs))

	for _, entry := range playlist.Songs {
		song, findErr := j.store.FindSong(ctx, entry.Artist, entry.Album, entry.Song)
		if findErr != nil {
			logger.Warnf(ctx, "Playlist '%s': skipping '%s': %v", playlist.Name, entry.ObjectPrefix(), findErr)

			continue
		}

		songUIDs = append(songUIDs, song.FM.FileUID)
	}

	objectName := filepath.Base(filePath)

	err = j.backend.PutObject(ctx, constants.PlaylistContainer, objectName, data, storage.Properties{
		propertyContentType: mime.TypeByExtension(filepath.Ext(objectName)),
	})
	if err != nil {
		return fmt.Errorf("unable to upload playlist: %w", err)
	}

	err = j.store.InsertPlaylist(ctx, objectName, playlist.Name, playlist.Tags)
	if err == nil {
		err = j.store.SetPlaylistSongs(ctx, objectName, songUIDs)
		if err != nil {
			if deleteErr := j.store.DeletePlaylist(ctx, playlist.Name); deleteErr != nil {
				logger.Warnf(ctx, "Failed to remove incomplete playlist '%s': %v", playlist.Name, deleteErr)
			}
		}
	}

	if err != nil {
		logger.Errorf(ctx, "Storing of playlist to db failed, deleting object %s", objectName)

		if deleteErr := j.backend.DeleteObject(ctx, constants.PlaylistContainer, objectName); deleteErr != nil {
			logger.Errorf(ctx, "Failed to delete orphaned object '%s': %v", objectName, deleteErr)
		}

		return fmt.Errorf("unable to store playlist: %w", err)
	}

	logger.Infof(ctx, "playlist '%s' imported with %d songs", playlist.Name, len(songUIDs))

	return nil
}

// ImportAlbumArt uploads every image of the album art import directory.
func (j *Jukebox) ImportAlbumArt(ctx context.Context) error {
	files, err := listImportFiles(j.cfg.AlbumArtImportDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Info(ctx, "no album art found")

		return nil
	}

	j.markImportStarted()
	defer j.markImportFinished()

	if err = j.ensureContainer(ctx, constants.AlbumArtContainer); err != nil {
		return fmt.Errorf("unable to create container for album art: %w", err)
	}

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}

		objectName := filepath.Base(filePath)

		err = j.importAlbumArtFile(ctx, filePath, objectName)
		if err != nil {
			logger.Errorf(ctx, "Failed to import album art '%s': %v", filePath, err)
			j.recordError(&ErrorContext{
				Category:   ImportCategoryAlbumArt,
				Path:       filePath,
				ObjectName: objectName,
				Phase:      "uploading",
			}, err)
		}

		j.incrementAlbumArt(err == nil)
	}

	if j.Statistics().AlbumArtImported == 0 {
		logger.Info(ctx, "no files imported")
	}

	return nil
}

func (j *Jukebox) importAlbumArtFile(ctx context.Context, filePath, objectName string) error {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return err
	}

	return j.backend.PutObject(ctx, constants.AlbumArtContainer, objectName, data, storage.Properties{
		propertyContentType: mime.TypeByExtension(filepath.Ext(objectName)),
	})
}

// ensureContainer creates a container unless it already exists.
func (j *Jukebox) ensureContainer(ctx context.Context, containerName string) error {
	exists, err := j.backend.HasContainer(ctx, containerName)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return j.backend.CreateContainer(ctx, containerName)
}

// listImportFiles returns the non-empty regular files with an extension in dir.
func listImportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read import directory '%s': %w", dir, err)
	}

	entries = lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) == "" {
			return false
		}

		info, infoErr := entry.Info()

		return infoErr == nil && info.Size() > 0
	})

	return lo.Map(entries, func(entry os.DirEntry, _ int) string {
		return filepath.Join(dir, entry.Name())
	}), nil
}

func newImportProgressBar(count int, description string) *progressbar.ProgressBar {
	if logger.IsDebugLevel() {
		return progressbar.DefaultSilent(int64(count), description)
	}

	return progressbar.Default(int64(count), description)
}
