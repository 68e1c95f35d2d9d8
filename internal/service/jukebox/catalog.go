package jukebox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/storage"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// albumSeparator separates artist and album in an album argument.
const albumSeparator = "--"

// DownloadMetadataDB replaces the local catalog database with the copy in the metadata container.
// A missing container or object is not an error: the session starts with the local database.
func DownloadMetadataDB(ctx context.Context, cfg *config.Config, backend storage.Backend) error {
	exists, err := backend.HasContainer(ctx, constants.MetadataContainer)
	if err != nil {
		return fmt.Errorf("failed to check the metadata container: %w", err)
	}

	if !exists {
		logger.Info(ctx, "no metadata container in storage system")

		return nil
	}

	downloadFile := cfg.MetadataDBFile + constants.ExtensionDownload
	logger.Debugf(ctx, "downloading metadata DB to %s", downloadFile)

	_, err = backend.GetObject(ctx, constants.MetadataContainer, config.MetadataDBFilename, downloadFile)
	if errors.Is(err, storage.ErrObjectNotFound) {
		logger.Info(ctx, "no metadata DB file in metadata container")

		return nil
	}

	if err != nil {
		_ = utils.RemoveIfExists(downloadFile)

		return fmt.Errorf("unable to retrieve metadata DB file: %w", err)
	}

	if err = os.Rename(downloadFile, cfg.MetadataDBFile); err != nil {
		return fmt.Errorf("failed to replace the metadata DB file: %w", err)
	}

	return nil
}

// UploadMetadataDB stores the local catalog database in the metadata container.
func (j *Jukebox) UploadMetadataDB(ctx context.Context) error {
	if err := j.ensureContainer(ctx, constants.MetadataContainer); err != nil {
		return fmt.Errorf("unable to create the metadata container: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(j.cfg.MetadataDBFile))
	if err != nil {
		return fmt.Errorf("failed to read the metadata DB file: %w", err)
	}

	logger.Debug(ctx, "uploading metadata db file to storage system")

	err = j.backend.PutObject(ctx, constants.MetadataContainer, config.MetadataDBFilename, data, nil)
	if err != nil {
		return fmt.Errorf("unable to upload metadata db file: %w", err)
	}

	logger.Debug(ctx, "metadata db file uploaded")

	return nil
}

// ListContainers returns the containers of the storage backend.
func (j *Jukebox) ListContainers(ctx context.Context) ([]string, error) {
	return j.backend.ListContainers(ctx)
}

// ShowPlaylist returns the songs of a playlist in playlist order.
func (j *Jukebox) ShowPlaylist(ctx context.Context, name string) ([]*model.SongMetadata, error) {
	if _, err := j.store.GetPlaylist(ctx, name); err != nil {
		return nil, err
	}

	return j.store.PlaylistSongs(ctx, name)
}

// DeleteSong removes a song from the catalog and its object from the backend,
// then uploads the catalog database.
// It succeeds when either removal succeeded.
func (j *Jukebox) DeleteSong(ctx context.Context, songUID string) error {
	return j.deleteSong(ctx, songUID, true)
}

func (j *Jukebox) deleteSong(ctx context.Context, songUID string, uploadMetadata bool) error {
	if songUID == "" {
		return ErrNoSongs
	}

	dbErr := j.store.DeleteSong(ctx, songUID)

	storageErr := storage.ErrEmptyContainerName
	if container := model.ContainerForSong(songUID); container != "" {
		storageErr = j.backend.DeleteObject(ctx, container, songUID)
	}

	if dbErr != nil && storageErr != nil {
		return errors.Join(dbErr, storageErr)
	}

	if dbErr != nil {
		logger.Warnf(ctx, "Song '%s' was not in the catalog: %v", songUID, dbErr)
	}

	if storageErr != nil {
		logger.Warnf(ctx, "Song object '%s' was not deleted: %v", songUID, storageErr)
	}

	if dbErr == nil && uploadMetadata {
		return j.UploadMetadataDB(ctx)
	}

	return nil
}

// DeleteArtist removes every song of an artist, then uploads the catalog database.
func (j *Jukebox) DeleteArtist(ctx context.Context, artist string) error {
	songs, err := j.store.SongsForArtist(ctx, artist)
	if err != nil {
		return err
	}

	if len(songs) == 0 {
		return fmt.Errorf("%w for artist '%s'", ErrNoSongs, artist)
	}

	for _, song := range songs {
		if err = j.deleteSong(ctx, song.FM.ObjectName, false); err != nil {
			return fmt.Errorf("error deleting song '%s': %w", song.FM.ObjectName, err)
		}
	}

	return j.UploadMetadataDB(ctx)
}

// DeleteAlbum removes every song of an album given as "artist--album", then uploads the catalog database.
func (j *Jukebox) DeleteAlbum(ctx context.Context, album string) error {
	encodedArtist, encodedAlbum, found := strings.Cut(album, albumSeparator)
	if !found || encodedArtist == "" || encodedAlbum == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidAlbumArgument, album)
	}

	artist := model.DecodeValue(encodedArtist)
	albumName := model.DecodeValue(encodedAlbum)

	songs, err := j.store.SongsForAlbum(ctx, artist, albumName)
	if err != nil {
		return err
	}

	if len(songs) == 0 {
		return fmt.Errorf("%w for artist '%s' album '%s'", ErrNoSongs, artist, albumName)
	}

	deleted := 0

	for _, song := range songs {
		logger.Infof(ctx, "%s %s", song.FM.ContainerName, song.FM.ObjectName)

		err = j.backend.DeleteObject(ctx, song.FM.ContainerName, song.FM.ObjectName)
		if err != nil {
			logger.Errorf(ctx, "Unable to delete song %s: %v", song.FM.ObjectName, err)

			continue
		}

		deleted++

		if err = j.store.DeleteSong(ctx, song.FM.FileUID); err != nil {
			logger.Warnf(ctx, "Failed to delete song metadata of %s: %v", song.FM.FileUID, err)
		}
	}

	if deleted == 0 {
		return fmt.Errorf("unable to delete any song of album '%s'", album)
	}

	return j.UploadMetadataDB(ctx)
}

// DeletePlaylist removes a playlist from the catalog and its document from the backend,
// then uploads the catalog database.
func (j *Jukebox) DeletePlaylist(ctx context.Context, name string) error {
	playlist, err := j.store.GetPlaylist(ctx, name)
	if err != nil {
		return err
	}

	if err = j.store.DeletePlaylist(ctx, name); err != nil {
		return fmt.Errorf("database delete failed: %w", err)
	}

	logger.Infof(ctx, "container=%s, object=%s", constants.PlaylistContainer, playlist.PlaylistUID)

	if err = j.backend.DeleteObject(ctx, constants.PlaylistContainer, playlist.PlaylistUID); err != nil {
		return fmt.Errorf("object delete failed: %w", err)
	}

	return j.UploadMetadataDB(ctx)
}

// RetrieveCatalog downloads every object of the metadata container into destDir
// and returns the number of files written.
func (j *Jukebox) RetrieveCatalog(ctx context.Context, destDir string) (int, error) {
	objects, err := j.backend.ListObjects(ctx, constants.MetadataContainer)
	if err != nil {
		return 0, fmt.Errorf("failed to list the metadata container: %w", err)
	}

	if err = os.MkdirAll(destDir, constants.DefaultFolderPermissions); err != nil {
		return 0, err
	}

	retrieved := 0

	for _, objectName := range objects {
		localPath := filepath.Join(destDir, utils.SanitizeFilename(objectName))

		bytesRetrieved, getErr := j.backend.GetObject(ctx, constants.MetadataContainer, objectName, localPath)
		if getErr != nil {
			return retrieved, fmt.Errorf("failed to retrieve '%s': %w", objectName, getErr)
		}

		logger.Infof(ctx, "retrieved %s (%d bytes)", localPath, bytesRetrieved)

		retrieved++
	}

	return retrieved, nil
}
