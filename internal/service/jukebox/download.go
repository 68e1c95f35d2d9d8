package jukebox

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// DownloadSong retrieves a song into the play cache and reports whether it is now resident.
// The object is written under a provisional name and renamed only after every check passed,
// so a failed download never leaves a file under the final name.
func (j *Jukebox) DownloadSong(ctx context.Context, song *model.SongMetadata) bool {
	_, err := j.downloadSong(ctx, song)

	return err == nil
}

func (j *Jukebox) downloadSong(ctx context.Context, song *model.SongMetadata) (int64, error) {
	if j.exitRequested.Load() {
		j.metrics.downloads.WithLabelValues(downloadResultCanceled).Inc()

		return 0, ErrDownloadCanceled
	}

	finalPath := j.SongPath(song)
	provisionalPath := finalPath + constants.ExtensionDownload

	downloadSucceeded := false

	defer func() {
		if downloadSucceeded {
			return
		}

		if err := utils.RemoveIfExists(provisionalPath); err != nil {
			logger.Warnf(ctx, "Failed to remove provisional file '%s': %v", provisionalPath, err)
		}
	}()

	startTime := time.Now()

	bytesRetrieved, err := j.backend.GetObject(ctx, song.FM.ContainerName, song.FM.ObjectName, provisionalPath)
	if err != nil {
		j.metrics.downloads.WithLabelValues(downloadResultFailed).Inc()
		logger.Errorf(ctx, "Failed to download song '%s': %v", song.FM.FileUID, err)

		return 0, fmt.Errorf("failed to retrieve '%s' from '%s': %w", song.FM.ObjectName, song.FM.ContainerName, err)
	}

	j.metrics.downloadedBytes.Add(float64(bytesRetrieved))
	logger.Debugf(ctx, "bytes retrieved: %d in %s", bytesRetrieved, time.Since(startTime))

	if j.exitRequested.Load() {
		j.metrics.downloads.WithLabelValues(downloadResultCanceled).Inc()

		return 0, ErrDownloadCanceled
	}

	if j.cfg.IntegrityChecks {
		if err = j.checkIntegrity(ctx, song, provisionalPath, bytesRetrieved); err != nil {
			logger.Errorf(ctx, "Data integrity check failed for %s: %v", song.FM.FileUID, err)

			return 0, err
		}
	}

	if err = os.Rename(provisionalPath, finalPath); err != nil {
		j.metrics.downloads.WithLabelValues(downloadResultFailed).Inc()

		return 0, fmt.Errorf("failed to move '%s' into place: %w", provisionalPath, err)
	}

	downloadSucceeded = true

	j.metrics.downloads.WithLabelValues(downloadResultSuccess).Inc()

	return bytesRetrieved, nil
}

// checkIntegrity compares the retrieved byte count and MD5 hash with the catalog record.
func (j *Jukebox) checkIntegrity(
	ctx context.Context,
	song *model.SongMetadata,
	filePath string,
	bytesRetrieved int64,
) error {
	logger.Debugf(ctx, "verifying data integrity of %s", song.FM.FileUID)

	if bytesRetrieved != song.FM.StoredFileSize {
		j.metrics.downloads.WithLabelValues(downloadResultSizeMismatch).Inc()

		return fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesRetrieved,
			song.FM.StoredFileSize,
		)
	}

	md5Hash, err := utils.MD5ForFile(filePath)
	if err != nil {
		j.metrics.downloads.WithLabelValues(downloadResultFailed).Inc()

		return fmt.Errorf("failed to hash '%s': %w", filePath, err)
	}

	if !strings.EqualFold(md5Hash, song.FM.MD5Hash) {
		j.metrics.downloads.WithLabelValues(downloadResultMD5Mismatch).Inc()

		return fmt.Errorf("%w: md5 %s, expected %s", ErrIntegrityMismatch, md5Hash, song.FM.MD5Hash)
	}

	return nil
}
