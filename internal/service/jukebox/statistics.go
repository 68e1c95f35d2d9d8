package jukebox

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// ImportStatistics tracks the outcome of an import command.
type ImportStatistics struct {
	// StartTime is when the import began.
	StartTime time.Time
	// EndTime is when the import completed.
	EndTime time.Time
	// SongsImported is the number of songs uploaded and recorded in the catalog.
	SongsImported int64
	// SongsFailed is the number of songs that could not be imported.
	SongsFailed int64
	// CoversUploaded is the number of embedded cover images uploaded as album art.
	CoversUploaded int64
	// PlaylistsImported is the number of playlists imported.
	PlaylistsImported int64
	// PlaylistsFailed is the number of playlists that could not be imported.
	PlaylistsFailed int64
	// AlbumArtImported is the number of album art files imported.
	AlbumArtImported int64
	// AlbumArtFailed is the number of album art files that could not be imported.
	AlbumArtFailed int64
	// BytesUploaded is the total size of uploaded song content in bytes.
	BytesUploaded int64
	// UploadDuration is the cumulative time spent uploading songs.
	UploadDuration time.Duration
	// Errors is a list of all errors encountered during the import.
	Errors []ImportError
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// Statistics returns a copy of the import statistics.
func (j *Jukebox) Statistics() ImportStatistics {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	stats := *j.stats
	stats.Errors = append([]ImportError(nil), j.stats.Errors...)

	return stats
}

func (j *Jukebox) markImportStarted() {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	if j.stats.StartTime.IsZero() {
		j.stats.StartTime = time.Now()
	}
}

func (j *Jukebox) markImportFinished() {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	j.stats.EndTime = time.Now()
}

func (j *Jukebox) incrementSongImported(bytes int64, elapsed time.Duration) {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	j.stats.SongsImported++
	j.stats.BytesUploaded += bytes
	j.stats.UploadDuration += elapsed

	j.metrics.imports.WithLabelValues(string(ImportCategorySong), importResultSuccess).Inc()
	j.metrics.uploadedBytes.Add(float64(bytes))
}

func (j *Jukebox) incrementSongFailed() {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	j.stats.SongsFailed++

	j.metrics.imports.WithLabelValues(string(ImportCategorySong), importResultFailed).Inc()
}

func (j *Jukebox) incrementCoverUploaded() {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	j.stats.CoversUploaded++
}

func (j *Jukebox) incrementPlaylist(succeeded bool) {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	result := importResultSuccess
	if succeeded {
		j.stats.PlaylistsImported++
	} else {
		j.stats.PlaylistsFailed++
		result = importResultFailed
	}

	j.metrics.imports.WithLabelValues(string(ImportCategoryPlaylist), result).Inc()
}

func (j *Jukebox) incrementAlbumArt(succeeded bool) {
	j.statsMutex.Lock()
	defer j.statsMutex.Unlock()

	result := importResultSuccess
	if succeeded {
		j.stats.AlbumArtImported++
	} else {
		j.stats.AlbumArtFailed++
		result = importResultFailed
	}

	j.metrics.imports.WithLabelValues(string(ImportCategoryAlbumArt), result).Inc()
}

// PrintImportSummary prints a formatted summary of import statistics.
func (j *Jukebox) PrintImportSummary(ctx context.Context) {
	stats := j.Statistics()

	if stats.StartTime.IsZero() {
		return
	}

	wasInterrupted := ctx.Err() != nil

	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if wasInterrupted {
		logger.Info(ctx, "             IMPORT SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                      IMPORT SUMMARY")
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if stats.SongsImported > 0 || stats.SongsFailed > 0 {
		logger.Infof(ctx, "%d song files imported", stats.SongsImported)

		if stats.SongsFailed > 0 {
			logger.Infof(ctx, "  Failed:          %d", stats.SongsFailed)
		}

		if stats.CoversUploaded > 0 {
			logger.Infof(ctx, "  Covers Uploaded: %d", stats.CoversUploaded)
		}
	}

	if stats.PlaylistsImported > 0 || stats.PlaylistsFailed > 0 {
		logger.Infof(ctx, "%d playlists imported", stats.PlaylistsImported)

		if stats.PlaylistsFailed > 0 {
			logger.Infof(ctx, "  Failed:          %d", stats.PlaylistsFailed)
		}
	}

	if stats.AlbumArtImported > 0 || stats.AlbumArtFailed > 0 {
		logger.Infof(ctx, "%d album art files imported", stats.AlbumArtImported)

		if stats.AlbumArtFailed > 0 {
			logger.Infof(ctx, "  Failed:          %d", stats.AlbumArtFailed)
		}
	}

	if stats.BytesUploaded > 0 {
		logger.Info(ctx, "")
		logger.Infof(ctx, "Data Uploaded:    %s", humanize.Bytes(utils.SafeInt64ToUint64(stats.BytesUploaded)))

		if seconds := stats.UploadDuration.Seconds(); seconds > 0 {
			logger.Infof(ctx, "average upload throughput = %d KB/sec",
				int64(float64(stats.BytesUploaded)/1000/seconds))
		}
	}

	if !stats.EndTime.IsZero() {
		logger.Infof(ctx, "Duration:         %s", formatDuration(stats.EndTime.Sub(stats.StartTime)))
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if len(stats.Errors) > 0 {
		logger.Info(ctx, "")
		logger.Infof(ctx, "Errors (%d):", len(stats.Errors))

		for i := range stats.Errors {
			importErr := &stats.Errors[i]
			logger.Infof(ctx, "  [%s] %s (%s): %s",
				importErr.Category, importErr.Path, importErr.Phase, importErr.ErrorMessage)
		}
	}
}
