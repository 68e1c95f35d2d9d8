package jukebox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{duration: 250 * time.Millisecond, expected: "250ms"},
		{duration: 42 * time.Second, expected: "42s"},
		{duration: 3*time.Minute + 5*time.Second, expected: "3m 5s"},
		{duration: 2*time.Hour + time.Minute + time.Second, expected: "2h 1m 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}

// TestRecordErrorIgnoresCancellation tests that cancelled operations are not reported as import errors.
func TestRecordErrorIgnoresCancellation(t *testing.T) {
	t.Parallel()

	s := newTestJukeboxSetup(t)
	errCtx := &ErrorContext{Category: ImportCategorySong, Path: "/tmp/a.mp3", Phase: "uploading"}

	s.jukebox.recordError(errCtx, context.Canceled)
	s.jukebox.recordError(errCtx, nil)
	s.jukebox.recordError(nil, errBackendUnavailable)
	s.jukebox.recordError(errCtx, errors.Join(errBackendUnavailable))

	stats := s.jukebox.Statistics()
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, "/tmp/a.mp3", stats.Errors[0].Path)
	assert.Equal(t, errBackendUnavailable.Error(), stats.Errors[0].ErrorMessage)
}

// TestStatisticsReturnsCopy tests that callers can't modify the recorded errors.
func TestStatisticsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTestJukeboxSetup(t)
	s.jukebox.recordError(&ErrorContext{Category: ImportCategoryPlaylist}, errBackendUnavailable)

	stats := s.jukebox.Statistics()
	stats.Errors[0].ErrorMessage = "changed"

	assert.Equal(t, errBackendUnavailable.Error(), s.jukebox.Statistics().Errors[0].ErrorMessage)
}

// TestPrintImportSummary tests that printing a summary with errors completes.
func TestPrintImportSummary(t *testing.T) {
	t.Parallel()

	s := newTestJukeboxSetup(t)
	s.jukebox.markImportStarted()
	s.jukebox.incrementSongImported(2048, 10*time.Millisecond)
	s.jukebox.incrementSongFailed()
	s.jukebox.recordError(&ErrorContext{Category: ImportCategorySong, Path: "/tmp/b.mp3"}, errBackendUnavailable)
	s.jukebox.markImportFinished()

	assert.NotPanics(t, func() {
		s.jukebox.PrintImportSummary(t.Context())
	})

	stats := s.jukebox.Statistics()
	assert.Equal(t, int64(1), stats.SongsImported)
	assert.Equal(t, int64(1), stats.SongsFailed)
	assert.False(t, stats.EndTime.Before(stats.StartTime))
}
