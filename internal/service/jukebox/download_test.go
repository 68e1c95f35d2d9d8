package jukebox

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/storage"
)

// TestDownloadSong tests the download and integrity check of a single song.
func TestDownloadSong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		integrityChecks bool
		exitRequested   bool
		// transform changes the bytes the backend returns; nil serves the original content.
		transform      func([]byte) []byte
		backendErr     error
		expectedResult bool
		expectedLabel  string
	}{
		{
			name:            "exact content passes integrity checks",
			integrityChecks: true,
			expectedResult:  true,
			expectedLabel:   downloadResultSuccess,
		},
		{
			name:            "truncated content is rejected",
			integrityChecks: true,
			transform: func(content []byte) []byte {
				return content[:len(content)-1]
			},
			expectedLabel: downloadResultSizeMismatch,
		},
		{
			name:            "corrupted content is rejected",
			integrityChecks: true,
			transform: func(content []byte) []byte {
				corrupted := append([]byte(nil), content...)
				corrupted[0] ^= 0xFF

				return corrupted
			},
			expectedLabel: downloadResultMD5Mismatch,
		},
		{
			name: "size mismatch is accepted without integrity checks",
			transform: func(content []byte) []byte {
				return content[:len(content)/2]
			},
			expectedResult: true,
			expectedLabel:  downloadResultSuccess,
		},
		{
			name:          "backend failure",
			backendErr:    storage.ErrObjectNotFound,
			expectedLabel: downloadResultFailed,
		},
		{
			name:          "exit requested before the download",
			exitRequested: true,
			expectedLabel: downloadResultCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestJukeboxSetup(t, func(cfg *config.Config) {
				cfg.IntegrityChecks = tt.integrityChecks
			})

			song := newTestSongs(1)[0]
			content := songContent(song)

			if tt.transform != nil {
				content = tt.transform(content)
			}

			switch {
			case tt.exitRequested:
				s.jukebox.requestExit()
			case tt.backendErr != nil:
				s.backend.EXPECT().
					GetObject(gomock.Any(), song.FM.ContainerName, song.FM.ObjectName, gomock.Any()).
					Return(int64(0), tt.backendErr)
			default:
				s.backend.EXPECT().
					GetObject(gomock.Any(), song.FM.ContainerName, song.FM.ObjectName,
						s.cachePath(song)+constants.ExtensionDownload).
					DoAndReturn(serveObject(content))
			}

			result := s.jukebox.DownloadSong(t.Context(), song)
			assert.Equal(t, tt.expectedResult, result)

			_, err := os.Stat(s.cachePath(song))
			if tt.expectedResult {
				require.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, os.ErrNotExist), "no file may remain under the final name")
			}

			_, err = os.Stat(s.cachePath(song) + constants.ExtensionDownload)
			assert.True(t, errors.Is(err, os.ErrNotExist), "provisional file must not remain")

			assert.InDelta(t, 1, testutil.ToFloat64(s.jukebox.metrics.downloads.WithLabelValues(tt.expectedLabel)), 0)
		})
	}
}

// TestDownloadSongExitDuringTransfer tests that a download finished after exit was requested is discarded.
func TestDownloadSongExitDuringTransfer(t *testing.T) {
	t.Parallel()

	s := newTestJukeboxSetup(t)
	song := newTestSongs(1)[0]

	s.backend.EXPECT().
		GetObject(gomock.Any(), song.FM.ContainerName, song.FM.ObjectName, gomock.Any()).
		DoAndReturn(func(ctx context.Context, container, object, localFilePath string) (int64, error) {
			s.jukebox.requestExit()

			return serveObject(songContent(song))(ctx, container, object, localFilePath)
		})

	_, err := s.jukebox.downloadSong(t.Context(), song)
	require.ErrorIs(t, err, ErrDownloadCanceled)
	assert.Equal(t, 0, s.residentFiles(t))
}
