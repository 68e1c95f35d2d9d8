package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/cloud-jukebox/internal/logger"
)

// TestNewLogTransportDefaults tests that a zero limit falls back to the default.
func TestNewLogTransportDefaults(t *testing.T) {
	t.Parallel()

	transport, ok := NewLogTransport(http.DefaultTransport, 0).(*LogTransport)
	require.True(t, ok)
	assert.Equal(t, DefaultMaxLogLength, transport.maxLogLength)

	transport, ok = NewLogTransport(http.DefaultTransport, 10).(*LogTransport)
	require.True(t, ok)
	assert.Equal(t, uint64(10), transport.maxLogLength)
}

// TestLogTransportNilRequest tests that a nil request is rejected.
func TestLogTransportNilRequest(t *testing.T) {
	t.Parallel()

	transport := NewLogTransport(http.DefaultTransport, 0)

	//nolint:bodyclose // No response is returned for a nil request.
	_, err := transport.RoundTrip(nil)
	require.ErrorIs(t, err, ErrNilRequest)
}

// TestSplitObjectPath tests splitting path-style URLs.
func TestSplitObjectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path           string
		expectedBucket string
		expectedObject string
	}{
		{
			path:           "/com.swampbits.jukebox.b-artist-songs/The-Beatles--Abbey-Road--Something.mp3",
			expectedBucket: "com.swampbits.jukebox.b-artist-songs",
			expectedObject: "The-Beatles--Abbey-Road--Something.mp3",
		},
		{
			path:           "/com.swampbits.jukebox.music-metadata/",
			expectedBucket: "com.swampbits.jukebox.music-metadata",
		},
		{
			path: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			bucket, object := SplitObjectPath(tt.path)
			assert.Equal(t, tt.expectedBucket, bucket)
			assert.Equal(t, tt.expectedObject, object)
		})
	}
}

// TestLogTransportRoundTrip tests the request line and the error dump at debug level.
//
//nolint:paralleltest // Changes the global logger and log level.
func TestLogTransportRoundTrip(t *testing.T) {
	previousLevel := logger.Level()
	previousLogger := logger.Logger()

	core, logs := observer.New(zapcore.DebugLevel)

	logger.SetLevel(zap.DebugLevel)
	logger.SetLogger(zap.New(core).Sugar())

	t.Cleanup(func() {
		logger.SetLevel(previousLevel)
		logger.SetLogger(previousLogger)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<Error><Code>NoSuchKey</Code></Error>"))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewLogTransport(http.DefaultTransport, 0)}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL+"/songs/a.mp3", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test response body.

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NoSuchKey")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "storage request", entries[0].Message)
	assert.Equal(t, "songs", fields["bucket"])
	assert.Equal(t, "a.mp3", fields["object"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.Contains(t, entries[1].Message, "NoSuchKey")
}

// TestLogTransportTruncate tests the dump truncation.
func TestLogTransportTruncate(t *testing.T) {
	t.Parallel()

	transport := &LogTransport{maxLogLength: 5}

	assert.Equal(t, "abc", transport.truncate([]byte("abc")))
	assert.True(t, strings.HasSuffix(transport.truncate([]byte("abcdefgh")), "... [truncated]"))
	assert.True(t, strings.HasPrefix(transport.truncate([]byte("abcdefgh")), "abcde"))
}

// TestContentSize tests the human-readable sizes in the request line.
func TestContentSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", contentSize(-1))
	assert.Equal(t, "0 B", contentSize(0))
	assert.Equal(t, "2.0 kB", contentSize(2000))
}
