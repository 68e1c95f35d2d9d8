package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/constants"
)

const testBaseConfigContent = `
storage: "fs"
fs_root_dir: "/config/storage"
file_cache_count: 3
integrity_checks: false
log_level: "info"
song_play_length: "20s"
played_file_delete_delay: "2s"
pause_poll_interval: "1s"
repeat_mode: false
control:
  enabled: false
  port: 5309
`

// newTestCommand creates a command carrying the same flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{
		Use: "test",
	}

	flags := testCmd.Flags()
	flags.StringP("storage", "s", "", "storage system type")
	flags.Int("file-cache-count", 0, "songs kept ahead")
	flags.Bool("integrity-checks", false, "verify downloads")
	flags.BoolP("debug", "d", false, "debug mode")
	flags.StringP("artist", "a", "", "artist")
	flags.String("album", "", "album")
	flags.StringP("playlist", "p", "", "playlist")
	flags.String("song", "", "song uid")
	flags.Bool("repeat", false, "repeat mode")

	return testCmd
}

// loadTestConfig writes the base configuration to a temporary file and loads it.
func loadTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(content),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen // It's a comprehensive table test.
func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "fs", cfg.Storage)
				assert.Equal(t, 3, cfg.FileCacheCount)
				assert.False(t, cfg.IntegrityChecks)
				assert.False(t, cfg.RepeatMode)
				assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
			},
		},
		{
			name: "file cache count flag only",
			flags: map[string]string{
				"file-cache-count": "7",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 7, cfg.FileCacheCount)
				assert.Equal(t, "fs", cfg.Storage)
			},
		},
		{
			name: "integrity checks and repeat flags",
			flags: map[string]string{
				"integrity-checks": "true",
				"repeat":           "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.IntegrityChecks)
				assert.True(t, cfg.RepeatMode)
				assert.Equal(t, 3, cfg.FileCacheCount)
			},
		},
		{
			name: "debug flag raises the log level",
			flags: map[string]string{
				"debug": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
			},
		},
		{
			name: "explicit false debug flag keeps the configured level",
			flags: map[string]string{
				"debug": "false",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
			},
		},
		{
			name: "selection flags",
			flags: map[string]string{
				"artist":   "The Beatles",
				"album":    "Abbey Road",
				"playlist": "Road Trip",
				"song":     "The-Beatles--Abbey-Road--Something.mp3",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "The Beatles", cfg.Artist)
				assert.Equal(t, "Abbey Road", cfg.Album)
				assert.Equal(t, "Road Trip", cfg.Playlist)
				assert.Equal(t, "The-Beatles--Abbey-Road--Something.mp3", cfg.Song)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"storage":          "s3",
				"file-cache-count": "1",
				"integrity-checks": "true",
				"debug":            "true",
				"repeat":           "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "s3", cfg.Storage)
				assert.Equal(t, 1, cfg.FileCacheCount)
				assert.True(t, cfg.IntegrityChecks)
				assert.True(t, cfg.RepeatMode)
				assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_CacheCounts tests a range of file cache counts.
func TestFlagOverrides_CacheCounts(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, 1, 2, 10} {
		t.Run("cache count "+strconv.Itoa(count), func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set("file-cache-count", strconv.Itoa(count)))
			require.NoError(t, bindFlagsToConfig(testCmd.Flags(), cfg))
			assert.Equal(t, count, cfg.FileCacheCount)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values fail validation.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flag  string
		value string
	}{
		{
			name:  "unknown storage type",
			flag:  "storage",
			value: "azure",
		},
		{
			name:  "negative cache count",
			flag:  "file-cache-count",
			value: "-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set(tt.flag, tt.value))
			require.Error(t, bindFlagsToConfig(testCmd.Flags(), cfg))
		})
	}
}

// TestRequireOption tests the required option check of the selection commands.
func TestRequireOption(t *testing.T) {
	t.Parallel()

	require.NoError(t, requireOption("Road Trip", "playlist"))

	err := requireOption("", "playlist")
	require.ErrorIs(t, err, ErrMissingOption)
	assert.Contains(t, err.Error(), "playlist must be specified using --playlist option")
}

// TestCommandsRegistered tests that every command is reachable from the root command.
func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	expected := []string{
		"play", "shuffle-play", "play-playlist",
		"import-songs", "import-playlists", "import-album-art",
		"list-songs", "list-artists", "list-albums", "list-genres", "list-playlists", "list-containers",
		"show-playlist",
		"delete-song", "delete-artist", "delete-album", "delete-playlist",
		"upload-metadata-db", "retrieve-catalog", "version",
	}

	for _, name := range expected {
		found, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}
