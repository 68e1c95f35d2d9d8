package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/cloud-jukebox/internal/constants"
)

// newValidConfig returns a configuration that passes validation.
func newValidConfig() *Config {
	return &Config{
		Storage:                "fs",
		FSRootDir:              "storage",
		FileCacheCount:         3,
		MaxConcurrentDownloads: 1,
		LogLevel:               "info",
		MaxLogLength:           "4KB",
		SongPlayDir:            "song-play",
		SongImportDir:          "song-import",
		PlaylistImportDir:      "playlist-import",
		AlbumArtImportDir:      "album-art-import",
		MetadataDBFile:         "jukebox_db.sqlite3",
		PIDFile:                "jukebox.pid",
		MissingFilesLog:        "404.txt",
		SongPlayLength:         "20s",
		PlayedFileDeleteDelay:  "2s",
		PausePollInterval:      "1s",
		Control: ControlConfig{
			Enabled: true,
			Port:    DefaultControlPort,
		},
		AudioPlayers: DefaultAudioPlayers(),
	}
}

// TestLoadConfig tests the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		configFilename string
		configContent  string
		expectError    bool
		expectedError  string
		check          func(t *testing.T, cfg *Config)
	}{
		{
			name:           "valid config file",
			configFilename: "valid_config.yaml",
			configContent: `
storage: "s3"
file_cache_count: 5
integrity_checks: true
log_level: "debug"
s3:
  endpoint: "localhost:9000"
  use_ssl: false
control:
  port: 8080
audio_players:
  linux:
    command: ["mpv", "--no-video", "{{.FilePath}}"]
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()

				assert.Equal(t, "s3", cfg.Storage)
				assert.Equal(t, 5, cfg.FileCacheCount)
				assert.True(t, cfg.IntegrityChecks)
				assert.Equal(t, "localhost:9000", cfg.S3.Endpoint)
				assert.False(t, cfg.S3.UseSSL)
				assert.Equal(t, DefaultContainerPrefix, cfg.S3.ContainerPrefix)
				assert.Equal(t, 8080, cfg.Control.Port)
				assert.True(t, cfg.Control.Enabled)
				assert.Equal(t, []string{"mpv", "--no-video", "{{.FilePath}}"}, cfg.AudioPlayers["linux"].Command)
				assert.Equal(t, []string{"/usr/bin/afplay", "{{.FilePath}}"}, cfg.AudioPlayers["darwin"].Command)
				assert.Equal(t, "404.txt", cfg.MissingFilesLog)
			},
		},
		{
			name:           "defaults only",
			configFilename: "empty.yaml",
			configContent:  "\n# nothing\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()

				assert.Equal(t, "fs", cfg.Storage)
				assert.Equal(t, DefaultFileCacheCount, cfg.FileCacheCount)
				assert.Equal(t, DefaultControlPort, cfg.Control.Port)
				assert.Equal(t, "song-play", cfg.SongPlayDir)
				assert.Equal(t, "20s", cfg.SongPlayLength)
				assert.Equal(t, MetadataDBFilename, cfg.MetadataDBFile)
			},
		},
		{
			name:           "non-existent file",
			configFilename: "non_existent.yaml",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
		{
			name:           "invalid yaml",
			configFilename: "invalid.yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), tt.configFilename)

			if tt.configContent != "" {
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)
				require.NoError(t, err)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, cfg)
		})
	}
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		modify   func(cfg *Config)
		errorMsg string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:   "zero cache count is valid",
			modify: func(cfg *Config) { cfg.FileCacheCount = 0 },
		},
		{
			name:     "negative cache count",
			modify:   func(cfg *Config) { cfg.FileCacheCount = -1 },
			errorMsg: "config validation failed",
		},
		{
			name:     "unknown storage",
			modify:   func(cfg *Config) { cfg.Storage = "ftp" },
			errorMsg: "config validation failed",
		},
		{
			name:     "empty fs root",
			modify:   func(cfg *Config) { cfg.FSRootDir = " " },
			errorMsg: "fs_root_dir cannot be empty",
		},
		{
			name: "s3 without endpoint",
			modify: func(cfg *Config) {
				cfg.Storage = "s3"
				cfg.S3.Endpoint = ""
			},
			errorMsg: "s3.endpoint cannot be empty",
		},
		{
			name:     "invalid log level",
			modify:   func(cfg *Config) { cfg.LogLevel = "invalid" },
			errorMsg: "unknown log level:",
		},
		{
			name:     "invalid port",
			modify:   func(cfg *Config) { cfg.Control.Port = 70000 },
			errorMsg: "config validation failed",
		},
		{
			name:     "zero concurrent downloads",
			modify:   func(cfg *Config) { cfg.MaxConcurrentDownloads = 0 },
			errorMsg: "config validation failed",
		},
		{
			name:     "invalid song play length",
			modify:   func(cfg *Config) { cfg.SongPlayLength = "invalid" },
			errorMsg: "failed to parse song_play_length",
		},
		{
			name:     "negative delete delay",
			modify:   func(cfg *Config) { cfg.PlayedFileDeleteDelay = "-1s" },
			errorMsg: "duration must be positive",
		},
		{
			name:     "invalid max log length",
			modify:   func(cfg *Config) { cfg.MaxLogLength = "lots" },
			errorMsg: "failed to parse max log length",
		},
		{
			name: "invalid player template",
			modify: func(cfg *Config) {
				cfg.AudioPlayers["linux"] = AudioPlayerConfig{Command: []string{"mplayer", "{{.FilePath"}}
			},
			errorMsg: "invalid audio player template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newValidConfig()
			tt.modify(cfg)

			err := ValidateConfig(cfg)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
			assert.Equal(t, 20*time.Second, cfg.ParsedSongPlayLength)
			assert.Equal(t, 2*time.Second, cfg.ParsedPlayedFileDeleteDelay)
			assert.Equal(t, time.Second, cfg.ParsedPausePollInterval)
			assert.Equal(t, uint64(4000), cfg.ParsedMaxLogLength)
		})
	}
}

// TestAudioPlayerForOS tests player lookup per operating system.
func TestAudioPlayerForOS(t *testing.T) {
	t.Parallel()

	cfg := newValidConfig()
	cfg.AudioPlayers["plan9"] = AudioPlayerConfig{}

	player, ok := cfg.AudioPlayerForOS("linux")
	require.True(t, ok)
	assert.Equal(t, "mplayer", player.Command[0])
	assert.Contains(t, player.ResumeCommand, "{{.StartOffset}}")

	player, ok = cfg.AudioPlayerForOS("darwin")
	require.True(t, ok)
	assert.Empty(t, player.ResumeCommand)

	_, ok = cfg.AudioPlayerForOS("plan9")
	assert.False(t, ok)

	_, ok = cfg.AudioPlayerForOS("freebsd")
	assert.False(t, ok)
}

// TestLoadCredentials tests reading the credentials file.
func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		content       string
		updateMode    bool
		expected      Credentials
		expectedError error
	}{
		{
			name:     "regular keys",
			content:  "aws_access_key=AKIA1\naws_secret_key=secret1\n",
			expected: Credentials{AccessKey: "AKIA1", SecretKey: "secret1"},
		},
		{
			name: "update keys in update mode",
			content: "aws_access_key=AKIA1\naws_secret_key=secret1\n" +
				"update_aws_access_key=AKIA2\nupdate_aws_secret_key=secret2\n",
			updateMode: true,
			expected:   Credentials{AccessKey: "AKIA2", SecretKey: "secret2"},
		},
		{
			name:       "update mode falls back to regular keys",
			content:    "aws_access_key=AKIA1\naws_secret_key=secret1\n",
			updateMode: true,
			expected:   Credentials{AccessKey: "AKIA1", SecretKey: "secret1"},
		},
		{
			name:          "missing secret",
			content:       "aws_access_key=AKIA1\n",
			expectedError: ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "s3_creds.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), constants.DefaultFilePermissions))

			creds, err := LoadCredentials(path, tt.updateMode)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}

	_, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.txt"), false)
	require.Error(t, err)
}
