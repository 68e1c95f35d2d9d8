package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/cloud-jukebox/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// Storage selects the storage backend: "fs" or "s3".
	Storage string `mapstructure:"storage" validate:"oneof=fs s3"`
	// FSRootDir is the root directory of the filesystem backend.
	FSRootDir string `mapstructure:"fs_root_dir"`
	// S3 configures the S3-compatible backend.
	S3 S3Config `mapstructure:"s3"`
	// FileCacheCount is the number of songs kept downloaded ahead of the current one.
	FileCacheCount int `mapstructure:"file_cache_count" validate:"gte=0"`
	// IntegrityChecks enables size and MD5 verification of downloaded songs.
	IntegrityChecks bool `mapstructure:"integrity_checks"`
	// MaxConcurrentDownloads bounds the number of parallel downloads in a prefetch batch.
	MaxConcurrentDownloads int64 `mapstructure:"max_concurrent_downloads" validate:"gte=1"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxLogLength caps the size of logged storage requests and responses (e.g., "4KB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// SongPlayDir is the local cache directory of songs being played.
	SongPlayDir string `mapstructure:"song_play_dir" validate:"required"`
	// SongImportDir holds audio files to import.
	SongImportDir string `mapstructure:"song_import_dir" validate:"required"`
	// PlaylistImportDir holds playlist files to import.
	PlaylistImportDir string `mapstructure:"playlist_import_dir" validate:"required"`
	// AlbumArtImportDir holds album cover images to import.
	AlbumArtImportDir string `mapstructure:"album_art_import_dir" validate:"required"`
	// MetadataDBFile is the local path of the catalog database.
	MetadataDBFile string `mapstructure:"metadata_db_file" validate:"required"`
	// PIDFile is the liveness marker written while playing.
	PIDFile string `mapstructure:"pid_file" validate:"required"`
	// MissingFilesLog collects paths of songs that were missing at play time.
	MissingFilesLog string `mapstructure:"missing_files_log" validate:"required"`
	// SongPlayLength is the duration of simulated playback when no audio player is available.
	SongPlayLength string `mapstructure:"song_play_length"`
	// PlayedFileDeleteDelay is the delay before a played file is removed from the cache.
	PlayedFileDeleteDelay string `mapstructure:"played_file_delete_delay"`
	// PausePollInterval is how often the paused playback loop re-checks its state.
	PausePollInterval string `mapstructure:"pause_poll_interval"`
	// RepeatMode restarts the play order after the last song.
	RepeatMode bool `mapstructure:"repeat_mode"`
	// AudioPlayerRequired makes a missing audio player a fatal error instead of simulating playback.
	AudioPlayerRequired bool `mapstructure:"audio_player_required"`
	// Control configures the HTTP control surface.
	Control ControlConfig `mapstructure:"control"`
	// AudioPlayers maps a GOOS value to the player command used on it.
	AudioPlayers map[string]AudioPlayerConfig `mapstructure:"audio_players"`
	// Artist restricts playback to one artist (set from the command line).
	Artist string
	// Album restricts playback to one album (set from the command line).
	Album string
	// Playlist selects the playlist to play or show (set from the command line).
	Playlist string
	// Song is the song uid a command operates on (set from the command line).
	Song string
	// UpdateMode selects the update credentials for mutating commands.
	UpdateMode bool
	// SuppressMetadataDownload skips fetching the catalog database at session start.
	SuppressMetadataDownload bool
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxLogLength is the parsed log dump limit in bytes.
	ParsedMaxLogLength uint64
	// ParsedSongPlayLength is the parsed simulated playback duration.
	ParsedSongPlayLength time.Duration
	// ParsedPlayedFileDeleteDelay is the parsed played file deletion delay.
	ParsedPlayedFileDeleteDelay time.Duration
	// ParsedPausePollInterval is the parsed pause polling interval.
	ParsedPausePollInterval time.Duration
}

// S3Config configures the S3-compatible storage backend.
type S3Config struct {
	// Endpoint is the host[:port] of the service.
	Endpoint string `mapstructure:"endpoint"`
	// Region is the bucket region.
	Region string `mapstructure:"region"`
	// UseSSL selects HTTPS.
	UseSSL bool `mapstructure:"use_ssl"`
	// ContainerPrefix is prepended to container names to form bucket names.
	ContainerPrefix string `mapstructure:"container_prefix"`
	// CredentialsFile is the KEY=VALUE file holding the access keys.
	CredentialsFile string `mapstructure:"credentials_file"`
}

// ControlConfig configures the HTTP control surface.
type ControlConfig struct {
	// Enabled starts the control surface during playback.
	Enabled bool `mapstructure:"enabled"`
	// Port is the TCP port of every listener.
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
	// BindLAN adds a listener on the first non-loopback IPv4 address.
	BindLAN bool `mapstructure:"bind_lan"`
}

// AudioPlayerConfig is the argv template of an external audio player.
// Every argument is a text/template with FilePath, StartOffset and StartOffsetMillis.
type AudioPlayerConfig struct {
	// Command starts playback from the beginning of a file.
	Command []string `mapstructure:"command"`
	// ResumeCommand starts playback at an offset; when empty a resumed song restarts.
	ResumeCommand []string `mapstructure:"resume_command"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".cloud-jukebox.yaml"

	// XDGConfigFilename is the configuration file looked up in the XDG config directories.
	XDGConfigFilename = "cloud-jukebox/config.yaml"

	// DefaultContainerPrefix is prepended to container names in the S3 backend.
	DefaultContainerPrefix = "com.swampbits.jukebox."

	// DefaultControlPort is the default port of the control surface.
	DefaultControlPort = 5309

	// DefaultFileCacheCount is the default number of songs kept ahead in the cache.
	DefaultFileCacheCount = 3

	// MetadataDBFilename is the catalog database object name in the metadata container.
	MetadataDBFilename = "jukebox_db.sqlite3"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrEmptyFSRootDir indicates that the filesystem backend has no root directory.
	ErrEmptyFSRootDir = errors.New("fs_root_dir cannot be empty for the fs storage")
	// ErrEmptyS3Endpoint indicates that the S3 backend has no endpoint.
	ErrEmptyS3Endpoint = errors.New("s3.endpoint cannot be empty for the s3 storage")
	// ErrInvalidDuration indicates that a duration setting is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidPlayerTemplate indicates that an audio player argument is not a valid template.
	ErrInvalidPlayerTemplate = errors.New("invalid audio player template")
)

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage", "fs")
	v.SetDefault("fs_root_dir", "storage")
	v.SetDefault("s3.endpoint", "s3.us-central-1.wasabisys.com")
	v.SetDefault("s3.region", "us-central-1")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.container_prefix", DefaultContainerPrefix)
	v.SetDefault("s3.credentials_file", "s3_creds.txt")
	v.SetDefault("file_cache_count", DefaultFileCacheCount)
	v.SetDefault("integrity_checks", false)
	v.SetDefault("max_concurrent_downloads", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("max_log_length", "4KB")
	v.SetDefault("song_play_dir", "song-play")
	v.SetDefault("song_import_dir", "song-import")
	v.SetDefault("playlist_import_dir", "playlist-import")
	v.SetDefault("album_art_import_dir", "album-art-import")
	v.SetDefault("metadata_db_file", MetadataDBFilename)
	v.SetDefault("pid_file", "jukebox.pid")
	v.SetDefault("missing_files_log", "404.txt")
	v.SetDefault("song_play_length", "20s")
	v.SetDefault("played_file_delete_delay", "2s")
	v.SetDefault("pause_poll_interval", "1s")
	v.SetDefault("repeat_mode", false)
	v.SetDefault("audio_player_required", false)
	v.SetDefault("control.enabled", true)
	v.SetDefault("control.port", DefaultControlPort)
	v.SetDefault("control.bind_lan", true)

	for goos, player := range DefaultAudioPlayers() {
		v.SetDefault("audio_players."+goos+".command", player.Command)

		if len(player.ResumeCommand) > 0 {
			v.SetDefault("audio_players."+goos+".resume_command", player.ResumeCommand)
		}
	}
}

// DefaultAudioPlayers returns the built-in player commands per operating system.
func DefaultAudioPlayers() map[string]AudioPlayerConfig {
	mplayer := []string{"mplayer", "-novideo", "-nolirc", "-really-quiet"}
	mpcHC := []string{`C:\Program Files\MPC-HC\mpc-hc64.exe`, "/play", "/close", "/minimized"}

	return map[string]AudioPlayerConfig{
		"darwin": {
			Command: []string{"/usr/bin/afplay", "{{.FilePath}}"},
		},
		"linux": {
			Command:       append(append([]string{}, mplayer...), "{{.FilePath}}"),
			ResumeCommand: append(append([]string{}, mplayer...), "-ss", "{{.StartOffset}}", "{{.FilePath}}"),
		},
		"windows": {
			Command:       append(append([]string{}, mpcHC...), "{{.FilePath}}"),
			ResumeCommand: append(append([]string{}, mpcHC...), "/start", "{{.StartOffsetMillis}}", "{{.FilePath}}"),
		},
	}
}

// LoadConfig loads configuration settings from a YAML file.
// An empty filename searches the working directory and then the XDG config directories;
// when neither holds a file the defaults are used.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	configFilename, err := resolveConfigFilename(configFilename)
	if err != nil {
		return nil, err
	}

	if configFilename != "" {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func resolveConfigFilename(configFilename string) (string, error) {
	if configFilename != "" {
		return configFilename, nil
	}

	if _, err := os.Stat(DefaultConfigFilename); err == nil {
		return DefaultConfigFilename, nil
	}

	xdgFilename, err := xdg.SearchConfigFile(XDGConfigFilename)
	if err != nil {
		// No configuration file anywhere: run on defaults.
		return "", nil //nolint:nilerr // A missing optional file is not an error.
	}

	return xdgFilename, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	if err = validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Storage {
	case "fs":
		if strings.TrimSpace(cfg.FSRootDir) == "" {
			return ErrEmptyFSRootDir
		}
	case "s3":
		if strings.TrimSpace(cfg.S3.Endpoint) == "" {
			return ErrEmptyS3Endpoint
		}
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	cfg.ParsedSongPlayLength, err = parsePositiveDuration("song_play_length", cfg.SongPlayLength)
	if err != nil {
		return err
	}

	cfg.ParsedPlayedFileDeleteDelay, err = parsePositiveDuration("played_file_delete_delay", cfg.PlayedFileDeleteDelay)
	if err != nil {
		return err
	}

	cfg.ParsedPausePollInterval, err = parsePositiveDuration("pause_poll_interval", cfg.PausePollInterval)
	if err != nil {
		return err
	}

	for goos, player := range cfg.AudioPlayers {
		for _, arg := range append(append([]string{}, player.Command...), player.ResumeCommand...) {
			if _, err = template.New(goos).Parse(arg); err != nil {
				return fmt.Errorf("%w for %s: %w", ErrInvalidPlayerTemplate, goos, err)
			}
		}
	}

	return nil
}

// AudioPlayerForOS returns the player configured for the operating system, if any.
func (cfg *Config) AudioPlayerForOS(goos string) (AudioPlayerConfig, bool) {
	player, ok := cfg.AudioPlayers[strings.ToLower(goos)]
	if !ok || len(player.Command) == 0 {
		return AudioPlayerConfig{}, false
	}

	return player, true
}

func parsePositiveDuration(name, value string) (time.Duration, error) {
	duration, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	if duration <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, name)
	}

	return duration, nil
}
