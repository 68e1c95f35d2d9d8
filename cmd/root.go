package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/control"
	"github.com/oshokin/cloud-jukebox/internal/logger"
)

// commandMode tells how a command touches the storage backend.
type commandMode uint8

const (
	// readMode commands only read from the backend.
	readMode commandMode = iota
	// updateMode commands modify the backend and use the update credentials.
	updateMode
	// uploadMode commands replace the remote catalog database with the local one.
	uploadMode
)

// shutdownGracePeriod is how long a signaled command may keep running to clean up.
const shutdownGracePeriod = 15 * time.Second

// ErrMissingOption indicates that a command was started without an option it requires.
var ErrMissingOption = errors.New("missing required option")

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "cloud-jukebox",
		Short: "Play, import and manage a music library kept in cloud storage.",
		Long: `Cloud Jukebox plays a music library stored in a filesystem directory
or an S3-compatible object store. Songs are downloaded into a small local cache
just ahead of playback and removed once played.

The catalog of songs, albums, artists and playlists lives in a SQLite database
that is kept next to the songs in the storage system.`,
		PersistentPreRun: initConfig,
	}
)

// Execute executes the root command.
// A signal cancels the command context; the command then gets a grace period to clean up.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	select {
	case <-done:
	case <-time.After(shutdownGracePeriod):
		logger.Warnf(ctx, "Command did not stop within %s, exiting", shutdownGracePeriod)
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	flags.StringP(
		"storage",
		"s",
		"",
		"storage system type: fs or s3.")

	flags.Int(
		"file-cache-count",
		0,
		"number of songs to keep downloaded ahead of the current one.")

	flags.Bool(
		"integrity-checks",
		false,
		"verify the size and MD5 hash of every downloaded song.")

	flags.BoolP(
		"debug",
		"d",
		false,
		"run in debug mode.")

	flags.StringP(
		"artist",
		"a",
		"",
		"limit operations to the specified artist.")

	flags.String(
		"album",
		"",
		"limit operations to the specified album; delete-album expects 'artist--album'.")

	flags.StringP(
		"playlist",
		"p",
		"",
		"playlist to play, show or delete.")

	flags.String(
		"song",
		"",
		"song uid (object name) to operate on.")

	flags.Bool(
		"repeat",
		false,
		"restart the play order after the last song.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

// commandConfig applies the command-line flags to the loaded configuration,
// selects the access mode and configures logging for the command.
func commandConfig(cmd *cobra.Command, mode commandMode) *config.Config {
	if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	appConfig.UpdateMode = mode != readMode
	appConfig.SuppressMetadataDownload = mode == uploadMode

	logger.SetLevel(appConfig.ParsedLogLevel)
	control.SetMode(logger.IsDebugLevel())

	return appConfig
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("storage"); flag != nil && flag.Changed {
		cfg.Storage, _ = flags.GetString("storage")
	}

	if flag := flags.Lookup("file-cache-count"); flag != nil && flag.Changed {
		cfg.FileCacheCount, _ = flags.GetInt("file-cache-count")
	}

	if flag := flags.Lookup("integrity-checks"); flag != nil && flag.Changed {
		cfg.IntegrityChecks, _ = flags.GetBool("integrity-checks")
	}

	if flag := flags.Lookup("debug"); flag != nil && flag.Changed {
		if debug, _ := flags.GetBool("debug"); debug {
			cfg.LogLevel = "debug"
		}
	}

	if flag := flags.Lookup("artist"); flag != nil && flag.Changed {
		cfg.Artist, _ = flags.GetString("artist")
	}

	if flag := flags.Lookup("album"); flag != nil && flag.Changed {
		cfg.Album, _ = flags.GetString("album")
	}

	if flag := flags.Lookup("playlist"); flag != nil && flag.Changed {
		cfg.Playlist, _ = flags.GetString("playlist")
	}

	if flag := flags.Lookup("song"); flag != nil && flag.Changed {
		cfg.Song, _ = flags.GetString("song")
	}

	if flag := flags.Lookup("repeat"); flag != nil && flag.Changed {
		cfg.RepeatMode, _ = flags.GetBool("repeat")
	}

	return config.ValidateConfig(cfg)
}

// requireOption fails when a command option was left empty.
func requireOption(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must be specified using --%s option", ErrMissingOption, name, name)
	}

	return nil
}

// mustRequireOption terminates the process when a command option was left empty.
func mustRequireOption(cmd *cobra.Command, value, name string) {
	if err := requireOption(value, name); err != nil {
		logger.Fatalf(cmd.Context(), "error: %v", err)
	}
}
