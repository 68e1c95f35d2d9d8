package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/cloud-jukebox/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play songs, optionally limited to an artist or album",
		Long: `Plays the songs of the catalog in catalog order.

Use --artist and --album to narrow the selection, or --playlist to play a playlist.
While playing, the control surface accepts song advance and pause requests.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecutePlayCommand(cmd.Context(), commandConfig(cmd, readMode), false)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	shufflePlayCmd = &cobra.Command{
		Use:   "shuffle-play",
		Short: "Play songs in random order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecutePlayCommand(cmd.Context(), commandConfig(cmd, readMode), true)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	playPlaylistCmd = &cobra.Command{
		Use:   "play-playlist",
		Short: "Play the playlist given with --playlist",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, readMode)
			mustRequireOption(cmd, cfg.Playlist, "playlist")

			app.ExecutePlayCommand(cmd.Context(), cfg, false)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(playCmd, shufflePlayCmd, playPlaylistCmd)
}
