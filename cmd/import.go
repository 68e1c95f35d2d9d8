package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/cloud-jukebox/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	importSongsCmd = &cobra.Command{
		Use:   "import-songs",
		Short: "Upload the songs of the song import directory",
		Long: `Uploads every audio file of the song import directory and records it in the catalog.

Files named 'artist--album--song.ext' (spaces written as dashes) are catalogued by name,
other files by their ID3, FLAC or Ogg tags.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteImportSongsCommand(cmd.Context(), commandConfig(cmd, updateMode))
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	importPlaylistsCmd = &cobra.Command{
		Use:   "import-playlists",
		Short: "Upload the playlists of the playlist import directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteImportPlaylistsCommand(cmd.Context(), commandConfig(cmd, updateMode))
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	importAlbumArtCmd = &cobra.Command{
		Use:   "import-album-art",
		Short: "Upload the images of the album art import directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteImportAlbumArtCommand(cmd.Context(), commandConfig(cmd, updateMode))
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(importSongsCmd, importPlaylistsCmd, importAlbumArtCmd)
}
