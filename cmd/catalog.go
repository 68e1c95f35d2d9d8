package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/cloud-jukebox/internal/app"
)

// defaultCatalogDir is where retrieve-catalog writes the catalog files.
const defaultCatalogDir = "catalog"

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listSongsCmd = &cobra.Command{
		Use:   "list-songs",
		Short: "List every song as 'artist, song'",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListSongsCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listArtistsCmd = &cobra.Command{
		Use:   "list-artists",
		Short: "List every artist",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListArtistsCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listAlbumsCmd = &cobra.Command{
		Use:   "list-albums",
		Short: "List every album as 'album (artist)'",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListAlbumsCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listGenresCmd = &cobra.Command{
		Use:   "list-genres",
		Short: "List every genre",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListGenresCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listPlaylistsCmd = &cobra.Command{
		Use:   "list-playlists",
		Short: "List every playlist as 'uid - name'",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListPlaylistsCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	listContainersCmd = &cobra.Command{
		Use:   "list-containers",
		Short: "List the containers of the storage system",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteListContainersCommand(cmd.Context(), commandConfig(cmd, readMode), cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	showPlaylistCmd = &cobra.Command{
		Use:   "show-playlist",
		Short: "Show the songs of the playlist given with --playlist",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, readMode)
			mustRequireOption(cmd, cfg.Playlist, "playlist")

			app.ExecuteShowPlaylistCommand(cmd.Context(), cfg, cfg.Playlist, cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	deleteSongCmd = &cobra.Command{
		Use:   "delete-song",
		Short: "Delete the song given with --song",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, updateMode)
			mustRequireOption(cmd, cfg.Song, "song")

			app.ExecuteDeleteSongCommand(cmd.Context(), cfg, cfg.Song)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	deleteArtistCmd = &cobra.Command{
		Use:   "delete-artist",
		Short: "Delete every song of the artist given with --artist",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, updateMode)
			mustRequireOption(cmd, cfg.Artist, "artist")

			app.ExecuteDeleteArtistCommand(cmd.Context(), cfg, cfg.Artist)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	deleteAlbumCmd = &cobra.Command{
		Use:   "delete-album",
		Short: "Delete every song of the album given with --album as 'artist--album'",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, updateMode)
			mustRequireOption(cmd, cfg.Album, "album")

			app.ExecuteDeleteAlbumCommand(cmd.Context(), cfg, cfg.Album)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	deletePlaylistCmd = &cobra.Command{
		Use:   "delete-playlist",
		Short: "Delete the playlist given with --playlist",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := commandConfig(cmd, updateMode)
			mustRequireOption(cmd, cfg.Playlist, "playlist")

			app.ExecuteDeletePlaylistCommand(cmd.Context(), cfg, cfg.Playlist)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	uploadMetadataDBCmd = &cobra.Command{
		Use:   "upload-metadata-db",
		Short: "Replace the catalog database in storage with the local one",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteUploadMetadataDBCommand(cmd.Context(), commandConfig(cmd, uploadMode))
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	retrieveCatalogCmd = &cobra.Command{
		Use:   "retrieve-catalog",
		Short: "Download the files of the metadata container",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			outputDir, _ := cmd.Flags().GetString("output")

			app.ExecuteRetrieveCatalogCommand(cmd.Context(), commandConfig(cmd, readMode), outputDir)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	retrieveCatalogCmd.Flags().StringP(
		"output",
		"o",
		defaultCatalogDir,
		"directory to save the catalog files (the path will be created if it doesn't exist).")

	rootCmd.AddCommand(
		listSongsCmd,
		listArtistsCmd,
		listAlbumsCmd,
		listGenresCmd,
		listPlaylistsCmd,
		listContainersCmd,
		showPlaylistCmd,
		deleteSongCmd,
		deleteArtistCmd,
		deleteAlbumCmd,
		deletePlaylistCmd,
		uploadMetadataDBCmd,
		retrieveCatalogCmd,
	)
}
