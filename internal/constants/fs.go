package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755
)

// File extension constants.
const (
	// ExtensionDownload marks a provisional file that is still being written.
	ExtensionDownload = ".download"
	// ExtensionMeta is the sidecar extension holding object properties in the filesystem backend.
	ExtensionMeta = ".meta"
	ExtensionMP3  = ".mp3"
	ExtensionFLAC = ".flac"
	ExtensionJPG  = ".jpg"
	ExtensionPNG  = ".png"
)

// Well-known container names.
const (
	// MetadataContainer holds the catalog database file.
	MetadataContainer = "music-metadata"
	// PlaylistContainer holds uploaded playlist files.
	PlaylistContainer = "playlists"
	// AlbumArtContainer holds album cover images.
	AlbumArtContainer = "album-art"
)
