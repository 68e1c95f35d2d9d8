// Package model defines the catalog records shared by the storage, metadata and playback layers:
// file identities, song metadata, playlists and the object naming convention used on import.
package model
