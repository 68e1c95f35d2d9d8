// Package jukebox implements the playback and prefetch cache coordinator.
//
// A Jukebox keeps a small window of songs resident in the local cache directory,
// plays them in order through an external audio player (or a simulated sleep),
// and exposes pause, advance and termination controls that are safe to call
// from other goroutines. The package also holds the write path that imports
// songs, playlists and album art into the storage backend and the catalog.
package jukebox
