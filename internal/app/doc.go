// Package app provides the command implementations of the jukebox.
// It opens the storage backend and the catalog database, builds the jukebox service
// and runs playback, import, listing and deletion commands on top of it.
package app
