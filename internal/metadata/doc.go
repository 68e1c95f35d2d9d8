// Package metadata provides the durable song and playlist catalog of the jukebox.
// The catalog is a single SQLite database file that is synchronised with the
// metadata container of the storage backend.
package metadata
