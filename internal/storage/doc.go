// Package storage defines the object storage capability used by the jukebox
// and provides a local filesystem backend and an S3-compatible backend.
package storage
