// Package constants holds filesystem permissions, file extensions and container names
// shared across the jukebox packages.
package constants
