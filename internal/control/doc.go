// Package control serves the HTTP control surface of a play session:
// advancing, pausing and resuming playback, reporting the playback state and exposing metrics.
package control
