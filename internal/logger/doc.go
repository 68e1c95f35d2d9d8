// Package logger wraps a zap sugared logger shared by the whole jukebox.
// The level is switched at runtime once the configuration is loaded, and a logger
// can travel in a context with a name or fields attached.
package logger
