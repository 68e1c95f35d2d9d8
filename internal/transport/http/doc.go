// Package http provides the debug logging round tripper wrapped around the object storage client.
package http
