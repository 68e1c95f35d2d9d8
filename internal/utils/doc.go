// Package utils holds small filesystem and network helpers: filename sanitising,
// tolerant file removal, file hashing and local address discovery.
package utils
