package http

const (
	// DefaultMaxLogLength caps the size of a single request or response dump in debug logs.
	DefaultMaxLogLength uint64 = 4096
)
