package storage

//go:generate $MOCKGEN -source=storage.go -destination=mocks/storage_mock.go

import (
	"context"
	"errors"
)

// Backend is the object storage capability: containers hold objects addressed by name.
type Backend interface {
	// ListContainers returns the names of all containers.
	ListContainers(ctx context.Context) ([]string, error)
	// HasContainer reports whether the container exists.
	HasContainer(ctx context.Context, containerName string) (bool, error)
	// CreateContainer creates a container.
	CreateContainer(ctx context.Context, containerName string) error
	// DeleteContainer deletes a container.
	DeleteContainer(ctx context.Context, containerName string) error
	// ListObjects returns the object names stored in a container.
	ListObjects(ctx context.Context, containerName string) ([]string, error)
	// GetObjectMetadata returns the properties stored with an object.
	GetObjectMetadata(ctx context.Context, containerName, objectName string) (Properties, error)
	// PutObject stores data under the given name together with optional properties.
	PutObject(ctx context.Context, containerName, objectName string, data []byte, props Properties) error
	// DeleteObject deletes an object.
	DeleteObject(ctx context.Context, containerName, objectName string) error
	// GetObject writes the object contents to localFilePath and returns the number of bytes written.
	GetObject(ctx context.Context, containerName, objectName, localFilePath string) (int64, error)
	// Close releases resources held by the backend.
	Close() error
}

// Properties are user-defined key/value pairs stored alongside an object.
type Properties map[string]string

// Static error definitions for better error handling.
var (
	// ErrContainerNotFound indicates that the container does not exist.
	ErrContainerNotFound = errors.New("container not found")
	// ErrObjectNotFound indicates that the object does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrEmptyContainerName indicates that no container name was given.
	ErrEmptyContainerName = errors.New("container name cannot be empty")
	// ErrEmptyObjectName indicates that no object name was given.
	ErrEmptyObjectName = errors.New("object name cannot be empty")
	// ErrEmptyObject indicates an attempt to store an object without content.
	ErrEmptyObject = errors.New("object content cannot be empty")
	// ErrUnknownBackend indicates an unsupported storage type in the configuration.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

func validateNames(containerName, objectName string) error {
	if containerName == "" {
		return ErrEmptyContainerName
	}

	if objectName == "" {
		return ErrEmptyObjectName
	}

	return nil
}
