package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// FSBackend stores containers as subdirectories of a root directory and objects as files.
// Object properties live in a YAML sidecar next to the object.
type FSBackend struct {
	// rootDir is the directory holding every container.
	rootDir string
}

// NewFSBackend creates the root directory when needed and returns a filesystem backend.
func NewFSBackend(rootDir string) (*FSBackend, error) {
	if err := os.MkdirAll(rootDir, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create storage root '%s': %w", rootDir, err)
	}

	return &FSBackend{rootDir: rootDir}, nil
}

// ListContainers returns the names of all container directories.
func (b *FSBackend) ListContainers(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.rootDir)
	if err != nil {
		return nil, err
	}

	containers := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			containers = append(containers, entry.Name())
		}
	}

	return containers, nil
}

// HasContainer reports whether the container directory exists.
func (b *FSBackend) HasContainer(_ context.Context, containerName string) (bool, error) {
	if containerName == "" {
		return false, ErrEmptyContainerName
	}

	stat, err := os.Stat(b.containerPath(containerName))
	if err == nil {
		return stat.IsDir(), nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// CreateContainer creates the container directory.
func (b *FSBackend) CreateContainer(ctx context.Context, containerName string) error {
	if containerName == "" {
		return ErrEmptyContainerName
	}

	if err := os.MkdirAll(b.containerPath(containerName), constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create container '%s': %w", containerName, err)
	}

	logger.Debugf(ctx, "Container created: '%s'", containerName)

	return nil
}

// DeleteContainer removes the container directory and everything in it.
func (b *FSBackend) DeleteContainer(ctx context.Context, containerName string) error {
	exists, err := b.HasContainer(ctx, containerName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrContainerNotFound, containerName)
	}

	if err = os.RemoveAll(b.containerPath(containerName)); err != nil {
		return fmt.Errorf("failed to delete container '%s': %w", containerName, err)
	}

	logger.Debugf(ctx, "Container deleted: '%s'", containerName)

	return nil
}

// ListObjects returns the sorted object names in a container, skipping property sidecars
// and files still being written.
func (b *FSBackend) ListObjects(_ context.Context, containerName string) ([]string, error) {
	if containerName == "" {
		return nil, ErrEmptyContainerName
	}

	entries, err := os.ReadDir(b.containerPath(containerName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, containerName)
		}

		return nil, err
	}

	objects := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			strings.HasSuffix(name, constants.ExtensionMeta) ||
			strings.HasSuffix(name, constants.ExtensionDownload) {
			continue
		}

		objects = append(objects, name)
	}

	sort.Strings(objects)

	return objects, nil
}

// GetObjectMetadata reads the property sidecar of an object.
// An object without a sidecar has empty properties.
func (b *FSBackend) GetObjectMetadata(_ context.Context, containerName, objectName string) (Properties, error) {
	if err := validateNames(containerName, objectName); err != nil {
		return nil, err
	}

	objectPath := b.objectPath(containerName, objectName)

	exists, err := utils.IsFileExist(objectPath)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, containerName, objectName)
	}

	content, err := os.ReadFile(filepath.Clean(objectPath + constants.ExtensionMeta))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Properties{}, nil
		}

		return nil, err
	}

	props := make(Properties)
	if err = yaml.Unmarshal(content, &props); err != nil {
		return nil, fmt.Errorf("failed to parse properties of '%s/%s': %w", containerName, objectName, err)
	}

	return props, nil
}

// PutObject writes the object file and, when properties are given, its sidecar.
// Both are renamed into place once fully written. Overwriting without properties drops the old sidecar.
func (b *FSBackend) PutObject(
	ctx context.Context,
	containerName, objectName string,
	data []byte,
	props Properties,
) error {
	if err := validateNames(containerName, objectName); err != nil {
		return err
	}

	if len(data) == 0 {
		return ErrEmptyObject
	}

	exists, err := b.HasContainer(ctx, containerName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrContainerNotFound, containerName)
	}

	objectPath := b.objectPath(containerName, objectName)
	metaPath := objectPath + constants.ExtensionMeta

	// The sidecar lands first so a listed object always carries its properties.
	if len(props) > 0 {
		content, marshalErr := yaml.Marshal(props)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode properties: %w", marshalErr)
		}

		if err = writeFileAtomic(metaPath, content); err != nil {
			return fmt.Errorf("failed to write properties of '%s/%s': %w", containerName, objectName, err)
		}
	} else if err = utils.RemoveIfExists(metaPath); err != nil {
		return fmt.Errorf("failed to remove stale properties of '%s/%s': %w", containerName, objectName, err)
	}

	if err = writeFileAtomic(objectPath, data); err != nil {
		return fmt.Errorf("failed to write object '%s/%s': %w", containerName, objectName, err)
	}

	logger.Debugf(ctx, "Object added: %s/%s", containerName, objectName)

	return nil
}

// DeleteObject removes the object file and its sidecar.
func (b *FSBackend) DeleteObject(ctx context.Context, containerName, objectName string) error {
	if err := validateNames(containerName, objectName); err != nil {
		return err
	}

	objectPath := b.objectPath(containerName, objectName)

	if err := os.Remove(objectPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, containerName, objectName)
		}

		return fmt.Errorf("failed to delete object '%s/%s': %w", containerName, objectName, err)
	}

	if err := utils.RemoveIfExists(objectPath + constants.ExtensionMeta); err != nil {
		logger.Warnf(ctx, "Failed to delete properties of '%s/%s': %v", containerName, objectName, err)
	}

	logger.Debugf(ctx, "Object deleted: %s/%s", containerName, objectName)

	return nil
}

// GetObject copies the object file to localFilePath.
func (b *FSBackend) GetObject(_ context.Context, containerName, objectName, localFilePath string) (int64, error) {
	if err := validateNames(containerName, objectName); err != nil {
		return 0, err
	}

	source, err := os.Open(filepath.Clean(b.objectPath(containerName, objectName)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, containerName, objectName)
		}

		return 0, err
	}

	defer source.Close() //nolint:errcheck // Error on close is not critical here.

	destination, err := os.OpenFile(
		filepath.Clean(localFilePath),
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
		constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create local file: %w", err)
	}

	bytesWritten, err := io.Copy(destination, source)
	if closeErr := destination.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return bytesWritten, fmt.Errorf("failed to copy object '%s/%s': %w", containerName, objectName, err)
	}

	return bytesWritten, nil
}

// Close is a no-op for the filesystem backend.
func (b *FSBackend) Close() error {
	return nil
}

// writeFileAtomic writes data under a provisional name and renames it into place,
// so readers never see a partially written file.
func writeFileAtomic(path string, data []byte) error {
	provisionalPath := path + constants.ExtensionDownload

	if err := os.WriteFile(provisionalPath, data, constants.DefaultFilePermissions); err != nil {
		_ = utils.RemoveIfExists(provisionalPath)

		return err
	}

	if err := os.Rename(provisionalPath, path); err != nil {
		_ = utils.RemoveIfExists(provisionalPath)

		return err
	}

	return nil
}

func (b *FSBackend) containerPath(containerName string) string {
	return filepath.Join(b.rootDir, containerName)
}

func (b *FSBackend) objectPath(containerName, objectName string) string {
	return filepath.Join(b.rootDir, containerName, objectName)
}
