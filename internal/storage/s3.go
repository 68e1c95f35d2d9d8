package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	transport "github.com/oshokin/cloud-jukebox/internal/transport/http"
	"github.com/oshokin/cloud-jukebox/internal/version"
)

const (
	// appName identifies the jukebox in the S3 client User-Agent.
	appName = "cloud-jukebox"

	// S3 error codes reported for missing buckets and keys.
	errCodeNoSuchBucket = "NoSuchBucket"
	errCodeNoSuchKey    = "NoSuchKey"
	errCodeNotFound     = "NotFound"
)

// S3Options configures the S3-compatible backend.
type S3Options struct {
	// Endpoint is the host[:port] of the S3 service.
	Endpoint string
	// Region is the bucket region.
	Region string
	// UseSSL selects HTTPS.
	UseSSL bool
	// AccessKey is the access key id.
	AccessKey string
	// SecretKey is the secret access key.
	SecretKey string
	// ContainerPrefix is prepended to every container name to form a bucket name.
	ContainerPrefix string
	// MaxLogLength limits the size of logged request and response dumps.
	MaxLogLength uint64
}

// S3Backend maps containers onto prefixed buckets of an S3-compatible service.
type S3Backend struct {
	// client is the underlying S3 client.
	client *minio.Client
	// region is used when creating buckets.
	region string
	// containerPrefix is prepended to container names.
	containerPrefix string
}

// NewS3Backend connects to the S3 service described by opts.
func NewS3Backend(ctx context.Context, opts S3Options) (*S3Backend, error) {
	baseTransport, err := minio.DefaultTransport(opts.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 transport: %w", err)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:    opts.UseSSL,
		Region:    opts.Region,
		Transport: transport.NewLogTransport(baseTransport, opts.MaxLogLength),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	client.SetAppInfo(appName, version.Short())

	logger.Debugf(ctx, "Using S3 endpoint %s with container prefix '%s'", opts.Endpoint, opts.ContainerPrefix)

	return &S3Backend{
		client:          client,
		region:          opts.Region,
		containerPrefix: opts.ContainerPrefix,
	}, nil
}

// ListContainers returns the unprefixed names of buckets carrying the container prefix.
func (b *S3Backend) ListContainers(ctx context.Context) ([]string, error) {
	buckets, err := b.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	containers := make([]string, 0, len(buckets))

	for _, bucket := range buckets {
		if b.containerPrefix != "" && !strings.HasPrefix(bucket.Name, b.containerPrefix) {
			continue
		}

		containers = append(containers, b.unprefixedContainer(bucket.Name))
	}

	return containers, nil
}

// HasContainer reports whether the prefixed bucket exists.
func (b *S3Backend) HasContainer(ctx context.Context, containerName string) (bool, error) {
	if containerName == "" {
		return false, ErrEmptyContainerName
	}

	exists, err := b.client.BucketExists(ctx, b.prefixedContainer(containerName))
	if err != nil {
		return false, fmt.Errorf("failed to check bucket: %w", err)
	}

	return exists, nil
}

// CreateContainer creates the prefixed bucket.
func (b *S3Backend) CreateContainer(ctx context.Context, containerName string) error {
	if containerName == "" {
		return ErrEmptyContainerName
	}

	err := b.client.MakeBucket(ctx, b.prefixedContainer(containerName), minio.MakeBucketOptions{Region: b.region})
	if err != nil {
		return fmt.Errorf("failed to create container '%s': %w", containerName, err)
	}

	return nil
}

// DeleteContainer deletes the prefixed bucket.
func (b *S3Backend) DeleteContainer(ctx context.Context, containerName string) error {
	if containerName == "" {
		return ErrEmptyContainerName
	}

	if err := b.client.RemoveBucket(ctx, b.prefixedContainer(containerName)); err != nil {
		return b.translateError(err, containerName, "")
	}

	return nil
}

// ListObjects returns every key in the prefixed bucket.
func (b *S3Backend) ListObjects(ctx context.Context, containerName string) ([]string, error) {
	if containerName == "" {
		return nil, ErrEmptyContainerName
	}

	var objects []string

	for object := range b.client.ListObjects(
		ctx,
		b.prefixedContainer(containerName),
		minio.ListObjectsOptions{Recursive: true},
	) {
		if object.Err != nil {
			return nil, b.translateError(object.Err, containerName, "")
		}

		objects = append(objects, object.Key)
	}

	return objects, nil
}

// GetObjectMetadata returns the user metadata of an object.
func (b *S3Backend) GetObjectMetadata(ctx context.Context, containerName, objectName string) (Properties, error) {
	if err := validateNames(containerName, objectName); err != nil {
		return nil, err
	}

	info, err := b.client.StatObject(ctx, b.prefixedContainer(containerName), objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, b.translateError(err, containerName, objectName)
	}

	props := make(Properties, len(info.UserMetadata))
	for key, value := range info.UserMetadata {
		props[strings.ToLower(key)] = value
	}

	return props, nil
}

// PutObject uploads data with the given properties as user metadata.
func (b *S3Backend) PutObject(
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

	_, err := b.client.PutObject(
		ctx,
		b.prefixedContainer(containerName),
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{UserMetadata: props},
	)
	if err != nil {
		return b.translateError(err, containerName, objectName)
	}

	return nil
}

// DeleteObject removes an object.
func (b *S3Backend) DeleteObject(ctx context.Context, containerName, objectName string) error {
	if err := validateNames(containerName, objectName); err != nil {
		return err
	}

	err := b.client.RemoveObject(ctx, b.prefixedContainer(containerName), objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return b.translateError(err, containerName, objectName)
	}

	return nil
}

// GetObject streams an object into localFilePath.
func (b *S3Backend) GetObject(ctx context.Context, containerName, objectName, localFilePath string) (int64, error) {
	if err := validateNames(containerName, objectName); err != nil {
		return 0, err
	}

	object, err := b.client.GetObject(ctx, b.prefixedContainer(containerName), objectName, minio.GetObjectOptions{})
	if err != nil {
		return 0, b.translateError(err, containerName, objectName)
	}

	defer object.Close() //nolint:errcheck // Error on close is not critical here.

	file, err := os.OpenFile(
		filepath.Clean(localFilePath),
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
		constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create local file: %w", err)
	}

	bytesWritten, err := io.Copy(file, object)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return bytesWritten, b.translateError(err, containerName, objectName)
	}

	return bytesWritten, nil
}

// Close is a no-op; the S3 client holds no persistent connections that need releasing.
func (b *S3Backend) Close() error {
	return nil
}

func (b *S3Backend) prefixedContainer(containerName string) string {
	return b.containerPrefix + containerName
}

func (b *S3Backend) unprefixedContainer(bucketName string) string {
	return strings.TrimPrefix(bucketName, b.containerPrefix)
}

func (b *S3Backend) translateError(err error, containerName, objectName string) error {
	var response minio.ErrorResponse
	if !errors.As(err, &response) {
		return err
	}

	switch response.Code {
	case errCodeNoSuchBucket:
		return fmt.Errorf("%w: %s", ErrContainerNotFound, containerName)
	case errCodeNoSuchKey, errCodeNotFound:
		return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, containerName, objectName)
	default:
		return fmt.Errorf("S3 request for '%s/%s' failed: %w", containerName, objectName, err)
	}
}
