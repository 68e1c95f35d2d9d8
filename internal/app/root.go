package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/metadata"
	"github.com/oshokin/cloud-jukebox/internal/service/jukebox"
	"github.com/oshokin/cloud-jukebox/internal/storage"
)

// session holds the resources shared by every command.
type session struct {
	cfg      *config.Config
	backend  storage.Backend
	store    metadata.Store
	registry *prometheus.Registry
	jukebox  *jukebox.Jukebox
}

// openSession connects to the storage backend, fetches the catalog database unless suppressed
// and opens it.
func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.SuppressMetadataDownload {
		if err = jukebox.DownloadMetadataDB(ctx, cfg, backend); err != nil {
			backend.Close() //nolint:errcheck,gosec // The download error is the one worth reporting.

			return nil, err
		}
	}

	store, err := metadata.OpenSQLiteStore(ctx, cfg.MetadataDBFile)
	if err != nil {
		backend.Close() //nolint:errcheck,gosec // The open error is the one worth reporting.

		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &session{
		cfg:      cfg,
		backend:  backend,
		store:    store,
		registry: registry,
		jukebox:  jukebox.New(cfg, backend, store, jukebox.NewMetrics(registry)),
	}, nil
}

// mustOpenSession opens a session or terminates the process.
func mustOpenSession(ctx context.Context, cfg *config.Config) *session {
	s, err := openSession(ctx, cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open session: %v", err)
	}

	return s
}

// close releases the catalog database and the backend.
func (s *session) close(ctx context.Context) {
	if err := s.store.Close(); err != nil {
		logger.Warnf(ctx, "Failed to close the metadata database: %v", err)
	}

	if err := s.backend.Close(); err != nil {
		logger.Warnf(ctx, "Failed to close the storage backend: %v", err)
	}
}

// newBackend creates the storage backend selected in the configuration.
func newBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage {
	case "fs":
		backend, err := storage.NewFSBackend(cfg.FSRootDir)
		if err != nil {
			return nil, err
		}

		return backend, nil
	case "s3":
		creds, err := config.LoadCredentials(cfg.S3.CredentialsFile, cfg.UpdateMode)
		if err != nil {
			return nil, err
		}

		backend, err := storage.NewS3Backend(ctx, storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			UseSSL:          cfg.S3.UseSSL,
			AccessKey:       creds.AccessKey,
			SecretKey:       creds.SecretKey,
			ContainerPrefix: cfg.S3.ContainerPrefix,
			MaxLogLength:    cfg.ParsedMaxLogLength,
		})
		if err != nil {
			return nil, err
		}

		return backend, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", storage.ErrUnknownBackend, cfg.Storage)
	}
}

// fatalOnError terminates the process when err is set, unless the context was canceled.
func fatalOnError(ctx context.Context, action string, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		logger.Infof(ctx, "%s interrupted", action)

		return
	}

	logger.Fatalf(ctx, "%s failed: %v", action, err)
}
