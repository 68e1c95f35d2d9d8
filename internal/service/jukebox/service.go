package jukebox

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/metadata"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/storage"
)

// Jukebox coordinates the play cache, the prefetcher and sequential playback of one session.
// It also owns the import and catalog operations over the same backend and store.
// A Jukebox plays at most one session: once exit is requested it stays requested.
type Jukebox struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// backend is the object storage holding songs, playlists and the catalog database.
	backend storage.Backend
	// store is the song and playlist catalog.
	store metadata.Store
	// metrics holds the Prometheus collectors.
	metrics *Metrics
	// tagReader names imported songs that don't follow the file naming convention.
	tagReader TagReader

	// player is the external audio player; nil selects simulated playback.
	player atomic.Pointer[config.AudioPlayerConfig]

	// order is the immutable play order of the running session.
	order []*model.SongMetadata
	// orderMutex protects the order slice header.
	orderMutex sync.RWMutex

	// currentIndex is written by the playback loop only.
	currentIndex atomic.Int64
	isPaused     atomic.Bool
	isRepeatMode atomic.Bool
	// songSecondsOffset is the resume position of the current song.
	songSecondsOffset atomic.Int64
	// resumeRequested makes the next play of the current song start at songSecondsOffset.
	resumeRequested atomic.Bool
	// playStartedAt is the UnixNano start of the running play task, 0 when idle.
	playStartedAt atomic.Int64
	// playStartOffset is the offset in seconds the running play task started at.
	playStartOffset atomic.Int64

	// exitRequested is the cooperative cancellation flag of the session.
	exitRequested atomic.Bool
	// exitCh is closed once when exit is requested.
	exitCh   chan struct{}
	exitOnce sync.Once

	// task is the running play task, nil when idle.
	task *playTask
	// taskMutex serializes starting, stopping and replacing the play task.
	taskMutex sync.Mutex

	// prefetchRunning guards against concurrent prefetch batches.
	prefetchRunning atomic.Bool
	// inFlight holds the file uids of songs queued for download.
	inFlight      map[string]struct{}
	inFlightMutex sync.Mutex

	// background tracks prefetch batches and delayed deletions.
	background sync.WaitGroup

	// stats tracks import statistics for the current command.
	stats *ImportStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// New creates a jukebox over the given backend and catalog.
// A nil metrics value registers fresh collectors on a private registry.
func New(cfg *config.Config, backend storage.Backend, store metadata.Store, metrics *Metrics) *Jukebox {
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	j := &Jukebox{
		cfg:        cfg,
		backend:    backend,
		store:      store,
		metrics:    metrics,
		tagReader:  NewTagReader(),
		exitCh:     make(chan struct{}),
		inFlight:   make(map[string]struct{}),
		stats:      new(ImportStatistics),
		statsMutex: new(sync.Mutex),
	}

	if player, ok := cfg.AudioPlayerForOS(runtime.GOOS); ok {
		j.player.Store(&player)
	}

	j.isRepeatMode.Store(cfg.RepeatMode)

	return j
}

// Store returns the catalog the jukebox works on.
func (j *Jukebox) Store() metadata.Store {
	return j.store
}

// NumberSongs returns the length of the play order.
func (j *Jukebox) NumberSongs() int {
	j.orderMutex.RLock()
	defer j.orderMutex.RUnlock()

	return len(j.order)
}

// ResolvePlayOrder builds the play order from the configured playlist, or else from the artist and album filters.
func (j *Jukebox) ResolvePlayOrder(ctx context.Context) ([]*model.SongMetadata, error) {
	if j.cfg.Playlist != "" {
		return j.store.PlaylistSongs(ctx, j.cfg.Playlist)
	}

	return j.store.RetrieveSongs(ctx, j.cfg.Artist, j.cfg.Album)
}

func (j *Jukebox) setOrder(order []*model.SongMetadata) {
	j.orderMutex.Lock()
	defer j.orderMutex.Unlock()

	j.order = slices.Clone(order)
}

func (j *Jukebox) playOrder() []*model.SongMetadata {
	j.orderMutex.RLock()
	defer j.orderMutex.RUnlock()

	return j.order
}
