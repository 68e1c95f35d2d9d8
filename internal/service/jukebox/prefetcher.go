package jukebox

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// BatchStats summarizes one prefetch batch.
type BatchStats struct {
	// Attempted is the number of downloads started.
	Attempted int
	// Downloaded is the number of songs made resident.
	Downloaded int
	// Failed is the number of downloads that failed or were rejected.
	Failed int
	// Bytes is the number of bytes of the resident songs.
	Bytes int64
	// Elapsed is the wall time of the batch.
	Elapsed time.Duration
}

// ThroughputKBps returns the average download throughput in kilobytes per second.
func (s BatchStats) ThroughputKBps() int64 {
	seconds := s.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}

	return int64(float64(s.Bytes) / 1000 / seconds)
}

// TopUp schedules a background batch that fills the play cache with the songs following currentIndex.
// At most one batch runs at a time: a call made while a batch is in flight is a no-op.
// It reports whether a batch was scheduled.
func (j *Jukebox) TopUp(ctx context.Context, order []*model.SongMetadata, currentIndex int) bool {
	if len(order) == 0 || currentIndex < 0 || currentIndex >= len(order) {
		return false
	}

	if j.exitRequested.Load() || !j.prefetchRunning.CompareAndSwap(false, true) {
		return false
	}

	batch, err := j.collectBatch(order, currentIndex)
	if err != nil {
		logger.Errorf(ctx, "Failed to scan the play cache: %v", err)
	}

	if len(batch) == 0 {
		j.prefetchRunning.Store(false)

		return false
	}

	j.metrics.prefetchBatches.Inc()
	j.background.Add(1)

	go func() {
		defer j.background.Done()
		defer j.prefetchRunning.Store(false)
		defer j.releaseInFlight(batch)

		stats := j.downloadBatch(ctx, batch)
		if stats.Attempted > 0 && !j.exitRequested.Load() {
			logger.Infof(ctx, "average download throughput = %d KB/sec", stats.ThroughputKBps())
		}
	}()

	return true
}

// collectBatch picks the songs after currentIndex that are neither resident nor queued.
// The batch fills only the free slots of the cache window, so the window never grows past
// FileCacheCount files besides the current one. Without repeat mode the scan stops at the
// end of the play order, since songs before the current one will not be played again.
func (j *Jukebox) collectBatch(order []*model.SongMetadata, currentIndex int) ([]*model.SongMetadata, error) {
	cached, err := j.cachedFiles()
	if err != nil {
		return nil, err
	}

	j.metrics.cachedFiles.Set(float64(len(cached)))

	currentUID := order[currentIndex].FM.FileUID

	residentCount := len(cached)
	if _, ok := cached[currentUID]; ok {
		residentCount--
	}

	freeSlots := j.cfg.FileCacheCount - residentCount
	if freeSlots <= 0 {
		return nil, nil
	}

	songCount := len(order)

	scanLimit := songCount
	if !j.isRepeatMode.Load() {
		scanLimit = songCount - currentIndex
	}

	j.inFlightMutex.Lock()
	defer j.inFlightMutex.Unlock()

	batch := make([]*model.SongMetadata, 0, freeSlots)

	for step := 1; step < scanLimit && len(batch) < freeSlots; step++ {
		song := order[(currentIndex+step)%songCount]
		fileUID := song.FM.FileUID

		if fileUID == currentUID {
			continue
		}

		if _, ok := cached[fileUID]; ok {
			continue
		}

		if _, ok := j.inFlight[fileUID]; ok {
			continue
		}

		j.inFlight[fileUID] = struct{}{}
		batch = append(batch, song)
	}

	return batch, nil
}

// ensureResident makes the song about to play resident before it starts.
// A download already queued by a prefetch batch is awaited; otherwise the song is
// fetched synchronously. A failed fetch is left to the missing file handling.
func (j *Jukebox) ensureResident(ctx context.Context, song *model.SongMetadata) {
	songPath := j.SongPath(song)

	for !j.exitRequested.Load() && ctx.Err() == nil {
		exists, err := utils.IsFileExist(songPath)
		if err == nil && exists {
			return
		}

		if j.claimInFlight(song) {
			defer j.releaseInFlight([]*model.SongMetadata{song})

			logger.Infof(ctx, "song %s is not resident, downloading it now", song.FM.FileUID)

			_, _ = j.downloadSong(ctx, song)

			return
		}

		j.sleep(ctx, j.cfg.ParsedPausePollInterval)
	}
}

// claimInFlight marks a song as queued and reports whether it was not queued already.
func (j *Jukebox) claimInFlight(song *model.SongMetadata) bool {
	j.inFlightMutex.Lock()
	defer j.inFlightMutex.Unlock()

	if _, ok := j.inFlight[song.FM.FileUID]; ok {
		return false
	}

	j.inFlight[song.FM.FileUID] = struct{}{}

	return true
}

func (j *Jukebox) releaseInFlight(batch []*model.SongMetadata) {
	j.inFlightMutex.Lock()
	defer j.inFlightMutex.Unlock()

	for _, song := range batch {
		delete(j.inFlight, song.FM.FileUID)
	}
}

// downloadBatch downloads a batch with a bounded worker pool.
// Songs not yet started when exit is requested are skipped.
func (j *Jukebox) downloadBatch(ctx context.Context, batch []*model.SongMetadata) BatchStats {
	var (
		stats      BatchStats
		statsMutex sync.Mutex
		waitGroup  sync.WaitGroup
	)

	startTime := time.Now()

	// Create a semaphore channel to limit concurrent downloads.
	semaphore := make(chan struct{}, max(j.cfg.MaxConcurrentDownloads, 1))

	for _, song := range batch {
		// Stop queueing new downloads once the session is ending.
		select {
		case <-ctx.Done():
			goto waitForCompletion
		case <-j.exitCh:
			goto waitForCompletion
		default:
		}

		waitGroup.Add(1)

		go func(song *model.SongMetadata) {
			defer waitGroup.Done()

			// Acquire semaphore slot (blocks if all workers are busy).
			semaphore <- struct{}{}

			defer func() {
				<-semaphore
			}()

			if j.exitRequested.Load() {
				return
			}

			bytesRetrieved, err := j.downloadSong(ctx, song)

			statsMutex.Lock()
			defer statsMutex.Unlock()

			stats.Attempted++

			if err != nil {
				stats.Failed++

				return
			}

			stats.Downloaded++
			stats.Bytes += bytesRetrieved
		}(song)
	}

waitForCompletion:
	// Wait for all in-flight downloads to complete.
	waitGroup.Wait()

	stats.Elapsed = time.Since(startTime)

	return stats
}
