package jukebox

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/samber/lo/mutable"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// SessionHook starts session-scoped services, such as the control surface, once the first song is resident.
// The returned stop function is called when the session ends.
type SessionHook func(ctx context.Context, j *Jukebox) (stop func(), err error)

// PlayOptions configures a play session.
type PlayOptions struct {
	// Shuffle randomizes the play order before playback starts.
	Shuffle bool
	// RepeatMode restarts the play order after the last song.
	RepeatMode bool
	// SessionHook is started after the first song is downloaded.
	SessionHook SessionHook
}

// PlaySongs plays the songs in order until the order is exhausted, exit is requested or ctx is done.
// The first song is downloaded synchronously; failing that aborts the session with ErrFirstSongDownload.
// On every exit route the liveness marker is removed and background work is awaited.
func (j *Jukebox) PlaySongs(ctx context.Context, order []*model.SongMetadata, opts PlayOptions) error {
	if len(order) == 0 {
		return ErrNoSongs
	}

	if j.cfg.AudioPlayerRequired && j.player.Load() == nil {
		return ErrNoAudioPlayer
	}

	var stopHook func()

	defer func() {
		j.removePIDFile(ctx)
		j.requestExit()
		j.stopCurrentTask()

		if stopHook != nil {
			stopHook()
		}

		j.background.Wait()
	}()

	if err := j.prepareCacheDir(ctx); err != nil {
		return fmt.Errorf("failed to prepare the play cache: %w", err)
	}

	order = slices.Clone(order)
	if opts.Shuffle {
		mutable.Shuffle(order)
	}

	j.setOrder(order)
	j.currentIndex.Store(0)
	j.isRepeatMode.Store(opts.RepeatMode)

	logger.Info(ctx, "downloading first song...")

	if _, err := j.downloadSong(ctx, order[0]); err != nil {
		return fmt.Errorf("%w: %w", ErrFirstSongDownload, err)
	}

	logger.Info(ctx, "first song downloaded, starting playing now")

	if err := j.writePIDFile(); err != nil {
		logger.Warnf(ctx, "Failed to write %s: %v", j.cfg.PIDFile, err)
	}

	if opts.SessionHook != nil {
		stop, err := opts.SessionHook(ctx, j)
		if err != nil {
			logger.Errorf(ctx, "Failed to start session services: %v", err)
		}

		stopHook = stop
	}

	j.playLoop(ctx)

	logger.Info(ctx, "exiting jukebox")

	return nil
}

func (j *Jukebox) playLoop(ctx context.Context) {
	for !j.exitRequested.Load() {
		if ctx.Err() != nil {
			j.requestExit()

			break
		}

		if j.isPaused.Load() {
			j.sleep(ctx, j.cfg.ParsedPausePollInterval)

			continue
		}

		j.playIteration(ctx)
	}
}

// playIteration tops up the cache, plays the current song and advances the index.
// A panic is logged and the loop goes on.
func (j *Jukebox) playIteration(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Recovered from panic in the playback loop: %v", r)
			j.sleep(ctx, j.cfg.ParsedPausePollInterval)
		}
	}()

	order := j.playOrder()
	index := j.CurrentIndex()

	j.TopUp(ctx, order, index)
	j.ensureResident(ctx, order[index])

	played := j.PlayOne(ctx, j.SongPath(order[index]))

	if j.isPaused.Load() || j.exitRequested.Load() || ctx.Err() != nil {
		return
	}

	// Back off so an unreachable song does not spin the loop.
	if !played {
		j.sleep(ctx, j.cfg.ParsedPausePollInterval)
	}

	next := index + 1
	if next >= len(order) {
		if !j.isRepeatMode.Load() {
			logger.Info(ctx, "reached the end of the play order")
			j.requestExit()

			return
		}

		next = 0
	}

	j.currentIndex.Store(int64(next))
}

func (j *Jukebox) writePIDFile() error {
	return os.WriteFile(j.cfg.PIDFile, []byte(strconv.Itoa(os.Getpid())), constants.DefaultFilePermissions)
}

func (j *Jukebox) removePIDFile(ctx context.Context) {
	if err := utils.RemoveIfExists(j.cfg.PIDFile); err != nil {
		logger.Warnf(ctx, "Failed to remove %s: %v", j.cfg.PIDFile, err)
	}
}
