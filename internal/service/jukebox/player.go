package jukebox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// errPlaybackSuppressed is returned when playback must not start because the session is paused or exiting.
var errPlaybackSuppressed = errors.New("playback suppressed")

// playerArgs is the data available to audio player argument templates.
type playerArgs struct {
	// FilePath is the path of the song in the play cache.
	FilePath string
	// StartOffset is the resume position in seconds.
	StartOffset int64
	// StartOffsetMillis is the resume position in milliseconds.
	StartOffsetMillis int64
}

// playTask is one cancellable play step: an external player process or a simulated sleep.
// The playback loop waits on done; stop makes the wait resolve early.
type playTask struct {
	done     chan struct{}
	stopFunc func()
	stopOnce sync.Once
	// err is the exit status of the player, valid after done is closed.
	err error
}

func (t *playTask) stop() {
	t.stopOnce.Do(t.stopFunc)
}

// PlayOne plays the file at songPath and blocks until it finishes or is interrupted.
// A missing file is logged and recorded in the missing files log.
// Unless playback is paused afterwards, the file is deleted after a grace delay.
// It reports whether the song was played.
func (j *Jukebox) PlayOne(ctx context.Context, songPath string) bool {
	exists, err := utils.IsFileExist(songPath)
	if err != nil || !exists {
		j.recordMissingFile(ctx, songPath)

		return false
	}

	task, err := j.startPlayTask(ctx, songPath)
	if errors.Is(err, errPlaybackSuppressed) {
		return false
	}

	if err != nil {
		logger.Errorf(ctx, "Failed to start audio player, using simulated playback for the rest of the session: %v", err)
		j.player.Store(nil)

		if task, err = j.startPlayTask(ctx, songPath); err != nil {
			return false
		}
	}

	j.metrics.songsPlayed.Inc()

	<-task.done

	j.finishTask(task)

	if task.err != nil && !errors.Is(task.err, context.Canceled) {
		logger.Debugf(ctx, "Audio player exited: %v", task.err)
	}

	if j.isPaused.Load() {
		return true
	}

	j.scheduleDelete(ctx, songPath)

	return true
}

func (j *Jukebox) recordMissingFile(ctx context.Context, songPath string) {
	logger.Warnf(ctx, "Song file doesn't exist: %s", songPath)
	j.metrics.missingFiles.Inc()

	if err := utils.AppendLine(j.cfg.MissingFilesLog, songPath); err != nil {
		logger.Errorf(ctx, "Unable to write to %s: %v", j.cfg.MissingFilesLog, err)
	}
}

// startPlayTask registers and starts the play task for a song.
// A pending resume request is consumed only once a task has started,
// so a play suppressed by a pause keeps it for the next attempt.
func (j *Jukebox) startPlayTask(ctx context.Context, songPath string) (*playTask, error) {
	j.taskMutex.Lock()
	defer j.taskMutex.Unlock()

	if j.isPaused.Load() || j.exitRequested.Load() {
		return nil, errPlaybackSuppressed
	}

	offset := int64(0)
	if j.resumeRequested.Load() {
		offset = j.songSecondsOffset.Load()
	}

	var (
		task *playTask
		err  error
	)

	player := j.player.Load()
	if player != nil {
		task, offset, err = j.startPlayerProcess(ctx, player, songPath, offset)
	} else {
		task = j.startSimulatedPlay(ctx, offset)
	}

	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "playing %s", songPath)

	j.resumeRequested.Store(false)
	j.task = task
	j.songSecondsOffset.Store(offset)
	j.playStartOffset.Store(offset)
	j.playStartedAt.Store(time.Now().UnixNano())

	return task, nil
}

// startPlayerProcess starts the external player. It returns the offset actually used:
// a player without a resume command restarts the song from the beginning.
func (j *Jukebox) startPlayerProcess(
	ctx context.Context,
	player *config.AudioPlayerConfig,
	songPath string,
	offset int64,
) (*playTask, int64, error) {
	templates := player.Command
	if offset > 0 && len(player.ResumeCommand) > 0 {
		templates = player.ResumeCommand
	} else {
		offset = 0
	}

	argv, err := buildPlayerArgs(templates, playerArgs{
		FilePath:          songPath,
		StartOffset:       offset,
		StartOffsetMillis: offset * int64(time.Second/time.Millisecond),
	})
	if err != nil {
		return nil, 0, err
	}

	//nolint:gosec // The player command comes from the user's own configuration.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err = cmd.Start(); err != nil {
		return nil, 0, fmt.Errorf("%w '%s': %w", ErrPlayerStart, argv[0], err)
	}

	task := &playTask{
		done: make(chan struct{}),
		stopFunc: func() {
			if killErr := cmd.Process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
				logger.Warnf(ctx, "Failed to stop audio player: %v", killErr)
			}
		},
	}

	go func() {
		task.err = cmd.Wait()
		close(task.done)
	}()

	return task, offset, nil
}

// startSimulatedPlay sleeps for the configured song length, minus the resume offset.
func (j *Jukebox) startSimulatedPlay(ctx context.Context, offset int64) *playTask {
	duration := max(j.cfg.ParsedSongPlayLength-time.Duration(offset)*time.Second, 0)
	stopCh := make(chan struct{})

	task := &playTask{
		done: make(chan struct{}),
		stopFunc: func() {
			close(stopCh)
		},
	}

	go func() {
		defer close(task.done)

		timer := time.NewTimer(duration)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-stopCh:
		case <-ctx.Done():
			task.err = ctx.Err()
		}
	}()

	return task
}

// finishTask clears the finished task unless a newer one has replaced it.
func (j *Jukebox) finishTask(task *playTask) {
	j.taskMutex.Lock()
	defer j.taskMutex.Unlock()

	if j.task == task {
		j.task = nil
		j.playStartedAt.Store(0)
	}
}

func (j *Jukebox) stopCurrentTask() {
	j.taskMutex.Lock()
	defer j.taskMutex.Unlock()

	j.stopTaskLocked()
}

func (j *Jukebox) stopTaskLocked() {
	if j.task != nil {
		j.task.stop()
	}
}

// scheduleDelete removes a played file after the grace delay, or at once when exit is requested.
// A file that belongs to the current song again, as in repeat mode with a single song or with
// the same song twice in a row, is kept while the session goes on.
func (j *Jukebox) scheduleDelete(ctx context.Context, songPath string) {
	j.background.Add(1)

	go func() {
		defer j.background.Done()

		j.sleep(ctx, j.cfg.ParsedPlayedFileDeleteDelay)

		if !j.exitRequested.Load() && j.isCurrentSongPath(songPath) {
			logger.Debugf(ctx, "keeping %s for the current song", songPath)

			return
		}

		if err := utils.RemoveIfExists(songPath); err != nil {
			logger.Warnf(ctx, "Failed to delete played file '%s': %v", songPath, err)
		}
	}()
}

// isCurrentSongPath reports whether songPath is the cache file of the song at the current index.
func (j *Jukebox) isCurrentSongPath(songPath string) bool {
	order := j.playOrder()
	index := j.CurrentIndex()

	if index < 0 || index >= len(order) {
		return false
	}

	return j.SongPath(order[index]) == songPath
}

// buildPlayerArgs renders every argument template of a player command.
func buildPlayerArgs(templates []string, data playerArgs) ([]string, error) {
	if len(templates) == 0 {
		return nil, ErrNoAudioPlayer
	}

	args := make([]string, 0, len(templates))

	for _, text := range templates {
		tmpl, err := template.New("arg").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse player argument '%s': %w", text, err)
		}

		var sb strings.Builder
		if err = tmpl.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("failed to render player argument '%s': %w", text, err)
		}

		args = append(args, sb.String())
	}

	return args, nil
}
