package jukebox

import (
	"context"
	"time"

	"github.com/oshokin/cloud-jukebox/internal/constants"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/model"
)

// Info is a snapshot of the playback state reported by the control surface.
type Info struct {
	NumberSongs       int    `json:"numberSongs"`
	CurrentArtist     string `json:"currentArtist"`
	CurrentAlbum      string `json:"currentAlbum"`
	CurrentSong       string `json:"currentSong"`
	CurrentObject     string `json:"currentObject"`
	ScopeArtist       string `json:"scopeArtist"`
	ScopeAlbum        string `json:"scopeAlbum"`
	ScopePlaylist     string `json:"scopePlaylist"`
	IsPaused          bool   `json:"isPaused"`
	SongSecondsOffset int64  `json:"songSecondsOffset"`
	AlbumArtURL       string `json:"albumArtUrl"`
}

// ExitRequested reports whether the session has been asked to stop.
func (j *Jukebox) ExitRequested() bool {
	return j.exitRequested.Load()
}

// Done returns a channel that is closed once exit has been requested.
func (j *Jukebox) Done() <-chan struct{} {
	return j.exitCh
}

// IsPaused reports whether playback is paused.
func (j *Jukebox) IsPaused() bool {
	return j.isPaused.Load()
}

// SongSecondsOffset returns the resume position of the current song in seconds.
func (j *Jukebox) SongSecondsOffset() int64 {
	return j.songSecondsOffset.Load()
}

// CurrentIndex returns the position of the current song in the play order.
func (j *Jukebox) CurrentIndex() int {
	return int(j.currentIndex.Load())
}

// TogglePausePlay pauses or resumes playback.
// Pausing records the playback position, marks the next play of the song as a resume
// and stops the running player so audio stops at once.
func (j *Jukebox) TogglePausePlay(ctx context.Context) {
	j.taskMutex.Lock()
	defer j.taskMutex.Unlock()

	if j.isPaused.Load() {
		j.isPaused.Store(false)
		logger.Info(ctx, "resuming play")

		return
	}

	j.isPaused.Store(true)

	if startedAt := j.playStartedAt.Load(); startedAt != 0 {
		elapsed := time.Since(time.Unix(0, startedAt))
		j.songSecondsOffset.Store(j.playStartOffset.Load() + int64(elapsed/time.Second))
	}

	j.resumeRequested.Store(true)
	logger.Infof(ctx, "paused at %d seconds", j.songSecondsOffset.Load())

	j.stopTaskLocked()
}

// AdvanceToNextSong stops the current song; the following song starts from its beginning.
func (j *Jukebox) AdvanceToNextSong(ctx context.Context) {
	j.taskMutex.Lock()
	defer j.taskMutex.Unlock()

	logger.Info(ctx, "advancing to next song")

	j.resumeRequested.Store(false)
	j.songSecondsOffset.Store(0)
	j.stopTaskLocked()
}

// PrepareForTermination requests exit and stops the running player.
// It is safe to call from a signal handler goroutine and more than once.
func (j *Jukebox) PrepareForTermination(ctx context.Context) {
	logger.Info(ctx, "preparing for termination")

	j.requestExit()
	j.stopCurrentTask()
}

// Info returns a snapshot of the playback state.
func (j *Jukebox) Info() Info {
	order := j.playOrder()

	info := Info{
		NumberSongs:       len(order),
		ScopeArtist:       j.cfg.Artist,
		ScopeAlbum:        j.cfg.Album,
		ScopePlaylist:     j.cfg.Playlist,
		IsPaused:          j.isPaused.Load(),
		SongSecondsOffset: j.songSecondsOffset.Load(),
	}

	index := j.CurrentIndex()
	if index < 0 || index >= len(order) {
		return info
	}

	song := order[index]
	info.CurrentArtist = song.ArtistName
	info.CurrentAlbum = song.AlbumName()
	info.CurrentSong = song.SongName
	info.CurrentObject = song.FM.ObjectName

	if info.CurrentArtist != "" && info.CurrentAlbum != "" {
		info.AlbumArtURL = constants.AlbumArtContainer + "/" + model.AlbumPrefix(info.CurrentArtist, info.CurrentAlbum)
	}

	return info
}

func (j *Jukebox) requestExit() {
	j.exitRequested.Store(true)
	j.exitOnce.Do(func() {
		close(j.exitCh)
	})
}

// sleep waits for the duration, returning early when exit is requested or ctx is done.
func (j *Jukebox) sleep(ctx context.Context, duration time.Duration) {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-j.exitCh:
	case <-ctx.Done():
	}
}
