package app

import (
	"context"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/control"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/service/jukebox"
)

// ExecutePlayCommand plays the songs selected by the configured playlist, or else by the artist and album filters.
// Cancelling ctx (a signal) prepares the jukebox for termination and the session winds down.
func ExecutePlayCommand(ctx context.Context, cfg *config.Config, shuffle bool) {
	s := mustOpenSession(ctx, cfg)
	defer s.close(ctx)

	order, err := s.jukebox.ResolvePlayOrder(ctx)
	fatalOnError(ctx, "Resolving the play order", err)

	if len(order) == 0 {
		logger.Info(ctx, "no songs to play")

		return
	}

	logger.Infof(ctx, "%d songs in the play order", len(order))

	stopWatching := context.AfterFunc(ctx, func() {
		s.jukebox.PrepareForTermination(context.WithoutCancel(ctx))
	})
	defer stopWatching()

	err = s.jukebox.PlaySongs(ctx, order, jukebox.PlayOptions{
		Shuffle:     shuffle,
		RepeatMode:  cfg.RepeatMode,
		SessionHook: control.SessionHook(cfg.Control, s.registry),
	})
	fatalOnError(ctx, "Playback", err)
}
