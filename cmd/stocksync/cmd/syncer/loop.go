package syncer

import (
	"context"
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	stocksync "github.com/agentstation/stocksync/pkg/sync"
)

// runner is the part of a Syncer the loop needs.
type runner interface {
	Run(ctx context.Context) (*stocksync.Result, error)
}

// loop runs s immediately and then on every tick until ctx is done.
// Failed runs are logged and the loop carries on; it returns nil once ctx is
// cancelled.
func loop(ctx context.Context, s runner, interval time.Duration, report func(*stocksync.Result) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := s.Run(ctx)
		switch {
		case ctx.Err() != nil:
			logging.Info().Msg("Sync loop stopped")
			return nil
		case err != nil:
			// Feed outages are expected to clear up by the next tick
			logging.Error().Err(err).Bool("feed_unavailable", errors.IsFeedUnavailable(err)).Msg("Sync run failed")
		default:
			if err := report(result); err != nil {
				return err
			}
		}

		logging.Info().Dur("interval", interval).Time("next", time.Now().Add(interval)).Msg("Waiting for next sync")

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logging.Info().Msg("Sync loop stopped")
			return nil
		}
	}
}
