package app

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockeye/stockeye/internal/models"
)

// scheduler runs the background jobs: a periodic cache expiry sweep
// and, when configured, watch-mode reanalysis of the watchlist.
type scheduler struct {
	app  *App
	cron *cron.Cron
}

func newScheduler(a *App) *scheduler {
	return &scheduler{
		app:  a,
		cron: cron.New(),
	}
}

// start registers the configured jobs and starts the cron runner.
// An empty schedule disables its job.
func (s *scheduler) start(onWatch func()) error {
	cfg := s.app.Config.Scheduler

	if cfg.SweepSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.SweepSchedule, func() {
			removed := s.app.Cache.SweepExpired()
			if removed > 0 {
				s.app.Logger.Debug().Int("removed", removed).Msg("scheduled cache sweep")
			}
		}); err != nil {
			return err
		}
	}

	if cfg.WatchSchedule != "" && onWatch != nil {
		if _, err := s.cron.AddFunc(cfg.WatchSchedule, onWatch); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

func (s *scheduler) stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.app.Logger.Warn().Msg("scheduler stop timed out")
	}
}

// StartScheduler begins background jobs. onWatch runs on the watch
// schedule; pass nil when not watching.
func (a *App) StartScheduler(onWatch func()) error {
	return a.scheduler.start(onWatch)
}

// Watch blocks until the context is done, rerunning the watchlist
// analysis on the configured schedule and streaming results to sink.
func (a *App) Watch(ctx context.Context, sink func([]*models.Analysis)) error {
	if a.Config.Scheduler.WatchSchedule == "" {
		return errors.New("watch schedule not configured")
	}

	run := func() {
		results, err := a.Analyzer.AnalyzeWatchlist(ctx)
		if err != nil {
			a.Logger.Error().Err(err).Msg("watch run failed")
			return
		}
		sink(results)
	}

	if err := a.StartScheduler(run); err != nil {
		return err
	}
	run()

	<-ctx.Done()
	return ctx.Err()
}
