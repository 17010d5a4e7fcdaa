package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"modboard/domain/stats"
	"modboard/internal"
	"modboard/ports"
)

// StatsService fetches and shapes the statistics of one period
type StatsService struct {
	api    ports.StatsAPI
	logger *internal.Logger
}

// NewStatsService creates a stats service over the upstream API
func NewStatsService(api ports.StatsAPI, logger *internal.Logger) *StatsService {
	if logger == nil {
		logger = internal.Discard
	}
	return &StatsService{api: api, logger: logger.With("StatsService")}
}

// Load issues the four stats requests concurrently. The first failure
// cancels the others and is returned; no partial dashboard is produced.
func (s *StatsService) Load(ctx context.Context, period stats.Period) (*stats.Dashboard, error) {
	started := time.Now()

	var (
		summary    stats.Summary
		activity   []stats.ActivityPoint
		decisions  stats.Decisions
		categories stats.CategoryEntries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.api.Summary(gctx, period)
		return err
	})
	g.Go(func() (err error) {
		activity, err = s.api.Activity(gctx, period)
		return err
	})
	g.Go(func() (err error) {
		decisions, err = s.api.Decisions(gctx, period)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.api.Categories(gctx, period)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("loading %s stats failed after %v: %v", period, time.Since(started), err)
		return nil, fmt.Errorf("load %s stats: %w", period, err)
	}

	dashboard := stats.NewDashboard(period, summary, activity, decisions, categories)
	s.logger.Debug("loaded %s stats in %v (has data: %t)", period, time.Since(started), dashboard.HasData)
	return dashboard, nil
}
