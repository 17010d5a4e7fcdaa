package app

import (
	"context"
	"fmt"
	"sync"

	"modboard/domain/core"
	"modboard/domain/stats"
	"modboard/internal"
	"modboard/internal/metrics"
)

// DashboardSource loads a dashboard for a period
type DashboardSource interface {
	Load(ctx context.Context, period stats.Period) (*stats.Dashboard, error)
}

// StatsLoader applies period selections so that only the latest one wins.
// Every Load starts a new generation and cancels the one in flight; a
// result is stored only if its generation is still the latest when it
// arrives.
type StatsLoader struct {
	source  DashboardSource
	metrics *metrics.Recorder
	logger  *internal.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *stats.Dashboard
}

// NewStatsLoader wraps source
func NewStatsLoader(source DashboardSource, recorder *metrics.Recorder, logger *internal.Logger) *StatsLoader {
	if logger == nil {
		logger = internal.Discard
	}
	return &StatsLoader{source: source, metrics: recorder, logger: logger.With("StatsLoader")}
}

// Load selects period. Stale results return core.ErrSuperseded. A failure
// of the latest generation clears the current dashboard.
func (l *StatsLoader) Load(ctx context.Context, period stats.Period) (*stats.Dashboard, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.generation++
	gen := l.generation
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()

	dashboard, err := l.source.Load(ctx, period)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		l.metrics.CountSuperseded()
		l.logger.Debug("discarding %s stats from generation %d, latest is %d", period, gen, l.generation)
		return nil, fmt.Errorf("%w: %s (generation %d)", core.ErrSuperseded, period, gen)
	}
	l.cancel = nil

	if err != nil {
		l.current = nil
		return nil, err
	}
	l.current = dashboard
	return dashboard, nil
}

// Current returns the dashboard of the latest successful generation
func (l *StatsLoader) Current() (*stats.Dashboard, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.current != nil
}

// Generation is the number of loads started so far
func (l *StatsLoader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}
