package app

import (
	"strings"
	"sync"
	"time"

	"modboard/internal"
	"modboard/internal/metrics"
)

// DefaultClient keys the selection of callers that carry no client id, such
// as the CLI and the dev smoke run.
const DefaultClient = "default"

// DefaultMaxClients bounds how many client selections are remembered
const DefaultMaxClients = 1024

// StatsLoaders keeps one StatsLoader per client, so a period picked in one
// browser tab never supersedes or replaces the selection of another.
type StatsLoaders struct {
	source     DashboardSource
	metrics    *metrics.Recorder
	logger     *internal.Logger
	maxClients int
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLoader
}

type clientLoader struct {
	loader   *StatsLoader
	lastUsed time.Time
}

// NewStatsLoaders creates an empty registry over source
func NewStatsLoaders(source DashboardSource, recorder *metrics.Recorder, logger *internal.Logger) *StatsLoaders {
	if logger == nil {
		logger = internal.Discard
	}
	return &StatsLoaders{
		source:     source,
		metrics:    recorder,
		logger:     logger,
		maxClients: DefaultMaxClients,
		now:        time.Now,
		clients:    make(map[string]*clientLoader),
	}
}

// For returns the loader of client, creating it on first use. An empty id
// maps to DefaultClient. When the registry is full the least recently used
// client is forgotten.
func (s *StatsLoaders) For(client string) *StatsLoader {
	client = strings.TrimSpace(client)
	if client == "" {
		client = DefaultClient
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, ok := s.clients[client]; ok {
		c.lastUsed = now
		return c.loader
	}

	if len(s.clients) >= s.maxClients {
		s.evictOldestLocked()
	}
	loader := NewStatsLoader(s.source, s.metrics, s.logger)
	s.clients[client] = &clientLoader{loader: loader, lastUsed: now}
	return loader
}

// Len is the number of clients currently remembered
func (s *StatsLoaders) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *StatsLoaders) evictOldestLocked() {
	var (
		oldest   string
		oldestAt time.Time
	)
	for id, c := range s.clients {
		if oldest == "" || c.lastUsed.Before(oldestAt) {
			oldest, oldestAt = id, c.lastUsed
		}
	}
	if oldest != "" {
		delete(s.clients, oldest)
		s.logger.Debug("forgetting stats selection of client %s", oldest)
	}
}
