package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"modboard/adapters/api"
	"modboard/adapters/excel"
	"modboard/app"
	"modboard/internal"
	"modboard/internal/config"
	"modboard/internal/metrics"
	"modboard/internal/preferences"
	"modboard/internal/report"
	"modboard/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	Logger   *internal.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
	Client   *api.Client
	Theme    *preferences.Store

	// Services
	Stats      *app.StatsService
	Loaders    *app.StatsLoaders
	Exports    *app.ExportService
	Listings   *app.ListingService
	Moderation *app.ModerationService

	logFile io.Closer
}

// New builds every dependency from cfg
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg}
	c.initLogging()
	c.initMetrics()

	theme, err := preferences.Open(cfg.Preferences.File)
	if err != nil {
		c.Shutdown(context.Background())
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	c.Theme = theme

	c.Client = api.NewClient(cfg.API, c.Metrics, c.Logger)
	c.Stats = app.NewStatsService(c.Client, c.Logger)
	c.Loaders = app.NewStatsLoaders(c.Stats, c.Metrics, c.Logger)
	c.Exports = app.NewExportService(report.NewExporter(), excel.NewWorkbookWriter(), c.Metrics, c.Logger)
	c.Listings = app.NewListingService(c.Client, c.Logger)
	c.Moderation = app.NewModerationService(c.Client, c.Logger)

	c.Logger.Debug("container ready (api %s, timeout %v)", cfg.API.BaseURL, cfg.API.Timeout)
	return c, nil
}

func (c *Container) initLogging() {
	level := internal.ParseLogLevel(c.Config.Logging.Level)
	if c.Config.Logging.File == "" {
		c.Logger = internal.NewLogger(level, os.Stderr)
		return
	}
	out := internal.FileOutput(c.Config.Logging.File, c.Config.Logging.MaxSizeMB, c.Config.Logging.MaxBackups)
	c.logFile = out
	c.Logger = internal.NewLogger(level, out)
}

func (c *Container) initMetrics() {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewRecorder(c.Registry)
}

// App builds the HTTP application over the container's services
func (c *Container) App() *ui.App {
	svc := ui.Services{
		Listings:   c.Listings,
		Moderation: c.Moderation,
		Loaders:    c.Loaders,
		Dashboards: c.Stats,
		Exports:    c.Exports,
		Theme:      c.Theme,
		Logger:     c.Logger,
		Now:        time.Now,
	}
	if c.Config.Server.MetricsEnabled {
		svc.Metrics = promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
	}
	return ui.NewApp(svc)
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	if c.logFile != nil {
		return c.logFile.Close()
	}
	return nil
}
