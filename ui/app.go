package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"modboard/app"
	"modboard/internal"
	"modboard/ports"
)

// Services are the collaborators the HTTP layer drives
type Services struct {
	Listings   *app.ListingService
	Moderation *app.ModerationService
	// Loaders track each client's period selection
	Loaders *app.StatsLoaders
	// Dashboards loads a period without touching the selection, for exports
	Dashboards app.DashboardSource
	Exports    *app.ExportService
	Theme      ports.ThemeStore
	// Metrics serves /metrics when set
	Metrics http.Handler
	Logger  *internal.Logger
	Now     func() time.Time
}

// App is the dashboard's HTTP application
type App struct {
	router *chi.Mux
	svc    Services
	logger *internal.Logger
}

// NewApp wires routes and middleware
func NewApp(svc Services) *App {
	if svc.Logger == nil {
		svc.Logger = internal.Discard
	}
	if svc.Now == nil {
		svc.Now = time.Now
	}

	a := &App{
		router: chi.NewRouter(),
		svc:    svc,
		logger: svc.Logger.With("HTTP"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Handler exposes the router
func (a *App) Handler() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5, "application/json"))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	if a.svc.Metrics != nil {
		a.router.Handle("/metrics", a.svc.Metrics)
	}

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/listings", a.handleListListings)
		r.Route("/listings/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetListing)
			r.Get("/view", a.handleViewListing)
			r.Post("/approve", a.handleApprove)
			r.Post("/reject", a.handleReject)
			r.Post("/request-changes", a.handleRequestChanges)
		})

		r.Get("/stats", a.handleStats)
		r.Get("/export/{format}", a.handleExport)

		r.Get("/reasons", a.handleReasons)
		r.Get("/categories", a.handleCategories)

		r.Get("/preferences/theme", a.handleGetTheme)
		r.Put("/preferences/theme", a.handlePutTheme)
		r.Post("/preferences/theme/toggle", a.handleToggleTheme)
	})
}

// Start serves on addr until ctx is done, then shuts down gracefully
func (a *App) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
