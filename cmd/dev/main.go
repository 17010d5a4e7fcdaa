package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"modboard/app"
	"modboard/domain/stats"
	"modboard/internal/config"
	"modboard/internal/container"
	"modboard/internal/report"
	"modboard/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modboard-dev",
		Short: "modboard development tools",
	}

	rootCmd.AddCommand(
		newFakeAPICmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFakeAPICmd() *cobra.Command {
	var (
		port     int
		failures []string
		delays   []string
	)

	cmd := &cobra.Command{
		Use:   "fake-api",
		Short: "Serve a fake moderation API with fixture data",
		Long: `Serve /api/v1 with 24 fixture ads and stats for today, week and month.

Example: modboard-dev fake-api --port 3001 --fail stats.categories=500 --delay stats.summary=2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)
			fake := testkit.NewFakeAPI(time.Now())

			for _, pair := range failures {
				endpoint, value, err := splitPair(pair)
				if err != nil {
					return err
				}
				status, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid status in %q: %w", pair, err)
				}
				fake.FailOn(endpoint, status, `{"message":"Сервис временно недоступен"}`)
			}
			for _, pair := range delays {
				endpoint, value, err := splitPair(pair)
				if err != nil {
					return err
				}
				d, err := time.ParseDuration(value)
				if err != nil {
					return fmt.Errorf("invalid delay in %q: %w", pair, err)
				}
				fake.Delay(endpoint, d)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: fake.Handler()}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			fmt.Printf("fake moderation API on http://localhost:%d/api/v1\n", port)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 3001, "Port to listen on")
	cmd.Flags().StringArrayVar(&failures, "fail", nil, "endpoint=status to fail, e.g. stats.summary=502")
	cmd.Flags().StringArrayVar(&delays, "delay", nil, "endpoint=duration to delay, e.g. ads.list=1s")

	return cmd
}

func splitPair(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("expected endpoint=value, got %q", pair)
	}
	return key, value, nil
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the stats and export pipeline against an in-process fake API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context())
		},
	}
	return cmd
}

func runSmokeTests(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	fake := testkit.NewFakeAPI(time.Now())
	upstream := httptest.NewServer(fake.Handler())
	defer upstream.Close()

	dir, err := os.MkdirTemp("", "modboard-smoke-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	cfg := &config.Config{
		API:         config.APIConfig{BaseURL: upstream.URL + "/api/v1", Timeout: 5 * time.Second},
		Logging:     config.LoggingConfig{Level: "WARN"},
		Preferences: config.PreferencesConfig{File: dir + "/preferences.yaml"},
		Export:      config.ExportConfig{Dir: dir},
	}
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())

	for _, period := range stats.Periods() {
		d, err := c.Loaders.For(app.DefaultClient).Load(ctx, period)
		if err != nil {
			return fmt.Errorf("load %s: %w", period, err)
		}
		fmt.Printf("✓ %s: %d reviewed, %d days, %d categories\n", period.Label(), d.Summary.TotalReviewed, len(d.Activity), len(d.Categories))

		for _, f := range report.Formats() {
			path, err := c.Exports.ExportToFile(ctx, f, d.Export, dir)
			if err != nil {
				return fmt.Errorf("export %s %s: %w", period, f, err)
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			fmt.Printf("  ✓ %s (%d bytes)\n", info.Name(), info.Size())
		}
	}

	fmt.Println("Smoke tests passed")
	return nil
}
