package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	config "activity-tracker.com/activity-tracker/internal/configs"
	httpapi "activity-tracker.com/activity-tracker/internal/http"
	"activity-tracker.com/activity-tracker/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the activity tracker HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		activityService, err := app.activityService()
		if err != nil {
			return err
		}

		limiter, closeLimiter := newLimiter(ctx, app)
		defer closeLimiter()

		e := httpapi.NewServer(httpapi.NewHandler(activityService, app.db), limiter, app.logger)

		go func() {
			app.logger.Info("HTTP server listening", "addr", app.cfg.AppURL)
			if err := e.Start(app.cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.logger.Error("server stopped", "err", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		app.logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

// newLimiter shares request counts through Redis when it is configured and
// reachable, and keeps them in process otherwise.
func newLimiter(ctx context.Context, a *app) (ratelimit.Limiter, func()) {
	opts := ratelimit.Options{Limit: a.cfg.RateLimit, Window: time.Minute}

	if a.cfg.RedisAddr != "" {
		client, err := config.NewRedisClient(a.cfg.RedisAddr)
		if err == nil {
			a.logger.Debug("using redis rate limiter", "addr", a.cfg.RedisAddr)
			return ratelimit.NewRedisLimiter(client, a.cfg.RedisKeyPrefix, opts), client.Close
		}
		a.logger.Warn("redis unavailable, limiting per process", "addr", a.cfg.RedisAddr, "err", err)
	}

	limiter := ratelimit.NewMemoryLimiter(opts)
	go limiter.RunSweeper(ctx, opts.Window)
	a.logger.Debug("using in-memory rate limiter")
	return limiter, func() {}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
