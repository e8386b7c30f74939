package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/bootstrap"
	"github.com/LeonardoBeccarini/symbiont/internal/services/dashboard/app"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var flags flagOverrides
	cmd := &cobra.Command{
		Use:   "symbiont-dashboard",
		Short: "Serve the Symbiont farm dashboard over HTTP",
		Long: `Serves the Symbiont dashboard: farm metrics, AI hunches, the yield
co-evolution form and the monthly projection chart.

State lives in memory. Every change is mirrored best-effort into a local
sqlite cache and, when INFLUX_URL and INFLUX_TOKEN are set, into InfluxDB.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			logger, err := bootstrap.NewLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.HTTPAddr, bootstrap.Build(ctx, cfg, logger, bootstrap.Options{}))
		},
	}
	flags.register(cmd)
	return cmd
}

func serve(ctx context.Context, addr string, rt *bootstrap.Runtime) error {
	defer rt.Close()
	log := rt.Log

	dash := app.NewDashboard(app.Config{
		Store:    rt.Store,
		Tray:     rt.Tray,
		Theme:    rt.Theme,
		Metrics:  rt.Metrics,
		Clock:    rt.Clock,
		Location: rt.Config.Location(),
		Ready:    rt.Ready,
		Logger:   log.Named("http"),
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           dash.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("dashboard listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("dashboard shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
