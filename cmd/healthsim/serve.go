package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/metrics"
	"github.com/rgehrsitz/healthsim/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [config-file]",
	Short: "Serve the simulation API with Prometheus metrics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfiguration(cmd, args)
		if err != nil {
			return err
		}

		metrics.Init()
		metrics.SetCatalogPlans(len(cfg.Plans))

		engine := newEngine(cmd)
		engine.Observer = metrics.Observer{}

		handler, err := server.NewHandler(cfg, engine)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		srv := server.New(addr, handler)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("healthsim listening", "addr", addr, "catalog", path, "plans", len(cfg.Plans), "scenarios", len(cfg.Scenarios))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	addInputFlags(serveCmd)
	serveCmd.Flags().String("addr", runtimeSettings.Addr, "Listen address")
}
