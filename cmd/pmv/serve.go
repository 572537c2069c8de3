package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	httpadapter "github.com/couchcryptid/thermal-comfort-service/internal/adapter/http"
	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form, JSON API, health and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.String("kafka-brokers", "", "comma-separated brokers for assessment events")
	flags.String("kafka-topic", "", "assessment event topic")
	a.bind(flags, map[string]string{
		"addr":          config.KeyHTTPAddr,
		"kafka-brokers": config.KeyKafkaBrokers,
		"kafka-topic":   config.KeyKafkaTopic,
	})
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	s, err := a.buildStack(ctx)
	if err != nil {
		return err
	}
	defer s.close(a)

	srv := httpadapter.NewServer(a.cfg.HTTPAddr, s.service, a.logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	a.logger.Info("http server listening", "addr", a.cfg.HTTPAddr)

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
	a.logger.Info("shutdown complete")
	return nil
}
