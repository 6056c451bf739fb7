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

	"github.com/spf13/cobra"

	"jpnews/server"
	"jpnews/store"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve starts the HTTP API used by the web frontend.

Endpoints:
  POST   /furigana             annotate text, returns data and ruby HTML
  POST   /furigana/generate    annotate text, returns bracket notation
  GET    /news                 list news items with notes
  POST   /news                 create a news item
  GET    /news/search          search news titles (?keyword=)
  GET    /news/{id}            fetch one news item
  PUT    /news/{id}            update a news item
  DELETE /news/{id}            delete a news item and its notes
  POST   /news/{id}/notes      add a note
  PUT    /notes/{id}           update a note
  DELETE /notes/{id}           delete a note
  GET    /search/notes         search notes (?keyword=)
  GET    /health               liveness`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "", "Listen address (default :8000)")
	cmd.Flags().DurationP("timeout", "t", 0, "Per-request timeout (default 10s)")
	cmd.Flags().StringSlice("origins", nil, "Allowed CORS origins (default *)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "addr", &cfg.Addr); err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.RequestTimeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("origins") {
		if cfg.AllowedOrigins, err = cmd.Flags().GetStringSlice("origins"); err != nil {
			return err
		}
	}
	if err := validate(cfg); err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DBDir, store.DefaultOptions())
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("database opened", "path", st.Path())

	h := server.NewHandler(buildAnnotator(cfg, logger), st, logger, server.Options{
		RequestTimeout: cfg.RequestTimeout,
		Version:        getVersion(),
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := server.NewHTTPServer(cfg.Addr, server.WithCORS(mux, cfg.AllowedOrigins))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("received shutdown signal, stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
