package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/database"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the persistence service",
		Long: `Serve the sqlite-backed HTTP API and realtime channel.

Examples:
  sprintboard serve --addr :8080
  sprintboard serve --db ./board.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, closeDB, err := buildService(ctx, cfg, logger, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDB(); err != nil {
					logger.Warn("close database failed", slog.String("error", err.Error()))
				}
			}()
			return runHTTP(ctx, srv, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen_addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite file (overrides db_path)")
	return cmd
}

// buildService opens the database and returns the HTTP server over it.
func buildService(ctx context.Context, cfg *config.Config, logger *slog.Logger, accessLog io.Writer) (*http.Server, func() error, error) {
	db, err := database.Open(ctx, cfg.DBPath, database.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	if cfg.Seed {
		if err := gateway.SeedDemo(ctx, db, time.Now()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	api := server.New(db, server.WithLogger(logger), server.WithAccessLog(accessLog))
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		// Realtime streams end with ctx so Shutdown does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	return srv, db.Close, nil
}

func runHTTP(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
