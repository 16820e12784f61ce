package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cms "github.com/goliatone/go-filecms"
	"github.com/goliatone/go-filecms/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the HTTP server",
		Long: `Start the HTTP server for the configured document directory.

Examples:
  cms serve                         # production pair: ./data and ./users.yml
  cms serve --env test              # test pair: ./test/data and ./test/users.yml
  CMS_SERVER_ADDR=:8080 cms serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :4567)")
	cmd.Flags().String("data-dir", "", "document directory for the production environment")
	cmd.Flags().String("users-file", "", "users file for the production environment")
	bindFlags(opts.v, cmd.Flags(), map[string]string{
		"server.addr":      "addr",
		"documents.dir":    "data-dir",
		"credentials.file": "users-file",
	})
	return cmd
}

func runServe(ctx context.Context, cfg cms.Config) error {
	module, err := cms.New(cfg)
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(module.LoggerProvider(), "cms.server")

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
