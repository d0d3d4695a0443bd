package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/handlers"
	"github.com/ZacxDev/commands-site/javascript"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetString("port")
			}
			if cfg.UsesDefaultPassword() {
				logger.Warn("admin password is still the default, change admin.password")
			}

			assets, err := javascript.CompileJSTarget(cfg.JavascriptTargets)
			if err != nil {
				return err
			}

			sessions, err := newSessionManager(cfg, logger)
			if err != nil {
				return err
			}

			router, err := handlers.SetupRouter(handlers.Dependencies{
				Config:   cfg,
				Logger:   logger,
				Sessions: sessions,
				Assets:   assets,
			})
			if err != nil {
				return errors.Wrap(err, "setting up router")
			}

			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      router,
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("origin", cfg.Server.Origin))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return errors.Wrap(err, "listen")
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
		},
	}

	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
	return serveCmd
}
