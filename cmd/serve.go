package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/server"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the journal server",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		orchestrator := syncer.NewOrchestrator(cfg)
		if err := orchestrator.StartupImport(); err != nil {
			logger.Log.Warn("startup sync failed, continuing", zap.Error(err))
		}

		srv := server.New(cfg)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-sigCh:
			logger.Log.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
