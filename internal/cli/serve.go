package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tokenanalysis/config"
	"tokenanalysis/internal/server"
	"tokenanalysis/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// viper config
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			// zap logger
			log, err := logger.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := newService(cfg, log)
			srv := server.New(cfg.Server, svc, log.Named("http"))
			if err := srv.Run(ctx); err != nil {
				log.Error("server failed", zap.Error(err))
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
}
