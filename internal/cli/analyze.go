package cli

import (
	"encoding/json"
	"fmt"

	"tokenanalysis/config"
	"tokenanalysis/logger"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run one analysis and print it as JSON",
		Example: `  tokenanalysis analyze BTCUSDT
  tokenanalysis analyze ETHUSDT --config ./config/config.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			// stdout carries the result, logs go to stderr
			log, err := logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			res, err := newService(cfg, log).Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
