// Package cli holds the cobra commands of the tokenanalysis binary.
package cli

import (
	"tokenanalysis/config"
	"tokenanalysis/internal/analysis"
	"tokenanalysis/internal/marketdata"
	"tokenanalysis/pkg/binance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tokenanalysis",
		Short: "Compare a trading pair's last close against its rolling average price",
		Long: `tokenanalysis serves GET /token_analysis?symbol=BTCUSDT, comparing the
latest Binance kline close with the exchange's rolling average price.
Results are cached per symbol for one minute.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ./config/config.yaml)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))
	return root
}

// newService builds the Binance client, the fail-soft market data layer
// and the cached analysis service.
func newService(cfg *config.Config, logger *zap.Logger) *analysis.Service {
	rest := binance.NewRESTClient(cfg.Binance.REST.BaseURL, cfg.Binance.REST.Timeout)
	market := marketdata.NewClient(rest, logger.Named("marketdata"),
		marketdata.WithInterval(cfg.Binance.REST.KlineInterval),
		marketdata.WithLimit(cfg.Binance.REST.KlineLimit),
	)
	return analysis.NewService(market, analysis.NewCache(), logger.Named("analysis"))
}
