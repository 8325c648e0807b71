package analysis

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"tokenanalysis/pkg/binance"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MarketData is the fail-soft upstream the service reads from.
// A false ok means the dataset is unavailable.
type MarketData interface {
	FetchRecentCandles(ctx context.Context, symbol string) ([]binance.Kline, bool)
	FetchAveragePrice(ctx context.Context, symbol string) (binance.AvgPrice, bool)
}

// Service computes close-vs-average analyses and caches them per symbol.
// Concurrent misses for one symbol share a single upstream round.
type Service struct {
	market MarketData
	cache  *Cache
	logger *zap.Logger
	group  singleflight.Group
}

func NewService(market MarketData, cache *Cache, logger *zap.Logger) *Service {
	return &Service{
		market: market,
		cache:  cache,
		logger: logger,
	}
}

func (s *Service) Cache() *Cache {
	return s.cache
}

// Analyze returns the cached result for symbol or computes a fresh one.
// Missing or unparsable upstream data yields an *UpstreamError.
func (s *Service) Analyze(ctx context.Context, symbol string) (Result, error) {
	if r, ok := s.cache.Get(symbol); ok {
		s.logger.Debug("analysis cache hit", zap.String("symbol", symbol))
		return r, nil
	}

	v, err, _ := s.group.Do(symbol, func() (any, error) {
		// another flight may have filled the entry since our lookup
		if r, ok := s.cache.Get(symbol); ok {
			return r, nil
		}

		// a flight serves every waiter, so no single caller may cancel it;
		// the HTTP client timeout still bounds it
		r, err := s.compute(context.WithoutCancel(ctx), symbol)
		if err != nil {
			return Result{}, err
		}
		s.cache.Set(symbol, r)
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (s *Service) compute(ctx context.Context, symbol string) (Result, error) {
	candles, ok := s.market.FetchRecentCandles(ctx, symbol)
	if !ok || len(candles) == 0 {
		return Result{}, &UpstreamError{Symbol: symbol, Dataset: DatasetKlines}
	}

	// klines arrive oldest first
	last := candles[len(candles)-1]
	closePrice, err := parsePrice(last.Close)
	if err != nil {
		s.logger.Warn("unusable close price", zap.String("symbol", symbol), zap.Error(err))
		return Result{}, &UpstreamError{Symbol: symbol, Dataset: DatasetKlines}
	}

	avg, ok := s.market.FetchAveragePrice(ctx, symbol)
	if !ok {
		return Result{}, &UpstreamError{Symbol: symbol, Dataset: DatasetAveragePrice}
	}
	avgPrice, err := parsePrice(avg.Price)
	if err != nil {
		s.logger.Warn("unusable average price", zap.String("symbol", symbol), zap.Error(err))
		return Result{}, &UpstreamError{Symbol: symbol, Dataset: DatasetAveragePrice}
	}

	r := Result{
		Symbol:         symbol,
		LastClosePrice: FormatPrice(closePrice),
		AveragePrice:   FormatPrice(avgPrice),
		Comparison:     Compare(closePrice, avgPrice),
	}
	s.logger.Info("analysis computed",
		zap.String("symbol", symbol),
		zap.String("close", r.LastClosePrice),
		zap.String("average", r.AveragePrice),
		zap.String("comparison", string(r.Comparison)),
	)
	return r, nil
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("non-finite price %q", s)
	}
	return p, nil
}
