// Package marketdata wraps the Binance REST client with a fail-soft contract:
// upstream failures are logged and reported as "no data" instead of errors.
package marketdata

import (
	"context"
	"errors"

	"tokenanalysis/pkg/binance"

	"go.uber.org/zap"
)

const (
	DefaultInterval = string(binance.Interval1Min)
	DefaultLimit    = 1
)

// Upstream is the subset of *binance.RESTClient the client needs.
type Upstream interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]binance.Kline, error)
	GetAveragePrice(ctx context.Context, symbol string) (*binance.AvgPrice, error)
}

type Client struct {
	upstream Upstream
	logger   *zap.Logger
	interval string
	limit    int
}

type Option func(*Client)

// WithInterval overrides the kline interval (default "1m").
func WithInterval(interval string) Option {
	return func(c *Client) { c.interval = interval }
}

// WithLimit overrides how many klines are requested (default 1).
// The last returned kline is always the most recent one.
func WithLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

func NewClient(upstream Upstream, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		upstream: upstream,
		logger:   logger,
		interval: DefaultInterval,
		limit:    DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRecentCandles returns the most recent klines for symbol, oldest first.
// ok is false when the request failed. ok with zero candles means the
// provider answered with nothing; callers usually treat both the same way.
func (c *Client) FetchRecentCandles(ctx context.Context, symbol string) ([]binance.Kline, bool) {
	klines, err := c.upstream.GetKlines(ctx, symbol, c.interval, c.limit)
	if err != nil {
		c.logFailure("error fetching kline data", symbol, err)
		return nil, false
	}
	return klines, true
}

// FetchAveragePrice returns the rolling average price for symbol.
// ok is false when the request failed.
func (c *Client) FetchAveragePrice(ctx context.Context, symbol string) (binance.AvgPrice, bool) {
	avg, err := c.upstream.GetAveragePrice(ctx, symbol)
	if err != nil {
		c.logFailure("error fetching average price", symbol, err)
		return binance.AvgPrice{}, false
	}
	if avg == nil {
		return binance.AvgPrice{}, false
	}
	return *avg, true
}

func (c *Client) logFailure(msg, symbol string, err error) {
	var apiErr *binance.APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn(msg,
			zap.String("symbol", symbol),
			zap.Int("status", apiErr.StatusCode),
			zap.Int("code", apiErr.Code),
			zap.String("body", apiErr.Msg),
		)
		return
	}
	c.logger.Warn(msg, zap.String("symbol", symbol), zap.Error(err))
}
