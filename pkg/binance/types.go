package binance

import "fmt"

// Kline is one candlestick row from /api/v3/klines.
// Prices are kept as the decimal text the exchange sends.
type Kline struct {
	OpenTime  int64  `json:"open_time"`  // milliseconds since epoch
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	CloseTime int64  `json:"close_time"` // milliseconds since epoch
}

// AvgPrice is the rolling average price returned by /api/v3/avgPrice.
type AvgPrice struct {
	Mins      int    `json:"mins"`  // averaging window in minutes
	Price     string `json:"price"` // decimal text
	CloseTime int64  `json:"closeTime"`
}

// APIError is returned for any non-200 response.
// Code and Msg come from Binance's {"code":..,"msg":..} envelope when present.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Msg        string `json:"msg"`
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("binance error: status=%d code=%d msg=%s", e.StatusCode, e.Code, e.Msg)
	}
	return fmt.Sprintf("binance error: status=%d body=%s", e.StatusCode, e.Msg)
}
