package binance

import "fmt"

// KlineInterval is the interval type used for kline requests
type KlineInterval string

// KlineIntervalMeta holds the API value and duration of a kline interval
type KlineIntervalMeta struct {
	APIValue string
	Seconds  int
}

const (
	Interval1Sec    KlineInterval = "1s"
	Interval1Min    KlineInterval = "1m"
	Interval3Min    KlineInterval = "3m"
	Interval5Min    KlineInterval = "5m"
	Interval15Min   KlineInterval = "15m"
	Interval30Min   KlineInterval = "30m"
	Interval1Hour   KlineInterval = "1h"
	Interval2Hour   KlineInterval = "2h"
	Interval4Hour   KlineInterval = "4h"
	Interval6Hour   KlineInterval = "6h"
	Interval8Hour   KlineInterval = "8h"
	Interval12Hour  KlineInterval = "12h"
	IntervalDaily   KlineInterval = "1d"
	Interval3Day    KlineInterval = "3d"
	IntervalWeekly  KlineInterval = "1w"
	IntervalMonthly KlineInterval = "1M"
)

// Binance caps /api/v3/klines at 1000 rows per request.
const (
	MinKlineLimit = 1
	MaxKlineLimit = 1000
)

var validKlineIntervals = map[KlineInterval]KlineIntervalMeta{
	Interval1Sec:    {APIValue: "1s", Seconds: 1},
	Interval1Min:    {APIValue: "1m", Seconds: 60},
	Interval3Min:    {APIValue: "3m", Seconds: 3 * 60},
	Interval5Min:    {APIValue: "5m", Seconds: 5 * 60},
	Interval15Min:   {APIValue: "15m", Seconds: 15 * 60},
	Interval30Min:   {APIValue: "30m", Seconds: 30 * 60},
	Interval1Hour:   {APIValue: "1h", Seconds: 3600},
	Interval2Hour:   {APIValue: "2h", Seconds: 2 * 3600},
	Interval4Hour:   {APIValue: "4h", Seconds: 4 * 3600},
	Interval6Hour:   {APIValue: "6h", Seconds: 6 * 3600},
	Interval8Hour:   {APIValue: "8h", Seconds: 8 * 3600},
	Interval12Hour:  {APIValue: "12h", Seconds: 12 * 3600},
	IntervalDaily:   {APIValue: "1d", Seconds: 86400},
	Interval3Day:    {APIValue: "3d", Seconds: 3 * 86400},
	IntervalWeekly:  {APIValue: "1w", Seconds: 7 * 86400},
	IntervalMonthly: {APIValue: "1M", Seconds: 30 * 86400}, // calendar months vary; nominal only
}

// IsValid checks if the KlineInterval is a valid predefined interval
func (k KlineInterval) IsValid() bool {
	_, ok := validKlineIntervals[k]
	return ok
}

// ParseKlineInterval parses a string into a valid KlineIntervalMeta
func ParseKlineInterval(s string) (KlineIntervalMeta, error) {
	meta, ok := validKlineIntervals[KlineInterval(s)]
	if !ok {
		return KlineIntervalMeta{}, fmt.Errorf("invalid KlineInterval: %s", s)
	}
	return meta, nil
}
