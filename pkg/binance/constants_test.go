package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestParseKlineInterval
func TestParseKlineInterval(t *testing.T) {
	meta, err := ParseKlineInterval("1m")
	require.NoError(t, err)
	assert.Equal(t, "1m", meta.APIValue)
	assert.Equal(t, 60, meta.Seconds)

	_, err = ParseKlineInterval("1") // bybit style, not binance
	assert.Error(t, err)

	assert.True(t, IntervalMonthly.IsValid())
	assert.False(t, KlineInterval("1y").IsValid())
}
