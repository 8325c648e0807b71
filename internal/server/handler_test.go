package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"tokenanalysis/internal/analysis"
	"tokenanalysis/pkg/binance"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMarket struct {
	mu sync.Mutex

	candles []binance.Kline
	avg     *binance.AvgPrice

	candleCalls int
	avgCalls    int
}

func newStubMarket(closePrice, avgPrice string) *stubMarket {
	return &stubMarket{
		candles: []binance.Kline{{OpenTime: 1, Open: "10", High: "20", Low: "15", Close: closePrice, Volume: "100"}},
		avg:     &binance.AvgPrice{Mins: 5, Price: avgPrice},
	}
}

func (m *stubMarket) FetchRecentCandles(context.Context, string) ([]binance.Kline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candleCalls++
	return m.candles, true
}

func (m *stubMarket) FetchAveragePrice(context.Context, string) (binance.AvgPrice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avgCalls++
	if m.avg == nil {
		return binance.AvgPrice{}, false
	}
	return *m.avg, true
}

func (m *stubMarket) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.candleCalls, m.avgCalls
}

func newTestRouter(m analysis.MarketData) (*gin.Engine, *analysis.Service) {
	svc := analysis.NewService(m, analysis.NewCache(), zap.NewNop())
	return NewRouter(svc, zap.NewNop()), svc
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

// go test -v --run TestRoot
func TestRoot(t *testing.T) {
	router, _ := newTestRouter(newStubMarket("1", "1"))

	w := doRequest(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Hello":"World"}`, w.Body.String())
}

// go test -v --run TestTokenAnalysis
func TestTokenAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		close string
		avg   string
		want  string
	}{
		{
			name: "higher", close: "42500.00", avg: "42450.50",
			want: `{"symbol":"BTCUSDT","last_close_price":"42500.00","average_price":"42450.50","comparison":"higher"}`,
		},
		{
			name: "lower", close: "42000.00", avg: "42450.50",
			want: `{"symbol":"BTCUSDT","last_close_price":"42000.00","average_price":"42450.50","comparison":"lower"}`,
		},
		{
			name: "equal", close: "42450.50", avg: "42450.50",
			want: `{"symbol":"BTCUSDT","last_close_price":"42450.50","average_price":"42450.50","comparison":"equal"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(newStubMarket(tt.close, tt.avg))

			w := doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

// go test -v --run TestTokenAnalysisCached
func TestTokenAnalysisCached(t *testing.T) {
	market := newStubMarket("42500.00", "42450.50")
	router, svc := newTestRouter(market)

	first := doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")
	second := doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	candleCalls, avgCalls := market.calls()
	assert.Equal(t, 1, candleCalls)
	assert.Equal(t, 1, avgCalls)

	w := doRequest(router, http.MethodDelete, "/token_analysis/cache/BTCUSDT")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, svc.Cache().Len())

	doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")
	candleCalls, avgCalls = market.calls()
	assert.Equal(t, 2, candleCalls)
	assert.Equal(t, 2, avgCalls)

	w = doRequest(router, http.MethodDelete, "/token_analysis/cache")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, svc.Cache().Len())
}

// go test -v --run TestTokenAnalysisKlineFailure
func TestTokenAnalysisKlineFailure(t *testing.T) {
	market := newStubMarket("42500.00", "42450.50")
	market.candles = nil
	router, _ := newTestRouter(market)

	w := doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Unable to fetch Kline data for BTCUSDT"}`, w.Body.String())
}

// go test -v --run TestTokenAnalysisAveragePriceFailure
func TestTokenAnalysisAveragePriceFailure(t *testing.T) {
	market := newStubMarket("42500.00", "42450.50")
	market.avg = nil
	router, _ := newTestRouter(market)

	w := doRequest(router, http.MethodGet, "/token_analysis?symbol=BTCUSDT")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Unable to fetch average price data for BTCUSDT"}`, w.Body.String())
}

// go test -v --run TestTokenAnalysisMissingSymbol
func TestTokenAnalysisMissingSymbol(t *testing.T) {
	market := newStubMarket("42500.00", "42450.50")
	router, _ := newTestRouter(market)

	w := doRequest(router, http.MethodGet, "/token_analysis")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"symbol query parameter is required"}`, w.Body.String())

	candleCalls, _ := market.calls()
	assert.Zero(t, candleCalls)
}

// go test -v --run TestRecoveryMiddleware
func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zap.NewNop()), RequestLogger(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := doRequest(router, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}
