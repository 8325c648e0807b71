package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"tokenanalysis/config"
	"tokenanalysis/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// go test -v --run TestServerServeAndShutdown
func TestServerServeAndShutdown(t *testing.T) {
	svc := analysis.NewService(newStubMarket("42500.00", "42450.50"), analysis.NewCache(), zap.NewNop())
	s := New(config.ServerConfig{Addr: "127.0.0.1:0", Mode: "test", ShutdownTimeout: time.Second}, svc, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/token_analysis?symbol=BTCUSDT")
	require.NoError(t, err)
	var got analysis.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, analysis.Higher, got.Comparison)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
