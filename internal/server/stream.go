package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tokenanalysis/internal/analysis"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// StreamHandler pushes a symbol's analysis over a websocket every refresh
// interval. Pushes go through the service, so they share its cache.
type StreamHandler struct {
	svc      *analysis.Service
	logger   *zap.Logger
	refresh  time.Duration
	upgrader websocket.Upgrader
}

func NewStreamHandler(svc *analysis.Service, logger *zap.Logger, refresh time.Duration) *StreamHandler {
	return &StreamHandler{
		svc:     svc,
		logger:  logger,
		refresh: refresh,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *StreamHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/ws/token_analysis", h.Stream)
}

// Stream handles GET /ws/token_analysis?symbol=BTCUSDT.
func (h *StreamHandler) Stream(c *gin.Context) {
	symbol, ok := c.GetQuery("symbol")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": symbolRequired})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	go h.readPump(conn, cancel)

	h.logger.Info("analysis stream opened", zap.String("symbol", symbol))
	defer h.logger.Info("analysis stream closed", zap.String("symbol", symbol))

	if err := h.push(ctx, conn, symbol); err != nil {
		return
	}

	refresh := time.NewTicker(h.refresh)
	defer refresh.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return
		case <-refresh.C:
			if err := h.push(ctx, conn, symbol); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// push writes the current analysis, or a {"detail": ...} frame when the
// upstream data is unavailable. Only write failures end the stream.
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, symbol string) error {
	var payload any
	res, err := h.svc.Analyze(ctx, symbol)
	switch {
	case err == nil:
		payload = res
	case errors.Is(err, analysis.ErrUpstreamData):
		payload = gin.H{"detail": err.Error()}
	default:
		h.logger.Error("analysis failed", zap.String("symbol", symbol), zap.Error(err))
		payload = gin.H{"detail": "Internal Server Error"}
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		h.logger.Debug("websocket set write deadline failed", zap.String("symbol", symbol), zap.Error(err))
		return err
	}
	if err := conn.WriteJSON(payload); err != nil {
		h.logger.Debug("websocket write failed", zap.String("symbol", symbol), zap.Error(err))
		return err
	}
	return nil
}

// readPump discards client frames and keeps the read deadline fresh on pong.
// It cancels the stream once the client goes away.
func (h *StreamHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}
