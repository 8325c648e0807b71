package server

import (
	"errors"
	"net/http"

	"tokenanalysis/internal/analysis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const symbolRequired = "symbol query parameter is required"

// AnalysisHandler serves the token analysis endpoints.
type AnalysisHandler struct {
	svc    *analysis.Service
	logger *zap.Logger
}

func NewAnalysisHandler(svc *analysis.Service, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: logger}
}

func (h *AnalysisHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/token_analysis", h.GetTokenAnalysis)
	router.DELETE("/token_analysis/cache", h.ClearCache)
	router.DELETE("/token_analysis/cache/:symbol", h.InvalidateSymbol)
}

// Root is a liveness stub.
func (h *AnalysisHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}

// GetTokenAnalysis handles GET /token_analysis?symbol=BTCUSDT.
func (h *AnalysisHandler) GetTokenAnalysis(c *gin.Context) {
	symbol, ok := c.GetQuery("symbol")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": symbolRequired})
		return
	}

	res, err := h.svc.Analyze(c.Request.Context(), symbol)
	if err != nil {
		status, body := h.errorResponse(symbol, err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) ClearCache(c *gin.Context) {
	h.svc.Cache().Clear()
	h.logger.Info("analysis cache cleared")
	c.Status(http.StatusNoContent)
}

func (h *AnalysisHandler) InvalidateSymbol(c *gin.Context) {
	symbol := c.Param("symbol")
	h.svc.Cache().Invalidate(symbol)
	h.logger.Info("analysis cache entry invalidated", zap.String("symbol", symbol))
	c.Status(http.StatusNoContent)
}

// errorResponse maps service errors to a status and a {"detail": ...} body.
func (h *AnalysisHandler) errorResponse(symbol string, err error) (int, gin.H) {
	if errors.Is(err, analysis.ErrUpstreamData) {
		return http.StatusBadRequest, gin.H{"detail": err.Error()}
	}
	h.logger.Error("analysis failed", zap.String("symbol", symbol), zap.Error(err))
	return http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"}
}
