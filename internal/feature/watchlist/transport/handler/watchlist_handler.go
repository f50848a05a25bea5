// Package handler provides the HTTP handler for the watchlist feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/watchlist/usecase"
)

// WatchlistUsecase defines the watchlist operation the handler depends
// on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type WatchlistUsecase interface {
	Snapshot(ctx context.Context) ([]usecase.Entry, error)
}

// WatchlistHandler serves the aggregated watchlist view.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a WatchlistHandler backed by uc.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// Get returns the watchlist: each tracked symbol's quote joined with
// its weekly price window.
//
// GET /watchlist
func (h *WatchlistHandler) Get(c *gin.Context) {
	entries, err := h.uc.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
