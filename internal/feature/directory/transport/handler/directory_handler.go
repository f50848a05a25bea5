// Package handler provides the HTTP handlers for the directory feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/directory/domain/entity"
)

// DirectoryUsecase defines the directory operations the handlers
// depend on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type DirectoryUsecase interface {
	SearchSymbols(ctx context.Context, query string) ([]entity.Symbol, error)
	SetTracked(ctx context.Context, symbol string, tracked bool) error
	TrackedSymbols(ctx context.Context) ([]string, error)
	IsTracked(ctx context.Context, symbol string) (bool, error)
}

// DirectoryHandler serves directory and watchlist-membership HTTP
// requests.
type DirectoryHandler struct {
	uc DirectoryUsecase
}

// NewDirectoryHandler creates a DirectoryHandler backed by uc.
func NewDirectoryHandler(uc DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// symbolResponse is the wire shape of one directory entry.
type symbolResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
	Tracked  bool   `json:"tracked"`
}

// Search returns directory entries matching the query, each annotated
// with its watchlist membership.
//
// GET /symbols?q=AAP
func (h *DirectoryHandler) Search(c *gin.Context) {
	symbols, err := h.uc.SearchSymbols(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]symbolResponse, 0, len(symbols))
	for _, s := range symbols {
		tracked, err := h.uc.IsTracked(c.Request.Context(), s.Symbol)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, symbolResponse{
			Symbol:   s.Symbol,
			Name:     s.Name,
			Type:     s.Type,
			Region:   s.Region,
			Currency: s.Currency,
			Tracked:  tracked,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Track adds a symbol to the watchlist. Tracking a symbol that is
// already tracked is a no-op.
//
// PUT /watchlist/:symbol
func (h *DirectoryHandler) Track(c *gin.Context) {
	if err := h.uc.SetTracked(c.Request.Context(), c.Param("symbol"), true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Untrack removes a symbol from the watchlist. Untracking a symbol
// that is not tracked is a no-op.
//
// DELETE /watchlist/:symbol
func (h *DirectoryHandler) Untrack(c *gin.Context) {
	if err := h.uc.SetTracked(c.Request.Context(), c.Param("symbol"), false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTracked returns the watchlist membership.
//
// GET /watchlist/symbols
func (h *DirectoryHandler) ListTracked(c *gin.Context) {
	symbols, err := h.uc.TrackedSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, symbols)
}
