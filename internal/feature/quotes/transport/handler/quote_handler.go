// Package handler provides the HTTP handlers for the quotes feature.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/quotes/domain/entity"
)

// QuotesUsecase defines the quote operations the handlers depend on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) ([]entity.Quote, error)
	GetMostActive(ctx context.Context) ([]entity.Quote, error)
}

// QuoteHandler serves quote HTTP requests.
type QuoteHandler struct {
	uc QuotesUsecase
}

// NewQuoteHandler creates a QuoteHandler backed by uc.
func NewQuoteHandler(uc QuotesUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Get returns the quote for one symbol.
//
// GET /quotes/:symbol
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Batch returns quotes for a comma-separated symbol list. When the
// remote source fails, whatever fresh cached quotes exist are still
// returned with a partial marker instead of an error status.
//
// GET /quotes?symbols=AAPL,MSFT
func (h *QuoteHandler) Batch(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}
	symbols := strings.Split(raw, ",")

	quotes, err := h.uc.GetQuotes(c.Request.Context(), symbols)
	if err != nil {
		if len(quotes) == 0 {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"quotes": quotes, "partial": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "partial": false})
}

// MostActive returns quotes for today's most-active instruments.
//
// GET /market/mostactive
func (h *QuoteHandler) MostActive(c *gin.Context) {
	quotes, err := h.uc.GetMostActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quotes)
}
