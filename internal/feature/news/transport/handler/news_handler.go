// Package handler provides the HTTP handler for the news feature.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/news/domain/entity"
)

// NewsUsecase defines the news operation the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type NewsUsecase interface {
	GetNews(ctx context.Context, symbols []string) ([]entity.News, error)
}

// NewsHandler serves news HTTP requests.
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler creates a NewsHandler backed by uc.
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// newsResponse is the wire shape of one news item.
type newsResponse struct {
	Date       int64    `json:"date"`
	Headline   string   `json:"headline"`
	Source     string   `json:"source"`
	URL        string   `json:"url"`
	Summary    string   `json:"summary"`
	Symbols    []string `json:"symbols"`
	ImageURL   string   `json:"imageUrl"`
	HasPaywall bool     `json:"hasPaywall"`
}

// List returns the cached news set for the given symbols, newest first.
//
// GET /news?symbols=AAPL,MSFT
func (h *NewsHandler) List(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}

	items, err := h.uc.GetNews(c.Request.Context(), strings.Split(raw, ","))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]newsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, newsResponse{
			Date:       n.Date,
			Headline:   n.Headline,
			Source:     n.Source,
			URL:        n.URL,
			Summary:    n.Summary,
			Symbols:    n.RelatedSymbols(),
			ImageURL:   n.ImageURL,
			HasPaywall: n.HasPaywall,
		})
	}
	c.JSON(http.StatusOK, out)
}
