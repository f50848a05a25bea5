// Package handler provides the HTTP handler for the chart feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/chart/domain/entity"
	"stocksync/internal/feature/chart/usecase"
)

// ChartUsecase defines the chart operation the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type ChartUsecase interface {
	GetChart(ctx context.Context, symbol string, r usecase.Range) ([]entity.Price, error)
}

// ChartHandler serves chart HTTP requests.
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler creates a ChartHandler backed by uc.
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// barResponse is the wire shape of one daily bar.
type barResponse struct {
	Date              string  `json:"date"`
	Close             float64 `json:"close"`
	Volume            int64   `json:"volume"`
	Change            float64 `json:"change"`
	ChangePercent     float64 `json:"changePercent"`
	NoDataDay         bool    `json:"noDataDay"`
	EarliestAvailable bool    `json:"earliestAvailable"`
}

// Get returns the gap-filled daily bars for a symbol and range.
//
// GET /chart/:symbol?range=1m
func (h *ChartHandler) Get(c *gin.Context) {
	r, err := usecase.ParseRange(c.DefaultQuery("range", string(usecase.RangeWeek)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prices, err := h.uc.GetChart(c.Request.Context(), c.Param("symbol"), r)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]barResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, barResponse{
			Date:              p.Date.UTC().Format("2006-01-02"),
			Close:             p.Close,
			Volume:            p.Volume,
			Change:            p.Change,
			ChangePercent:     p.ChangePercent,
			NoDataDay:         p.NoDataDay,
			EarliestAvailable: p.EarliestAvailable,
		})
	}
	c.JSON(http.StatusOK, out)
}
