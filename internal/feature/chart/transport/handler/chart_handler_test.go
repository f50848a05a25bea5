package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stocksync/internal/feature/chart/domain/entity"
	"stocksync/internal/feature/chart/transport/handler"
	"stocksync/internal/feature/chart/usecase"
)

type mockChartUsecase struct {
	GetChartFunc func(ctx context.Context, symbol string, r usecase.Range) ([]entity.Price, error)
}

func (m *mockChartUsecase) GetChart(ctx context.Context, symbol string, r usecase.Range) ([]entity.Price, error) {
	return m.GetChartFunc(ctx, symbol, r)
}

func TestChartHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetChart   func(ctx context.Context, symbol string, r usecase.Range) ([]entity.Price, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: explicit range",
			url:  "/chart/AAPL?range=1m",
			mockGetChart: func(_ context.Context, symbol string, r usecase.Range) ([]entity.Price, error) {
				assert.Equal(t, "AAPL", symbol)
				assert.Equal(t, usecase.RangeMonth, r)
				return []entity.Price{
					{Symbol: "AAPL", Date: day, Close: 185.5, Volume: 1000, Change: 1.5, ChangePercent: 0.8},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"date":"2024-01-05","close":185.5,"volume":1000,"change":1.5,"changePercent":0.8,"noDataDay":false,"earliestAvailable":false}]`,
		},
		{
			name: "success: default range is one week",
			url:  "/chart/AAPL",
			mockGetChart: func(_ context.Context, _ string, r usecase.Range) ([]entity.Price, error) {
				assert.Equal(t, usecase.RangeWeek, r)
				return []entity.Price{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "error: unknown range",
			url:            "/chart/AAPL?range=5y",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: no data maps to not found",
			url:  "/chart/NEWCO?range=1y",
			mockGetChart: func(context.Context, string, usecase.Range) ([]entity.Price, error) {
				return nil, fmt.Errorf("%w: NEWCO", usecase.ErrNoData)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "error: remote failure maps to bad gateway",
			url:  "/chart/AAPL?range=1m",
			mockGetChart: func(context.Context, string, usecase.Range) ([]entity.Price, error) {
				return nil, errors.New("upstream down")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"upstream down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewChartHandler(&mockChartUsecase{GetChartFunc: tt.mockGetChart})

			router := gin.New()
			router.GET("/chart/:symbol", h.Get)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
