// Package handler provides the HTTP handler for the company feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksync/internal/feature/company/domain/entity"
)

// CompanyUsecase defines the company operation the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type CompanyUsecase interface {
	GetCompanyInfo(ctx context.Context, symbol string) (entity.CompanyInfo, error)
}

// CompanyHandler serves company profile HTTP requests.
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler creates a CompanyHandler backed by uc.
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get returns the company profile for one symbol.
//
// GET /company/:symbol
func (h *CompanyHandler) Get(c *gin.Context) {
	info, err := h.uc.GetCompanyInfo(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}
