package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/jomonylw/flow-balance-sub006/internal/middleware"
)

// conversionHandler handles HTTP requests related to currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

func newConversionHandler(cs portssvc.ConversionSvc) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers routes related to currency conversion.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := newConversionHandler(conversionService)

	convert := rg.Group("/convert")
	{
		convert.POST("", h.convert)
		convert.POST("/batch", h.convertBatch)
	}
}

func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	result, err := h.conversionService.Convert(c.Request.Context(), userID, req.Amount, req.FromCurrencyCode, req.ToCurrencyCode, asOf)
	if err != nil {
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

func (h *conversionHandler) convertBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	items := make([]domain.AmountCurrency, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.AmountCurrency{Amount: item.Amount, CurrencyCode: item.CurrencyCode}
	}

	results := h.conversionService.ConvertMultiple(c.Request.Context(), userID, items, req.TargetCurrencyCode, asOf)
	c.JSON(http.StatusOK, dto.ToListConversionResponse(results))
}
