package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cromos/ballpark/internal/http/middleware"
	"github.com/cromos/ballpark/internal/service"
)

type Handler struct {
	estimates *service.EstimateService
	log       zerolog.Logger
}

func NewHandler(estimates *service.EstimateService, log zerolog.Logger) *Handler {
	return &Handler{estimates: estimates, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", h.health)

	protected := router.Group("/ballpark/v1")
	protected.Use(authMiddleware)
	protected.POST("/calculate", h.calculate)
	protected.POST("/export/xlsx", h.exportXLSX)
	protected.POST("/export/pdf", h.exportPDF)
}

func (h *Handler) health(c *gin.Context) {
	table := h.estimates.RateCard()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"rate_card": table.Version(),
		"currency":  table.Currency(),
	})
}

func (h *Handler) calculate(c *gin.Context) {
	var req service.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := h.estimates.Calculate(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	var req service.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.estimates.ExportXLSX(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.attachment(c, result)
}

func (h *Handler) exportPDF(c *gin.Context) {
	var req service.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.estimates.ExportPDF(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.attachment(c, result)
}

func (h *Handler) attachment(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConfiguration):
		h.log.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("rate card misconfigured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rate card misconfigured"})
	default:
		h.log.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("estimate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
