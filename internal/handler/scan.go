package handler

import (
	"net/http"

	"leadscan/internal/model"
	"leadscan/internal/service"

	"github.com/gin-gonic/gin"
)

// ScanHandler handles scan-related HTTP requests
type ScanHandler struct {
	scanService *service.ScanService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Scan handles POST /api/scan. A malformed body is the only condition that
// returns a non-2xx status; upstream failures surface through the response
// message and diagnostics instead.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req model.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	response := h.scanService.Scan(c.Request.Context(), &req)
	c.JSON(http.StatusOK, response)
}
