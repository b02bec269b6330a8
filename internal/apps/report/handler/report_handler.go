package handler

import (
	"net/http"

	"spam-shield/internal/apps/report/models"
	"spam-shield/internal/apps/report/service"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles HTTP endpoints for spam reports
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler creates a new instance of ReportHandler
func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// CreateReport handles POST /api/v1/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	resp, err := h.service.ReportNumber(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp, "message": "Reported successfully."})
}

// GetReportCount handles GET /api/v1/reports/count?phone=
func (h *ReportHandler) GetReportCount(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.Error(c, apperr.Newf(apperr.CodeInvalidInput, "phone is required"))
		return
	}

	resp, err := h.service.GetReportCount(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
