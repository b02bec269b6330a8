package handler

import (
	"net/http"

	"spam-shield/internal/apps/lookup/service"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
)

// LookupHandler handles HTTP requests for number lookups
type LookupHandler struct {
	service service.LookupService
}

// NewLookupHandler creates a new instance of LookupHandler
func NewLookupHandler(service service.LookupService) *LookupHandler {
	return &LookupHandler{service: service}
}

// LookupNumber handles GET /api/v1/lookup?phone=
func (h *LookupHandler) LookupNumber(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.Error(c, apperr.Newf(apperr.CodeInvalidInput, "phone is required"))
		return
	}

	resp, err := h.service.LookupNumber(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// RegisterLookupRoutes registers all lookup routes
func RegisterLookupRoutes(router *gin.RouterGroup, handler *LookupHandler) {
	router.GET("/lookup", handler.LookupNumber)
}
