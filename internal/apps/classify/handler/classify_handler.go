package handler

import (
	"net/http"

	"spam-shield/internal/apps/classify/models"
	"spam-shield/internal/apps/classify/service"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
)

// ClassifyHandler handles HTTP requests for message classification
type ClassifyHandler struct {
	service service.ClassifyService
}

// NewClassifyHandler creates a new instance of ClassifyHandler
func NewClassifyHandler(service service.ClassifyService) *ClassifyHandler {
	return &ClassifyHandler{service: service}
}

// ClassifyMessage handles POST /api/v1/messages/classify
func (h *ClassifyHandler) ClassifyMessage(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	resp, err := h.service.Classify(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "This message looks safe."
	if resp.IsSpam {
		message = "This message is likely spam."
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "message": message})
}

// RegisterClassifyRoutes registers all classification routes
func RegisterClassifyRoutes(router *gin.RouterGroup, handler *ClassifyHandler) {
	messages := router.Group("/messages")
	{
		messages.POST("/classify", handler.ClassifyMessage)
	}
}
