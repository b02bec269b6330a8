package handler

import (
	"net/http"

	"spam-shield/internal/apps/feedback/models"
	"spam-shield/internal/apps/feedback/service"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles HTTP requests for feedback
type FeedbackHandler struct {
	service service.FeedbackService
}

// NewFeedbackHandler creates a new instance of FeedbackHandler
func NewFeedbackHandler(service service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// CreateFeedback handles POST /api/v1/feedback
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	resp, err := h.service.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp, "message": "Thank you for your feedback!"})
}

// RegisterFeedbackRoutes registers all feedback routes
func RegisterFeedbackRoutes(router *gin.RouterGroup, handler *FeedbackHandler) {
	router.POST("/feedback", handler.CreateFeedback)
}
