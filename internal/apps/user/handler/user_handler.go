package handler

import (
	"net/http"

	"spam-shield/internal/apps/user/service"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for verified users
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUserByPhone handles GET /api/v1/users/by-phone?phone=
func (h *UserHandler) GetUserByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.Error(c, apperr.Newf(apperr.CodeInvalidInput, "phone is required"))
		return
	}

	resp, err := h.service.GetUserByPhone(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
