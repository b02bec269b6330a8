package handler

import "github.com/gin-gonic/gin"

// RegisterUserRoutes registers all user-related routes
func RegisterUserRoutes(router *gin.RouterGroup, handler *UserHandler) {
	users := router.Group("/users")
	{
		users.GET("/by-phone", handler.GetUserByPhone)
	}
}
