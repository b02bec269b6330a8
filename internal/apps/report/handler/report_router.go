package handler

import "github.com/gin-gonic/gin"

// RegisterReportRoutes registers all spam report routes
func RegisterReportRoutes(router *gin.RouterGroup, handler *ReportHandler) {
	reports := router.Group("/reports")
	{
		reports.POST("", handler.CreateReport)
		reports.GET("/count", handler.GetReportCount)
	}
}
