package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterOTPRoutes registers all OTP routes
func RegisterOTPRoutes(router *gin.RouterGroup, handler *OTPHandler) {
	otp := router.Group("/otp")
	{
		otp.POST("/request", handler.RequestOTP)
		otp.POST("/resend", handler.ResendOTP)
		otp.POST("/verify", handler.VerifyOTP)
		otp.GET("/session", handler.GetSession)
		otp.GET("/sender/status", handler.GetSenderStatus)
	}
}
