package main

import (
	"net/http"

	classifyhandler "spam-shield/internal/apps/classify/handler"
	classifyservice "spam-shield/internal/apps/classify/service"
	feedbackhandler "spam-shield/internal/apps/feedback/handler"
	feedbackrepo "spam-shield/internal/apps/feedback/repository"
	feedbackservice "spam-shield/internal/apps/feedback/service"
	lookuphandler "spam-shield/internal/apps/lookup/handler"
	lookuprepo "spam-shield/internal/apps/lookup/repository"
	lookupservice "spam-shield/internal/apps/lookup/service"
	otphandler "spam-shield/internal/apps/otp/handler"
	otprepo "spam-shield/internal/apps/otp/repository"
	otpservice "spam-shield/internal/apps/otp/service"
	reporthandler "spam-shield/internal/apps/report/handler"
	reportrepo "spam-shield/internal/apps/report/repository"
	reportservice "spam-shield/internal/apps/report/service"
	userhandler "spam-shield/internal/apps/user/handler"
	userrepo "spam-shield/internal/apps/user/repository"
	userservice "spam-shield/internal/apps/user/service"
	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
	"spam-shield/internal/common/metrics"
	"spam-shield/internal/common/middleware"
	"spam-shield/pkg/phone"

	"github.com/gin-gonic/gin"
)

// buildRouter wires every app onto a gin engine
func buildRouter(cfg *config.Config, conns database.Connections) (*gin.Engine, error) {
	normalizer := phone.NewNormalizer(cfg.DefaultRegion)

	// Storage
	reportStore, err := reportrepo.NewReportStore(cfg.StoreBackend, conns)
	if err != nil {
		return nil, err
	}
	directory, err := userrepo.NewDirectory(cfg.StoreBackend, conns)
	if err != nil {
		return nil, err
	}
	feedbackStore, err := feedbackrepo.NewFeedbackStore(cfg.StoreBackend, conns)
	if err != nil {
		return nil, err
	}
	sessions, err := otprepo.NewSessionStore(cfg.SessionBackend, conns, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	// Services
	sender, err := otpservice.NewSMSSender(cfg.SMS, cfg.OTP.Expiry)
	if err != nil {
		return nil, err
	}
	verification := otpservice.NewVerificationService(sender, directory, normalizer, otpservice.Options{
		CodeLength:      cfg.OTP.Length,
		Expiry:          cfg.OTP.Expiry,
		ResendCooldown:  cfg.OTP.ResendCooldown,
		DeliveryTimeout: cfg.OTP.DeliveryTimeout,
	})
	reports := reportservice.NewReportService(reportStore, normalizer)
	users := userservice.NewUserService(directory, normalizer)
	feedback := feedbackservice.NewFeedbackService(feedbackStore)
	classify := classifyservice.NewClassifyService(
		classifyservice.NewHTTPClassifier(cfg.Classifier.URL, cfg.Classifier.Timeout, nil),
		cfg.Classifier.TrustedMarkers,
		cfg.Classifier.SpamKeywords,
	)
	metadata := lookupservice.NewCachedLookup(
		lookupservice.NewNumlookupClient(cfg.Lookup.NumlookupBaseURL, cfg.Lookup.NumlookupAPIKey, cfg.Lookup.Timeout, nil),
		lookuprepo.NewMetadataCache(conns.Redis, cfg.Lookup.CacheTTL),
	)
	lookup := lookupservice.NewLookupService(normalizer, metadata, reports)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsMiddleware, err := middleware.SetupCORS(cfg.Env)
	if err != nil {
		return nil, err
	}
	router.Use(corsMiddleware)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Server is running",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		otphandler.RegisterOTPRoutes(v1, otphandler.NewOTPHandler(verification, sessions, cfg.SessionTTL, cfg.Env == "prod"))
		reporthandler.RegisterReportRoutes(v1, reporthandler.NewReportHandler(reports))
		userhandler.RegisterUserRoutes(v1, userhandler.NewUserHandler(users))
		lookuphandler.RegisterLookupRoutes(v1, lookuphandler.NewLookupHandler(lookup))
		classifyhandler.RegisterClassifyRoutes(v1, classifyhandler.NewClassifyHandler(classify))
		feedbackhandler.RegisterFeedbackRoutes(v1, feedbackhandler.NewFeedbackHandler(feedback))
	}
	return router, nil
}
