package middleware

import (
	"errors"
	"os"
	"time"

	"spam-shield/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS configures CORS for the browser front end. Credentials are allowed
// because the verification session travels in a cookie.
func SetupCORS(env string) (gin.HandlerFunc, error) {
	allowOrigins, err := getAllowedOrigins(env)
	if err != nil {
		return nil, err
	}

	cfg := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		// wildcard origins cannot be combined with credentials
		cfg.AllowOrigins = nil
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(cfg), nil
}

var errCORSOriginsRequired = errors.New("CORS_ALLOWED_ORIGINS must be set in production")

func getAllowedOrigins(env string) ([]string, error) {
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		return utils.SplitList(originsEnv), nil
	}

	if env == "prod" {
		return nil, errCORSOriginsRequired
	}

	return []string{"*"}, nil
}
