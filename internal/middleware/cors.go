package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS middleware to handle cross-origin requests
func CORS() gin.HandlerFunc {
	allowed := []string{"http://localhost:3000", "http://frontend:3000"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowed = strings.Split(origins, ",")
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowed
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 24 * time.Hour

	return cors.New(cfg)
}
