package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns an allow-all CORS policy. The catalog has no credentials to
// protect, so any origin may call the API.
func CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Accept", "Origin"}
	cfg.MaxAge = 24 * time.Hour
	return cors.New(cfg)
}
