// internal/middleware/cors_middleware.go
package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"printer-service/internal/config"
)

// CORSMiddleware builds the CORS policy for the POS frontends. The agent
// normally runs on the same machine as the till, so with no configured
// origins it stays wide open; credentials are only enabled once origins
// are pinned, since a wildcard origin cannot carry them.
func CORSMiddleware(cfg *config.SecurityConfig) gin.HandlerFunc {
	policy := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}

	if len(cfg.AllowedOrigins) > 0 {
		policy.AllowOrigins = cfg.AllowedOrigins
		policy.AllowCredentials = true
	} else {
		policy.AllowAllOrigins = true
	}

	return cors.New(policy)
}
