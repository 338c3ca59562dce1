package main

import (
	"codeberg.org/algorave/errhandler/api/rest/diagnostics"
	"codeberg.org/algorave/errhandler/api/rest/health"
	"codeberg.org/algorave/errhandler/ginerr"
	"codeberg.org/algorave/errhandler/presets"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(ginerr.Middleware(server.handler))

	if server.limiter != nil {
		router.Use(ginerr.RateLimit(server.limiter))
	}

	router.GET("/health", health.Handler(server.catalog, server.config.Environment))
	router.NoRoute(func(c *gin.Context) {
		c.Error(presets.NotFound.New("route not found")) //nolint:errcheck,gosec
	})

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		if server.config.IsDevelopment() {
			diagnostics.RegisterRoutes(v1, server.catalog)
		}
	}
}

// allows any origin and exposes the request id and rate limit headers
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", ginerr.RequestIDHeader)
	cfg.ExposeHeaders = []string{
		ginerr.RequestIDHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
	}

	return cors.New(cfg)
}
