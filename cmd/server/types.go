package main

import (
	"codeberg.org/algorave/errhandler/dispatch"
	"codeberg.org/algorave/errhandler/format"
	"codeberg.org/algorave/errhandler/internal/config"
	"codeberg.org/algorave/errhandler/registry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

// holds all dependencies and state for the API server
type Server struct {
	config  *config.Config
	catalog *registry.Registry
	handler *dispatch.Handler[format.Body]
	limiter *limiter.Limiter
	redis   *redis.Client
	router  *gin.Engine
}
