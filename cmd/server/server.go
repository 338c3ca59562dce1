package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/algorave/errhandler/dispatch"
	"codeberg.org/algorave/errhandler/format"
	"codeberg.org/algorave/errhandler/ginerr"
	"codeberg.org/algorave/errhandler/internal/config"
	"codeberg.org/algorave/errhandler/internal/logger"
	"codeberg.org/algorave/errhandler/presets"
	"codeberg.org/algorave/errhandler/registry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	catalog := registry.New()
	presets.Register(catalog)

	formatter, err := format.ByName(cfg.ResponseFormat, cfg.ProblemBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to select response format: %w", err)
	}

	handler := dispatch.NewWithOptions(dispatch.Options[format.Body]{
		StackTraceLimit: cfg.StackTraceLimit,
		FormatMessage:   dispatch.Formatter[format.Body](formatter),
		Catalog:         catalog,
		Logger:          logger.Capability(),
		DevMode:         cfg.IsDevelopment,
	})

	server := &Server{
		config:  cfg,
		catalog: catalog,
		handler: handler,
	}

	if cfg.RedisURL != "" {
		client, err := connectRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}

		server.redis = client
	}

	if cfg.RateLimit != "" {
		l, err := ginerr.NewLimiter(cfg.RateLimit, server.redis)
		if err != nil {
			server.Close()
			return nil, err
		}

		server.limiter = l
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	RegisterRoutes(router, server)
	server.router = router

	logger.Info("error catalog loaded",
		"variants", len(catalog.Variants()),
		"wrap_rules", len(catalog.Wraps()),
		"response_format", cfg.ResponseFormat,
		"rate_limit", cfg.RateLimit,
	)

	return server, nil
}

func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// releases external connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}
}
