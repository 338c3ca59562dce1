package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "errhandler"
	version     = "1.0.0"
)

// returns the server health status with the size of the error catalog
func Handler(catalog Catalog, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:      "healthy",
			Service:     serviceName,
			Version:     version,
			Environment: environment,
			Variants:    len(catalog.Variants()),
			WrapRules:   len(catalog.Wraps()),
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
