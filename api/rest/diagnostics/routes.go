package diagnostics

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts endpoints that raise one error of each
// classification. Only mount them in development.
func RegisterRoutes(router *gin.RouterGroup, catalog Catalog) {
	diag := router.Group("/diagnostics")
	{
		diag.GET("/unknown", UnknownHandler)
		diag.GET("/traced", TracedHandler)
		diag.GET("/panic", PanicHandler)
		diag.GET("/registered/:name", RegisteredHandler(catalog))
		diag.GET("/wrapped/:source", WrappedHandler)
		diag.GET("/users/:id", GetUserHandler)
		diag.POST("/echo", EchoHandler)
	}
}
