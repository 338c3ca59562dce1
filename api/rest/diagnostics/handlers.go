package diagnostics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"codeberg.org/algorave/errhandler/ginerr"
	"codeberg.org/algorave/errhandler/presets"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// UnknownHandler godoc
// @Summary Raise an unclassified error
// @Tags diagnostics
// @Produce json
// @Failure 500 {object} variant.Response
// @Router /api/v1/diagnostics/unknown [get]
func UnknownHandler(c *gin.Context) {
	c.Error(errors.New("diagnostic failure without classification")) //nolint:errcheck,gosec
}

// TracedHandler godoc
// @Summary Raise an unclassified error carrying a stack trace
// @Tags diagnostics
// @Produce json
// @Failure 500 {object} variant.Response
// @Router /api/v1/diagnostics/traced [get]
func TracedHandler(c *gin.Context) {
	c.Error(pkgerrors.New("diagnostic failure with stack")) //nolint:errcheck,gosec
}

// PanicHandler godoc
// @Summary Panic inside a handler
// @Tags diagnostics
// @Produce json
// @Failure 500 {object} variant.Response
// @Router /api/v1/diagnostics/panic [get]
func PanicHandler(*gin.Context) {
	panic("diagnostic panic")
}

// RegisteredHandler godoc
// @Summary Raise an instance of a registered variant
// @Tags diagnostics
// @Produce json
// @Param name path string true "Variant name, e.g. NotFound"
// @Failure 400 {object} variant.Response
// @Failure 404 {object} variant.Response
// @Router /api/v1/diagnostics/registered/{name} [get]
func RegisteredHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")

		def, ok := catalog.Variant(name)
		if !ok {
			c.Error(presets.NotFound.New("variant " + name + " is not registered")) //nolint:errcheck,gosec
			return
		}

		c.Error(def.New("diagnostic " + name)) //nolint:errcheck,gosec
	}
}

// WrappedHandler godoc
// @Summary Raise a raw driver error that a wrap rule reclassifies
// @Tags diagnostics
// @Produce json
// @Param source path string true "database, connection, cache, timeout or websocket"
// @Failure 503 {object} variant.Response
// @Router /api/v1/diagnostics/wrapped/{source} [get]
func WrappedHandler(c *gin.Context) {
	var err error

	switch c.Param("source") {
	case "database":
		err = &pgconn.PgError{Severity: "ERROR", Code: "42P01", Message: `relation "diagnostics" does not exist`}
	case "connection":
		err = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	case "cache":
		// redis replies have no wrap rule, so they are wrapped here
		if wrapped, werr := presets.CacheError.Wrap("diagnostic cache miss", redis.Nil); werr != nil {
			err = werr
		} else {
			err = wrapped
		}
	case "timeout":
		ctx, cancel := context.WithTimeout(c.Request.Context(), 0)
		<-ctx.Done()
		err = ctx.Err()
		cancel()
	case "websocket":
		err = &websocket.CloseError{Code: websocket.CloseGoingAway, Text: "client left"}
	default:
		err = presets.BadRequest.New("unknown wrap source " + c.Param("source"))
	}

	c.Error(err) //nolint:errcheck,gosec
}

// GetUserHandler godoc
// @Summary Validate a path UUID
// @Tags diagnostics
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} variant.Response
// @Router /api/v1/diagnostics/users/{id} [get]
func GetUserHandler(c *gin.Context) {
	id := c.Param("id")

	if err := presets.ValidateUUID(id, "user"); err != nil {
		c.Error(err) //nolint:errcheck,gosec
		return
	}

	c.JSON(http.StatusOK, UserResponse{ID: id})
}

// EchoHandler godoc
// @Summary Bind and validate a JSON body
// @Tags diagnostics
// @Accept json
// @Produce json
// @Param request body EchoRequest true "Payload"
// @Success 200 {object} EchoResponse
// @Failure 400 {object} variant.Response
// @Router /api/v1/diagnostics/echo [post]
func EchoHandler(c *gin.Context) {
	var req EchoRequest
	if !ginerr.BindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, EchoResponse(req))
}
