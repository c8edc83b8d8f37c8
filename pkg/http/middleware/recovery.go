package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Recover turns a handler panic into a 500 response instead of tearing down
// the connection. The stack goes to the log, never to the client.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					rerr, ok := r.(error)
					if !ok {
						rerr = fmt.Errorf("%v", r)
					}
					log.Error().
						Err(rerr).
						Str("uri", c.Request().RequestURI).
						Bytes("stack", debug.Stack()).
						Msg("handler panic")

					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": http.StatusText(http.StatusInternalServerError),
					})
				}
			}()
			return next(c)
		}
	}
}
