package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequestLogging emits one structured log line per completed request.
// Scrape and stream endpoints are skipped; they fire constantly and carry no
// request-level information.
func RequestLogging() echo.MiddlewareFunc {
	skip := map[string]bool{
		"/metrics":      true,
		"/ws/telemetry": true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			if skip[c.Path()] {
				return err
			}

			ev := log.Info()
			if err != nil || c.Response().Status >= 500 {
				ev = log.Error().Err(err)
			}
			ev.Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Str("remote", c.RealIP()).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
