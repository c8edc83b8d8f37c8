package api

import (
	xhttp "PriceCast/pkg/http"

	"github.com/labstack/echo/v4"
)

// Handlers aggregates route registration for the whole API surface.
type Handlers struct {
	Forecast    *ForecastEchoHandler
	Report      *ReportEchoHandler
	TelemetryWS *TelemetryWSHandler
}

func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	if h.Forecast != nil {
		h.Forecast.RegisterRoutes(e)
	}
	if h.Report != nil {
		h.Report.RegisterRoutes(e)
	}
	if h.TelemetryWS != nil {
		h.TelemetryWS.RegisterRoutes(e)
	}
}

var _ xhttp.Handler = (*Handlers)(nil)
