package api

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/telemetry"
	xhttp "PriceCast/pkg/http"
	xlogger "PriceCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportEchoHandler serves the telemetry reporting surface: the raw latency
// log, the accuracy archive, and a rendered latency chart.
type ReportEchoHandler struct {
	logger *xlogger.Logger
	store  *telemetry.Store
}

func NewReportEchoHandler(logger *xlogger.Logger, store *telemetry.Store) *ReportEchoHandler {
	return &ReportEchoHandler{logger: logger, store: store}
}

func (h *ReportEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/performance", h.Performance)
	g.GET("/performance/plot", h.PerformancePlot)
	g.GET("/accuracy", h.Accuracy)
}

// Performance returns the recorded per-request process times.
func (h *ReportEchoHandler) Performance(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.PerformanceResponse{
		Performance: h.store.ListPerformance(),
	})
}

// Accuracy returns the archived forecast-vs-actual comparisons.
func (h *ReportEchoHandler) Accuracy(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.AccuracyResponse{
		Comparisons: h.store.ListAccuracy(),
	})
}

var plotTemplate = template.Must(template.New("plot").Parse(`<!DOCTYPE html>
<html>
<head><title>Response Time Monitoring</title></head>
<body>
<h3>Response Time per Request</h3>
{{if .Empty}}
<p>No performance data recorded yet.</p>
{{else}}
<svg viewBox="0 0 {{.Width}} {{.Height}}" width="{{.Width}}" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%" height="100%" fill="white" stroke="#ccc"/>
  <polyline points="{{.Points}}" fill="none" stroke="#1f77b4" stroke-width="2"/>
  <text x="10" y="20" font-size="12">max {{printf "%.4f" .Max}}s over {{.Count}} requests</text>
</svg>
{{end}}
</body>
</html>`))

type plotData struct {
	Empty  bool
	Width  int
	Height int
	Points string
	Max    float64
	Count  int
}

// PerformancePlot renders the latency log as an inline SVG line chart.
func (h *ReportEchoHandler) PerformancePlot(c echo.Context) error {
	recs := h.store.ListPerformance()

	data := plotData{Width: 800, Height: 400, Count: len(recs)}
	if len(recs) == 0 {
		data.Empty = true
	} else {
		data.Points = polylinePoints(recs, data.Width, data.Height)
		for _, r := range recs {
			if r.ProcessTime > data.Max {
				data.Max = r.ProcessTime
			}
		}
	}

	var sb strings.Builder
	if err := plotTemplate.Execute(&sb, data); err != nil {
		h.logger.Error("plot render error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("plot rendering failed"))
	}
	return c.HTML(http.StatusOK, sb.String())
}

// polylinePoints maps process times onto SVG coordinates, x spread over the
// request index, y inverted (SVG y grows downward).
func polylinePoints(recs []models.PerformanceRecord, width, height int) string {
	const pad = 30.0
	maxT := 0.0
	for _, r := range recs {
		if r.ProcessTime > maxT {
			maxT = r.ProcessTime
		}
	}
	if maxT == 0 {
		maxT = 1
	}

	w := float64(width) - 2*pad
	hgt := float64(height) - 2*pad
	step := 0.0
	if len(recs) > 1 {
		step = w / float64(len(recs)-1)
	}

	pts := make([]string, 0, len(recs))
	for i, r := range recs {
		x := pad + float64(i)*step
		y := pad + hgt*(1-r.ProcessTime/maxT)
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return strings.Join(pts, " ")
}
