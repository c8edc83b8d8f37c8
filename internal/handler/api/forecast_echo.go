package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/service/ratelimit"
	"PriceCast/internal/usecase"
	"PriceCast/pkg/cache"
	xhttp "PriceCast/pkg/http"
	"PriceCast/pkg/http/middleware"
	xlogger "PriceCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig controls the per-client token bucket on /api/predict.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// ForecastEchoHandler implements the Echo-based forecast endpoints.
type ForecastEchoHandler struct {
	logger    *xlogger.Logger
	engine    *usecase.Forecaster
	respCache cache.Service
	cacheTTL  time.Duration
	limiter   *ratelimit.Limiter
	rl        RateLimitConfig
}

func NewForecastEchoHandler(logger *xlogger.Logger, engine *usecase.Forecaster, respCache cache.Service, cacheTTL time.Duration, rl RateLimitConfig) *ForecastEchoHandler {
	h := &ForecastEchoHandler{
		logger:    logger,
		engine:    engine,
		respCache: respCache,
		cacheTTL:  cacheTTL,
		rl:        rl,
	}
	if rl.Enabled {
		h.limiter = ratelimit.New()
	}
	return h
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/api/predict", h.Predict)
}

// Root is the liveness endpoint.
func (h *ForecastEchoHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"message": "price forecasting API is running, POST a price history and days_ahead to /api/predict",
	})
}

// Predict runs one forecast request.
func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many forecast requests"))
	}

	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// tag the latency sample recorded by the timing middleware
	c.Set(middleware.HorizonContextKey, req.DaysAhead)

	key := requestKey(req)
	if h.respCache != nil {
		var cached models.PredictResponse
		if err := h.respCache.Get(c.Request().Context(), key, &cached); err == nil {
			return xhttp.SuccessResponse(c, &cached)
		}
	}

	result, err := h.engine.Forecast(c.Request().Context(), models.ForecastRequest{
		History:     req.Prices,
		Horizon:     req.DaysAhead,
		GroundTruth: req.ActualPrices,
	})
	if err != nil {
		h.logger.Error("forecast error", xlogger.Error(err), xlogger.Int("horizon", req.DaysAhead))
		return xhttp.AppErrorResponse(c, translateForecastError(err))
	}

	resp := &models.PredictResponse{
		FuturePrices: result.FuturePrices,
		Accuracy:     result.Accuracy,
	}

	if h.respCache != nil {
		// cache failures degrade to recomputation, nothing more
		if cerr := h.respCache.Set(c.Request().Context(), key, resp, h.cacheTTL); cerr != nil {
			h.logger.Warn("forecast cache set failed", xlogger.Error(cerr))
		}
	}

	return xhttp.SuccessResponse(c, resp)
}

// requestKey hashes the canonical request body for response caching.
func requestKey(req *models.PredictRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return "predict:" + hex.EncodeToString(sum[:])
}

// translateForecastError maps domain failures onto wire errors.
func translateForecastError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrInsufficientHistory):
		return xhttp.NewAppError("ERR_INSUFFICIENT_HISTORY", "prices", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrInvalidHorizon):
		return xhttp.NewAppError("ERR_INVALID_HORIZON", "days_ahead", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrModelUnavailable):
		return xhttp.ServiceUnavailableError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrDegenerateGroundTruth):
		return xhttp.NewAppError("ERR_DEGENERATE_GROUND_TRUTH", "actual_prices", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrNumericOverflow):
		return xhttp.NewAppError("ERR_NUMERIC_OVERFLOW", "", err.Error(), http.StatusBadRequest).WithError(err)
	default:
		return xhttp.InternalError("forecast failed").WithError(err)
	}
}
