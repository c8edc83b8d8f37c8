package api

import (
	"net/http"
	"time"

	"PriceCast/internal/telemetry"
	xlogger "PriceCast/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// TelemetryWSHandler streams telemetry records to websocket observers as
// they are appended to the store.
type TelemetryWSHandler struct {
	logger   *xlogger.Logger
	hub      *telemetry.Hub
	upgrader websocket.Upgrader
}

func NewTelemetryWSHandler(logger *xlogger.Logger, hub *telemetry.Hub) *TelemetryWSHandler {
	return &TelemetryWSHandler{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// same allow-all posture as the HTTP CORS config
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *TelemetryWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/telemetry", h.Stream)
}

// Stream upgrades the connection and pushes every new telemetry record as
// JSON until the client goes away.
func (h *TelemetryWSHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(events)

	// reader goroutine only detects close; inbound frames are discarded
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Debug("telemetry stream write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}
