package handler

import (
    "net/http"

    "github.com/gorilla/websocket"
    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/auction"
    "github.com/lyng148/online-auction/internal/logger"
    "github.com/lyng148/online-auction/internal/middleware"
    "github.com/lyng148/online-auction/internal/realtime"
)

// WSHandler upgrades HTTP requests to websocket sessions and hands them to
// the realtime hub.
type WSHandler struct {
    hub      *realtime.Hub
    engine   *auction.Engine
    secret   string
    upgrader websocket.Upgrader
}

// NewWSHandler wires the websocket endpoint. Origin checking is left to the
// deployment's reverse proxy; the token is what authenticates the session.
func NewWSHandler(hub *realtime.Hub, engine *auction.Engine, secret string) *WSHandler {
    return &WSHandler{
        hub:    hub,
        engine: engine,
        secret: secret,
        upgrader: websocket.Upgrader{
            ReadBufferSize:  1024,
            WriteBufferSize: 1024,
            CheckOrigin:     func(*http.Request) bool { return true },
        },
    }
}

// Serve authenticates and upgrades the connection, then runs its read loop
// until the peer disconnects. Browsers cannot set headers on websocket
// dials, so the access token travels as a query parameter. A token that
// fails to verify terminates the request before the upgrade.
// GET /ws?token=...
func (h *WSHandler) Serve(c echo.Context) error {
    identity, err := middleware.IdentityFromToken(h.secret, c.QueryParam("token"))
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
    }

    conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
    if err != nil {
        logger.Warn("websocket upgrade failed", map[string]any{"user_id": identity.ID, "error": err.Error()})
        return nil
    }

    client := realtime.NewClient(h.hub, h.engine, conn, identity)
    client.Run(c.Request().Context())
    return nil
}
