package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/handler"
    "github.com/lyng148/online-auction/internal/middleware"
    "github.com/lyng148/online-auction/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently that is the health check and the
// websocket endpoint, which authenticates itself through its token query
// parameter because browsers cannot attach headers to websocket dials.
func RegisterRoutes(e *echo.Echo, ws *handler.WSHandler) {
    // Load balancers and monitoring systems probe this to verify the
    // service is up.
    e.GET("/healthz", handler.Health)
    // Upgrade point for realtime auction rooms.
    e.GET("/ws", ws.Serve)
}

// RegisterAuctions registers the auction API under /v1. Read endpoints and
// bidding require a valid access token; listing creation additionally
// requires the SELLER role and the operator endpoints the ADMIN role. The
// rate limiter wraps the whole group so one client cannot monopolize the
// admission path.
func RegisterAuctions(e *echo.Echo, a *handler.AuctionHandler, admin *handler.AdminHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    if limiter != nil {
        g.Use(limiter)
    }

    // Catalogue reads.
    g.GET("/auctions", a.List)
    g.GET("/auctions/:id", a.Get)
    // Bid history; hidden amounts stay sealed until the auction closes.
    g.GET("/auctions/:id/bids", a.Bids)
    // Bidding over HTTP shares the admission engine with the websocket path.
    g.POST("/auctions/:id/bids", a.PlaceBid)

    // Sellers (and operators) create listings; creation reserves the
    // listed stock.
    g.POST("/auctions", a.Create, middleware.RequireRole(model.RoleSeller, model.RoleAdmin))

    // Operator lifecycle controls.
    ops := g.Group("/admin/auctions", middleware.RequireRole(model.RoleAdmin))
    ops.POST("/:id/confirm", admin.Confirm)
    ops.POST("/:id/extend", admin.Extend)
    ops.POST("/:id/close", admin.Close)
}
