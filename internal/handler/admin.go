package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/auction"
    "github.com/lyng148/online-auction/internal/logger"
    "github.com/lyng148/online-auction/internal/model"
    "github.com/lyng148/online-auction/internal/repository"
)

// AdminHandler exposes the operator controls over the auction lifecycle:
// confirming a listing, extending a live auction and forcing a close.
type AdminHandler struct {
    auctions repository.AuctionStore
    engine   *auction.Engine
}

// NewAdminHandler wires the handler with its collaborators.
func NewAdminHandler(auctions repository.AuctionStore, engine *auction.Engine) *AdminHandler {
    return &AdminHandler{auctions: auctions, engine: engine}
}

// extendRequest is the payload for POST /v1/admin/auctions/:id/extend.
type extendRequest struct {
    Minutes int64 `json:"minutes"`
}

// Confirm approves a pending listing so the scheduler can open it at its
// start time. Only PENDING auctions qualify; a second confirm, or a confirm
// after expiry already closed the listing, is rejected.
// POST /v1/admin/auctions/:id/confirm
func (h *AdminHandler) Confirm(c echo.Context) error {
    id := c.Param("id")
    changed, err := h.auctions.TransitionStatus(c.Request().Context(), id, model.StatusReady, model.StatusPending)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
        }
        logger.Error("confirm auction failed", map[string]any{"auction_id": id, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    if !changed {
        return c.JSON(http.StatusConflict, echo.Map{"error": "auction is not pending"})
    }
    logger.Info("auction confirmed", map[string]any{"auction_id": id})
    return c.JSON(http.StatusOK, echo.Map{"status": model.StatusReady})
}

// Extend pushes a live auction's end time out by the requested number of
// minutes and marks it EXTENDED. Extension is an operator decision, never
// automatic: the write only succeeds while the auction is live and the new
// deadline is actually later than the current one.
// POST /v1/admin/auctions/:id/extend
func (h *AdminHandler) Extend(c echo.Context) error {
    id := c.Param("id")

    var req extendRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Minutes <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "minutes must be positive"})
    }

    ctx := c.Request().Context()
    a, err := h.auctions.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
        }
        logger.Error("load auction for extend failed", map[string]any{"auction_id": id, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }

    until := a.EndTime.Add(time.Duration(req.Minutes) * time.Minute)
    changed, err := h.auctions.ExtendEndTime(ctx, id, until)
    if err != nil {
        logger.Error("extend auction failed", map[string]any{"auction_id": id, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    if !changed {
        return c.JSON(http.StatusConflict, echo.Map{"error": "auction is not live"})
    }
    logger.Info("auction extended", map[string]any{"auction_id": id, "until": until.UTC()})
    return c.JSON(http.StatusOK, echo.Map{"status": model.StatusExtended, "end_time": until.UTC()})
}

// Close ends a live auction immediately and resolves its winner through the
// same path the scheduler uses, so a manual close cannot produce a different
// outcome than a timed one.
// POST /v1/admin/auctions/:id/close
func (h *AdminHandler) Close(c echo.Context) error {
    id := c.Param("id")
    if err := h.engine.CloseAuction(c.Request().Context(), id); err != nil {
        if errors.Is(err, auction.ErrAuctionNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
        }
        logger.Error("close auction failed", map[string]any{"auction_id": id, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    logger.Info("auction closed by operator", map[string]any{"auction_id": id})
    return c.JSON(http.StatusOK, echo.Map{"status": model.StatusClosed})
}
