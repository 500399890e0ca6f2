package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/auction"
    "github.com/lyng148/online-auction/internal/logger"
    "github.com/lyng148/online-auction/internal/middleware"
    "github.com/lyng148/online-auction/internal/model"
    "github.com/lyng148/online-auction/internal/realtime"
    "github.com/lyng148/online-auction/internal/repository"
)

// AuctionHandler serves the auction catalogue and the HTTP bidding surface.
// HTTP bids run through the same engine as websocket bids, so the admission
// rules cannot diverge between the two transports.
type AuctionHandler struct {
    auctions repository.AuctionStore
    stock    repository.StockStore
    engine   *auction.Engine
    hub      *realtime.Hub
}

// NewAuctionHandler wires the handler with its collaborators.
func NewAuctionHandler(auctions repository.AuctionStore, stock repository.StockStore, engine *auction.Engine, hub *realtime.Hub) *AuctionHandler {
    return &AuctionHandler{auctions: auctions, stock: stock, engine: engine, hub: hub}
}

// createAuctionRequest is the payload for POST /v1/auctions.
type createAuctionRequest struct {
    Title              string    `json:"title"`
    StartingPriceCents int64     `json:"starting_price_cents"`
    MinIncrementCents  int64     `json:"min_increment_cents"`
    StartTime          time.Time `json:"start_time"`
    EndTime            time.Time `json:"end_time"`
    Quantity           int64     `json:"quantity"`
}

// placeBidRequest is the payload for POST /v1/auctions/:id/bids. Either a
// single amount or, inside the closing window, a batch of hidden candidates.
type placeBidRequest struct {
    AmountCents  int64   `json:"amount_cents"`
    AmountsCents []int64 `json:"amounts_cents"`
}

// List returns the auction catalogue.
// GET /v1/auctions
func (h *AuctionHandler) List(c echo.Context) error {
    auctions, err := h.auctions.List(c.Request().Context())
    if err != nil {
        logger.Error("list auctions failed", map[string]any{"error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"auctions": auctions})
}

// Get returns a single auction by id.
// GET /v1/auctions/:id
func (h *AuctionHandler) Get(c echo.Context) error {
    a, err := h.auctions.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
        }
        logger.Error("get auction failed", map[string]any{"auction_id": c.Param("id"), "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(http.StatusOK, a)
}

// Bids returns the bid history for an auction. Hidden amounts stay sealed
// until the auction has closed; the hub applies that filter for both this
// endpoint and websocket join snapshots.
// GET /v1/auctions/:id/bids
func (h *AuctionHandler) Bids(c echo.Context) error {
    bids, err := h.hub.History(c.Request().Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
        }
        logger.Error("bid history failed", map[string]any{"auction_id": c.Param("id"), "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bids": bids})
}

// Create registers a new auction in PENDING and reserves the listed stock
// so concurrent listings cannot promise the same units twice.
// POST /v1/auctions (seller)
func (h *AuctionHandler) Create(c echo.Context) error {
    identity, ok := middleware.IdentityFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
    }

    var req createAuctionRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Title == "" || req.StartingPriceCents <= 0 || req.MinIncrementCents <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, starting_price_cents and min_increment_cents are required"})
    }
    if req.Quantity <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
    }
    if !req.EndTime.After(req.StartTime) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
    }
    if !req.EndTime.After(time.Now().UTC()) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be in the future"})
    }

    ctx := c.Request().Context()
    a := &model.Auction{
        ID:                 uuid.New().String(),
        SellerID:           identity.ID,
        Title:              req.Title,
        Status:             model.StatusPending,
        StartingPriceCents: req.StartingPriceCents,
        CurrentPriceCents:  req.StartingPriceCents,
        MinIncrementCents:  req.MinIncrementCents,
        StartTime:          req.StartTime.UTC(),
        EndTime:            req.EndTime.UTC(),
    }
    if err := h.auctions.Create(ctx, a); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "auction already exists"})
        }
        logger.Error("create auction failed", map[string]any{"error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }

    p := &model.Product{
        ID:        uuid.New().String(),
        AuctionID: a.ID,
        Quantity:  req.Quantity,
    }
    if err := h.stock.CreateProduct(ctx, p); err != nil {
        logger.Error("create product failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    if err := h.stock.ReserveForAuction(ctx, a.ID); err != nil {
        logger.Error("reserve stock failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }

    logger.Info("auction created", map[string]any{"auction_id": a.ID, "seller_id": identity.ID})
    return c.JSON(http.StatusCreated, a)
}

// PlaceBid admits one bid (or a hidden batch) over HTTP.
// POST /v1/auctions/:id/bids
func (h *AuctionHandler) PlaceBid(c echo.Context) error {
    identity, ok := middleware.IdentityFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
    }

    var req placeBidRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    ctx := c.Request().Context()
    auctionID := c.Param("id")

    if len(req.AmountsCents) > 0 {
        bids, err := h.engine.PlaceHiddenBids(ctx, auctionID, identity.ID, req.AmountsCents)
        if err != nil {
            return bidError(c, err)
        }
        return c.JSON(http.StatusAccepted, echo.Map{"bids": bids, "sealed": true})
    }

    bid, err := h.engine.PlaceBid(ctx, auctionID, identity.ID, req.AmountCents)
    if err != nil {
        return bidError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"bid": bid, "sealed": bid.Kind == model.BidHidden})
}

// bidError maps the engine's sentinel errors onto HTTP statuses.
func bidError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, auction.ErrAuctionNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "auction not found"})
    case errors.Is(err, auction.ErrBiddingNotAvailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "bidding is not available for this auction"})
    case errors.Is(err, auction.ErrBidContention):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "retryable": true})
    case errors.Is(err, auction.ErrSelfBidForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "sellers cannot bid on their own auction"})
    case errors.Is(err, auction.ErrInvalidAmount),
        errors.Is(err, auction.ErrBidTooLow),
        errors.Is(err, auction.ErrBidNotOnIncrement),
        errors.Is(err, auction.ErrHiddenBidLimit):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    default:
        logger.Error("place bid failed", map[string]any{"error": err.Error()})
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}
