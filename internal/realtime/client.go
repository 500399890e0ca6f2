package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lyng148/online-auction/internal/auction"
	"github.com/lyng148/online-auction/internal/logger"
	"github.com/lyng148/online-auction/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is one authenticated websocket connection. Its current room (at
// most one) lives on the struct and is guarded by the hub's mutex; the
// send channel decouples room fan-out from the connection's write pace.
type Client struct {
	hub    *Hub
	engine *auction.Engine
	conn   *websocket.Conn
	user   model.UserIdentity

	send      chan Event
	closed    chan struct{}
	closeOnce sync.Once

	// room is the auction this connection is subscribed to, "" when not
	// joined. Guarded by hub.mu.
	room string
}

// NewClient wraps an upgraded connection with its resolved identity.
func NewClient(hub *Hub, engine *auction.Engine, conn *websocket.Conn, user model.UserIdentity) *Client {
	return &Client{
		hub:    hub,
		engine: engine,
		conn:   conn,
		user:   user,
		send:   make(chan Event, sendBufferSize),
		closed: make(chan struct{}),
	}
}

// Run services the connection until it drops: the write pump runs in its
// own goroutine while Run itself reads and dispatches commands. On any
// read error the connection is implicitly removed from its room —
// admitted bids are never unwound by a disconnect.
func (c *Client) Run(ctx context.Context) {
	go c.writePump()
	c.trySend(Event{Type: EventConnected})
	c.readPump(ctx)
	c.hub.Disconnect(c)
	c.close()
}

func (c *Client) readPump(ctx context.Context) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.sendError("malformed command")
			continue
		}
		c.dispatch(ctx, cmd)
	}
}

// dispatch routes one validated command. Rejections go back to this
// connection only; nothing is broadcast for a failed command.
func (c *Client) dispatch(ctx context.Context, cmd Command) {
	if cmd.AuctionID == "" {
		c.sendError("auction_id is required")
		return
	}
	switch cmd.Action {
	case ActionJoinAuction:
		c.handleJoin(ctx, cmd.AuctionID)
	case ActionLeaveAuction:
		c.hub.Leave(c, cmd.AuctionID)
	case ActionPlaceBid:
		c.handlePlaceBid(ctx, cmd)
	case ActionEndAuction:
		c.handleEndAuction(ctx, cmd.AuctionID)
	default:
		c.sendError("unknown action")
	}
}

func (c *Client) handleJoin(ctx context.Context, auctionID string) {
	if _, err := c.hub.Join(ctx, c, auctionID); err != nil {
		c.sendError(err.Error())
		return
	}
	history, err := c.hub.History(ctx, auctionID)
	if err != nil {
		logger.Warn("bid history snapshot unavailable", map[string]any{
			"auction_id": auctionID, "error": err.Error(),
		})
		history = nil
	}
	c.trySend(Event{
		Type:      EventBidHistory,
		AuctionID: auctionID,
		Payload:   BidHistoryPayload{Bids: history},
	})
}

func (c *Client) handlePlaceBid(ctx context.Context, cmd Command) {
	// An explicit batch is a sealed-candidate submission; a single amount
	// lets the engine pick the mode from the auction phase.
	if len(cmd.AmountsCents) > 0 {
		bids, err := c.engine.PlaceHiddenBids(ctx, cmd.AuctionID, c.user.ID, cmd.AmountsCents)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.ackHidden(cmd.AuctionID, bids)
		return
	}

	bid, err := c.engine.PlaceBid(ctx, cmd.AuctionID, c.user.ID, cmd.AmountCents)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	// Open admissions were broadcast by the engine; sealed ones are
	// acknowledged to the submitter only.
	if bid.Kind == model.BidHidden {
		c.ackHidden(cmd.AuctionID, []model.Bid{*bid})
	}
}

func (c *Client) handleEndAuction(ctx context.Context, auctionID string) {
	if c.user.Role != model.RoleAdmin {
		c.sendError("end-auction requires the ADMIN role")
		return
	}
	// Idempotent with the scheduler's own close: whichever runs second
	// loses the conditional transition and does nothing.
	if err := c.engine.CloseAuction(ctx, auctionID); err != nil {
		c.sendError(err.Error())
	}
}

func (c *Client) ackHidden(auctionID string, bids []model.Bid) {
	amounts := make([]int64, 0, len(bids))
	for _, b := range bids {
		amounts = append(amounts, b.AmountCents)
	}
	c.trySend(Event{
		Type:      EventHiddenBidAccepted,
		AuctionID: auctionID,
		Payload:   HiddenBidAckPayload{Accepted: len(bids), AmountsCents: amounts},
	})
}

func (c *Client) sendError(message string) {
	c.trySend(Event{Type: EventError, Payload: ErrorPayload{Message: message}})
}

// trySend queues an event without blocking. It reports false when the
// buffer is full or the client is closed, letting the hub decide whether
// the event was critical enough to evict over.
func (c *Client) trySend(ev Event) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// close makes the write pump drain out and the connection shut down.
// Safe to call from multiple goroutines.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
