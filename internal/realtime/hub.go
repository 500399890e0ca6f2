package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/lyng148/online-auction/internal/logger"
	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/repository"
)

// ErrAuctionNotFound is returned by Join when the auction id does not
// resolve to an existing auction.
var ErrAuctionNotFound = errors.New("auction not found")

// Hub is the session registry: it tracks, per live connection, which single
// auction room (if any) the connection is subscribed to, and fans events
// out to rooms. It is injected into handlers rather than held as global
// state, so each service instance owns a disjoint registry. Membership only
// affects presence and fan-out targeting — it carries no bidding authority
// and never gates auction correctness.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	auctions repository.AuctionStore
	ledger   repository.BidLedger
}

// NewHub creates an empty registry backed by the given stores.
func NewHub(auctions repository.AuctionStore, ledger repository.BidLedger) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		auctions: auctions,
		ledger:   ledger,
	}
}

// Join subscribes the connection to an auction's room, implicitly leaving
// any previously joined room (a connection belongs to at most one room);
// the previous room's members receive a user-left roster update. It
// returns the updated roster for the caller to render presence; the
// room-wide user-joined notification has already been fanned out.
func (h *Hub) Join(ctx context.Context, c *Client, auctionID string) ([]Participant, error) {
	if _, err := h.auctions.GetByID(ctx, auctionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}

	h.mu.Lock()
	oldRoom := ""
	var oldRoster []Participant
	if c.room != "" && c.room != auctionID {
		oldRoom = c.room
		h.removeLocked(c, c.room)
		oldRoster = h.rosterLocked(oldRoom)
	}
	members, ok := h.rooms[auctionID]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[auctionID] = members
	}
	members[c] = struct{}{}
	c.room = auctionID
	roster := h.rosterLocked(auctionID)
	h.mu.Unlock()

	// The room being switched away from hears the departure too, so its
	// members' participant counts do not go stale.
	if oldRoom != "" {
		h.broadcast(oldRoom, Event{
			Type:      EventUserLeft,
			AuctionID: oldRoom,
			Payload:   RosterPayload{Participants: oldRoster, Count: len(oldRoster)},
		}, false)
	}
	h.broadcast(auctionID, Event{
		Type:      EventUserJoined,
		AuctionID: auctionID,
		Payload:   RosterPayload{Participants: roster, Count: len(roster)},
	}, false)
	return roster, nil
}

// Leave removes the connection from the room. Not being a member is a
// silent no-op; otherwise the remaining members receive the updated roster.
func (h *Hub) Leave(c *Client, auctionID string) {
	h.mu.Lock()
	if _, member := h.rooms[auctionID][c]; !member {
		h.mu.Unlock()
		return
	}
	h.removeLocked(c, auctionID)
	roster := h.rosterLocked(auctionID)
	h.mu.Unlock()

	h.broadcast(auctionID, Event{
		Type:      EventUserLeft,
		AuctionID: auctionID,
		Payload:   RosterPayload{Participants: roster, Count: len(roster)},
	}, false)
}

// Disconnect is the implicit leave invoked on connection loss. Idempotent:
// a connection that already left is a no-op.
func (h *Hub) Disconnect(c *Client) {
	h.mu.RLock()
	room := c.room
	h.mu.RUnlock()
	if room != "" {
		h.Leave(c, room)
	}
}

// History returns the bid snapshot a joining connection receives. Hidden
// amounts stay sealed until the auction has closed.
func (h *Hub) History(ctx context.Context, auctionID string) ([]model.Bid, error) {
	a, err := h.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	bids, err := h.ledger.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	revealed := a.Status == model.StatusClosed || a.Status == model.StatusRefund
	out := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		if b.Kind == model.BidHidden && !revealed {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// RoomCount reports how many connections currently sit in a room.
func (h *Hub) RoomCount(auctionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[auctionID])
}

// BidAccepted implements auction.Notifier: an admitted open bid is
// announced room-wide with the new price, bid count and roster. Price
// updates must reach every member, so slow consumers are evicted rather
// than skipped.
func (h *Hub) BidAccepted(auctionID string, bid model.Bid, newPriceCents int64, openBidCount int) {
	h.mu.RLock()
	roster := h.rosterLocked(auctionID)
	h.mu.RUnlock()

	h.broadcast(auctionID, Event{
		Type:      EventBidAccepted,
		AuctionID: auctionID,
		Payload: BidAcceptedPayload{
			BidID:             bid.ID,
			UserID:            bid.UserID,
			AmountCents:       bid.AmountCents,
			CurrentPriceCents: newPriceCents,
			OpenBidCount:      openBidCount,
			Participants:      roster,
		},
	}, true)
}

// AuctionEnded implements auction.Notifier: the close result is announced
// room-wide, winner or not.
func (h *Hub) AuctionEnded(auctionID string, winner *model.Bid, finalPriceCents int64) {
	payload := AuctionEndedPayload{FinalPriceCents: finalPriceCents}
	if winner != nil {
		payload.WinnerID = winner.UserID
		payload.HasWinner = true
	}
	h.broadcast(auctionID, Event{Type: EventAuctionEnded, AuctionID: auctionID, Payload: payload}, true)
}

// broadcast fans an event out to every current member of a room. Non-
// critical events are dropped for members whose send buffer is full;
// critical events evict such members instead so the room never diverges
// on price or close state.
func (h *Hub) broadcast(auctionID string, ev Event, critical bool) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[auctionID]))
	for c := range h.rooms[auctionID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if c.trySend(ev) {
			continue
		}
		if critical {
			logger.Warn("evicting slow subscriber", map[string]any{
				"auction_id": auctionID, "user_id": c.user.ID,
			})
			c.close()
			h.Disconnect(c)
		}
	}
}

// removeLocked deletes the membership entry; callers hold h.mu.
func (h *Hub) removeLocked(c *Client, auctionID string) {
	delete(h.rooms[auctionID], c)
	if len(h.rooms[auctionID]) == 0 {
		delete(h.rooms, auctionID)
	}
	if c.room == auctionID {
		c.room = ""
	}
}

// rosterLocked snapshots a room's participants; callers hold h.mu.
func (h *Hub) rosterLocked(auctionID string) []Participant {
	roster := make([]Participant, 0, len(h.rooms[auctionID]))
	for c := range h.rooms[auctionID] {
		roster = append(roster, Participant{UserID: c.user.ID, Email: c.user.Email})
	}
	return roster
}
