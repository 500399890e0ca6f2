// Package realtime implements the push channel: the session registry
// tracking which connection sits in which auction room, and the websocket
// client pumps that carry commands in and events out.
package realtime

import "github.com/lyng148/online-auction/internal/model"

// Inbound command actions. The set is closed: anything else is rejected
// with an error event before it reaches the admission protocol.
const (
	ActionJoinAuction  = "join-auction"
	ActionLeaveAuction = "leave-auction"
	ActionPlaceBid     = "place-bid"
	ActionEndAuction   = "end-auction"
)

// Command is one inbound frame from a connection. For place-bid, a single
// amount is interpreted as open or sealed by the current auction phase;
// AmountsCents submits a sealed candidate batch explicitly.
type Command struct {
	Action       string  `json:"action"`
	AuctionID    string  `json:"auction_id"`
	AmountCents  int64   `json:"amount_cents,omitempty"`
	AmountsCents []int64 `json:"amounts_cents,omitempty"`
}

// Outbound event types.
const (
	EventConnected         = "connected"           // to the joining connection only
	EventBidHistory        = "bid-history"         // to the joining connection only
	EventUserJoined        = "user-joined"         // room-wide, with updated roster
	EventUserLeft          = "user-left"           // room-wide, with updated roster
	EventBidAccepted       = "bid-accepted"        // room-wide
	EventHiddenBidAccepted = "hidden-bid-accepted" // to the submitting connection only
	EventAuctionEnded      = "auction-ended"       // room-wide
	EventError             = "error"               // to the originating connection only
)

// Event is one outbound frame pushed to a connection.
type Event struct {
	Type      string `json:"type"`
	AuctionID string `json:"auction_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// Participant is the public identity of a room member.
type Participant struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// RosterPayload accompanies user-joined and user-left events so clients'
// live participant counts stay accurate without polling.
type RosterPayload struct {
	Participants []Participant `json:"participants"`
	Count        int           `json:"count"`
}

// BidAcceptedPayload announces an admitted open bid to the room.
type BidAcceptedPayload struct {
	BidID             string        `json:"bid_id"`
	UserID            string        `json:"user_id"`
	AmountCents       int64         `json:"amount_cents"`
	CurrentPriceCents int64         `json:"current_price_cents"`
	OpenBidCount      int           `json:"open_bid_count"`
	Participants      []Participant `json:"participants"`
}

// HiddenBidAckPayload acknowledges sealed candidates to the submitter.
// Amounts are echoed back only to the bidder who placed them.
type HiddenBidAckPayload struct {
	Accepted     int     `json:"accepted"`
	AmountsCents []int64 `json:"amounts_cents"`
}

// AuctionEndedPayload announces the close result. WinnerID is empty when
// the auction closed without bids.
type AuctionEndedPayload struct {
	WinnerID        string `json:"winner_id,omitempty"`
	FinalPriceCents int64  `json:"final_price_cents"`
	HasWinner       bool   `json:"has_winner"`
}

// BidHistoryPayload is the snapshot sent to a joining connection.
type BidHistoryPayload struct {
	Bids []model.Bid `json:"bids"`
}

// ErrorPayload carries a human-readable rejection message.
type ErrorPayload struct {
	Message string `json:"message"`
}
