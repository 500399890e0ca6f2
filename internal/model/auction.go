package model // package model defines the domain types shared by the engine, repositories and handlers

import "time"

// AuctionStatus enumerates the lifecycle states of an auction. Transitions
// are monotonic along the state machine driven by the scheduler: an auction
// never moves backwards. CANCELED is a terminal administrative state.
type AuctionStatus string

const (
	StatusPending  AuctionStatus = "PENDING"  // created by the seller, awaiting admin confirmation
	StatusReady    AuctionStatus = "READY"    // confirmed, waiting for start_time
	StatusOpen     AuctionStatus = "OPEN"     // live, accepting bids
	StatusExtended AuctionStatus = "EXTENDED" // live with an extended end_time
	StatusClosed   AuctionStatus = "CLOSED"   // past end_time, winner resolved (or expired unconfirmed)
	StatusCanceled AuctionStatus = "CANCELED" // withdrawn by an administrator
	StatusRefund   AuctionStatus = "REFUND"   // closed and product stock restored
)

// Biddable reports whether bids may be admitted against an auction in this
// status. Only live auctions accept bids; every other state maps to a
// BiddingNotAvailable rejection.
func (s AuctionStatus) Biddable() bool {
	return s == StatusOpen || s == StatusExtended
}

// Auction is the authoritative record of a single auction. Pricing is held
// in integer cents so that minimum-increment arithmetic stays exact.
//
// Invariants enforced by the store and the admission protocol:
//   - CurrentPriceCents >= StartingPriceCents at all times
//   - CurrentPriceCents strictly increases with each admitted open bid,
//     always by an exact multiple of MinIncrementCents
//   - all status/price mutations are conditional writes keyed on the
//     previously observed state (see repository.AuctionStore)
type Auction struct {
	ID                  string        `json:"id"`
	SellerID            string        `json:"seller_id"`
	Title               string        `json:"title"`
	Status              AuctionStatus `json:"status"`
	StartingPriceCents  int64         `json:"starting_price_cents"`
	CurrentPriceCents   int64         `json:"current_price_cents"`
	MinIncrementCents   int64         `json:"min_increment_cents"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	LastBidTime         *time.Time    `json:"last_bid_time,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// RemainingAt returns how much auction time is left at the given instant.
// Negative values mean the auction is past its end time.
func (a *Auction) RemainingAt(now time.Time) time.Duration {
	return a.EndTime.Sub(now)
}
