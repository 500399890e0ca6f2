package model

import "time"

// BidKind distinguishes open bids, which immediately raise the visible
// price, from hidden (sealed) bids collected during the closing window.
type BidKind string

const (
	BidOpen   BidKind = "OPEN"
	BidHidden BidKind = "HIDDEN"
)

// Bid is one admitted bid. Rows are append-only: a bid is never edited or
// deleted once written, forming the audit trail that winner resolution
// reads. Seq is a monotonically increasing per-ledger sequence assigned at
// insert time and is the stable tie-breaker for equal hidden amounts.
type Bid struct {
	ID          string    `json:"id"`
	AuctionID   string    `json:"auction_id"`
	UserID      string    `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Kind        BidKind   `json:"kind"`
	Seq         int64     `json:"seq"`
	CreatedAt   time.Time `json:"created_at"`
}
