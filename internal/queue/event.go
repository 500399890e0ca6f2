// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer that move them.
package queue

// AuctionWonQueue is the durable queue carrying resolved auctions to the
// order-creation collaborator.
const AuctionWonQueue = "auction.won"

// AuctionWonEvent is published once per auction when winner resolution
// determines a sale. It carries everything order creation needs without
// querying the auction database.
type AuctionWonEvent struct {
	AuctionID       string `json:"auction_id"`
	WinnerID        string `json:"winner_id"`
	FinalPriceCents int64  `json:"final_price_cents"`
	ResolvedAt      string `json:"resolved_at"`
}
