package model

// Product is a stock line attached to an auction. Quantity is reserved
// (decremented) when the auction is created and restored (incremented) by
// the scheduler's REFUND pass once the auction has closed.
type Product struct {
	ID               string `json:"id"`
	AuctionID        string `json:"auction_id"`
	Quantity         int64  `json:"quantity"`
	ReservedQuantity int64  `json:"reserved_quantity"`
}
