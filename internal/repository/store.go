package repository

import (
	"context"
	"time"

	"github.com/lyng148/online-auction/internal/model"
)

// AuctionStore is the authoritative record of auction state, price and
// timing. Every mutation of status, current_price or last_bid_time is a
// conditional write keyed on the previously observed state: callers pass
// the expected predecessor and receive a boolean reporting whether the row
// actually changed. Two writers racing on the same auction therefore
// serialize at the store, and the loser re-reads instead of overwriting.
type AuctionStore interface {
	// Create inserts a new PENDING auction. ErrConflict on duplicate id.
	Create(ctx context.Context, a *model.Auction) error

	// GetByID returns the auction or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Auction, error)

	// List returns all auctions ordered by end time ascending.
	List(ctx context.Context) ([]model.Auction, error)

	// TransitionStatus moves the auction to the target status only when its
	// current status is one of the expected predecessors. Returns true when
	// the row changed, false when another writer got there first (or the
	// auction was never in an expected state). ErrNotFound when no such
	// auction exists at all.
	TransitionStatus(ctx context.Context, id string, to model.AuctionStatus, from ...model.AuctionStatus) (bool, error)

	// ApplyOpenBid raises current_price to newPrice and stamps
	// last_bid_time, conditional on the auction still being biddable and
	// its price still being exactly expectedPrice. This is the
	// compare-and-swap that serializes concurrent open-bid admissions.
	ApplyOpenBid(ctx context.Context, id string, expectedPriceCents, newPriceCents int64, at time.Time) (bool, error)

	// SetFinalPrice records the resolved final price on a CLOSED auction.
	// Used when a winning hidden bid exceeds the last visible open price.
	SetFinalPrice(ctx context.Context, id string, priceCents int64) error

	// ExtendEndTime pushes end_time to the given instant and marks the
	// auction EXTENDED, conditional on it currently being OPEN or EXTENDED.
	ExtendEndTime(ctx context.Context, id string, until time.Time) (bool, error)

	// Scan queries used by the scheduler. Each returns only rows eligible
	// for the corresponding transition at the given instant.
	DueForOpen(ctx context.Context, now time.Time) ([]model.Auction, error)      // READY with start_time <= now
	ExpiredPending(ctx context.Context, now time.Time) ([]model.Auction, error)  // PENDING with end_time <= now
	DueForClose(ctx context.Context, now time.Time) ([]model.Auction, error)     // OPEN/EXTENDED with end_time <= now
	AwaitingRefund(ctx context.Context, now time.Time) ([]model.Auction, error)  // CLOSED past end_time, not yet refunded
}

// BidLedger is the append-only history of admitted bids. Rows are never
// updated or deleted; insertion order is captured by a monotonically
// increasing sequence used for sealed-bid tie-breaking.
type BidLedger interface {
	// Append records an admitted bid and fills in its Seq.
	Append(ctx context.Context, b *model.Bid) error

	// AppendHiddenBatch records a batch of hidden candidates for one
	// bidder, conditional on the bidder's existing hidden count plus the
	// batch still fitting under limit. The count check and the inserts are
	// atomic, so a bidder racing themselves cannot exceed the cap. Returns
	// false (and records nothing) when the budget would be exceeded.
	AppendHiddenBatch(ctx context.Context, bids []*model.Bid, limit int) (bool, error)

	// ListByAuction returns every bid for the auction in sequence order.
	ListByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)

	// CountHiddenByBidder returns how many hidden candidates the bidder has
	// already submitted for the auction. Advisory: the authoritative cap
	// check lives in AppendHiddenBatch.
	CountHiddenByBidder(ctx context.Context, auctionID, userID string) (int, error)
}

// StockStore adjusts product stock around the auction lifecycle: reserve
// on creation, restore on the scheduler's REFUND pass.
type StockStore interface {
	// CreateProduct attaches a stock line to an auction.
	CreateProduct(ctx context.Context, p *model.Product) error

	// ReserveForAuction moves quantity into reserved_quantity for every
	// product line on the auction.
	ReserveForAuction(ctx context.Context, auctionID string) error

	// RestoreForAuction returns reserved quantity to stock for every
	// product line on the auction. Restoring a line with nothing reserved
	// is a no-op, so repeated calls are safe.
	RestoreForAuction(ctx context.Context, auctionID string) error
}
