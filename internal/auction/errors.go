package auction

import "errors"

// State and not-found errors. These are terminal for the request that
// triggered them and never mutate auction state.
var (
	ErrAuctionNotFound     = errors.New("auction not found")
	ErrBiddingNotAvailable = errors.New("bidding not available for this auction")
	ErrSelfBidForbidden    = errors.New("sellers cannot bid on their own auction")
)

// Validation and ordering errors returned by the admission protocol.
var (
	ErrInvalidAmount     = errors.New("bid amount must be positive")
	ErrBidTooLow         = errors.New("bid must be at least current price plus minimum increment")
	ErrBidNotOnIncrement = errors.New("bid must be an exact multiple of the minimum increment above current price")
	ErrHiddenBidLimit    = errors.New("hidden bid candidate limit reached")
)

// ErrBidContention is returned when a still-valid bid repeatedly loses the
// admission race to concurrent bids. The auction remains live; callers may
// resubmit.
var ErrBidContention = errors.New("bid lost to concurrent bids, please retry")
