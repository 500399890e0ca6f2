// Package auction implements the auction lifecycle and real-time bidding
// engine: bid admission (open and sealed modes), winner resolution and the
// periodic lifecycle scheduler. All auction state lives behind the
// repository interfaces; the engine itself is stateless apart from its
// configuration, so any number of callers may invoke it concurrently.
package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lyng148/online-auction/internal/logger"
	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/queue"
	"github.com/lyng148/online-auction/internal/repository"
)

const (
	// DefaultSealedWindow is how long before end_time the protocol stops
	// advancing the visible price and collects hidden candidate bids.
	DefaultSealedWindow = 10 * time.Minute

	// DefaultHiddenBidCap is the maximum number of hidden candidates one
	// bidder may submit for one auction.
	DefaultHiddenBidCap = 3

	// maxAdmissionRetries bounds how often a losing open bid is re-evaluated
	// against the fresh price before giving up. Each retry is one extra
	// read-modify-write round trip.
	maxAdmissionRetries = 3
)

// Notifier receives room-scoped announcements from the engine. The realtime
// hub implements it; tests substitute a recorder. Hidden-bid admissions are
// deliberately absent: sealed mode acknowledges the submitter only, which
// is the caller's job.
type Notifier interface {
	// BidAccepted announces an admitted open bid together with the new
	// visible price and the updated count of open bids.
	BidAccepted(auctionID string, bid model.Bid, newPriceCents int64, openBidCount int)

	// AuctionEnded announces the close of an auction. winner is nil when the
	// auction closed with no bids.
	AuctionEnded(auctionID string, winner *model.Bid, finalPriceCents int64)
}

// OrderPublisher hands a resolved auction off to the external
// order-creation collaborator.
type OrderPublisher interface {
	PublishAuctionWon(ctx context.Context, ev queue.AuctionWonEvent) error
}

// EngineConfig carries the tunables of the admission protocol. Zero values
// select the defaults; Clock is injectable for tests.
type EngineConfig struct {
	SealedWindow time.Duration
	HiddenBidCap int
	Clock        func() time.Time
}

// Engine is the bid admission protocol plus winner resolution. One Engine
// serves every auction; per-auction serialization comes from the store's
// conditional writes, not from locking inside the engine.
type Engine struct {
	auctions     repository.AuctionStore
	ledger       repository.BidLedger
	notifier     Notifier
	orders       OrderPublisher
	sealedWindow time.Duration
	hiddenBidCap int
	now          func() time.Time
}

// NewEngine wires an Engine. notifier and orders may be nil, in which case
// the corresponding side effects are skipped.
func NewEngine(auctions repository.AuctionStore, ledger repository.BidLedger, notifier Notifier, orders OrderPublisher, cfg EngineConfig) *Engine {
	e := &Engine{
		auctions:     auctions,
		ledger:       ledger,
		notifier:     notifier,
		orders:       orders,
		sealedWindow: cfg.SealedWindow,
		hiddenBidCap: cfg.HiddenBidCap,
		now:          cfg.Clock,
	}
	if e.sealedWindow <= 0 {
		e.sealedWindow = DefaultSealedWindow
	}
	if e.hiddenBidCap <= 0 {
		e.hiddenBidCap = DefaultHiddenBidCap
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// PlaceBid admits one bid, selecting open or sealed mode from the time
// remaining on the auction. The returned bid's Kind tells the caller which
// mode applied: open admissions have already been broadcast to the room,
// hidden ones must be acknowledged to the submitter only.
func (e *Engine) PlaceBid(ctx context.Context, auctionID, bidderID string, amountCents int64) (*model.Bid, error) {
	a, err := e.loadBiddable(ctx, auctionID, bidderID)
	if err != nil {
		return nil, err
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if e.inSealedWindow(a) {
		bids, err := e.admitHidden(ctx, a, bidderID, []int64{amountCents})
		if err != nil {
			return nil, err
		}
		return &bids[0], nil
	}
	return e.admitOpen(ctx, a, bidderID, amountCents)
}

// PlaceHiddenBids admits a batch of up to HiddenBidCap sealed candidates.
// It is only valid inside the sealed window.
func (e *Engine) PlaceHiddenBids(ctx context.Context, auctionID, bidderID string, amountsCents []int64) ([]model.Bid, error) {
	a, err := e.loadBiddable(ctx, auctionID, bidderID)
	if err != nil {
		return nil, err
	}
	if !e.inSealedWindow(a) {
		return nil, fmt.Errorf("hidden bids are only accepted in the closing window: %w", ErrBiddingNotAvailable)
	}
	return e.admitHidden(ctx, a, bidderID, amountsCents)
}

// loadBiddable runs the stateless preconditions shared by both modes:
// the auction exists, is live, and the bidder is not its seller.
func (e *Engine) loadBiddable(ctx context.Context, auctionID, bidderID string) (*model.Auction, error) {
	a, err := e.auctions.GetByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction %s: %w", auctionID, err)
	}
	if !a.Status.Biddable() {
		return nil, ErrBiddingNotAvailable
	}
	if a.SellerID == bidderID {
		return nil, ErrSelfBidForbidden
	}
	return a, nil
}

func (e *Engine) inSealedWindow(a *model.Auction) bool {
	return a.RemainingAt(e.now()) <= e.sealedWindow
}

// admitOpen validates the amount against the price ladder and applies the
// compare-and-swap price update. Losing the CAS means another bid (or the
// closing transition) got in first: the auction is re-read and the bid is
// re-evaluated against the fresh state, so two racing bids can never both
// succeed at the same base price.
func (e *Engine) admitOpen(ctx context.Context, a *model.Auction, bidderID string, amountCents int64) (*model.Bid, error) {
	for attempt := 0; ; attempt++ {
		floor := a.CurrentPriceCents + a.MinIncrementCents
		if amountCents < floor {
			return nil, fmt.Errorf("bid %d below %d: %w", amountCents, floor, ErrBidTooLow)
		}
		if (amountCents-a.CurrentPriceCents)%a.MinIncrementCents != 0 {
			return nil, fmt.Errorf("bid %d off the %d-cent ladder above %d: %w",
				amountCents, a.MinIncrementCents, a.CurrentPriceCents, ErrBidNotOnIncrement)
		}

		now := e.now().UTC()
		won, err := e.auctions.ApplyOpenBid(ctx, a.ID, a.CurrentPriceCents, amountCents, now)
		if err != nil {
			return nil, fmt.Errorf("apply open bid: %w", err)
		}
		if won {
			bid := &model.Bid{
				ID:          uuid.New().String(),
				AuctionID:   a.ID,
				UserID:      bidderID,
				AmountCents: amountCents,
				Kind:        model.BidOpen,
				CreatedAt:   now,
			}
			if err := e.ledger.Append(ctx, bid); err != nil {
				// The price already advanced; the missing ledger row is an
				// audit gap, not a correctness hole for admission. Surface
				// the failure to the caller.
				logger.Error("ledger append failed after price update", map[string]any{
					"auction_id": a.ID, "user_id": bidderID, "error": err.Error(),
				})
				return nil, fmt.Errorf("record bid: %w", err)
			}
			if e.notifier != nil {
				count, cerr := e.countOpenBids(ctx, a.ID)
				if cerr != nil {
					logger.Warn("open bid count unavailable for broadcast", map[string]any{
						"auction_id": a.ID, "error": cerr.Error(),
					})
				}
				e.notifier.BidAccepted(a.ID, *bid, amountCents, count)
			}
			return bid, nil
		}

		if attempt >= maxAdmissionRetries {
			// The bid stayed valid against every state observed here and
			// still kept losing the swap to other bids. The auction itself
			// is live, so report contention rather than unavailability.
			return nil, ErrBidContention
		}
		// Lost the race. Re-read: a concurrent close rejects the bid, a
		// concurrent bid re-prices it, and crossing into the sealed window
		// switches the mode.
		fresh, err := e.loadBiddable(ctx, a.ID, bidderID)
		if err != nil {
			return nil, err
		}
		if e.inSealedWindow(fresh) {
			bids, err := e.admitHidden(ctx, fresh, bidderID, []int64{amountCents})
			if err != nil {
				return nil, err
			}
			return &bids[0], nil
		}
		a = fresh
	}
}

// admitHidden validates each sealed candidate against the price captured at
// sealed-mode entry. The stored current price cannot advance while sealed
// mode holds (open admissions are off), so the stored value is that entry
// price. Hidden admissions never touch the auction row and never broadcast.
func (e *Engine) admitHidden(ctx context.Context, a *model.Auction, bidderID string, amountsCents []int64) ([]model.Bid, error) {
	if len(amountsCents) == 0 {
		return nil, ErrInvalidAmount
	}
	if len(amountsCents) > e.hiddenBidCap {
		return nil, fmt.Errorf("%d candidates in one batch: %w", len(amountsCents), ErrHiddenBidLimit)
	}
	floor := a.CurrentPriceCents + a.MinIncrementCents
	for _, amount := range amountsCents {
		if amount <= 0 {
			return nil, ErrInvalidAmount
		}
		if amount < floor {
			return nil, fmt.Errorf("hidden candidate %d below %d: %w", amount, floor, ErrBidTooLow)
		}
	}

	now := e.now().UTC()
	batch := make([]*model.Bid, 0, len(amountsCents))
	for _, amount := range amountsCents {
		batch = append(batch, &model.Bid{
			ID:          uuid.New().String(),
			AuctionID:   a.ID,
			UserID:      bidderID,
			AmountCents: amount,
			Kind:        model.BidHidden,
			CreatedAt:   now,
		})
	}
	// The budget check and the inserts are one atomic ledger operation, so
	// a bidder racing their own submissions cannot land more than the cap.
	admitted, err := e.ledger.AppendHiddenBatch(ctx, batch, e.hiddenBidCap)
	if err != nil {
		return nil, fmt.Errorf("record hidden bids: %w", err)
	}
	if !admitted {
		return nil, fmt.Errorf("batch of %d exceeds the %d-candidate budget: %w",
			len(batch), e.hiddenBidCap, ErrHiddenBidLimit)
	}
	out := make([]model.Bid, 0, len(batch))
	for _, b := range batch {
		out = append(out, *b)
	}
	return out, nil
}

func (e *Engine) countOpenBids(ctx context.Context, auctionID string) (int, error) {
	bids, err := e.ledger.ListByAuction(ctx, auctionID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range bids {
		if b.Kind == model.BidOpen {
			n++
		}
	}
	return n, nil
}
