package auction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/queue"
	"github.com/lyng148/online-auction/internal/repository"
)

// t0 is the fixed instant every engine clock in these tests reports.
var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// notifierRecorder captures engine announcements for assertions.
type notifierRecorder struct {
	mu       sync.Mutex
	accepted []model.Bid
	ended    []string
}

func (n *notifierRecorder) BidAccepted(auctionID string, bid model.Bid, newPriceCents int64, openBidCount int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accepted = append(n.accepted, bid)
}

func (n *notifierRecorder) AuctionEnded(auctionID string, winner *model.Bid, finalPriceCents int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ended = append(n.ended, auctionID)
}

func (n *notifierRecorder) acceptedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.accepted)
}

// publisherRecorder captures order handoff events.
type publisherRecorder struct {
	mu     sync.Mutex
	events []queue.AuctionWonEvent
}

func (p *publisherRecorder) PublishAuctionWon(ctx context.Context, ev queue.AuctionWonEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *publisherRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// seedAuction inserts a live auction priced at 10000 cents with a 500-cent
// increment, ending one hour after t0. mut adjusts the fixture per test.
func seedAuction(t *testing.T, store *repository.MemoryStore, mut func(*model.Auction)) *model.Auction {
	t.Helper()
	a := &model.Auction{
		ID:                 uuid.New().String(),
		SellerID:           "seller-1",
		Title:              "vintage lens",
		Status:             model.StatusOpen,
		StartingPriceCents: 10000,
		CurrentPriceCents:  10000,
		MinIncrementCents:  500,
		StartTime:          t0.Add(-time.Hour),
		EndTime:            t0.Add(time.Hour),
	}
	if mut != nil {
		mut(a)
	}
	require.NoError(t, store.Create(context.Background(), a))
	return a
}

func newTestEngine(store *repository.MemoryStore, n Notifier, orders OrderPublisher) *Engine {
	return NewEngine(store, store, n, orders, EngineConfig{Clock: func() time.Time { return t0 }})
}

func TestPlaceBidAdmitsOpenBid(t *testing.T) {
	store := repository.NewMemoryStore()
	rec := &notifierRecorder{}
	e := newTestEngine(store, rec, nil)
	a := seedAuction(t, store, nil)

	bid, err := e.PlaceBid(context.Background(), a.ID, "bidder-1", 10500)
	require.NoError(t, err)
	assert.Equal(t, model.BidOpen, bid.Kind)
	assert.Equal(t, int64(10500), bid.AmountCents)
	assert.Equal(t, int64(1), bid.Seq)

	fresh, err := store.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10500), fresh.CurrentPriceCents)
	require.NotNil(t, fresh.LastBidTime)
	assert.Equal(t, 1, rec.acceptedCount())
}

func TestPlaceBidRejections(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, nil)

	tests := []struct {
		name      string
		auctionID string
		bidderID  string
		amount    int64
		wantErr   error
	}{
		{"unknown auction", "no-such-id", "bidder-1", 10500, ErrAuctionNotFound},
		{"seller bids on own auction", a.ID, "seller-1", 10500, ErrSelfBidForbidden},
		{"zero amount", a.ID, "bidder-1", 0, ErrInvalidAmount},
		{"negative amount", a.ID, "bidder-1", -500, ErrInvalidAmount},
		{"below floor", a.ID, "bidder-1", 10000, ErrBidTooLow},
		{"equal to current price", a.ID, "bidder-1", 10400, ErrBidTooLow},
		{"off the increment ladder", a.ID, "bidder-1", 10750, ErrBidNotOnIncrement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PlaceBid(context.Background(), tt.auctionID, tt.bidderID, tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlaceBidRejectsNonLiveStatuses(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)

	for _, status := range []model.AuctionStatus{
		model.StatusPending, model.StatusReady, model.StatusClosed,
		model.StatusCanceled, model.StatusRefund,
	} {
		t.Run(string(status), func(t *testing.T) {
			a := seedAuction(t, store, func(a *model.Auction) { a.Status = status })
			_, err := e.PlaceBid(context.Background(), a.ID, "bidder-1", 10500)
			assert.ErrorIs(t, err, ErrBiddingNotAvailable)
		})
	}
}

func TestPlaceBidAcceptsExtendedAuctions(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, func(a *model.Auction) { a.Status = model.StatusExtended })

	bid, err := e.PlaceBid(context.Background(), a.ID, "bidder-1", 10500)
	require.NoError(t, err)
	assert.Equal(t, model.BidOpen, bid.Kind)
}

func TestPlaceBidPriceStrictlyIncreases(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, nil)
	ctx := context.Background()

	amounts := []int64{10500, 11000, 12500}
	for _, amount := range amounts {
		_, err := e.PlaceBid(ctx, a.ID, "bidder-1", amount)
		require.NoError(t, err)
	}
	// Re-bidding at or below the advanced price is rejected.
	_, err := e.PlaceBid(ctx, a.ID, "bidder-2", 12500)
	assert.ErrorIs(t, err, ErrBidTooLow)

	fresh, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), fresh.CurrentPriceCents)

	bids, err := store.ListByAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for i := 1; i < len(bids); i++ {
		assert.Greater(t, bids[i].AmountCents, bids[i-1].AmountCents)
		assert.Greater(t, bids[i].Seq, bids[i-1].Seq)
	}
}

func TestPlaceBidSingleWinnerUnderContention(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, nil)
	ctx := context.Background()

	// Every contender bids the same amount against the same base price, so
	// exactly one CAS can succeed; the rest re-read and find their amount
	// below the new floor.
	const contenders = 16
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.PlaceBid(ctx, a.ID, uuid.New().String(), 10500)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrBidTooLow)
		}
	}
	assert.Equal(t, 1, admitted)

	fresh, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10500), fresh.CurrentPriceCents)

	bids, err := store.ListByAuction(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestPlaceBidSwitchesToSealedModeInClosingWindow(t *testing.T) {
	store := repository.NewMemoryStore()
	rec := &notifierRecorder{}
	e := newTestEngine(store, rec, nil)
	a := seedAuction(t, store, func(a *model.Auction) {
		a.EndTime = t0.Add(5 * time.Minute)
	})
	ctx := context.Background()

	bid, err := e.PlaceBid(ctx, a.ID, "bidder-1", 10500)
	require.NoError(t, err)
	assert.Equal(t, model.BidHidden, bid.Kind)

	// Sealed admissions never advance the visible price and never broadcast.
	fresh, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), fresh.CurrentPriceCents)
	assert.Equal(t, 0, rec.acceptedCount())
}

func TestPlaceHiddenBidsBatch(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, func(a *model.Auction) {
		a.EndTime = t0.Add(5 * time.Minute)
	})
	ctx := context.Background()

	bids, err := e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{10500, 11000, 12000})
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for _, b := range bids {
		assert.Equal(t, model.BidHidden, b.Kind)
	}

	// The candidate budget is exhausted; one more is rejected.
	_, err = e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{13000})
	assert.ErrorIs(t, err, ErrHiddenBidLimit)

	// Other bidders have their own budget.
	_, err = e.PlaceHiddenBids(ctx, a.ID, "bidder-2", []int64{10500})
	assert.NoError(t, err)
}

func TestPlaceHiddenBidsValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	sealed := seedAuction(t, store, func(a *model.Auction) {
		a.EndTime = t0.Add(5 * time.Minute)
	})
	open := seedAuction(t, store, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		auctionID string
		amounts   []int64
		wantErr   error
	}{
		{"outside closing window", open.ID, []int64{10500}, ErrBiddingNotAvailable},
		{"empty batch", sealed.ID, nil, ErrInvalidAmount},
		{"batch over cap", sealed.ID, []int64{10500, 11000, 11500, 12000}, ErrHiddenBidLimit},
		{"non-positive candidate", sealed.ID, []int64{10500, 0}, ErrInvalidAmount},
		{"candidate below floor", sealed.ID, []int64{10500, 10200}, ErrBidTooLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PlaceHiddenBids(ctx, tt.auctionID, "bidder-1", tt.amounts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// A rejected batch admits nothing, not even its valid candidates.
	bids, err := store.ListByAuction(ctx, sealed.ID)
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestHiddenBidCapUnderSelfContention(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, func(a *model.Auction) {
		a.EndTime = t0.Add(5 * time.Minute)
	})
	ctx := context.Background()

	// One bidder submits candidates from several connections at once. The
	// ledger checks the budget and records the batch atomically, so the
	// admitted total can never exceed the cap.
	const submissions = 8
	var wg sync.WaitGroup
	errs := make([]error, submissions)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{10500})
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrHiddenBidLimit)
		}
	}
	assert.Equal(t, DefaultHiddenBidCap, admitted)

	bids, err := store.ListByAuction(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, bids, DefaultHiddenBidCap)
}

func TestPlaceHiddenBidsPartialBudget(t *testing.T) {
	store := repository.NewMemoryStore()
	e := newTestEngine(store, nil, nil)
	a := seedAuction(t, store, func(a *model.Auction) {
		a.EndTime = t0.Add(5 * time.Minute)
	})
	ctx := context.Background()

	_, err := e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{10500, 11000})
	require.NoError(t, err)

	// Two of three candidates used; a two-candidate batch no longer fits.
	_, err = e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{11500, 12000})
	assert.ErrorIs(t, err, ErrHiddenBidLimit)

	// The last slot still does.
	bids, err := e.PlaceHiddenBids(ctx, a.ID, "bidder-1", []int64{11500})
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}
