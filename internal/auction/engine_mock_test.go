package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/repository"
)

// Store failure paths are driven through mocks: the memory store cannot be
// made to fail on demand.

func TestPlaceBidSurfacesLedgerFailureAfterAdmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewMockAuctionStore(ctrl)
	ledger := repository.NewMockBidLedger(ctrl)

	a := &model.Auction{
		ID:                "a-1",
		SellerID:          "seller-1",
		Status:            model.StatusOpen,
		CurrentPriceCents: 10000,
		MinIncrementCents: 500,
		EndTime:           t0.Add(time.Hour),
	}
	auctions.EXPECT().GetByID(gomock.Any(), "a-1").Return(a, nil)
	auctions.EXPECT().
		ApplyOpenBid(gomock.Any(), "a-1", int64(10000), int64(10500), gomock.Any()).
		Return(true, nil)
	ledger.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	e := NewEngine(auctions, ledger, nil, nil, EngineConfig{Clock: func() time.Time { return t0 }})
	_, err := e.PlaceBid(context.Background(), "a-1", "bidder-1", 10500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record bid")
}

func TestPlaceBidReadmitsAfterLostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewMockAuctionStore(ctrl)
	ledger := repository.NewMockBidLedger(ctrl)

	base := &model.Auction{
		ID:                "a-1",
		SellerID:          "seller-1",
		Status:            model.StatusOpen,
		CurrentPriceCents: 10000,
		MinIncrementCents: 500,
		EndTime:           t0.Add(time.Hour),
	}
	repriced := *base
	repriced.CurrentPriceCents = 10500

	// The first swap loses to a concurrent bid; the re-read shows the new
	// price and the bid, still valid against it, is admitted on the retry.
	first := auctions.EXPECT().GetByID(gomock.Any(), "a-1").Return(base, nil)
	auctions.EXPECT().
		ApplyOpenBid(gomock.Any(), "a-1", int64(10000), int64(11000), gomock.Any()).
		Return(false, nil)
	auctions.EXPECT().GetByID(gomock.Any(), "a-1").Return(&repriced, nil).After(first)
	auctions.EXPECT().
		ApplyOpenBid(gomock.Any(), "a-1", int64(10500), int64(11000), gomock.Any()).
		Return(true, nil)
	ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	ledger.EXPECT().ListByAuction(gomock.Any(), "a-1").Return(nil, nil).AnyTimes()

	e := NewEngine(auctions, ledger, nil, nil, EngineConfig{Clock: func() time.Time { return t0 }})
	bid, err := e.PlaceBid(context.Background(), "a-1", "bidder-1", 11000)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), bid.AmountCents)
}

func TestPlaceBidReportsContentionWhenRetriesExhaust(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewMockAuctionStore(ctrl)
	ledger := repository.NewMockBidLedger(ctrl)

	// Every read shows a live auction the bid is valid against, and every
	// swap loses anyway. The caller must learn the auction is still live
	// and the bid worth retrying, not that bidding is unavailable.
	a := &model.Auction{
		ID:                "a-1",
		SellerID:          "seller-1",
		Status:            model.StatusOpen,
		CurrentPriceCents: 10000,
		MinIncrementCents: 500,
		EndTime:           t0.Add(time.Hour),
	}
	auctions.EXPECT().GetByID(gomock.Any(), "a-1").Return(a, nil).AnyTimes()
	auctions.EXPECT().
		ApplyOpenBid(gomock.Any(), "a-1", int64(10000), int64(10500), gomock.Any()).
		Return(false, nil).AnyTimes()

	e := NewEngine(auctions, ledger, nil, nil, EngineConfig{Clock: func() time.Time { return t0 }})
	_, err := e.PlaceBid(context.Background(), "a-1", "bidder-1", 10500)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBidContention)
	assert.NotErrorIs(t, err, ErrBiddingNotAvailable)
}

func TestPlaceBidWrapsStoreReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewMockAuctionStore(ctrl)
	ledger := repository.NewMockBidLedger(ctrl)

	auctions.EXPECT().GetByID(gomock.Any(), "a-1").Return(nil, errors.New("driver: bad connection"))

	e := NewEngine(auctions, ledger, nil, nil, EngineConfig{Clock: func() time.Time { return t0 }})
	_, err := e.PlaceBid(context.Background(), "a-1", "bidder-1", 10500)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuctionNotFound)
}

func TestCloseAuctionWrapsTransitionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewMockAuctionStore(ctrl)
	ledger := repository.NewMockBidLedger(ctrl)

	auctions.EXPECT().
		TransitionStatus(gomock.Any(), "a-1", model.StatusClosed, model.StatusOpen, model.StatusExtended).
		Return(false, errors.New("deadlock detected"))

	e := NewEngine(auctions, ledger, nil, nil, EngineConfig{Clock: func() time.Time { return t0 }})
	err := e.CloseAuction(context.Background(), "a-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close auction")
}
