package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/lyng148/online-auction/internal/logger"
	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/queue"
	"github.com/lyng148/online-auction/internal/repository"
)

// ComputeWinner determines the winning bid from a complete ledger.
//
// If any hidden bids exist the sealed protocol was entered, and the winner
// is the single highest hidden amount across all candidate sets; ties go to
// the earliest admitted (lowest ledger sequence, which follows created_at).
// Otherwise the winner is the most recent open bid, the one holding the
// current price at close. An empty ledger yields nil: no winner, no order.
//
// The function is pure, so resolving the same ledger twice always produces
// the identical winner and final price.
func ComputeWinner(bids []model.Bid) *model.Bid {
	var bestHidden *model.Bid
	var lastOpen *model.Bid
	for i := range bids {
		b := &bids[i]
		switch b.Kind {
		case model.BidHidden:
			if bestHidden == nil || b.AmountCents > bestHidden.AmountCents ||
				(b.AmountCents == bestHidden.AmountCents && b.Seq < bestHidden.Seq) {
				bestHidden = b
			}
		case model.BidOpen:
			if lastOpen == nil || b.Seq > lastOpen.Seq {
				lastOpen = b
			}
		}
	}
	if bestHidden != nil {
		return bestHidden
	}
	return lastOpen
}

// CloseAuction performs the OPEN/EXTENDED -> CLOSED transition and, when
// this caller wins the conditional write, resolves the winner. Both the
// scheduler and the administrative end-auction trigger funnel through here,
// so a duplicate invocation loses the transition and becomes a no-op —
// resolution runs at most once per auction.
func (e *Engine) CloseAuction(ctx context.Context, auctionID string) error {
	won, err := e.auctions.TransitionStatus(ctx, auctionID, model.StatusClosed, model.StatusOpen, model.StatusExtended)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAuctionNotFound
		}
		return fmt.Errorf("close auction %s: %w", auctionID, err)
	}
	if !won {
		return nil
	}
	return e.resolveWinner(ctx, auctionID)
}

// resolveWinner reads the ledger, persists the final price, announces the
// result to the room and hands the sale off to order creation.
func (e *Engine) resolveWinner(ctx context.Context, auctionID string) error {
	bids, err := e.ledger.ListByAuction(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("resolve auction %s: %w", auctionID, err)
	}

	winner := ComputeWinner(bids)
	if winner == nil {
		logger.Info("auction closed with no bids", map[string]any{"auction_id": auctionID})
		if e.notifier != nil {
			e.notifier.AuctionEnded(auctionID, nil, 0)
		}
		return nil
	}

	// A winning hidden bid may exceed the last visible open price; make the
	// stored price reflect the actual sale.
	if err := e.auctions.SetFinalPrice(ctx, auctionID, winner.AmountCents); err != nil {
		return fmt.Errorf("record final price for auction %s: %w", auctionID, err)
	}

	logger.Info("auction resolved", map[string]any{
		"auction_id":        auctionID,
		"winner_id":         winner.UserID,
		"final_price_cents": winner.AmountCents,
		"winning_bid_kind":  string(winner.Kind),
	})

	if e.notifier != nil {
		e.notifier.AuctionEnded(auctionID, winner, winner.AmountCents)
	}
	if e.orders != nil {
		ev := queue.AuctionWonEvent{
			AuctionID:       auctionID,
			WinnerID:        winner.UserID,
			FinalPriceCents: winner.AmountCents,
			ResolvedAt:      e.now().UTC().Format("2006-01-02 15:04:05"),
		}
		if err := e.orders.PublishAuctionWon(ctx, ev); err != nil {
			// The auction is already CLOSED; order handoff failures are
			// reported but do not unwind the close.
			logger.Error("order handoff publish failed", map[string]any{
				"auction_id": auctionID, "winner_id": winner.UserID, "error": err.Error(),
			})
		}
	}
	return nil
}
