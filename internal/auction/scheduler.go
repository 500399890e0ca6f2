package auction

import (
	"context"
	"time"

	"github.com/lyng148/online-auction/internal/logger"
	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/repository"
)

// DefaultSchedulerTick is the default interval between lifecycle scans.
const DefaultSchedulerTick = time.Minute

// Scheduler is the periodic driver of lifecycle transitions. Each tick it
// scans for eligible auctions and applies the matching transition through
// conditional writes, so overlapping or repeated scans never double-apply
// an effect. Failures on one auction are logged and do not block the rest
// of the scan.
type Scheduler struct {
	auctions repository.AuctionStore
	stock    repository.StockStore
	engine   *Engine
	tick     time.Duration
	now      func() time.Time
}

// NewScheduler wires a Scheduler. A non-positive tick selects the default.
func NewScheduler(auctions repository.AuctionStore, stock repository.StockStore, engine *Engine, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = DefaultSchedulerTick
	}
	return &Scheduler{
		auctions: auctions,
		stock:    stock,
		engine:   engine,
		tick:     tick,
		now:      engine.now,
	}
}

// Run sweeps immediately and then on every tick until the context is
// canceled. Intended to be started in its own goroutine from main.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("scheduler started", map[string]any{"tick": s.tick.String()})
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		s.Sweep(ctx)
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped", map[string]any{})
			return
		case <-ticker.C:
		}
	}
}

// Sweep runs one full scan: open due auctions, expire unconfirmed ones,
// close finished ones (resolving winners) and refund stock on closed ones.
// Exported so tests can drive ticks deterministically.
func (s *Scheduler) Sweep(ctx context.Context) {
	now := s.now().UTC()
	s.openDue(ctx, now)
	s.expirePending(ctx, now)
	s.closeDue(ctx, now)
	s.refundClosed(ctx, now)
}

// openDue moves READY auctions past their start time to OPEN.
func (s *Scheduler) openDue(ctx context.Context, now time.Time) {
	due, err := s.auctions.DueForOpen(ctx, now)
	if err != nil {
		logger.Error("scan for auctions due to open failed", map[string]any{"error": err.Error()})
		return
	}
	for _, a := range due {
		changed, err := s.auctions.TransitionStatus(ctx, a.ID, model.StatusOpen, model.StatusReady)
		if err != nil {
			logger.Error("open transition failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}
		if changed {
			logger.Info("auction opened", map[string]any{"auction_id": a.ID})
		}
	}
}

// expirePending closes PENDING auctions whose end time passed without admin
// confirmation. This is an expiry, not a sale: no winner resolution runs.
func (s *Scheduler) expirePending(ctx context.Context, now time.Time) {
	expired, err := s.auctions.ExpiredPending(ctx, now)
	if err != nil {
		logger.Error("scan for expired pending auctions failed", map[string]any{"error": err.Error()})
		return
	}
	for _, a := range expired {
		changed, err := s.auctions.TransitionStatus(ctx, a.ID, model.StatusClosed, model.StatusPending)
		if err != nil {
			logger.Error("expire transition failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}
		if changed {
			logger.Info("unconfirmed auction expired", map[string]any{"auction_id": a.ID})
		}
	}
}

// closeDue closes live auctions past their end time through the engine so
// winner resolution runs exactly once per auction.
func (s *Scheduler) closeDue(ctx context.Context, now time.Time) {
	due, err := s.auctions.DueForClose(ctx, now)
	if err != nil {
		logger.Error("scan for auctions due to close failed", map[string]any{"error": err.Error()})
		return
	}
	for _, a := range due {
		if err := s.engine.CloseAuction(ctx, a.ID); err != nil {
			logger.Error("close failed, will retry next tick", map[string]any{"auction_id": a.ID, "error": err.Error()})
		}
	}
}

// refundClosed restores product stock for CLOSED auctions and marks them
// REFUND. Restore runs before the status write: if the process dies in
// between, the auction stays CLOSED and the next tick retries — the restore
// itself only moves reserved quantity, so a retry adds nothing twice.
func (s *Scheduler) refundClosed(ctx context.Context, now time.Time) {
	awaiting, err := s.auctions.AwaitingRefund(ctx, now)
	if err != nil {
		logger.Error("scan for auctions awaiting refund failed", map[string]any{"error": err.Error()})
		return
	}
	for _, a := range awaiting {
		if err := s.stock.RestoreForAuction(ctx, a.ID); err != nil {
			logger.Error("stock restitution failed, will retry next tick", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}
		changed, err := s.auctions.TransitionStatus(ctx, a.ID, model.StatusRefund, model.StatusClosed)
		if err != nil {
			logger.Error("refund transition failed", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}
		if changed {
			logger.Info("auction refunded", map[string]any{"auction_id": a.ID})
		}
	}
}
