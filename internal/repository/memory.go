package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lyng148/online-auction/internal/model"
)

// MemoryStore is a concurrency-safe in-memory implementation of
// AuctionStore, BidLedger and StockStore. It mirrors the conditional-write
// semantics of the MySQL stores exactly (all checks and mutations happen
// under one mutex), which makes it suitable both for tests and for running
// the server without a database in development.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]*model.Auction
	bids     map[string][]model.Bid // key: auctionID -> ledger in seq order
	products map[string][]*model.Product
	nextSeq  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]*model.Auction),
		bids:     make(map[string][]model.Bid),
		products: make(map[string][]*model.Product),
	}
}

// Create inserts a new auction.
func (s *MemoryStore) Create(ctx context.Context, a *model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[a.ID]; ok {
		return fmt.Errorf("create auction %s: %w", a.ID, ErrConflict)
	}
	cp := *a
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.UpdatedAt = cp.CreatedAt
	s.auctions[a.ID] = &cp
	return nil
}

// GetByID returns a copy of the auction or ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auctions[id]
	if !ok {
		return nil, fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

// List returns all auctions.
func (s *MemoryStore) List(ctx context.Context) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, *a)
	}
	return out, nil
}

// TransitionStatus applies the conditional status write under the lock.
func (s *MemoryStore) TransitionStatus(ctx context.Context, id string, to model.AuctionStatus, from ...model.AuctionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return false, fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}
	for _, f := range from {
		if a.Status == f {
			a.Status = to
			a.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

// ApplyOpenBid performs the admission compare-and-swap.
func (s *MemoryStore) ApplyOpenBid(ctx context.Context, id string, expectedPriceCents, newPriceCents int64, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return false, nil
	}
	if !a.Status.Biddable() || a.CurrentPriceCents != expectedPriceCents {
		return false, nil
	}
	a.CurrentPriceCents = newPriceCents
	t := at.UTC()
	a.LastBidTime = &t
	a.UpdatedAt = t
	return true, nil
}

// SetFinalPrice records the resolved price on a closed auction.
func (s *MemoryStore) SetFinalPrice(ctx context.Context, id string, priceCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}
	if a.Status == model.StatusClosed {
		a.CurrentPriceCents = priceCents
	}
	return nil
}

// ExtendEndTime pushes end_time outward on a live auction.
func (s *MemoryStore) ExtendEndTime(ctx context.Context, id string, until time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return false, nil
	}
	if !a.Status.Biddable() || !a.EndTime.Before(until) {
		return false, nil
	}
	a.Status = model.StatusExtended
	a.EndTime = until.UTC()
	a.UpdatedAt = time.Now().UTC()
	return true, nil
}

// DueForOpen returns READY auctions whose start time has arrived.
func (s *MemoryStore) DueForOpen(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return s.filter(func(a *model.Auction) bool {
		return a.Status == model.StatusReady && !a.StartTime.After(now)
	}), nil
}

// ExpiredPending returns PENDING auctions past their end time.
func (s *MemoryStore) ExpiredPending(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return s.filter(func(a *model.Auction) bool {
		return a.Status == model.StatusPending && !a.EndTime.After(now)
	}), nil
}

// DueForClose returns live auctions past their end time.
func (s *MemoryStore) DueForClose(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return s.filter(func(a *model.Auction) bool {
		return a.Status.Biddable() && !a.EndTime.After(now)
	}), nil
}

// AwaitingRefund returns CLOSED auctions eligible for stock restitution.
func (s *MemoryStore) AwaitingRefund(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return s.filter(func(a *model.Auction) bool {
		return a.Status == model.StatusClosed && a.EndTime.Before(now)
	}), nil
}

func (s *MemoryStore) filter(keep func(*model.Auction) bool) []model.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Auction
	for _, a := range s.auctions {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

// Append records an admitted bid and assigns the next ledger sequence.
func (s *MemoryStore) Append(ctx context.Context, b *model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[b.AuctionID]; !ok {
		return fmt.Errorf("append bid for auction %s: %w", b.AuctionID, ErrNotFound)
	}
	s.nextSeq++
	b.Seq = s.nextSeq
	s.bids[b.AuctionID] = append(s.bids[b.AuctionID], *b)
	return nil
}

// AppendHiddenBatch records the batch only if it fits under the bidder's
// remaining hidden budget. Count and inserts happen under one lock, same
// atomicity the MySQL ledger gets from its transaction.
func (s *MemoryStore) AppendHiddenBatch(ctx context.Context, bids []*model.Bid, limit int) (bool, error) {
	if len(bids) == 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	auctionID, userID := bids[0].AuctionID, bids[0].UserID
	if _, ok := s.auctions[auctionID]; !ok {
		return false, fmt.Errorf("append hidden bids for auction %s: %w", auctionID, ErrNotFound)
	}
	existing := 0
	for _, b := range s.bids[auctionID] {
		if b.UserID == userID && b.Kind == model.BidHidden {
			existing++
		}
	}
	if existing+len(bids) > limit {
		return false, nil
	}
	for _, b := range bids {
		s.nextSeq++
		b.Seq = s.nextSeq
		s.bids[auctionID] = append(s.bids[auctionID], *b)
	}
	return true, nil
}

// ListByAuction returns a copy of the ledger in sequence order.
func (s *MemoryStore) ListByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Bid(nil), s.bids[auctionID]...), nil
}

// CountHiddenByBidder counts a bidder's sealed candidates on one auction.
func (s *MemoryStore) CountHiddenByBidder(ctx context.Context, auctionID, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.bids[auctionID] {
		if b.UserID == userID && b.Kind == model.BidHidden {
			n++
		}
	}
	return n, nil
}

// CreateProduct attaches a stock line to an auction.
func (s *MemoryStore) CreateProduct(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.AuctionID] = append(s.products[p.AuctionID], &cp)
	return nil
}

// ReserveForAuction moves available quantity into reserved quantity.
func (s *MemoryStore) ReserveForAuction(ctx context.Context, auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products[auctionID] {
		p.ReservedQuantity += p.Quantity
		p.Quantity = 0
	}
	return nil
}

// RestoreForAuction returns reserved quantity to stock.
func (s *MemoryStore) RestoreForAuction(ctx context.Context, auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products[auctionID] {
		p.Quantity += p.ReservedQuantity
		p.ReservedQuantity = 0
	}
	return nil
}

// ProductsByAuction returns copies of the stock lines for an auction.
// Used by tests to assert restitution outcomes.
func (s *MemoryStore) ProductsByAuction(auctionID string) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products[auctionID]))
	for _, p := range s.products[auctionID] {
		out = append(out, *p)
	}
	return out
}
