package repository // repository for the append-only bid ledger

import (
    "context"
    "database/sql"

    "github.com/lyng148/online-auction/internal/model"
)

// MySQLBidLedger implements BidLedger over the bids table. The table has
// an AUTO_INCREMENT seq column; rows are only ever inserted, never
// updated, so the seq ordering is a stable record of admission order.
type MySQLBidLedger struct {
    db *sql.DB
}

// NewMySQLBidLedger constructs a MySQLBidLedger given a DB handle.
func NewMySQLBidLedger(db *sql.DB) *MySQLBidLedger { return &MySQLBidLedger{db: db} }

// Append inserts one admitted bid and reads back the assigned sequence.
func (r *MySQLBidLedger) Append(ctx context.Context, b *model.Bid) error {
    const q = `INSERT INTO bids (id, auction_id, user_id, amount_cents, kind, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.ID, b.AuctionID, b.UserID, b.AmountCents, string(b.Kind), b.CreatedAt.UTC())
    if err != nil {
        return err
    }
    seq, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.Seq = seq
    return nil
}

// AppendHiddenBatch inserts the batch inside one transaction. The count of
// the bidder's existing hidden rows is taken with a locking read, so two
// batches from the same bidder racing each other serialize here and the
// second observes the first's rows.
func (r *MySQLBidLedger) AppendHiddenBatch(ctx context.Context, bids []*model.Bid, limit int) (bool, error) {
    if len(bids) == 0 {
        return false, nil
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return false, err
    }
    defer func() { _ = tx.Rollback() }()

    const countQ = `SELECT COUNT(*) FROM bids
        WHERE auction_id = ? AND user_id = ? AND kind = 'HIDDEN' FOR UPDATE`
    var existing int
    if err := tx.QueryRowContext(ctx, countQ, bids[0].AuctionID, bids[0].UserID).Scan(&existing); err != nil {
        return false, err
    }
    if existing+len(bids) > limit {
        return false, nil
    }

    const insertQ = `INSERT INTO bids (id, auction_id, user_id, amount_cents, kind, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`
    for _, b := range bids {
        res, err := tx.ExecContext(ctx, insertQ,
            b.ID, b.AuctionID, b.UserID, b.AmountCents, string(b.Kind), b.CreatedAt.UTC())
        if err != nil {
            return false, err
        }
        seq, err := res.LastInsertId()
        if err != nil {
            return false, err
        }
        b.Seq = seq
    }
    if err := tx.Commit(); err != nil {
        return false, err
    }
    return true, nil
}

// ListByAuction returns the full ledger for an auction in admission order.
func (r *MySQLBidLedger) ListByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
    const q = `SELECT id, auction_id, user_id, amount_cents, kind, seq, created_at
        FROM bids WHERE auction_id = ? ORDER BY seq ASC`
    rows, err := r.db.QueryContext(ctx, q, auctionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Bid
    for rows.Next() {
        var b model.Bid
        var kind string
        if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.AmountCents, &kind, &b.Seq, &b.CreatedAt); err != nil {
            return nil, err
        }
        b.Kind = model.BidKind(kind)
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CountHiddenByBidder counts a bidder's sealed candidates on one auction.
func (r *MySQLBidLedger) CountHiddenByBidder(ctx context.Context, auctionID, userID string) (int, error) {
    const q = `SELECT COUNT(*) FROM bids WHERE auction_id = ? AND user_id = ? AND kind = 'HIDDEN'`
    var n int
    if err := r.db.QueryRowContext(ctx, q, auctionID, userID).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}
