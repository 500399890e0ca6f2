package repository // repository for auction persistence over MySQL

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
    "time"

    "github.com/lyng148/online-auction/internal/model"
)

// auctionColumns is the shared column list for scanning auction rows.
const auctionColumns = `id, seller_id, title, status, starting_price_cents, current_price_cents,
    min_increment_cents, start_time, end_time, last_bid_time, created_at, updated_at`

// MySQLAuctionStore implements AuctionStore on top of the auctions table.
// Conditional writes are expressed as UPDATE ... WHERE predicates on the
// expected predecessor state; RowsAffected tells the caller whether it won
// the race. No method performs a blind overwrite of status or price.
type MySQLAuctionStore struct {
    db *sql.DB
}

// NewMySQLAuctionStore constructs a MySQLAuctionStore given a DB handle.
func NewMySQLAuctionStore(db *sql.DB) *MySQLAuctionStore { return &MySQLAuctionStore{db: db} }

// Create inserts a new auction row. The status is taken from the model so
// tests can seed auctions in any lifecycle state; production callers
// always insert PENDING.
func (r *MySQLAuctionStore) Create(ctx context.Context, a *model.Auction) error {
    const q = `INSERT INTO auctions
        (id, seller_id, title, status, starting_price_cents, current_price_cents, min_increment_cents, start_time, end_time)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q,
        a.ID, a.SellerID, a.Title, string(a.Status),
        a.StartingPriceCents, a.CurrentPriceCents, a.MinIncrementCents,
        a.StartTime.UTC(), a.EndTime.UTC(),
    )
    if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
        return fmt.Errorf("create auction %s: %w", a.ID, ErrConflict)
    }
    return err
}

// GetByID returns a single auction or ErrNotFound.
func (r *MySQLAuctionStore) GetByID(ctx context.Context, id string) (*model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?`
    row := r.db.QueryRowContext(ctx, q, id)
    a, err := scanAuction(row)
    if err == sql.ErrNoRows {
        return nil, fmt.Errorf("auction %s: %w", id, ErrNotFound)
    }
    if err != nil {
        return nil, err
    }
    return a, nil
}

// List returns all auctions ordered by end time so that soonest-closing
// auctions come first.
func (r *MySQLAuctionStore) List(ctx context.Context) ([]model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions ORDER BY end_time ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectAuctions(rows)
}

// TransitionStatus performs the conditional status write that gates every
// lifecycle transition. Overlapping scheduler ticks both issue the same
// UPDATE but only one observes RowsAffected == 1.
func (r *MySQLAuctionStore) TransitionStatus(ctx context.Context, id string, to model.AuctionStatus, from ...model.AuctionStatus) (bool, error) {
    if len(from) == 0 {
        return false, fmt.Errorf("transition to %s: no expected predecessor states", to)
    }
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
    q := `UPDATE auctions SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status IN (` + placeholders + `)`
    args := make([]interface{}, 0, len(from)+2)
    args = append(args, string(to), id)
    for _, f := range from {
        args = append(args, string(f))
    }
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    if n == 0 {
        // Distinguish "lost the race" from "no such auction".
        var exists int
        if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM auctions WHERE id = ?`, id).Scan(&exists); err == sql.ErrNoRows {
            return false, fmt.Errorf("auction %s: %w", id, ErrNotFound)
        } else if err != nil {
            return false, err
        }
        return false, nil
    }
    return true, nil
}

// ApplyOpenBid is the admission CAS: the price only advances when the
// auction is still biddable and nobody has raised it since the caller
// read expectedPriceCents.
func (r *MySQLAuctionStore) ApplyOpenBid(ctx context.Context, id string, expectedPriceCents, newPriceCents int64, at time.Time) (bool, error) {
    const q = `UPDATE auctions
        SET current_price_cents = ?, last_bid_time = ?, updated_at = UTC_TIMESTAMP()
        WHERE id = ? AND status IN ('OPEN', 'EXTENDED') AND current_price_cents = ?`
    res, err := r.db.ExecContext(ctx, q, newPriceCents, at.UTC(), id, expectedPriceCents)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// SetFinalPrice stamps the resolved price on a closed auction. Resolution
// runs at most once per auction (guarded by the close transition), so a
// plain status-scoped update suffices here.
func (r *MySQLAuctionStore) SetFinalPrice(ctx context.Context, id string, priceCents int64) error {
    const q = `UPDATE auctions SET current_price_cents = ?, updated_at = UTC_TIMESTAMP()
        WHERE id = ? AND status = 'CLOSED'`
    _, err := r.db.ExecContext(ctx, q, priceCents, id)
    return err
}

// ExtendEndTime pushes end_time outward and marks the auction EXTENDED.
// Only live auctions can be extended.
func (r *MySQLAuctionStore) ExtendEndTime(ctx context.Context, id string, until time.Time) (bool, error) {
    const q = `UPDATE auctions SET status = 'EXTENDED', end_time = ?, updated_at = UTC_TIMESTAMP()
        WHERE id = ? AND status IN ('OPEN', 'EXTENDED') AND end_time < ?`
    res, err := r.db.ExecContext(ctx, q, until.UTC(), id, until.UTC())
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// DueForOpen selects READY auctions whose start time has arrived.
func (r *MySQLAuctionStore) DueForOpen(ctx context.Context, now time.Time) ([]model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions WHERE status = 'READY' AND start_time <= ?`
    return r.queryAuctions(ctx, q, now.UTC())
}

// ExpiredPending selects PENDING auctions that ran out the clock without
// admin confirmation; the scheduler closes them as expiries, not sales.
func (r *MySQLAuctionStore) ExpiredPending(ctx context.Context, now time.Time) ([]model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions WHERE status = 'PENDING' AND end_time <= ?`
    return r.queryAuctions(ctx, q, now.UTC())
}

// DueForClose selects live auctions past their end time.
func (r *MySQLAuctionStore) DueForClose(ctx context.Context, now time.Time) ([]model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions WHERE status IN ('OPEN', 'EXTENDED') AND end_time <= ?`
    return r.queryAuctions(ctx, q, now.UTC())
}

// AwaitingRefund selects CLOSED auctions eligible for stock restitution.
// REFUND rows are excluded by the status predicate, which is what makes
// the refund pass idempotent across overlapping scans.
func (r *MySQLAuctionStore) AwaitingRefund(ctx context.Context, now time.Time) ([]model.Auction, error) {
    q := `SELECT ` + auctionColumns + ` FROM auctions WHERE status = 'CLOSED' AND end_time < ?`
    return r.queryAuctions(ctx, q, now.UTC())
}

func (r *MySQLAuctionStore) queryAuctions(ctx context.Context, q string, args ...interface{}) ([]model.Auction, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectAuctions(rows)
}

// rowScanner lets scanAuction work with both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanAuction(row rowScanner) (*model.Auction, error) {
    var a model.Auction
    var status string
    var lastBid sql.NullTime
    err := row.Scan(&a.ID, &a.SellerID, &a.Title, &status,
        &a.StartingPriceCents, &a.CurrentPriceCents, &a.MinIncrementCents,
        &a.StartTime, &a.EndTime, &lastBid, &a.CreatedAt, &a.UpdatedAt)
    if err != nil {
        return nil, err
    }
    a.Status = model.AuctionStatus(status)
    if lastBid.Valid {
        t := lastBid.Time
        a.LastBidTime = &t
    }
    return &a, nil
}

func collectAuctions(rows *sql.Rows) ([]model.Auction, error) {
    var out []model.Auction
    for rows.Next() {
        a, err := scanAuction(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
