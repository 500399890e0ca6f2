package repository // repository for product stock adjustments

import (
    "context"
    "database/sql"

    "github.com/lyng148/online-auction/internal/model"
)

// MySQLStockStore implements StockStore over the products table. Reserve
// and restore are expressed as arithmetic on the row itself rather than
// absolute writes, so a restore against an already-restored line adds
// zero and repeated refund scans cannot double-apply.
type MySQLStockStore struct {
    db *sql.DB
}

// NewMySQLStockStore constructs a MySQLStockStore given a DB handle.
func NewMySQLStockStore(db *sql.DB) *MySQLStockStore { return &MySQLStockStore{db: db} }

// CreateProduct attaches a stock line to an auction.
func (r *MySQLStockStore) CreateProduct(ctx context.Context, p *model.Product) error {
    const q = `INSERT INTO products (id, auction_id, quantity, reserved_quantity) VALUES (?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, p.ID, p.AuctionID, p.Quantity, p.ReservedQuantity)
    return err
}

// ReserveForAuction moves available quantity into reserved_quantity for
// every product line on the auction.
func (r *MySQLStockStore) ReserveForAuction(ctx context.Context, auctionID string) error {
    const q = `UPDATE products
        SET reserved_quantity = reserved_quantity + quantity, quantity = 0
        WHERE auction_id = ? AND quantity > 0`
    _, err := r.db.ExecContext(ctx, q, auctionID)
    return err
}

// RestoreForAuction returns reserved quantity to stock for every product
// line on the auction. Lines with nothing reserved are untouched.
func (r *MySQLStockStore) RestoreForAuction(ctx context.Context, auctionID string) error {
    const q = `UPDATE products
        SET quantity = quantity + reserved_quantity, reserved_quantity = 0
        WHERE auction_id = ? AND reserved_quantity > 0`
    _, err := r.db.ExecContext(ctx, q, auctionID)
    return err
}
