// Package repository provides data access to auctions, the bid ledger and
// product stock. Sentinel errors defined here let higher layers map
// failures to responses without inspecting driver-specific errors. For
// example, ErrNotFound becomes a 404 (or an AuctionNotFound rejection in
// the engine), while ErrConflict signals that a conditional write observed
// state that no longer matches the caller's expectation.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write cannot proceed because the
// record's observed state differs from the expected one, such as two
// sellers reusing the same auction id or a duplicate ledger sequence.
var ErrConflict = errors.New("conflict")
