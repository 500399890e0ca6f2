package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/online-auction/internal/model"
)

var admin = &model.UserIdentity{ID: "admin-1", Email: "a@example.com", Role: model.RoleAdmin}

func TestConfirmAuction(t *testing.T) {
	f := newFixture(t)
	a := f.seedOpen(t, "a-1")
	// Fresh listings await confirmation.
	_, err := f.store.TransitionStatus(context.Background(), a.ID, model.StatusPending, model.StatusOpen)
	require.NoError(t, err)

	rec := f.call(t, http.MethodPost, "/v1/admin/auctions/a-1/confirm", "", admin, a.ID, f.admin.Confirm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fresh, err := f.store.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, fresh.Status)

	// A second confirm finds the auction no longer pending.
	rec = f.call(t, http.MethodPost, "/v1/admin/auctions/a-1/confirm", "", admin, a.ID, f.admin.Confirm)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.call(t, http.MethodPost, "/v1/admin/auctions/missing/confirm", "", admin, "missing", f.admin.Confirm)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExtendAuction(t *testing.T) {
	f := newFixture(t)
	a := f.seedOpen(t, "a-1")

	rec := f.call(t, http.MethodPost, "/v1/admin/auctions/a-1/extend", `{"minutes":30}`, admin, a.ID, f.admin.Extend)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	fresh, err := f.store.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExtended, fresh.Status)
	assert.True(t, fresh.EndTime.Equal(a.EndTime.Add(30*time.Minute)))

	// Bidding continues against an extended auction.
	bidRec := f.call(t, http.MethodPost, "/v1/auctions/a-1/bids", `{"amount_cents":10500}`, bidder, a.ID, f.auction.PlaceBid)
	assert.Equal(t, http.StatusCreated, bidRec.Code)
}

func TestExtendAuctionRejections(t *testing.T) {
	f := newFixture(t)
	a := f.seedOpen(t, "a-1")
	_, err := f.store.TransitionStatus(context.Background(), a.ID, model.StatusClosed, model.StatusOpen)
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"non-positive minutes", a.ID, `{"minutes":0}`, http.StatusBadRequest},
		{"not live", a.ID, `{"minutes":30}`, http.StatusConflict},
		{"unknown auction", "missing", `{"minutes":30}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.call(t, http.MethodPost, "/v1/admin/auctions/"+tt.id+"/extend", tt.body, admin, tt.id, f.admin.Extend)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCloseAuction(t *testing.T) {
	f := newFixture(t)
	a := f.seedOpen(t, "a-1")

	rec := f.call(t, http.MethodPost, "/v1/admin/auctions/a-1/close", "", admin, a.ID, f.admin.Close)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fresh, err := f.store.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, fresh.Status)

	// A repeat close is a no-op, not a failure.
	rec = f.call(t, http.MethodPost, "/v1/admin/auctions/a-1/close", "", admin, a.ID, f.admin.Close)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.call(t, http.MethodPost, "/v1/admin/auctions/missing/close", "", admin, "missing", f.admin.Close)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
