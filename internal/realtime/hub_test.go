package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/online-auction/internal/model"
	"github.com/lyng148/online-auction/internal/repository"
)

func seedAuction(t *testing.T, store *repository.MemoryStore, id string, status model.AuctionStatus) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &model.Auction{
		ID:                 id,
		SellerID:           "seller-1",
		Status:             status,
		StartingPriceCents: 10000,
		CurrentPriceCents:  10000,
		MinIncrementCents:  500,
		StartTime:          time.Now().UTC().Add(-time.Hour),
		EndTime:            time.Now().UTC().Add(time.Hour),
	}))
}

// testClient builds a client that is never attached to a real connection;
// hub interactions only touch its send channel.
func testClient(h *Hub, userID string) *Client {
	return NewClient(h, nil, nil, model.UserIdentity{ID: userID, Email: userID + "@example.com"})
}

// drain empties a client's send buffer.
func drain(c *Client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func eventTypes(evs []Event) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}

func TestJoinUnknownAuction(t *testing.T) {
	store := repository.NewMemoryStore()
	h := NewHub(store, store)
	c := testClient(h, "u-1")

	_, err := h.Join(context.Background(), c, "missing")
	assert.ErrorIs(t, err, ErrAuctionNotFound)
	assert.Equal(t, 0, h.RoomCount("missing"))
}

func TestJoinBroadcastsRoster(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	first := testClient(h, "u-1")
	roster, err := h.Join(ctx, first, "a-1")
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	second := testClient(h, "u-2")
	roster, err = h.Join(ctx, second, "a-1")
	require.NoError(t, err)
	assert.Len(t, roster, 2)
	assert.Equal(t, 2, h.RoomCount("a-1"))

	// The first member heard both joins.
	assert.Contains(t, eventTypes(drain(first)), EventUserJoined)
}

func TestJoinSwitchesRooms(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	seedAuction(t, store, "a-2", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	c := testClient(h, "u-1")
	_, err := h.Join(ctx, c, "a-1")
	require.NoError(t, err)
	_, err = h.Join(ctx, c, "a-2")
	require.NoError(t, err)

	// One room per connection: joining the second room implicitly left the
	// first.
	assert.Equal(t, 0, h.RoomCount("a-1"))
	assert.Equal(t, 1, h.RoomCount("a-2"))
}

func TestJoinSwitchNotifiesAbandonedRoom(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	seedAuction(t, store, "a-2", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	stayer := testClient(h, "u-1")
	mover := testClient(h, "u-2")
	_, err := h.Join(ctx, stayer, "a-1")
	require.NoError(t, err)
	_, err = h.Join(ctx, mover, "a-1")
	require.NoError(t, err)
	drain(stayer)

	_, err = h.Join(ctx, mover, "a-2")
	require.NoError(t, err)

	// The room left behind hears the departure with its updated roster.
	events := drain(stayer)
	require.Len(t, events, 1)
	assert.Equal(t, EventUserLeft, events[0].Type)
	assert.Equal(t, "a-1", events[0].AuctionID)
	payload, ok := events[0].Payload.(RosterPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.Count)
	require.Len(t, payload.Participants, 1)
	assert.Equal(t, "u-1", payload.Participants[0].UserID)
}

func TestLeaveAndDisconnect(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	c := testClient(h, "u-1")
	// Leaving a room the client never joined is a silent no-op.
	h.Leave(c, "a-1")

	_, err := h.Join(ctx, c, "a-1")
	require.NoError(t, err)
	h.Disconnect(c)
	assert.Equal(t, 0, h.RoomCount("a-1"))

	// Disconnect after leave is idempotent.
	h.Disconnect(c)
	assert.Equal(t, 0, h.RoomCount("a-1"))
}

func TestHistoryHidesSealedBidsUntilClose(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &model.Bid{ID: "b-1", AuctionID: "a-1", UserID: "u-1", AmountCents: 10500, Kind: model.BidOpen}))
	require.NoError(t, store.Append(ctx, &model.Bid{ID: "b-2", AuctionID: "a-1", UserID: "u-2", AmountCents: 12000, Kind: model.BidHidden}))

	bids, err := h.History(ctx, "a-1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, model.BidOpen, bids[0].Kind)

	// Once the auction closes the sealed candidates are revealed.
	_, err = store.TransitionStatus(ctx, "a-1", model.StatusClosed, model.StatusOpen)
	require.NoError(t, err)
	bids, err = h.History(ctx, "a-1")
	require.NoError(t, err)
	assert.Len(t, bids, 2)
}

func TestBidAcceptedReachesRoomMembers(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	seedAuction(t, store, "a-2", model.StatusOpen)
	h := NewHub(store, store)
	ctx := context.Background()

	member := testClient(h, "u-1")
	outsider := testClient(h, "u-2")
	_, err := h.Join(ctx, member, "a-1")
	require.NoError(t, err)
	_, err = h.Join(ctx, outsider, "a-2")
	require.NoError(t, err)
	drain(member)
	drain(outsider)

	bid := model.Bid{ID: "b-1", AuctionID: "a-1", UserID: "u-9", AmountCents: 10500, Kind: model.BidOpen, Seq: 1}
	h.BidAccepted("a-1", bid, 10500, 1)

	events := drain(member)
	require.Len(t, events, 1)
	assert.Equal(t, EventBidAccepted, events[0].Type)
	payload, ok := events[0].Payload.(BidAcceptedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(10500), payload.CurrentPriceCents)

	// Other rooms hear nothing.
	assert.Empty(t, drain(outsider))
}

func TestAuctionEndedBroadcast(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	h := NewHub(store, store)

	member := testClient(h, "u-1")
	_, err := h.Join(context.Background(), member, "a-1")
	require.NoError(t, err)
	drain(member)

	winner := &model.Bid{ID: "b-1", UserID: "u-9", AmountCents: 12000}
	h.AuctionEnded("a-1", winner, 12000)

	events := drain(member)
	require.Len(t, events, 1)
	payload, ok := events[0].Payload.(AuctionEndedPayload)
	require.True(t, ok)
	assert.True(t, payload.HasWinner)
	assert.Equal(t, "u-9", payload.WinnerID)
	assert.Equal(t, int64(12000), payload.FinalPriceCents)
}

func TestCriticalBroadcastEvictsSlowSubscriber(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAuction(t, store, "a-1", model.StatusOpen)
	h := NewHub(store, store)

	slow := testClient(h, "u-1")
	_, err := h.Join(context.Background(), slow, "a-1")
	require.NoError(t, err)

	// Saturate the send buffer so the next delivery cannot be queued.
	for slow.trySend(Event{Type: EventConnected}) {
	}

	bid := model.Bid{ID: "b-1", AuctionID: "a-1", UserID: "u-9", AmountCents: 10500, Kind: model.BidOpen}
	h.BidAccepted("a-1", bid, 10500, 1)

	// A price update may not silently skip a member; the stuck connection
	// is evicted instead.
	assert.Equal(t, 0, h.RoomCount("a-1"))
}
