package auctionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/kv"
)

func sampleRecord(id auction.ID) auction.Record {
	return auction.Record{
		ID:         id,
		Seller:     "alice",
		Asset:      "lot",
		Amount:     100,
		StartPrice: 50,
		EndPrice:   5,
		StartTime:  time.Unix(1_700_000_000, 0).UTC(),
		Duration:   time.Minute,
		Active:     true,
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	store, err := New(kv.OpenMemory(), 16)
	require.NoError(t, err)
	defer store.Close()

	want := sampleRecord(3)
	require.NoError(t, store.Put(want))

	got, found, err := store.Get(3)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want.Seller, got.Seller)
	assert.Equal(t, want.Amount, got.Amount)
	assert.Equal(t, want.Duration, got.Duration)
	assert.True(t, want.StartTime.Equal(got.StartTime))
	assert.True(t, got.Active)
}

func TestGetMissing(t *testing.T) {
	store, err := New(kv.OpenMemory(), 16)
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get(9)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestForEachOrder(t *testing.T) {
	store, err := New(kv.OpenMemory(), 16)
	require.NoError(t, err)
	defer store.Close()

	for _, id := range []auction.ID{2, 0, 1} {
		require.NoError(t, store.Put(sampleRecord(id)))
	}

	var seen []auction.ID
	require.NoError(t, store.ForEach(func(rec auction.Record) error {
		seen = append(seen, rec.ID)
		return nil
	}))
	assert.Equal(t, []auction.ID{0, 1, 2}, seen)
}

func TestRegistryReplay(t *testing.T) {
	store, err := New(kv.OpenMemory(), 16)
	require.NoError(t, err)
	defer store.Close()

	custody := ledger.AccountID("custody")
	assets := ledger.NewInMemory()
	assets.Mint("lot", custody, 300)

	cfg := auction.Config{CustodyAccount: custody, PaymentAsset: "native", Store: store}
	reg, err := auction.NewRegistry(cfg, assets)
	require.NoError(t, err)

	first, err := reg.Create("alice", "lot", 100, 50, 5, 60)
	require.NoError(t, err)
	second, err := reg.Create("alice", "lot", 100, 50, 5, 60)
	require.NoError(t, err)
	require.NoError(t, reg.Cancel(first, "alice"))

	// A rebuilt registry sees both records and keeps the id sequence.
	reg2, err := auction.NewRegistry(cfg, assets)
	require.NoError(t, err)

	rec, err := reg2.Get(first)
	require.NoError(t, err)
	assert.False(t, rec.Active)
	assert.True(t, rec.Finalized)

	rec, err = reg2.Get(second)
	require.NoError(t, err)
	assert.True(t, rec.Active)

	third, err := reg2.Create("alice", "lot", 100, 50, 5, 60)
	require.NoError(t, err)
	assert.Equal(t, second+1, third)
}
