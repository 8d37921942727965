package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite", filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func terminalRecord(id auction.ID) auction.Record {
	return auction.Record{
		ID:         id,
		Seller:     "alice",
		Asset:      "lot",
		Amount:     100,
		StartPrice: 50,
		EndPrice:   5,
		StartTime:  time.Unix(1_700_000_000, 0).UTC(),
		Duration:   time.Minute,
		Finalized:  true,
	}
}

func TestRecordSettled(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordSettled(terminalRecord(1), "bob", 28))

	entry, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, auction.ID(1), entry.ID)
	assert.Equal(t, OutcomeSettled, entry.Outcome)
	assert.EqualValues(t, "bob", entry.Buyer)
	assert.Equal(t, uint64(28), entry.Price)
	assert.Equal(t, uint64(100), entry.Amount)
}

func TestRecordCancelled(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordCancelled(terminalRecord(2)))

	entry, err := store.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, entry.Outcome)
	assert.Empty(t, entry.Buyer)
	assert.Zero(t, entry.Price)
}

func TestGetByIDMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(404)
	assert.ErrorIs(t, err, ErrNotArchived)
}

func TestRebind(t *testing.T) {
	s := &Store{driver: "sqlite"}
	assert.Equal(t, "SELECT ? ?", s.rebind("SELECT $1 $2"))

	s = &Store{driver: "postgres"}
	assert.Equal(t, "SELECT $1 $2", s.rebind("SELECT $1 $2"))
}
