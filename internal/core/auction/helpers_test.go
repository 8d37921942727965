package auction

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

const (
	testCustody = ledger.AccountID("custody")
	testPayment = ledger.AssetID("native")
	testSeller  = ledger.AccountID("alice")
	testBuyer   = ledger.AccountID("bob")
	testAsset   = ledger.AssetID("lot")
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(t *testing.T, hooks *Hooks) (*Registry, *ledger.InMemory, *testClock) {
	t.Helper()
	clock := newTestClock()
	assets := ledger.NewInMemory()
	reg, err := NewRegistry(Config{
		CustodyAccount: testCustody,
		PaymentAsset:   testPayment,
		Clock:          clock,
		Events:         hooks,
	}, assets)
	require.NoError(t, err)
	return reg, assets, clock
}

// escrow funds the custody account directly, as if the seller had already
// deposited the lot.
func escrow(assets *ledger.InMemory, asset ledger.AssetID, amount uint64) {
	assets.Mint(asset, testCustody, amount)
}
