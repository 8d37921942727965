// Package testing provides a self-contained environment for exercising the
// auction core: a manual clock, an in-memory asset ledger, and a wired
// registry and settlement coordinator with event capture.
package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// PaymentAsset is the asset buyers pay with in every test environment.
const PaymentAsset = ledger.AssetID("native")

// Env wires a complete in-memory auction stack for a test.
type Env struct {
	T           *testing.T
	Clock       *ManualClock
	Ledger      *ledger.InMemory
	Registry    *auction.Registry
	Coordinator *auction.Coordinator
	Custody     Account

	mu        sync.Mutex
	created   []auction.CreatedEvent
	cancelled []auction.CancelledEvent
	finalized []auction.FinalizedEvent
}

// NewEnv builds an Env without a durable store.
func NewEnv(t *testing.T) *Env {
	return NewEnvWithStore(t, nil)
}

// NewEnvWithStore builds an Env whose registry persists through store.
func NewEnvWithStore(t *testing.T, store auction.Store) *Env {
	t.Helper()
	env := &Env{
		T:       t,
		Clock:   NewManualClock(time.Unix(1_700_000_000, 0)),
		Ledger:  ledger.NewInMemory(),
		Custody: NewAccount("custody"),
	}
	hooks := &auction.Hooks{
		OnCreated: func(ev auction.CreatedEvent) {
			env.mu.Lock()
			env.created = append(env.created, ev)
			env.mu.Unlock()
		},
		OnCancelled: func(ev auction.CancelledEvent) {
			env.mu.Lock()
			env.cancelled = append(env.cancelled, ev)
			env.mu.Unlock()
		},
		OnFinalized: func(ev auction.FinalizedEvent) {
			env.mu.Lock()
			env.finalized = append(env.finalized, ev)
			env.mu.Unlock()
		},
	}
	reg, err := auction.NewRegistry(auction.Config{
		CustodyAccount: env.Custody.ID,
		PaymentAsset:   PaymentAsset,
		Clock:          env.Clock,
		Store:          store,
		Events:         hooks,
	}, env.Ledger)
	require.NoError(t, err)
	env.Registry = reg
	env.Coordinator = auction.NewCoordinator(reg)
	return env
}

// Fund mints amount of asset to account.
func (e *Env) Fund(account Account, asset ledger.AssetID, amount uint64) {
	e.Ledger.Mint(asset, account.ID, amount)
}

// Escrow mints amount of asset to account and moves it into custody,
// modelling the deposit a seller makes before listing.
func (e *Env) Escrow(account Account, asset ledger.AssetID, amount uint64) {
	e.T.Helper()
	e.Ledger.Mint(asset, account.ID, amount)
	require.NoError(e.T, e.Ledger.Transfer(asset, account.ID, e.Custody.ID, amount))
}

// Create lists a lot for seller.
func (e *Env) Create(seller Account, asset ledger.AssetID, amount, startPrice, endPrice, durationSecs uint64) (auction.ID, error) {
	return e.Registry.Create(seller.ID, asset, amount, startPrice, endPrice, durationSecs)
}

// MustCreate lists a lot and fails the test on error.
func (e *Env) MustCreate(seller Account, asset ledger.AssetID, amount, startPrice, endPrice, durationSecs uint64) auction.ID {
	e.T.Helper()
	id, err := e.Create(seller, asset, amount, startPrice, endPrice, durationSecs)
	require.NoError(e.T, err)
	return id
}

// Settle attempts to buy listing id.
func (e *Env) Settle(id auction.ID, buyer Account, tendered uint64) error {
	return e.Coordinator.Settle(id, buyer.ID, tendered)
}

// Cancel withdraws listing id as caller.
func (e *Env) Cancel(id auction.ID, caller Account) error {
	return e.Registry.Cancel(id, caller.ID)
}

// Price quotes listing id at the current manual time.
func (e *Env) Price(id auction.ID) uint64 {
	e.T.Helper()
	price, err := e.Registry.CurrentPrice(id)
	require.NoError(e.T, err)
	return price
}

// Balance reads account's balance in asset.
func (e *Env) Balance(account Account, asset ledger.AssetID) uint64 {
	e.T.Helper()
	balance, err := e.Ledger.BalanceOf(account.ID, asset)
	require.NoError(e.T, err)
	return balance
}

// Advance moves the manual clock forward.
func (e *Env) Advance(d time.Duration) {
	e.Clock.Advance(d)
}

// CreatedEvents returns the captured creation events.
func (e *Env) CreatedEvents() []auction.CreatedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]auction.CreatedEvent(nil), e.created...)
}

// CancelledEvents returns the captured cancellation events.
func (e *Env) CancelledEvents() []auction.CancelledEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]auction.CancelledEvent(nil), e.cancelled...)
}

// FinalizedEvents returns the captured settlement events.
func (e *Env) FinalizedEvents() []auction.FinalizedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]auction.FinalizedEvent(nil), e.finalized...)
}
