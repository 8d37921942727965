package auction

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// Store is the durable record table the registry writes through to. Every
// record mutation is persisted before it is acknowledged; ForEach replays
// the table at startup.
type Store interface {
	Put(rec Record) error
	ForEach(fn func(rec Record) error) error
}

// Config wires a Registry.
type Config struct {
	// CustodyAccount holds escrowed lots and receives tendered payment
	// before it is forwarded to sellers.
	CustodyAccount ledger.AccountID

	// PaymentAsset is the asset buyers pay with.
	PaymentAsset ledger.AssetID

	// Clock defaults to SystemClock when nil.
	Clock Clock

	// Store is optional; without it the arena is memory-only.
	Store Store

	// Events carries optional lifecycle callbacks.
	Events *Hooks
}

// Registry is the arena of listings. It owns identifier assignment, record
// lookup, the escrow commitment ledger for the custody account, and the
// exactly-once terminal transition of every record.
type Registry struct {
	mu     sync.RWMutex
	cfg    Config
	assets ledger.AssetLedger

	records map[ID]*Record
	nextID  ID

	// committed tracks, per asset, the escrow still promised to open
	// listings. Create refuses listings the custody balance cannot cover
	// on top of this sum.
	committed map[ledger.AssetID]uint64
}

// NewRegistry builds a registry over the given asset ledger, replaying the
// configured store if one is present.
func NewRegistry(cfg Config, assets ledger.AssetLedger) (*Registry, error) {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	r := &Registry{
		cfg:       cfg,
		assets:    assets,
		records:   make(map[ID]*Record),
		committed: make(map[ledger.AssetID]uint64),
	}
	if cfg.Store != nil {
		if err := cfg.Store.ForEach(func(rec Record) error {
			stored := rec
			r.records[stored.ID] = &stored
			if stored.ID >= r.nextID {
				r.nextID = stored.ID + 1
			}
			if stored.Active {
				r.committed[stored.Asset] += stored.Amount
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("replay record table: %w", err)
		}
	}
	return r, nil
}

// Create opens a listing and returns its identifier. The auctioned lot must
// already sit in the custody account; Create verifies the custody balance
// covers all open commitments plus the new amount before admitting it.
func (r *Registry) Create(seller ledger.AccountID, asset ledger.AssetID, amount, startPrice, endPrice, durationSecs uint64) (ID, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if startPrice < endPrice {
		return 0, ErrInvalidPriceRange
	}
	if durationSecs == 0 {
		return 0, ErrInvalidDuration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance, err := r.assets.BalanceOf(r.cfg.CustodyAccount, asset)
	if err != nil {
		return 0, fmt.Errorf("read custody balance: %w", err)
	}
	if balance < r.committed[asset]+amount {
		return 0, ErrEscrowNotFunded
	}

	rec := Record{
		ID:         r.nextID,
		Seller:     seller,
		Asset:      asset,
		Amount:     amount,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		StartTime:  r.cfg.Clock.Now(),
		Duration:   time.Duration(durationSecs) * time.Second,
		Active:     true,
	}
	if err := r.persist(rec); err != nil {
		return 0, err
	}

	r.records[rec.ID] = &rec
	r.nextID++
	r.committed[asset] += amount

	r.cfg.Events.publishCreated(CreatedEvent{
		ID:         rec.ID,
		Seller:     rec.Seller,
		Asset:      rec.Asset,
		Amount:     rec.Amount,
		StartPrice: rec.StartPrice,
		EndPrice:   rec.EndPrice,
		Duration:   rec.Duration,
	})
	return rec.ID, nil
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id ID) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return *rec, nil
}

// CurrentPrice quotes the listing at the registry clock's now. Terminal and
// expired listings still quote; only settlement and cancellation are gated.
func (r *Registry) CurrentPrice(id ID) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return 0, ErrNotFound
	}
	return Price(rec, r.cfg.Clock.Now()), nil
}

// Cancel withdraws an active listing and refunds the escrowed lot to the
// seller. Only the seller may cancel, and only before expiry. The terminal
// claim is taken before the refund moves; a refund failure rolls the claim
// back so the listing stays live.
func (r *Registry) Cancel(id ID, caller ledger.AccountID) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	if rec.Seller != caller {
		r.mu.Unlock()
		return ErrUnauthorized
	}
	if err := r.claimLocked(rec); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	if err := r.assets.Transfer(rec.Asset, r.cfg.CustodyAccount, rec.Seller, rec.Amount); err != nil {
		r.reopen(id)
		return fmt.Errorf("refund escrow: %w", err)
	}

	r.release(id)
	r.cfg.Events.publishCancelled(CancelledEvent{ID: id})
	return nil
}

// claimLocked takes the exactly-once terminal transition for rec and
// persists it. The registry lock must be held. On persistence failure the
// in-memory flags are restored and the claim is not taken.
func (r *Registry) claimLocked(rec *Record) error {
	if !rec.Active {
		return ErrInactiveAuction
	}
	if rec.Expired(r.cfg.Clock.Now()) {
		return ErrAuctionExpired
	}
	rec.Active = false
	rec.Finalized = true
	if err := r.persist(*rec); err != nil {
		rec.Active = true
		rec.Finalized = false
		return err
	}
	return nil
}

// reopen rolls a claimed terminal transition back after a failed transfer.
func (r *Registry) reopen(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return
	}
	rec.Active = true
	rec.Finalized = false
	if err := r.persist(*rec); err != nil {
		// The in-memory arena is authoritative while running; the stale
		// durable row is corrected on the next successful persist.
		log.Printf("auction %d: persist rollback failed: %v", id, err)
	}
}

// release drops the escrow commitment of a record that reached its terminal
// state, freeing custody headroom for new listings.
func (r *Registry) release(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return
	}
	if r.committed[rec.Asset] >= rec.Amount {
		r.committed[rec.Asset] -= rec.Amount
	} else {
		r.committed[rec.Asset] = 0
	}
}

func (r *Registry) persist(rec Record) error {
	if r.cfg.Store == nil {
		return nil
	}
	if err := r.cfg.Store.Put(rec); err != nil {
		return fmt.Errorf("persist auction %d: %w", rec.ID, err)
	}
	return nil
}
