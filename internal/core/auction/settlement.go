package auction

import (
	"fmt"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// Coordinator executes the atomic swap that finalizes a listing: the lot
// leaves custody for the buyer and the payment reaches the seller, or
// neither happens.
type Coordinator struct {
	reg *Registry
}

// NewCoordinator returns a Coordinator over reg.
func NewCoordinator(reg *Registry) *Coordinator {
	return &Coordinator{reg: reg}
}

// Settle buys listing id at its current price. tendered must meet the
// price; any excess is simply not drawn, since the buyer is only ever
// charged the quoted price.
//
// The terminal claim is taken under the registry lock before any balance
// moves, so exactly one of two racing buyers wins and the loser observes
// ErrInactiveAuction. If the ledger rejects the swap the claim is rolled
// back and the listing stays live.
func (c *Coordinator) Settle(id ID, buyer ledger.AccountID, tendered uint64) error {
	r := c.reg

	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	now := r.cfg.Clock.Now()
	if !rec.Active {
		r.mu.Unlock()
		return ErrInactiveAuction
	}
	if rec.Expired(now) {
		r.mu.Unlock()
		return ErrAuctionExpired
	}
	price := Price(rec, now)
	if tendered < price {
		r.mu.Unlock()
		return ErrInsufficientPayment
	}
	if err := r.claimLocked(rec); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	err := r.assets.Atomic(func(v ledger.View) error {
		if err := v.Transfer(rec.Asset, r.cfg.CustodyAccount, buyer, rec.Amount); err != nil {
			return fmt.Errorf("release lot: %w", err)
		}
		if err := v.Transfer(r.cfg.PaymentAsset, buyer, rec.Seller, price); err != nil {
			return fmt.Errorf("forward payment: %w", err)
		}
		return nil
	})
	if err != nil {
		r.reopen(id)
		return fmt.Errorf("settle auction %d: %w", id, err)
	}

	r.release(id)
	r.cfg.Events.publishFinalized(FinalizedEvent{ID: id, Buyer: buyer, Price: price})
	return nil
}
