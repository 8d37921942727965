package auction

import (
	"time"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// CreatedEvent is published when a listing opens.
type CreatedEvent struct {
	ID         ID
	Seller     ledger.AccountID
	Asset      ledger.AssetID
	Amount     uint64
	StartPrice uint64
	EndPrice   uint64
	Duration   time.Duration
}

// CancelledEvent is published when a seller withdraws a listing.
type CancelledEvent struct {
	ID ID
}

// FinalizedEvent is published when a listing settles.
type FinalizedEvent struct {
	ID    ID
	Buyer ledger.AccountID
	Price uint64
}

// Hooks carries lifecycle callbacks. Any field may be nil. Callbacks run
// synchronously on the goroutine that completed the transition, after the
// transition has been committed, so an observer sees final state.
type Hooks struct {
	OnCreated   func(CreatedEvent)
	OnCancelled func(CancelledEvent)
	OnFinalized func(FinalizedEvent)
}

func (h *Hooks) publishCreated(ev CreatedEvent) {
	if h != nil && h.OnCreated != nil {
		h.OnCreated(ev)
	}
}

func (h *Hooks) publishCancelled(ev CancelledEvent) {
	if h != nil && h.OnCancelled != nil {
		h.OnCancelled(ev)
	}
}

func (h *Hooks) publishFinalized(ev FinalizedEvent) {
	if h != nil && h.OnFinalized != nil {
		h.OnFinalized(ev)
	}
}
