package auction

import (
	"time"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

// ID is the sequential identifier of a listing. The first listing gets 0.
type ID uint64

// Record is the durable state of a single listing. A record is created
// active and reaches exactly one terminal outcome: settled or cancelled.
// Both clear Active and set Finalized; terminal records are kept for audit.
type Record struct {
	ID         ID
	Seller     ledger.AccountID
	Asset      ledger.AssetID
	Amount     uint64
	StartPrice uint64
	EndPrice   uint64
	StartTime  time.Time
	Duration   time.Duration
	Active     bool
	Finalized  bool
}

// EndTime returns the instant the decay window closes.
func (r *Record) EndTime() time.Time {
	return r.StartTime.Add(r.Duration)
}

// Expired reports whether the listing has ended at now. Expiry is a hard
// cutoff: an expired listing can be neither settled nor cancelled.
func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.EndTime())
}
