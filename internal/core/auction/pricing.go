package auction

import (
	"math/bits"
	"time"
)

// Price quotes rec at the given instant.
//
// Before StartTime the quote is StartPrice; from EndTime on it is EndPrice.
// In between it decays linearly:
//
//	price = startPrice - (startPrice-endPrice) * elapsed / duration
//
// computed in whole seconds with multiplication before division and floor
// rounding. The product is taken at 128 bits so the full uint64 price range
// is safe from overflow.
func Price(rec *Record, now time.Time) uint64 {
	if !now.After(rec.StartTime) {
		return rec.StartPrice
	}
	if rec.Expired(now) {
		return rec.EndPrice
	}
	elapsed := uint64(now.Sub(rec.StartTime) / time.Second)
	duration := uint64(rec.Duration / time.Second)
	diff := rec.StartPrice - rec.EndPrice

	// elapsed < duration here, so the quotient is below diff and the
	// 128-by-64 division cannot overflow.
	hi, lo := bits.Mul64(diff, elapsed)
	drop, _ := bits.Div64(hi, lo, duration)
	return rec.StartPrice - drop
}
