package auction

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decayRecord(startPrice, endPrice, durationSecs uint64) *Record {
	return &Record{
		StartPrice: startPrice,
		EndPrice:   endPrice,
		StartTime:  time.Unix(1_700_000_000, 0),
		Duration:   time.Duration(durationSecs) * time.Second,
	}
}

func TestPriceBoundaries(t *testing.T) {
	rec := decayRecord(1_000_000_000_000_000_000, 100_000_000_000_000_000, 3600)

	t.Run("at start", func(t *testing.T) {
		assert.Equal(t, rec.StartPrice, Price(rec, rec.StartTime))
	})

	t.Run("before start", func(t *testing.T) {
		assert.Equal(t, rec.StartPrice, Price(rec, rec.StartTime.Add(-time.Minute)))
	})

	t.Run("at end", func(t *testing.T) {
		assert.Equal(t, rec.EndPrice, Price(rec, rec.EndTime()))
	})

	t.Run("after end", func(t *testing.T) {
		assert.Equal(t, rec.EndPrice, Price(rec, rec.EndTime().Add(time.Hour)))
	})
}

func TestPriceMidDecay(t *testing.T) {
	// 1e18 down to 0.1e18 over an hour: halfway the quote is 0.55e18.
	rec := decayRecord(1_000_000_000_000_000_000, 100_000_000_000_000_000, 3600)
	got := Price(rec, rec.StartTime.Add(1800*time.Second))
	require.Equal(t, uint64(550_000_000_000_000_000), got)
}

func TestPriceFloorsTowardSeller(t *testing.T) {
	// 10 down to 0 over 3s: the drop after 1s is floor(10/3) = 3.
	rec := decayRecord(10, 0, 3)
	assert.Equal(t, uint64(7), Price(rec, rec.StartTime.Add(time.Second)))
	assert.Equal(t, uint64(4), Price(rec, rec.StartTime.Add(2*time.Second)))
}

func TestPriceMonotonicDecay(t *testing.T) {
	rec := decayRecord(987_654_321_987_654_321, 12_345, 7200)
	prev := Price(rec, rec.StartTime)
	for s := uint64(1); s <= 7200; s += 37 {
		got := Price(rec, rec.StartTime.Add(time.Duration(s)*time.Second))
		require.LessOrEqual(t, got, prev, "price rose at t=%d", s)
		prev = got
	}
	require.GreaterOrEqual(t, prev, rec.EndPrice)
}

func TestPriceFullRangeNoOverflow(t *testing.T) {
	// The whole uint64 range decays without overflowing the intermediate
	// product.
	rec := decayRecord(math.MaxUint64, 0, 1_000_000)
	mid := Price(rec, rec.StartTime.Add(500_000*time.Second))
	assert.InEpsilon(t, float64(math.MaxUint64)/2, float64(mid), 1e-9)
	assert.Equal(t, uint64(0), Price(rec, rec.EndTime()))
}
