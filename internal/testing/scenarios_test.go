package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
)

const (
	lotAsset   = ledger.AssetID("lot")
	lotAmount  = uint64(100_000)
	startPrice = uint64(1_000_000_000_000_000_000)
	endPrice   = uint64(100_000_000_000_000_000)
	duration   = uint64(3600)
)

func TestAuctionCreation(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")

	env.Escrow(seller, lotAsset, 2*lotAmount)

	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)
	assert.Equal(t, auction.ID(0), id)

	second := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)
	assert.Equal(t, auction.ID(1), second)

	events := env.CreatedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, seller.ID, events[0].Seller)
	assert.Equal(t, lotAmount, events[0].Amount)
	assert.Equal(t, startPrice, events[0].StartPrice)
	assert.Equal(t, endPrice, events[0].EndPrice)
}

func TestPriceDecaysLinearly(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")
	env.Escrow(seller, lotAsset, lotAmount)
	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)

	assert.Equal(t, startPrice, env.Price(id))

	env.Advance(1800 * time.Second)
	assert.Equal(t, uint64(550_000_000_000_000_000), env.Price(id))

	env.Advance(1800 * time.Second)
	assert.Equal(t, endPrice, env.Price(id))
}

func TestSwapAtMidpoint(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")
	buyer := NewAccount("buyer")
	env.Escrow(seller, lotAsset, lotAmount)
	env.Fund(buyer, PaymentAsset, startPrice)

	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)
	env.Advance(1800 * time.Second)

	quote := env.Price(id)
	require.NoError(t, env.Settle(id, buyer, quote))

	assert.Equal(t, lotAmount, env.Balance(buyer, lotAsset))
	assert.Equal(t, quote, env.Balance(seller, PaymentAsset))
	assert.Equal(t, startPrice-quote, env.Balance(buyer, PaymentAsset))
	assert.Equal(t, uint64(0), env.Balance(env.Custody, lotAsset))

	events := env.FinalizedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, buyer.ID, events[0].Buyer)
	assert.Equal(t, quote, events[0].Price)
}

func TestSecondPurchaseRejected(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")
	first := NewAccount("first")
	second := NewAccount("second")
	env.Escrow(seller, lotAsset, lotAmount)
	env.Fund(first, PaymentAsset, startPrice)
	env.Fund(second, PaymentAsset, startPrice)

	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)

	require.NoError(t, env.Settle(id, first, startPrice))
	err := env.Settle(id, second, startPrice)
	assert.ErrorIs(t, err, auction.ErrInactiveAuction)
	assert.Equal(t, startPrice, env.Balance(second, PaymentAsset))
}

func TestExpiredAuctionCannotSettle(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")
	buyer := NewAccount("buyer")
	env.Escrow(seller, lotAsset, lotAmount)
	env.Fund(buyer, PaymentAsset, startPrice)

	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)
	env.Advance(time.Duration(duration+1) * time.Second)

	err := env.Settle(id, buyer, startPrice)
	assert.ErrorIs(t, err, auction.ErrAuctionExpired)
	assert.Equal(t, lotAmount, env.Balance(env.Custody, lotAsset))
}

func TestCancellationRefundsLot(t *testing.T) {
	env := NewEnv(t)
	seller := NewAccount("seller")
	stranger := NewAccount("stranger")
	env.Escrow(seller, lotAsset, lotAmount)

	id := env.MustCreate(seller, lotAsset, lotAmount, startPrice, endPrice, duration)

	err := env.Cancel(id, stranger)
	assert.ErrorIs(t, err, auction.ErrUnauthorized)

	require.NoError(t, env.Cancel(id, seller))
	assert.Equal(t, lotAmount, env.Balance(seller, lotAsset))

	err = env.Cancel(id, seller)
	assert.ErrorIs(t, err, auction.ErrInactiveAuction)

	events := env.CancelledEvents()
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
}
