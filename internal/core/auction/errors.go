package auction

import "errors"

// Sentinel errors returned by the registry and the settlement coordinator.
// Callers branch with errors.Is; wrapped variants carry context.
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidPriceRange   = errors.New("start price must not be below end price")
	ErrInvalidDuration     = errors.New("duration must be greater than zero")
	ErrNotFound            = errors.New("auction not found")
	ErrUnauthorized        = errors.New("caller is not the seller")
	ErrInactiveAuction     = errors.New("auction is no longer active")
	ErrAuctionExpired      = errors.New("auction has ended")
	ErrInsufficientPayment = errors.New("tendered payment is below the current price")
	ErrEscrowNotFunded     = errors.New("custody balance does not cover the auctioned amount")
)
