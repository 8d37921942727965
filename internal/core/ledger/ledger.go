// Package ledger defines the asset custody collaborator consumed by the
// auction core. The core never mutates balances itself; it instructs an
// AssetLedger and relies on its atomicity guarantees.
package ledger

import "errors"

// Common errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
)

// AccountID identifies a party on the ledger.
type AccountID string

// AssetID identifies a fungible asset on the ledger.
type AssetID string

// View provides balance reads and transfers against ledger state.
type View interface {
	// BalanceOf returns the balance held by account in asset.
	BalanceOf(account AccountID, asset AssetID) (uint64, error)

	// Transfer moves amount of asset from one account to another.
	Transfer(asset AssetID, from, to AccountID, amount uint64) error
}

// AssetLedger is the capability interface injected into the auction core.
// Atomic executes a group of transfers as one indivisible unit: either every
// transfer inside fn commits, or none does. A chain-backed implementation
// would map this to a batched transaction; the in-memory one stages deltas
// in a sandbox and applies them on success.
type AssetLedger interface {
	View

	Atomic(fn func(View) error) error
}
