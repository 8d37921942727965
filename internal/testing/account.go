package testing

import "github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"

// Account is a named test party.
type Account struct {
	Name string
	ID   ledger.AccountID
}

// NewAccount derives a ledger account from a human-readable name.
func NewAccount(name string) Account {
	return Account{Name: name, ID: ledger.AccountID(name)}
}
