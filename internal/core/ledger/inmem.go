package ledger

import "sync"

// InMemory is a mutex-guarded balance table implementing AssetLedger.
// It backs the standalone runner and the test environment.
type InMemory struct {
	mu       sync.Mutex
	balances map[AssetID]map[AccountID]uint64
}

// NewInMemory returns an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{balances: make(map[AssetID]map[AccountID]uint64)}
}

// Mint credits amount of asset to account out of thin air.
func (l *InMemory) Mint(asset AssetID, account AccountID, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(asset, account, amount)
}

// BalanceOf implements View.
func (l *InMemory) BalanceOf(account AccountID, asset AssetID) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[asset][account], nil
}

// Transfer implements View. A zero-amount transfer is a no-op.
func (l *InMemory) Transfer(asset AssetID, from, to AccountID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transferLocked(asset, from, to, amount)
}

// Atomic implements AssetLedger. fn runs against a sandbox that stages
// balance changes; the stage is committed only if fn returns nil, so a
// failing transfer mid-group leaves the ledger untouched.
func (l *InMemory) Atomic(fn func(View) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	sb := &sandbox{parent: l, staged: make(map[AssetID]map[AccountID]uint64)}
	if err := fn(sb); err != nil {
		return err
	}
	sb.commit()
	return nil
}

func (l *InMemory) transferLocked(asset AssetID, from, to AccountID, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	if l.balances[asset][from] < amount {
		return ErrInsufficientFunds
	}
	l.balances[asset][from] -= amount
	l.credit(asset, to, amount)
	return nil
}

func (l *InMemory) credit(asset AssetID, account AccountID, amount uint64) {
	m, ok := l.balances[asset]
	if !ok {
		m = make(map[AccountID]uint64)
		l.balances[asset] = m
	}
	m[account] += amount
}

// sandbox overlays staged balances on top of the parent ledger. The parent
// mutex is held for the whole Atomic call, so reads through to the parent
// need no further locking.
type sandbox struct {
	parent *InMemory
	staged map[AssetID]map[AccountID]uint64
}

func (s *sandbox) BalanceOf(account AccountID, asset AssetID) (uint64, error) {
	return s.balance(asset, account), nil
}

func (s *sandbox) Transfer(asset AssetID, from, to AccountID, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	if s.balance(asset, from) < amount {
		return ErrInsufficientFunds
	}
	s.set(asset, from, s.balance(asset, from)-amount)
	s.set(asset, to, s.balance(asset, to)+amount)
	return nil
}

func (s *sandbox) balance(asset AssetID, account AccountID) uint64 {
	if m, ok := s.staged[asset]; ok {
		if v, ok := m[account]; ok {
			return v
		}
	}
	return s.parent.balances[asset][account]
}

func (s *sandbox) set(asset AssetID, account AccountID, value uint64) {
	m, ok := s.staged[asset]
	if !ok {
		m = make(map[AccountID]uint64)
		s.staged[asset] = m
	}
	m[account] = value
}

func (s *sandbox) commit() {
	for asset, accounts := range s.staged {
		for account, value := range accounts {
			m, ok := s.parent.balances[asset]
			if !ok {
				m = make(map[AccountID]uint64)
				s.parent.balances[asset] = m
			}
			m[account] = value
		}
	}
}
