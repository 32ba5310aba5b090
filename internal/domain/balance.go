package domain

import "github.com/shopspring/decimal"

// BalanceMap is the derived projection: canonical account to signed balance.
// It is always recomputable from the entry history and is never persisted as
// a source of truth. Accounts absent from the map read as zero.
type BalanceMap map[Account]decimal.Decimal

// NewBalanceMap returns the empty (all-zero) projection.
func NewBalanceMap() BalanceMap {
	return make(BalanceMap)
}

// Clone returns an independent copy. The engine only ever mutates clones,
// so a map handed out to a caller stays stable.
func (m BalanceMap) Clone() BalanceMap {
	out := make(BalanceMap, len(m))
	for acc, bal := range m {
		out[acc] = bal
	}
	return out
}

// Get returns the balance for an account, zero when the account has never
// been touched.
func (m BalanceMap) Get(acc Account) decimal.Decimal {
	if bal, ok := m[acc]; ok {
		return bal
	}
	return decimal.Zero
}

// Equal compares two projections, treating absent accounts as zero.
func (m BalanceMap) Equal(other BalanceMap) bool {
	for acc := range m {
		if !m.Get(acc).Equal(other.Get(acc)) {
			return false
		}
	}
	for acc := range other {
		if !m.Get(acc).Equal(other.Get(acc)) {
			return false
		}
	}
	return true
}

func (m BalanceMap) add(acc Account, amount decimal.Decimal) {
	m[acc] = m.Get(acc).Add(amount)
}

func (m BalanceMap) sub(acc Account, amount decimal.Decimal) {
	m[acc] = m.Get(acc).Sub(amount)
}
