package domain

// The balance engine is a pure fold: every entry kind has one handler that
// applies the entry's signed effects to a balance map, and Recompute drives
// the fold over the full history. There is no I/O and no shared state here;
// both operations are safe to call concurrently.

// applyFunc applies one validated entry to the map in place. The fold driver
// only ever hands a handler a private copy, so mutating is safe. Handlers
// return an error only for account labels that fail to resolve.
type applyFunc func(BalanceMap, *Entry) error

// handlers is the kind registry. Adding an entry kind means adding one
// handler here; the fold itself never changes.
var handlers = map[Kind]applyFunc{
	KindMobileBalanceAdjustment: applyMobileAdjustment,
	KindBankCashAepsAdjustment:  applyAdjustment,
	KindFundTransfer:            applyFundTransfer,
	KindAepsTransaction:         applyAepsTransaction,
	KindOnlineReceivedCashGiven: applyOnlineReceived,
	KindGenericServiceSale:      applyServiceSale,
}

// Recompute folds the full entry history into a fresh balance map. Entries
// are expected in creation order, though no entry kind depends on another,
// so the final map is the same for any permutation of a valid history.
// The first invalid entry aborts the whole computation.
func Recompute(entries []*Entry) (BalanceMap, error) {
	balances := NewBalanceMap()
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if err := handlers[e.Kind](balances, e); err != nil {
			return nil, err
		}
	}
	return balances, nil
}

// ApplyIncremental returns current with one new entry applied. The input map
// is never mutated; on a validation failure it is returned unchanged, so a
// cached projection can keep serving reads while the bad entry is rejected.
//
// Invariant: ApplyIncremental(Recompute(h), e) equals Recompute(h + [e]) for
// every valid h and e.
func ApplyIncremental(current BalanceMap, entry *Entry) (BalanceMap, error) {
	if err := entry.Validate(); err != nil {
		return current, err
	}
	next := current.Clone()
	if err := handlers[entry.Kind](next, entry); err != nil {
		return current, err
	}
	return next, nil
}

func applyMobileAdjustment(m BalanceMap, e *Entry) error {
	p := e.Mobile
	acc, err := ResolveAccount(p.Carrier)
	if err != nil {
		return err
	}
	if p.Operation == OperationAdd {
		m.add(acc, p.Amount)
	} else {
		m.sub(acc, p.Amount)
	}
	return nil
}

func applyAdjustment(m BalanceMap, e *Entry) error {
	p := e.Adjustment
	acc, err := ResolveAccount(p.Account)
	if err != nil {
		return err
	}
	if p.Operation == OperationAdd {
		m.add(acc, p.Amount)
	} else {
		m.sub(acc, p.Amount)
	}
	return nil
}

func applyFundTransfer(m BalanceMap, e *Entry) error {
	p := e.Transfer
	if acc, tracked := transferSourceAccount(p.SourceAccount); tracked {
		m.sub(acc, p.Amount)
	}
	if p.CashReceived && p.AddedToTill {
		m.add(AccountCash, p.Amount)
	}
	applyCommission(m, p.Commission)
	return nil
}

func applyAepsTransaction(m BalanceMap, e *Entry) error {
	p := e.Aeps
	idAcc, tracked := aepsAccount(p.AepsID)
	if tracked {
		m.add(idAcc, p.Amount)
	}
	switch p.PayoutMode {
	case PayoutOnline:
		src, err := ResolveAccount(p.PayoutSource)
		if err != nil {
			return err
		}
		m.sub(src, p.Amount)
	case PayoutCashFromTill:
		m.sub(AccountCash, p.Amount)
	case PayoutWithdrawnFromID:
		if tracked {
			m.sub(idAcc, p.Amount)
		}
	}
	applyCommission(m, p.Commission)
	return nil
}

func applyOnlineReceived(m BalanceMap, e *Entry) error {
	p := e.Online
	recv, err := ResolveAccount(p.Receiver)
	if err != nil {
		return err
	}
	m.add(recv, p.ReceivedAmount)
	for _, leg := range p.Legs {
		switch leg.Source {
		case LegTill:
			m.sub(AccountCash, leg.Amount)
		case LegPerson:
			acc, err := ResolveAccount(leg.Person)
			if err != nil {
				return err
			}
			m.sub(acc, leg.Amount)
		}
	}
	applyCommission(m, p.Commission)
	return nil
}

// applyServiceSale is a no-op: sales are revenue records, not balance moves.
func applyServiceSale(BalanceMap, *Entry) error { return nil }

func applyCommission(m BalanceMap, c Commission) {
	switch c.CommissionType {
	case CommissionCash:
		m.add(AccountCash, c.CommissionAmount)
	case CommissionOnline:
		m.add(AccountShopQR, c.CommissionAmount)
	}
}

// transferSourceAccount maps a fund-transfer source to the account it
// debits. "other" is an external account the shop does not track, so it
// moves nothing; the customer leg and commission still apply.
func transferSourceAccount(s TransferSource) (Account, bool) {
	switch s {
	case SourceVaibhav:
		return AccountCollectFromVaibhav, true
	case SourceOmkar:
		return AccountCollectFromOmkar, true
	case SourceUma:
		return AccountCollectFromUma, true
	case SourceShopAccounts:
		return AccountBank, true
	}
	return "", false
}

// aepsAccount maps a provider id to its balance account. "other" is an
// untracked provider.
func aepsAccount(id AepsID) (Account, bool) {
	switch id {
	case AepsRedmil:
		return AccountRedmil, true
	case AepsSpicemoney:
		return AccountSpicemoney, true
	case AepsAirtelPaymentBank:
		return AccountAirtelPaymentBank, true
	}
	return "", false
}
