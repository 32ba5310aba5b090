package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks the structural invariants of the entry's kind. Balance
// handlers assume a validated entry. Validation is total: every field an
// entry can carry is either checked here or has no balance meaning.
func (e *Entry) Validate() error {
	switch e.Kind {
	case KindMobileBalanceAdjustment:
		if e.Mobile == nil {
			return e.invalid("missing MobileBalanceAdjustment payload")
		}
		return e.validateMobile(e.Mobile)
	case KindBankCashAepsAdjustment:
		if e.Adjustment == nil {
			return e.invalid("missing BankCashAepsAdjustment payload")
		}
		return e.validateAdjustment(e.Adjustment)
	case KindFundTransfer:
		if e.Transfer == nil {
			return e.invalid("missing FundTransfer payload")
		}
		return e.validateTransfer(e.Transfer)
	case KindAepsTransaction:
		if e.Aeps == nil {
			return e.invalid("missing AepsTransaction payload")
		}
		return e.validateAeps(e.Aeps)
	case KindOnlineReceivedCashGiven:
		if e.Online == nil {
			return e.invalid("missing OnlineReceivedCashGiven payload")
		}
		return e.validateOnline(e.Online)
	case KindGenericServiceSale:
		if e.Sale == nil {
			return e.invalid("missing GenericServiceSale payload")
		}
		return e.validateSale(e.Sale)
	}
	return e.invalid(fmt.Sprintf("unknown kind %q", e.Kind))
}

func (e *Entry) invalid(reason string) error {
	return &ValidationError{EntryID: e.ID, Reason: reason}
}

// checkAmount enforces the money invariants: non-negative, at most two
// decimal places.
func (e *Entry) checkAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return e.invalid(field + " must not be negative")
	}
	if !amount.Equal(amount.Round(2)) {
		return e.invalid(field + " has more than 2 decimal places")
	}
	return nil
}

func (e *Entry) checkOperation(op Operation) error {
	if op != OperationAdd && op != OperationRemove {
		return e.invalid(fmt.Sprintf("operation must be add or remove, got %q", op))
	}
	return nil
}

func (e *Entry) checkCommission(c Commission) error {
	switch c.CommissionType {
	case CommissionCash, CommissionOnline:
		return e.checkAmount("commission_amount", c.CommissionAmount)
	case CommissionNone, "":
		if !c.CommissionAmount.IsZero() {
			return e.invalid("commission_amount must be zero when commission_type is none")
		}
		return nil
	}
	return e.invalid(fmt.Sprintf("unknown commission_type %q", c.CommissionType))
}

func (e *Entry) validateMobile(p *MobileBalanceAdjustment) error {
	if err := e.checkOperation(p.Operation); err != nil {
		return err
	}
	if err := e.checkAmount("amount", p.Amount); err != nil {
		return err
	}
	acc, err := ResolveAccount(p.Carrier)
	if err != nil {
		return err
	}
	if !acc.IsCarrier() {
		return e.invalid(fmt.Sprintf("%q is not a carrier account", p.Carrier))
	}
	return nil
}

func (e *Entry) validateAdjustment(p *BankCashAepsAdjustment) error {
	if err := e.checkOperation(p.Operation); err != nil {
		return err
	}
	if err := e.checkAmount("amount", p.Amount); err != nil {
		return err
	}
	acc, err := ResolveAccount(p.Account)
	if err != nil {
		return err
	}
	if acc.IsCarrier() {
		return e.invalid(fmt.Sprintf("%q is a carrier account; use a mobile balance adjustment", p.Account))
	}
	return nil
}

func (e *Entry) validateTransfer(p *FundTransfer) error {
	switch p.SourceAccount {
	case SourceVaibhav, SourceOmkar, SourceUma, SourceShopAccounts, SourceOther:
	default:
		return e.invalid(fmt.Sprintf("unknown source_account %q", p.SourceAccount))
	}
	if err := e.checkAmount("amount", p.Amount); err != nil {
		return err
	}
	return e.checkCommission(p.Commission)
}

func (e *Entry) validateAeps(p *AepsTransaction) error {
	switch p.AepsID {
	case AepsRedmil, AepsSpicemoney, AepsAirtelPaymentBank, AepsOther:
	default:
		return e.invalid(fmt.Sprintf("unknown aeps_id %q", p.AepsID))
	}
	if err := e.checkAmount("amount", p.Amount); err != nil {
		return err
	}
	switch p.PayoutMode {
	case PayoutOnline:
		if _, err := ResolveAccount(p.PayoutSource); err != nil {
			return err
		}
	case PayoutCashFromTill, PayoutWithdrawnFromID, PayoutOther:
	default:
		return e.invalid(fmt.Sprintf("unknown payout_mode %q", p.PayoutMode))
	}
	return e.checkCommission(p.Commission)
}

func (e *Entry) validateOnline(p *OnlineReceivedCashGiven) error {
	if err := e.checkAmount("received_amount", p.ReceivedAmount); err != nil {
		return err
	}
	if err := e.checkAmount("cash_given_amount", p.CashGivenAmount); err != nil {
		return err
	}
	if _, err := ResolveAccount(p.Receiver); err != nil {
		return err
	}
	if len(p.Legs) < 1 || len(p.Legs) > 2 {
		return e.invalid(fmt.Sprintf("expected 1 or 2 legs, got %d", len(p.Legs)))
	}
	sum := decimal.Zero
	for i, leg := range p.Legs {
		field := fmt.Sprintf("legs[%d].amount", i)
		if err := e.checkAmount(field, leg.Amount); err != nil {
			return err
		}
		switch leg.Source {
		case LegTill, LegOther:
		case LegPerson:
			if _, err := ResolveAccount(leg.Person); err != nil {
				return err
			}
		default:
			return e.invalid(fmt.Sprintf("unknown leg source %q", leg.Source))
		}
		sum = sum.Add(leg.Amount)
	}
	// A mismatched split is rejected, never reconciled silently.
	if !sum.Equal(p.CashGivenAmount) {
		return e.invalid(fmt.Sprintf(
			"leg amounts sum to %s, declared cash_given_amount is %s",
			sum.String(), p.CashGivenAmount.String(),
		))
	}
	return e.checkCommission(p.Commission)
}

func (e *Entry) validateSale(p *GenericServiceSale) error {
	if p.Category == "" {
		return e.invalid("missing category")
	}
	return e.checkAmount("amount", p.Amount)
}
