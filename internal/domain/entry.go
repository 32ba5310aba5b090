package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the entry variants.
type Kind string

const (
	KindMobileBalanceAdjustment Kind = "MobileBalanceAdjustment"
	KindBankCashAepsAdjustment  Kind = "BankCashAepsAdjustment"
	KindFundTransfer            Kind = "FundTransfer"
	KindAepsTransaction         Kind = "AepsTransaction"
	KindOnlineReceivedCashGiven Kind = "OnlineReceivedCashGiven"
	KindGenericServiceSale      Kind = "GenericServiceSale"
)

// Kinds returns every entry kind the engine understands.
func Kinds() []Kind {
	return []Kind{
		KindMobileBalanceAdjustment,
		KindBankCashAepsAdjustment,
		KindFundTransfer,
		KindAepsTransaction,
		KindOnlineReceivedCashGiven,
		KindGenericServiceSale,
	}
}

// Operation is the direction of a manual balance adjustment.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// CommissionType says where a collected commission lands: the till for cash,
// the shop QR account for online, nowhere for none.
type CommissionType string

const (
	CommissionCash   CommissionType = "cash"
	CommissionOnline CommissionType = "online"
	CommissionNone   CommissionType = "none"
)

// Commission is embedded in the entry kinds that can charge one.
type Commission struct {
	CommissionType   CommissionType  `json:"commission_type"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// TransferSource names whose account a fund transfer is sent from.
type TransferSource string

const (
	SourceVaibhav      TransferSource = "vaibhav"
	SourceOmkar        TransferSource = "omkar"
	SourceUma          TransferSource = "uma"
	SourceShopAccounts TransferSource = "shop_accounts"
	SourceOther        TransferSource = "other"
)

// AepsID names the AEPS provider id a transaction settles through.
type AepsID string

const (
	AepsRedmil            AepsID = "redmil"
	AepsSpicemoney        AepsID = "spicemoney"
	AepsAirtelPaymentBank AepsID = "airtel_payment_bank"
	AepsOther             AepsID = "other"
)

// PayoutMode says how the customer was paid out in an AEPS transaction.
type PayoutMode string

const (
	PayoutOnline          PayoutMode = "online"
	PayoutCashFromTill    PayoutMode = "cash_from_till"
	PayoutWithdrawnFromID PayoutMode = "withdrawn_from_id"
	PayoutOther           PayoutMode = "other"
)

// LegSource says where one "given by" slice of cash came from.
type LegSource string

const (
	LegTill   LegSource = "till"
	LegPerson LegSource = "person"
	LegOther  LegSource = "other"
)

// CashLeg is one slice of the cash handed to a customer. Person carries the
// legacy label of the account holder when Source is "person".
type CashLeg struct {
	Source LegSource       `json:"source"`
	Person string          `json:"person,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// MobileBalanceAdjustment moves a carrier recharge balance up or down.
type MobileBalanceAdjustment struct {
	Carrier   string          `json:"carrier"`
	Operation Operation       `json:"operation"`
	Amount    decimal.Decimal `json:"amount"`
}

// BankCashAepsAdjustment is a manual correction on any non-carrier account.
type BankCashAepsAdjustment struct {
	Account   string          `json:"account"`
	Operation Operation       `json:"operation"`
	Amount    decimal.Decimal `json:"amount"`
}

// FundTransfer records money sent for a customer from someone's account.
// The source account is debited; if the customer paid cash and it went into
// the till, the till is credited by the same amount.
type FundTransfer struct {
	Commission
	SourceAccount TransferSource  `json:"source_account"`
	Amount        decimal.Decimal `json:"amount"`
	CashReceived  bool            `json:"cash_received"`
	AddedToTill   bool            `json:"added_to_till"`
}

// AepsTransaction records an AEPS withdrawal: the deposit lands on the
// provider-id account and the payout mode decides what gets debited.
type AepsTransaction struct {
	Commission
	AepsID       AepsID          `json:"aeps_id"`
	Amount       decimal.Decimal `json:"amount"`
	PayoutMode   PayoutMode      `json:"payout_mode"`
	PayoutSource string          `json:"payout_source,omitempty"`
}

// OnlineReceivedCashGiven records an online payment received against cash
// handed over, split across one or two legs.
type OnlineReceivedCashGiven struct {
	Commission
	ReceivedAmount  decimal.Decimal `json:"received_amount"`
	CashGivenAmount decimal.Decimal `json:"cash_given_amount"`
	Receiver        string          `json:"receiver"`
	Legs            []CashLeg       `json:"legs"`
}

// GenericServiceSale records revenue from recharges, bills, SIM sales,
// xerox and the like. It never moves a balance.
type GenericServiceSale struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Entry is one immutable ledger record. Exactly one payload pointer is set,
// matching Kind. CreatedAt together with the ULID in ID gives the stable
// replay order; neither takes part in balance math.
type Entry struct {
	ID        string
	Kind      Kind
	CreatedAt time.Time

	Mobile     *MobileBalanceAdjustment
	Adjustment *BankCashAepsAdjustment
	Transfer   *FundTransfer
	Aeps       *AepsTransaction
	Online     *OnlineReceivedCashGiven
	Sale       *GenericServiceSale
}

// Payload returns the kind-specific payload, or nil when none is set.
func (e *Entry) Payload() any {
	switch e.Kind {
	case KindMobileBalanceAdjustment:
		if e.Mobile != nil {
			return e.Mobile
		}
	case KindBankCashAepsAdjustment:
		if e.Adjustment != nil {
			return e.Adjustment
		}
	case KindFundTransfer:
		if e.Transfer != nil {
			return e.Transfer
		}
	case KindAepsTransaction:
		if e.Aeps != nil {
			return e.Aeps
		}
	case KindOnlineReceivedCashGiven:
		if e.Online != nil {
			return e.Online
		}
	case KindGenericServiceSale:
		if e.Sale != nil {
			return e.Sale
		}
	}
	return nil
}

// SetPayload assigns the payload slot matching kind. The payload must be a
// pointer to the kind's struct.
func (e *Entry) SetPayload(kind Kind, payload any) error {
	e.Kind = kind
	switch p := payload.(type) {
	case *MobileBalanceAdjustment:
		e.Mobile = p
	case *BankCashAepsAdjustment:
		e.Adjustment = p
	case *FundTransfer:
		e.Transfer = p
	case *AepsTransaction:
		e.Aeps = p
	case *OnlineReceivedCashGiven:
		e.Online = p
	case *GenericServiceSale:
		e.Sale = p
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEntryKind, kind)
	}
	return nil
}

type entryHeader struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON writes the flat envelope: id, kind, created_at and the
// kind-specific fields at the top level.
func (e Entry) MarshalJSON() ([]byte, error) {
	hdr := entryHeader{ID: e.ID, Kind: e.Kind, CreatedAt: e.CreatedAt}

	switch e.Kind {
	case KindMobileBalanceAdjustment:
		return json.Marshal(struct {
			entryHeader
			*MobileBalanceAdjustment
		}{hdr, e.Mobile})
	case KindBankCashAepsAdjustment:
		return json.Marshal(struct {
			entryHeader
			*BankCashAepsAdjustment
		}{hdr, e.Adjustment})
	case KindFundTransfer:
		return json.Marshal(struct {
			entryHeader
			*FundTransfer
		}{hdr, e.Transfer})
	case KindAepsTransaction:
		return json.Marshal(struct {
			entryHeader
			*AepsTransaction
		}{hdr, e.Aeps})
	case KindOnlineReceivedCashGiven:
		return json.Marshal(struct {
			entryHeader
			*OnlineReceivedCashGiven
		}{hdr, e.Online})
	case KindGenericServiceSale:
		return json.Marshal(struct {
			entryHeader
			*GenericServiceSale
		}{hdr, e.Sale})
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEntryKind, e.Kind)
}

// UnmarshalJSON reads the flat envelope, dispatching on "kind".
func (e *Entry) UnmarshalJSON(data []byte) error {
	var hdr entryHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return err
	}

	*e = Entry{ID: hdr.ID, Kind: hdr.Kind, CreatedAt: hdr.CreatedAt}

	switch hdr.Kind {
	case KindMobileBalanceAdjustment:
		e.Mobile = &MobileBalanceAdjustment{}
		return json.Unmarshal(data, e.Mobile)
	case KindBankCashAepsAdjustment:
		e.Adjustment = &BankCashAepsAdjustment{}
		return json.Unmarshal(data, e.Adjustment)
	case KindFundTransfer:
		e.Transfer = &FundTransfer{}
		return json.Unmarshal(data, e.Transfer)
	case KindAepsTransaction:
		e.Aeps = &AepsTransaction{}
		return json.Unmarshal(data, e.Aeps)
	case KindOnlineReceivedCashGiven:
		e.Online = &OnlineReceivedCashGiven{}
		return json.Unmarshal(data, e.Online)
	case KindGenericServiceSale:
		e.Sale = &GenericServiceSale{}
		return json.Unmarshal(data, e.Sale)
	}

	return fmt.Errorf("%w: %q", ErrUnknownEntryKind, hdr.Kind)
}
