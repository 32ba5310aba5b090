package domain

import "strings"

// Account identifies a balance bucket by its canonical name. Accounts have
// no lifecycle of their own: an account exists exactly when an entry touches
// it, and an absent account reads as zero.
type Account string

const (
	AccountCash               Account = "cash"
	AccountBank               Account = "bank"
	AccountRedmil             Account = "redmil"
	AccountSpicemoney         Account = "spicemoney"
	AccountAirtelPaymentBank  Account = "airtel_payment_bank"
	AccountCollectFromVaibhav Account = "collect_from_vaibhav"
	AccountCollectFromOmkar   Account = "collect_from_omkar"
	AccountCollectFromUma     Account = "collect_from_uma"
	AccountShopQR             Account = "shop_qr"
	AccountAirtel             Account = "airtel"
	AccountJio                Account = "jio"
	AccountBSNL               Account = "bsnl"
	AccountVodafone           Account = "vodafone"
)

// Accounts returns the full canonical vocabulary in display order.
func Accounts() []Account {
	return []Account{
		AccountCash,
		AccountBank,
		AccountRedmil,
		AccountSpicemoney,
		AccountAirtelPaymentBank,
		AccountCollectFromVaibhav,
		AccountCollectFromOmkar,
		AccountCollectFromUma,
		AccountShopQR,
		AccountAirtel,
		AccountJio,
		AccountBSNL,
		AccountVodafone,
	}
}

// IsCarrier reports whether the account tracks a mobile carrier balance.
func (a Account) IsCarrier() bool {
	switch a {
	case AccountAirtel, AccountJio, AccountBSNL, AccountVodafone:
		return true
	}
	return false
}

// IsKnown reports whether a is part of the canonical vocabulary. Aliases
// are not canonical; resolve them first.
func (a Account) IsKnown() bool {
	for _, acc := range Accounts() {
		if acc == a {
			return true
		}
	}
	return false
}

// accountAliases maps every label the legacy data uses (lowercased, single
// spaces) to its canonical account. The carrier label "airtel" and the AEPS
// label "airtel payment bank" are distinct accounts on purpose.
var accountAliases = map[string]Account{
	"cash": AccountCash,
	"till": AccountCash,
	"gala": AccountCash,

	"bank":          AccountBank,
	"shop accounts": AccountBank,
	"shop_accounts": AccountBank,

	"redmil":              AccountRedmil,
	"spicemoney":          AccountSpicemoney,
	"spice money":         AccountSpicemoney,
	"airtel payment bank": AccountAirtelPaymentBank,
	"airtel_payment_bank": AccountAirtelPaymentBank,

	"collect from vaibhav": AccountCollectFromVaibhav,
	"collect_from_vaibhav": AccountCollectFromVaibhav,
	"vaibhav":              AccountCollectFromVaibhav,
	"collect from omkar":   AccountCollectFromOmkar,
	"collect_from_omkar":   AccountCollectFromOmkar,
	"omkar":                AccountCollectFromOmkar,
	"collect from uma":     AccountCollectFromUma,
	"collect_from_uma":     AccountCollectFromUma,
	"uma":                  AccountCollectFromUma,

	"shop qr": AccountShopQR,
	"shop_qr": AccountShopQR,
	"qr":      AccountShopQR,

	"airtel":   AccountAirtel,
	"jio":      AccountJio,
	"bsnl":     AccountBSNL,
	"vodafone": AccountVodafone,
	"vi":       AccountVodafone,
}

// ResolveAccount maps a legacy display label to its canonical account.
// Matching is case-insensitive and ignores surrounding and repeated
// whitespace. A label that does not resolve is an UnknownAccountError, never
// a default bucket: money must not silently vanish into an unnamed account.
func ResolveAccount(label string) (Account, error) {
	key := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	if acc, ok := accountAliases[key]; ok {
		return acc, nil
	}
	return "", &UnknownAccountError{Label: label}
}
