package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EntryListResponse wraps a page of entries. Entries marshal with their flat
// kind-keyed envelope, so no per-kind response struct is needed.
type EntryListResponse struct {
	Entries []*domain.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// EntriesFromDomain wraps entries into a list response.
func EntriesFromDomain(entries []*domain.Entry) EntryListResponse {
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return EntryListResponse{Entries: entries, Count: len(entries)}
}

// BalancesResponse represents the full balance map.
type BalancesResponse struct {
	Balances map[string]decimal.Decimal `json:"balances"`
}

// BalancesFromDomain converts a balance map to a response, keyed by account
// name.
func BalancesFromDomain(balances domain.BalanceMap) BalancesResponse {
	out := make(map[string]decimal.Decimal, len(balances))
	for account, balance := range balances {
		out[string(account)] = balance
	}
	return BalancesResponse{Balances: out}
}

// AccountBalanceResponse represents a single account balance.
type AccountBalanceResponse struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountResponse describes one canonical account.
type AccountResponse struct {
	Name    string `json:"name"`
	Carrier bool   `json:"carrier"`
}

// AccountListResponse lists the canonical account vocabulary.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountsFromDomain builds the account vocabulary response.
func AccountsFromDomain(accounts []domain.Account) AccountListResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountResponse{Name: string(a), Carrier: a.IsCarrier()}
	}
	return AccountListResponse{Accounts: out}
}

// RevenueResponse represents a service-sale revenue report.
type RevenueResponse struct {
	From        time.Time                  `json:"from"`
	To          time.Time                  `json:"to"`
	SaleCount   int                        `json:"sale_count"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	ByCategory  map[string]decimal.Decimal `json:"by_category"`
}

// RevenueFromReport converts a revenue report to a response.
func RevenueFromReport(report *usecase.RevenueReport) RevenueResponse {
	return RevenueResponse{
		From:        report.From,
		To:          report.To,
		SaleCount:   report.SaleCount,
		TotalAmount: report.TotalAmount,
		ByCategory:  report.ByCategory,
	}
}
