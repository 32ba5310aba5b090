package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsetu/shopledger/internal/domain"
)

// ReportUseCase aggregates service-sale revenue. Sales never move balances,
// so this path is read-only grouping over the entry history.
type ReportUseCase struct {
	entryRepo EntryRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(entryRepo EntryRepository) *ReportUseCase {
	return &ReportUseCase{entryRepo: entryRepo}
}

// RevenueReport summarizes GenericServiceSale entries over a date range.
type RevenueReport struct {
	From        time.Time                  `json:"from"`
	To          time.Time                  `json:"to"`
	SaleCount   int                        `json:"sale_count"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	ByCategory  map[string]decimal.Decimal `json:"by_category"`
}

// Revenue builds the revenue report for [from, to). Categories are free
// text in the source data; they are grouped case-insensitively.
func (uc *ReportUseCase) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	entries, err := uc.entryRepo.List(ctx, EntryFilter{
		Kind: domain.KindGenericServiceSale,
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{
		From:        from,
		To:          to,
		TotalAmount: decimal.Zero,
		ByCategory:  make(map[string]decimal.Decimal),
	}

	for _, e := range entries {
		if e.Sale == nil {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(e.Sale.Category))
		report.SaleCount++
		report.TotalAmount = report.TotalAmount.Add(e.Sale.Amount)
		if existing, ok := report.ByCategory[category]; ok {
			report.ByCategory[category] = existing.Add(e.Sale.Amount)
		} else {
			report.ByCategory[category] = e.Sale.Amount
		}
	}

	return report, nil
}
