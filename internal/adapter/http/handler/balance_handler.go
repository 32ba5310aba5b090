package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopsetu/shopledger/internal/adapter/http/dto"
	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
)

// BalanceHandler handles balance-related HTTP requests.
type BalanceHandler struct {
	balanceUC *usecase.BalanceUseCase
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// List returns the full balance map.
func (h *BalanceHandler) List(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balanceUC.Balances(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Get returns the balance for one account. The path segment accepts any
// label the resolver knows, canonical or alias.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "account")
	if label == "" {
		writeError(w, http.StatusBadRequest, "missing account", "")
		return
	}

	account, balance, err := h.balanceUC.AccountBalance(r.Context(), label)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountBalanceResponse{
		Account: string(account),
		Balance: balance,
	})
}

// Accounts returns the canonical account vocabulary.
func (h *BalanceHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(domain.Accounts()))
}
