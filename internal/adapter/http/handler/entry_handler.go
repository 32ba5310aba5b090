package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopsetu/shopledger/internal/adapter/http/dto"
	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new ledger entry. The body is the flat entry envelope;
// the kind field selects the payload shape.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry domain.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.entryUC.Create(r.Context(), &entry)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get retrieves a single entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// List lists entries, optionally filtered by kind and paginated.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.EntryFilter{
		Kind:   domain.Kind(r.URL.Query().Get("kind")),
		Limit:  parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}

	entries, err := h.entryUC.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Delete removes an entry by ID and returns the deleted entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	deleted, err := h.entryUC.Delete(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}
