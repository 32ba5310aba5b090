package handler

import (
	"net/http"
	"time"

	"github.com/shopsetu/shopledger/internal/adapter/http/dto"
	"github.com/shopsetu/shopledger/internal/usecase"
)

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Revenue reports service-sale revenue grouped by category. The from/to
// query parameters are RFC3339 timestamps; either side may be omitted to
// leave the range open.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'from' format (use RFC3339)", err.Error())
			return
		}
		from = parsed
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'to' format (use RFC3339)", err.Error())
			return
		}
		to = parsed
	}

	report, err := h.reportUC.Revenue(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build revenue report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RevenueFromReport(report))
}
