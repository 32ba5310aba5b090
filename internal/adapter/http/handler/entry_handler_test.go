package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/shopsetu/shopledger/internal/domain"
	"github.com/shopsetu/shopledger/internal/usecase"
	"github.com/shopsetu/shopledger/internal/usecase/mocks"
)

func newEntryHandler(t *testing.T) (*EntryHandler, *mocks.MockEntryRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("01HZXW3J9K3F4M5N6P7Q8R9S0T").AnyTimes()
	projector := mocks.NewMockBalanceProjector(ctrl)
	projector.EXPECT().ApplyEntry(gomock.Any(), gomock.Any()).AnyTimes()
	metrics := mocks.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().EntryCreated(gomock.Any()).AnyTimes()

	uc := usecase.NewEntryUseCase(entryRepo, nil, idGen, projector, metrics)
	return NewEntryHandler(uc), entryRepo
}

func TestEntryHandler_Create_Success(t *testing.T) {
	h, entryRepo := newEntryHandler(t)
	entryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := `{
		"kind": "fund_transfer",
		"source_account": "vaibhav",
		"amount": "500",
		"cash_received": true,
		"added_to_till": true,
		"commission_type": "cash",
		"commission_amount": "20"
	}`

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["id"] == "" || resp["kind"] != "fund_transfer" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestEntryHandler_Create_InvalidBody(t *testing.T) {
	h, _ := newEntryHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("{bad json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_UnknownKind(t *testing.T) {
	h, _ := newEntryHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/entries",
		strings.NewReader(`{"kind":"loyalty_points"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidEntryRejected(t *testing.T) {
	h, _ := newEntryHandler(t)

	// Negative amount never reaches the repository.
	body := `{"kind":"generic_service_sale","category":"xerox","amount":"-5"}`
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	h, entryRepo := newEntryHandler(t)
	entryRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrEntryNotFound)

	req := httptest.NewRequest(http.MethodGet, "/entries/missing", nil)
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_List(t *testing.T) {
	h, entryRepo := newEntryHandler(t)
	entryRepo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*domain.Entry{
			{
				ID:        "e-1",
				Kind:      domain.KindGenericServiceSale,
				CreatedAt: time.Now().UTC(),
				Sale:      &domain.GenericServiceSale{Category: "xerox"},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/entries?kind=generic_service_sale", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
