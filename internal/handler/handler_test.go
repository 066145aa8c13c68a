package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/handler"
	"github.com/lyb5737-lyb77/inventory-management/internal/middleware"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Service stubs ─────────────────────────────────────────────────────────────

type stubLedger struct {
	stock    map[uuid.UUID]int
	recorded []dto.RecordTransactionRequest
	err      error
}

func (s *stubLedger) RecordTransaction(_ context.Context, req dto.RecordTransactionRequest) (*dto.TransactionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recorded = append(s.recorded, req)
	id, _ := uuid.Parse(req.ItemID)
	return &dto.TransactionResponse{ID: uuid.New(), ItemID: id, Type: req.Type, Quantity: req.Quantity, Date: req.Date}, nil
}

func (s *stubLedger) EnsureAvailable(_ context.Context, id uuid.UUID, qty int) (*model.Item, error) {
	have, ok := s.stock[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	if have < qty {
		return nil, fmt.Errorf("%w: have %d", service.ErrInsufficientStock, have)
	}
	return &model.Item{ID: id, Quantity: have}, nil
}

func (s *stubLedger) QueryTransactionsInRange(_ context.Context, start, end string) ([]dto.TransactionResponse, error) {
	if start > end {
		return nil, fmt.Errorf("%w: bad range", service.ErrInvalidInput)
	}
	return []dto.TransactionResponse{}, nil
}

func (s *stubLedger) ListTransactions(context.Context, dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	return &dto.TransactionListResponse{}, s.err
}

func (s *stubLedger) RecomputeStock(_ context.Context, id uuid.UUID) (*dto.StockRecomputeResponse, error) {
	return &dto.StockRecomputeResponse{ItemID: id}, s.err
}

func (s *stubLedger) Reconcile(context.Context) (*dto.ReconcileResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReconcileResponse{Drift: []dto.DriftEntry{}}, nil
}

var _ service.LedgerService = (*stubLedger)(nil)

type stubOutbound struct {
	requester string
	err       error
}

func (s *stubOutbound) Submit(_ context.Context, req dto.OutboundRequest, requester string) (*dto.OutboundResponse, error) {
	s.requester = requester
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OutboundResponse{Warehouse: req.Warehouse}, nil
}

type stubRentals struct {
	service.RentalService
	imported bool
}

func (s *stubRentals) Import(_ context.Context, r io.Reader) (*dto.RentalImportResponse, error) {
	s.imported = true
	b, _ := io.ReadAll(r)
	return &dto.RentalImportResponse{Imported: len(b)}, nil
}

func (s *stubRentals) Export(_ context.Context, w io.Writer) error {
	_, err := w.Write([]byte("PK\x03\x04"))
	return err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func transactionsRouter(l *stubLedger) *gin.Engine {
	h := handler.NewTransactionsHandler(l)
	r := gin.New()
	r.POST("/v1/transactions", h.Record)
	r.GET("/v1/transactions/range", h.Range)
	r.GET("/v1/ledger/reconcile", h.Reconcile)
	return r
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRecord_OutChecksStock(t *testing.T) {
	item := uuid.New()
	l := &stubLedger{stock: map[uuid.UUID]int{item: 2}}
	r := transactionsRouter(l)

	w := doJSON(r, http.MethodPost, "/v1/transactions", dto.RecordTransactionRequest{
		ItemID: item.String(), Type: "OUT", Quantity: 3, Date: "2024-03-01",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, detail(t, w), "재고가 부족합니다")
	assert.Empty(t, l.recorded)

	w = doJSON(r, http.MethodPost, "/v1/transactions", dto.RecordTransactionRequest{
		ItemID: item.String(), Type: "OUT", Quantity: 2, Date: "2024-03-01",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, l.recorded, 1)
}

func TestRecord_InSkipsStockCheck(t *testing.T) {
	l := &stubLedger{stock: map[uuid.UUID]int{}}
	r := transactionsRouter(l)

	w := doJSON(r, http.MethodPost, "/v1/transactions", dto.RecordTransactionRequest{
		ItemID: uuid.NewString(), Type: "IN", Quantity: 5, Date: "2024-03-01",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRecord_Validation(t *testing.T) {
	r := transactionsRouter(&stubLedger{})

	cases := []dto.RecordTransactionRequest{
		{ItemID: "not-a-uuid", Type: "IN", Quantity: 1, Date: "2024-03-01"},
		{ItemID: uuid.NewString(), Type: "MOVE", Quantity: 1, Date: "2024-03-01"},
		{ItemID: uuid.NewString(), Type: "IN", Quantity: 0, Date: "2024-03-01"},
		{ItemID: uuid.NewString(), Type: "IN", Quantity: 1, Date: "03/01/2024"},
	}
	for _, req := range cases {
		w := doJSON(r, http.MethodPost, "/v1/transactions", req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "%+v", req)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecord_StoreUnavailable(t *testing.T) {
	l := &stubLedger{err: fmt.Errorf("%w: dial tcp", service.ErrStoreUnavailable)}
	r := transactionsRouter(l)

	w := doJSON(r, http.MethodPost, "/v1/transactions", dto.RecordTransactionRequest{
		ItemID: uuid.NewString(), Type: "IN", Quantity: 1, Date: "2024-03-01",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestRange_BadInput(t *testing.T) {
	r := transactionsRouter(&stubLedger{})
	w := doJSON(r, http.MethodGet, "/v1/transactions/range?start=2024-04-01&end=2024-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/transactions/range?start=2024-03-01&end=2024-03-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOutbound_PassesRequesterAndMapsErrors(t *testing.T) {
	svc := &stubOutbound{}
	h := handler.NewOutboundHandler(svc)
	r := gin.New()
	r.POST("/v1/outbound", func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{Username: "kim", Name: "김민수"})
	}, h.Submit)

	body := dto.OutboundRequest{
		Warehouse:  "비트본사",
		Items:      []dto.OutboundLine{{ItemID: uuid.NewString(), Quantity: 1}},
		CustomerID: uuid.NewString(),
	}
	w := doJSON(r, http.MethodPost, "/v1/outbound", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "김민수", svc.requester)

	svc.err = fmt.Errorf("%w: 535 auth failed", service.ErrNotificationFail)
	w = doJSON(r, http.MethodPost, "/v1/outbound", body)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, detail(t, w), "535 auth failed")

	svc.err = service.ErrDuplicateRequest
	w = doJSON(r, http.MethodPost, "/v1/outbound", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body.Items = nil
	w = doJSON(r, http.MethodPost, "/v1/outbound", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRentals_ImportAndExport(t *testing.T) {
	svc := &stubRentals{}
	h := handler.NewRentalsHandler(svc)
	r := gin.New()
	r.POST("/v1/rentals/import", h.Import)
	r.GET("/v1/rentals/export", h.Export)

	w := doJSON(r, http.MethodPost, "/v1/rentals/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "rentals.xlsx")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("workbook"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.imported)

	w = doJSON(r, http.MethodGet, "/v1/rentals/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename*=UTF-8''%EC%9E%84%EB%8C%80%ED%98%84%ED%99%A9_")
	assert.Equal(t, "PK\x03\x04", w.Body.String())
}

func TestItems_BadID(t *testing.T) {
	h := handler.NewItemsHandler(nil, &stubLedger{})
	r := gin.New()
	r.GET("/v1/items/:id/stock/recompute", h.RecomputeStock)

	w := doJSON(r, http.MethodGet, "/v1/items/xyz/stock/recompute", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/items/"+uuid.NewString()+"/stock/recompute", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

type fixedBreaker string

func (b fixedBreaker) BreakerState() string { return string(b) }

func TestHealth_ReportsComponents(t *testing.T) {
	r := gin.New()
	r.GET("/health", handler.Health(nil, nil, fixedBreaker("open")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "error", body["db"])
	assert.Equal(t, "disabled", body["redis"])
	assert.Equal(t, "open", body["mail_circuit"])
}
