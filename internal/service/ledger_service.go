package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// LedgerService keeps Item.Quantity in step with the append-only transaction log.
type LedgerService interface {
	// RecordTransaction appends a transaction and applies it to the item's
	// quantity. It does not check stock; OUT callers use EnsureAvailable first.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*dto.TransactionResponse, error)
	// EnsureAvailable fails with ErrInsufficientStock when the item holds
	// fewer than qty units. It is a read; nothing is reserved.
	EnsureAvailable(ctx context.Context, itemID uuid.UUID, qty int) (*model.Item, error)
	QueryTransactionsInRange(ctx context.Context, start, end string) ([]dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
	// RecomputeStock replays the item's transactions. Read-only.
	RecomputeStock(ctx context.Context, itemID uuid.UUID) (*dto.StockRecomputeResponse, error)
	// Reconcile lists every item whose stored quantity differs from its replay.
	Reconcile(ctx context.Context) (*dto.ReconcileResponse, error)
}

type ledgerService struct {
	items            repository.ItemRepository
	txs              repository.TransactionRepository
	defaultWarehouse string
}

func NewLedgerService(items repository.ItemRepository, txs repository.TransactionRepository, defaultWarehouse string) LedgerService {
	return &ledgerService{items: items, txs: txs, defaultWarehouse: defaultWarehouse}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func toTransactionResponse(t model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		ItemName:  t.ItemName,
		Type:      t.Type,
		Warehouse: t.Warehouse,
		Quantity:  t.Quantity,
		Date:      t.Date,
		Target:    t.Target,
		Remarks:   t.Remarks,
	}
}

func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*dto.TransactionResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Type != model.TxIn && req.Type != model.TxOut {
		return nil, invalidf("type must be IN or OUT, got %q", req.Type)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, invalidf("date %q is not YYYY-MM-DD", req.Date)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, invalidf("item_id %q", req.ItemID)
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, storeErr(err)
	}

	warehouse := req.Warehouse
	if warehouse == "" {
		warehouse = item.WarehouseOr(s.defaultWarehouse)
	}
	t := &model.Transaction{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Type:      req.Type,
		Warehouse: warehouse,
		Quantity:  req.Quantity,
		Date:      req.Date,
		Target:    req.Target,
		Remarks:   req.Remarks,
	}

	// With a real DB both writes commit or roll back together. Stubs run the
	// steps back to back, so a failed quantity update leaves the transaction in
	// place; Reconcile reports the resulting drift.
	db := s.items.DB()
	appended := false
	err = runTx(ctx, db, func(tx *gorm.DB) error {
		if err := s.txs.CreateTx(tx, t); err != nil {
			return err
		}
		appended = true
		return s.items.AdjustQuantityTx(tx, item.ID, t.Signed())
	})
	if err != nil {
		if appended && db == nil {
			log.Error().
				Err(err).
				Str("transaction_id", t.ID.String()).
				Str("item_id", item.ID.String()).
				Msg("ledger: transaction stored but item quantity not updated")
		}
		return nil, storeErr(err)
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("item_id", item.ID.String()).
		Str("type", t.Type).
		Int("quantity", t.Quantity).
		Msg("ledger: transaction recorded")

	resp := toTransactionResponse(*t)
	return &resp, nil
}

func (s *ledgerService) EnsureAvailable(ctx context.Context, itemID uuid.UUID, qty int) (*model.Item, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, storeErr(err)
	}
	if item.Quantity < qty {
		return item, fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, item.Name, item.Quantity, qty)
	}
	return item, nil
}

func (s *ledgerService) QueryTransactionsInRange(ctx context.Context, start, end string) ([]dto.TransactionResponse, error) {
	if _, err := time.Parse(dateLayout, start); err != nil {
		return nil, invalidf("start date %q is not YYYY-MM-DD", start)
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		return nil, invalidf("end date %q is not YYYY-MM-DD", end)
	}
	txs, err := s.txs.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	rf := repository.TransactionFilter{Type: filter.Type, Page: filter.Page, Limit: filter.Limit}
	if filter.ItemID != "" {
		id, err := uuid.Parse(filter.ItemID)
		if err != nil {
			return nil, invalidf("item_id %q", filter.ItemID)
		}
		rf.ItemID = &id
	}
	txs, total, err := s.txs.List(ctx, rf)
	if err != nil {
		return nil, storeErr(err)
	}
	data := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		data = append(data, toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// replay sums the signed quantities of txs.
func replay(txs []model.Transaction) int {
	stock := 0
	for _, t := range txs {
		stock += t.Signed()
	}
	return stock
}

func (s *ledgerService) RecomputeStock(ctx context.Context, itemID uuid.UUID) (*dto.StockRecomputeResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, storeErr(err)
	}
	txs, err := s.txs.ListByItem(ctx, itemID)
	if err != nil {
		return nil, storeErr(err)
	}
	recomputed := replay(txs)
	return &dto.StockRecomputeResponse{
		ItemID:     item.ID,
		Stored:     item.Quantity,
		Recomputed: recomputed,
		Drift:      item.Quantity - recomputed,
	}, nil
}

func (s *ledgerService) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	items, err := s.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, storeErr(err)
	}
	txs, err := s.txs.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	byItem := make(map[uuid.UUID]int, len(items))
	for _, t := range txs {
		byItem[t.ItemID] += t.Signed()
	}

	resp := &dto.ReconcileResponse{Checked: len(items), Drift: []dto.DriftEntry{}}
	for _, it := range items {
		if want := byItem[it.ID]; want != it.Quantity {
			resp.Drift = append(resp.Drift, dto.DriftEntry{
				ItemID:     it.ID,
				ItemName:   it.Name,
				Stored:     it.Quantity,
				Recomputed: want,
			})
			log.Warn().
				Str("item_id", it.ID.String()).
				Int("stored", it.Quantity).
				Int("recomputed", want).
				Msg("ledger: quantity drift")
		}
	}
	return resp, nil
}
