package repository

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter defines filters for listing stock transactions.
type TransactionFilter struct {
	ItemID *uuid.UUID
	Type   string
	Page   int
	Limit  int
}

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	CreateTx(tx *gorm.DB, t *model.Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error)
	// ListByDateRange returns transactions with start <= date <= end.
	ListByDateRange(ctx context.Context, start, end string) ([]model.Transaction, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.Transaction, error)
	ListAll(ctx context.Context) ([]model.Transaction, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(t).Error
}

func (r *transactionRepo) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.ItemID != nil {
		q = q.Where("item_id = ?", *filter.ItemID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var txs []model.Transaction
	err := q.Order("date DESC, created_at DESC").Offset(offset).Limit(limit).Find(&txs).Error
	return txs, total, err
}

func (r *transactionRepo) ListByDateRange(ctx context.Context, start, end string) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&txs).Error
	return txs, err
}
