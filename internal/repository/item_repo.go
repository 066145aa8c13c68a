package repository

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter narrows List. Warehouse matches items stored under that name;
// IncludeUnassigned also returns items with no warehouse recorded.
type ItemFilter struct {
	Warehouse         string
	IncludeUnassigned bool
	Group             string
	Name              string
}

// ItemRepository defines the data access contract for inventory items.
// Services depend on this interface, not on the GORM implementation.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	// Update merges only the given columns into the stored row.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustQuantityTx applies delta atomically; callers pass the tx instance
	// (nil means "no transaction" for stub implementations).
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if filter.Warehouse != "" {
		if filter.IncludeUnassigned {
			q = q.Where("warehouse = ? OR warehouse = '' OR warehouse IS NULL", filter.Warehouse)
		} else {
			q = q.Where("warehouse = ?", filter.Warehouse)
		}
	}
	if filter.Group != "" {
		q = q.Where("product_group = ?", filter.Group)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	var items []model.Item
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.Item{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) DB() *gorm.DB { return r.db }
