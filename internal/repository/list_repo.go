package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// listRepo carries the plain create/read/merge/delete operations shared by
// the catalog-style tables.
type listRepo[T any] struct {
	db    *gorm.DB
	order string
}

func (r listRepo[T]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r listRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r listRepo[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := r.db.WithContext(ctx).Order(r.order).Find(&out).Error
	return out, err
}

func (r listRepo[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	var zero T
	res := r.db.WithContext(ctx).Model(&zero).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r listRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var zero T
	res := r.db.WithContext(ctx).Delete(&zero, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
