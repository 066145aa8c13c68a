package repository

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductGroupRepository interface {
	Create(ctx context.Context, g *model.ProductGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductGroup, error)
	List(ctx context.Context) ([]model.ProductGroup, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewProductGroupRepository(db *gorm.DB) ProductGroupRepository {
	return listRepo[model.ProductGroup]{db: db, order: "name ASC"}
}

type WarehouseRepository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)
	FindByName(ctx context.Context, name string) (*model.Warehouse, error)
	List(ctx context.Context) ([]model.Warehouse, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type warehouseRepo struct {
	listRepo[model.Warehouse]
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return warehouseRepo{listRepo[model.Warehouse]{db: db, order: "name ASC"}}
}

func (r warehouseRepo) FindByName(ctx context.Context, name string) (*model.Warehouse, error) {
	var w model.Warehouse
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	// Search matches name case-insensitively or the douzone number as a substring.
	Search(ctx context.Context, term string) ([]model.Customer, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepo struct {
	listRepo[model.Customer]
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return customerRepo{listRepo[model.Customer]{db: db, order: "name ASC"}}
}

func (r customerRepo) Search(ctx context.Context, term string) ([]model.Customer, error) {
	var out []model.Customer
	like := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR douzone_number LIKE ?", like, like).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

type RentalRepository interface {
	Create(ctx context.Context, r *model.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	List(ctx context.Context) ([]model.Rental, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewRentalRepository(db *gorm.DB) RentalRepository {
	return listRepo[model.Rental]{db: db, order: "ho ASC, created_at ASC"}
}
