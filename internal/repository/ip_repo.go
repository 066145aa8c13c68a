package repository

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IPRepository covers both ip_ranges and ip_details. Deleting a range does
// not touch its details.
type IPRepository interface {
	ListRanges(ctx context.Context) ([]model.IPRange, error)
	FindRange(ctx context.Context, id uuid.UUID) (*model.IPRange, error)
	CreateRange(ctx context.Context, r *model.IPRange) error
	DeleteRange(ctx context.Context, id uuid.UUID) error

	ListDetails(ctx context.Context) ([]model.IPDetail, error)
	ListDetailsByRange(ctx context.Context, rangeID uuid.UUID) ([]model.IPDetail, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*model.IPDetail, error)
	// UpsertDetail inserts or updates the row keyed by (range_id, ip_address).
	UpsertDetail(ctx context.Context, d *model.IPDetail) error
}

type ipRepo struct{ db *gorm.DB }

func NewIPRepository(db *gorm.DB) IPRepository { return &ipRepo{db: db} }

func (r *ipRepo) ListRanges(ctx context.Context) ([]model.IPRange, error) {
	var out []model.IPRange
	err := r.db.WithContext(ctx).Order("device ASC, created_at ASC").Find(&out).Error
	return out, err
}

func (r *ipRepo) FindRange(ctx context.Context, id uuid.UUID) (*model.IPRange, error) {
	var rg model.IPRange
	if err := r.db.WithContext(ctx).First(&rg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rg, nil
}

func (r *ipRepo) CreateRange(ctx context.Context, rg *model.IPRange) error {
	return r.db.WithContext(ctx).Create(rg).Error
}

func (r *ipRepo) DeleteRange(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.IPRange{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ipRepo) ListDetails(ctx context.Context) ([]model.IPDetail, error) {
	var out []model.IPDetail
	err := r.db.WithContext(ctx).Find(&out).Error
	return out, err
}

func (r *ipRepo) ListDetailsByRange(ctx context.Context, rangeID uuid.UUID) ([]model.IPDetail, error) {
	var out []model.IPDetail
	err := r.db.WithContext(ctx).Where("range_id = ?", rangeID).Find(&out).Error
	return out, err
}

func (r *ipRepo) FindDetail(ctx context.Context, id uuid.UUID) (*model.IPDetail, error) {
	var d model.IPDetail
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ipRepo) UpsertDetail(ctx context.Context, d *model.IPDetail) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "range_id"}, {Name: "ip_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"department", "user_name", "usage", "status", "updated_at"}),
	}).Create(d).Error
}
