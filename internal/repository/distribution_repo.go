package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caadpo/genesis-backend/internal/model"
)

// DistributionFilter narrows List queries; zero values mean "no filter".
type DistributionFilter struct {
	Month         int
	Year          int
	FundCode      int
	DirectorateID uint
}

// DistributionRepository is the directorate-slice data access interface.
type DistributionRepository interface {
	Create(ctx context.Context, dist *model.Distribution) error
	GetByID(ctx context.Context, id uint) (*model.Distribution, error)
	GetForUpdate(ctx context.Context, id uint) (*model.Distribution, error)
	List(ctx context.Context, filter DistributionFilter) ([]model.Distribution, error)
	// SumSiblings totals the quota counters of every distribution under the
	// ceiling except excludeID (0 to include all rows).
	SumSiblings(ctx context.Context, ceilingID, excludeID uint) (QuotaSum, error)
	CountByCeiling(ctx context.Context, ceilingID uint) (int64, error)
	Update(ctx context.Context, dist *model.Distribution) error
	Delete(ctx context.Context, id uint) error
}

type distributionRepo struct {
	db *gorm.DB
}

// NewDistributionRepo builds the gorm-backed DistributionRepository.
func NewDistributionRepo(db *gorm.DB) DistributionRepository {
	return &distributionRepo{db: db}
}

func (r *distributionRepo) Create(ctx context.Context, dist *model.Distribution) error {
	return r.db.WithContext(ctx).Create(dist).Error
}

func (r *distributionRepo) GetByID(ctx context.Context, id uint) (*model.Distribution, error) {
	var dist model.Distribution
	err := r.db.WithContext(ctx).
		Preload("Directorate").
		Where("id = ?", id).
		First(&dist).Error
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *distributionRepo) GetForUpdate(ctx context.Context, id uint) (*model.Distribution, error) {
	var dist model.Distribution
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dist).Error
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *distributionRepo) List(ctx context.Context, filter DistributionFilter) ([]model.Distribution, error) {
	q := r.db.WithContext(ctx).Preload("Directorate")
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.FundCode != 0 {
		q = q.Where("fund_code = ?", filter.FundCode)
	}
	if filter.DirectorateID != 0 {
		q = q.Where("directorate_id = ?", filter.DirectorateID)
	}

	var dists []model.Distribution
	err := q.Order("year DESC, month DESC, id ASC").Find(&dists).Error
	return dists, err
}

func (r *distributionRepo) SumSiblings(ctx context.Context, ceilingID, excludeID uint) (QuotaSum, error) {
	var sum QuotaSum
	q := r.db.WithContext(ctx).
		Model(&model.Distribution{}).
		Select("COALESCE(SUM(officers_quota), 0) AS officers, COALESCE(SUM(enlisted_quota), 0) AS enlisted").
		Where("ceiling_id = ?", ceilingID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Scan(&sum).Error
	return sum, err
}

func (r *distributionRepo) CountByCeiling(ctx context.Context, ceilingID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Distribution{}).
		Where("ceiling_id = ?", ceilingID).
		Count(&n).Error
	return n, err
}

func (r *distributionRepo) Update(ctx context.Context, dist *model.Distribution) error {
	return r.db.WithContext(ctx).Save(dist).Error
}

func (r *distributionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Distribution{}).Error
}
