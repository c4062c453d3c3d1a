package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caadpo/genesis-backend/internal/model"
)

// CeilingRepository is the funding-line quota pool data access interface.
type CeilingRepository interface {
	Create(ctx context.Context, ceiling *model.Ceiling) error
	GetByID(ctx context.Context, id uint) (*model.Ceiling, error)
	// GetForUpdate locks the ceiling row (SELECT ... FOR UPDATE) so sibling
	// distribution sums cannot move until the surrounding transaction commits.
	GetForUpdate(ctx context.Context, id uint) (*model.Ceiling, error)
	GetByKey(ctx context.Context, fundCode, month, year int) (*model.Ceiling, error)
	List(ctx context.Context, month, year int) ([]model.Ceiling, error)
	ListByFundCodes(ctx context.Context, month, year int, fundCodes []int) ([]model.Ceiling, error)
	Update(ctx context.Context, ceiling *model.Ceiling) error
	Delete(ctx context.Context, id uint) error
}

type ceilingRepo struct {
	db *gorm.DB
}

// NewCeilingRepo builds the gorm-backed CeilingRepository.
func NewCeilingRepo(db *gorm.DB) CeilingRepository {
	return &ceilingRepo{db: db}
}

func (r *ceilingRepo) Create(ctx context.Context, ceiling *model.Ceiling) error {
	return r.db.WithContext(ctx).Create(ceiling).Error
}

func (r *ceilingRepo) GetByID(ctx context.Context, id uint) (*model.Ceiling, error) {
	var ceiling model.Ceiling
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ceiling).Error
	if err != nil {
		return nil, err
	}
	return &ceiling, nil
}

func (r *ceilingRepo) GetForUpdate(ctx context.Context, id uint) (*model.Ceiling, error) {
	var ceiling model.Ceiling
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ceiling).Error
	if err != nil {
		return nil, err
	}
	return &ceiling, nil
}

func (r *ceilingRepo) GetByKey(ctx context.Context, fundCode, month, year int) (*model.Ceiling, error) {
	var ceiling model.Ceiling
	err := r.db.WithContext(ctx).
		Where("fund_code = ? AND month = ? AND year = ?", fundCode, month, year).
		First(&ceiling).Error
	if err != nil {
		return nil, err
	}
	return &ceiling, nil
}

func (r *ceilingRepo) List(ctx context.Context, month, year int) ([]model.Ceiling, error) {
	var ceilings []model.Ceiling
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("fund_code ASC").
		Find(&ceilings).Error
	return ceilings, err
}

func (r *ceilingRepo) ListByFundCodes(ctx context.Context, month, year int, fundCodes []int) ([]model.Ceiling, error) {
	if len(fundCodes) == 0 {
		return nil, nil
	}
	var ceilings []model.Ceiling
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ? AND fund_code IN ?", month, year, fundCodes).
		Order("fund_code ASC").
		Find(&ceilings).Error
	return ceilings, err
}

func (r *ceilingRepo) Update(ctx context.Context, ceiling *model.Ceiling) error {
	return r.db.WithContext(ctx).Save(ceiling).Error
}

func (r *ceilingRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Ceiling{}).Error
}
