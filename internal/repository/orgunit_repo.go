package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/model"
)

// OrgUnitRepository is the organizational unit data access interface.
type OrgUnitRepository interface {
	Create(ctx context.Context, ou *model.OrgUnit) error
	GetByID(ctx context.Context, id uint) (*model.OrgUnit, error)
	// List filters by directorate when directorateID is non-zero.
	List(ctx context.Context, directorateID uint) ([]model.OrgUnit, error)
	Update(ctx context.Context, ou *model.OrgUnit) error
	Delete(ctx context.Context, id uint) error
}

type orgUnitRepo struct {
	db *gorm.DB
}

// NewOrgUnitRepo builds the gorm-backed OrgUnitRepository.
func NewOrgUnitRepo(db *gorm.DB) OrgUnitRepository {
	return &orgUnitRepo{db: db}
}

func (r *orgUnitRepo) Create(ctx context.Context, ou *model.OrgUnit) error {
	return r.db.WithContext(ctx).Create(ou).Error
}

func (r *orgUnitRepo) GetByID(ctx context.Context, id uint) (*model.OrgUnit, error) {
	var ou model.OrgUnit
	err := r.db.WithContext(ctx).
		Preload("Directorate").
		Where("id = ?", id).
		First(&ou).Error
	if err != nil {
		return nil, err
	}
	return &ou, nil
}

func (r *orgUnitRepo) List(ctx context.Context, directorateID uint) ([]model.OrgUnit, error) {
	var ous []model.OrgUnit
	q := r.db.WithContext(ctx).Preload("Directorate").Order("name ASC")
	if directorateID != 0 {
		q = q.Where("directorate_id = ?", directorateID)
	}
	err := q.Find(&ous).Error
	return ous, err
}

func (r *orgUnitRepo) Update(ctx context.Context, ou *model.OrgUnit) error {
	return r.db.WithContext(ctx).Save(ou).Error
}

func (r *orgUnitRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrgUnit{}).Error
}
