package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/model"
)

// DirectorateRepository is the directorate data access interface.
type DirectorateRepository interface {
	Create(ctx context.Context, d *model.Directorate) error
	GetByID(ctx context.Context, id uint) (*model.Directorate, error)
	List(ctx context.Context) ([]model.Directorate, error)
	Update(ctx context.Context, d *model.Directorate) error
	Delete(ctx context.Context, id uint) error
}

type directorateRepo struct {
	db *gorm.DB
}

// NewDirectorateRepo builds the gorm-backed DirectorateRepository.
func NewDirectorateRepo(db *gorm.DB) DirectorateRepository {
	return &directorateRepo{db: db}
}

func (r *directorateRepo) Create(ctx context.Context, d *model.Directorate) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *directorateRepo) GetByID(ctx context.Context, id uint) (*model.Directorate, error) {
	var d model.Directorate
	err := r.db.WithContext(ctx).
		Preload("OrgUnits").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *directorateRepo) List(ctx context.Context) ([]model.Directorate, error) {
	var ds []model.Directorate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ds).Error
	return ds, err
}

func (r *directorateRepo) Update(ctx context.Context, d *model.Directorate) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *directorateRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Directorate{}).Error
}
