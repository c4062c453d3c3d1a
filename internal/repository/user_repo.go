package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/model"
)

// UserRepository is the user data access interface.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByServiceNumber(ctx context.Context, serviceNumber int) (*model.User, error)
	List(ctx context.Context, orgUnitID uint) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo builds the gorm-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("OrgUnit.Directorate").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("OrgUnit.Directorate").
		Where("login = ?", login).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByServiceNumber(ctx context.Context, serviceNumber int) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("service_number = ?", serviceNumber).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List filters by unit when orgUnitID is non-zero.
func (r *userRepo) List(ctx context.Context, orgUnitID uint) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Preload("OrgUnit").Order("name ASC")
	if orgUnitID != 0 {
		q = q.Where("org_unit_id = ?", orgUnitID)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.User{}).Error
}
