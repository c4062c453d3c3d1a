package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caadpo/genesis-backend/internal/model"
)

// OperationRepository is the operation data access interface.
type OperationRepository interface {
	Create(ctx context.Context, op *model.Operation) error
	GetByID(ctx context.Context, id uint) (*model.Operation, error)
	GetForUpdate(ctx context.Context, id uint) (*model.Operation, error)
	// GetByCode resolves an operation by its public code, with entries and
	// their comments preloaded (the roster view).
	GetByCode(ctx context.Context, publicCode string) (*model.Operation, error)
	ListByEvent(ctx context.Context, eventID uint) ([]model.Operation, error)
	SumSiblings(ctx context.Context, eventID, excludeID uint) (QuotaSum, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	CodeExists(ctx context.Context, publicCode string) (bool, error)
	Update(ctx context.Context, op *model.Operation) error
	Delete(ctx context.Context, id uint) error
}

type operationRepo struct {
	db *gorm.DB
}

// NewOperationRepo builds the gorm-backed OperationRepository.
func NewOperationRepo(db *gorm.DB) OperationRepository {
	return &operationRepo{db: db}
}

func (r *operationRepo) Create(ctx context.Context, op *model.Operation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *operationRepo) GetByID(ctx context.Context, id uint) (*model.Operation, error) {
	var op model.Operation
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("Event").
		Where("id = ?", id).
		First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operationRepo) GetForUpdate(ctx context.Context, id uint) (*model.Operation, error) {
	var op model.Operation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operationRepo) GetByCode(ctx context.Context, publicCode string) (*model.Operation, error) {
	var op model.Operation
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("Event").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("starts_at ASC, id ASC")
		}).
		Preload("Entries.Comments").
		Preload("Entries.Comments.Author").
		Where("public_code = ?", publicCode).
		First(&op).Error
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operationRepo) ListByEvent(ctx context.Context, eventID uint) ([]model.Operation, error) {
	var ops []model.Operation
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&ops).Error
	return ops, err
}

func (r *operationRepo) SumSiblings(ctx context.Context, eventID, excludeID uint) (QuotaSum, error) {
	var sum QuotaSum
	q := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Select("COALESCE(SUM(officers_quota), 0) AS officers, COALESCE(SUM(enlisted_quota), 0) AS enlisted").
		Where("event_id = ?", eventID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Scan(&sum).Error
	return sum, err
}

func (r *operationRepo) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Where("event_id = ?", eventID).
		Count(&n).Error
	return n, err
}

func (r *operationRepo) CodeExists(ctx context.Context, publicCode string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Operation{}).
		Where("public_code = ?", publicCode).
		Count(&n).Error
	return n > 0, err
}

func (r *operationRepo) Update(ctx context.Context, op *model.Operation) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *operationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Operation{}).Error
}
