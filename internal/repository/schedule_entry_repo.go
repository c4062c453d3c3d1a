package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/model"
)

// EventConsumption is the consumed quota of one event, split by person type.
type EventConsumption struct {
	EventID  uint `json:"event_id"`
	Officers int  `json:"officers"`
	Enlisted int  `json:"enlisted"`
}

// DirectorateConsumption is the executed quota rolled up to a directorate.
// DirectorateID is nil for entries whose unit has no parent directorate.
type DirectorateConsumption struct {
	DirectorateID *uint `json:"directorate_id"`
	Officers      int   `json:"officers"`
	Enlisted      int   `json:"enlisted"`
}

// ScheduleEntryRepository is the schedule entry data access interface.
type ScheduleEntryRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id uint) (*model.ScheduleEntry, error)
	ListByOperation(ctx context.Context, operationID uint) ([]model.ScheduleEntry, error)
	// ListByServiceNumber returns one person's entries for a month, most
	// recent shift first (the "my schedule" view).
	ListByServiceNumber(ctx context.Context, serviceNumber, month, year int) ([]model.ScheduleEntry, error)
	// SumByOperation totals entry quotas per person type within an operation.
	// excludeID 0 sums every entry.
	SumByOperation(ctx context.Context, operationID, excludeID uint) (QuotaSum, error)
	SumByEvent(ctx context.Context, eventID uint) (QuotaSum, error)
	// SumByServiceNumber totals one person's entry quotas for a month.
	SumByServiceNumber(ctx context.Context, serviceNumber, month, year int) (QuotaSum, error)
	CountByOperation(ctx context.Context, operationID uint) (int64, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	SetObs(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id uint) error

	AddComment(ctx context.Context, comment *model.EntryComment) error
	GetComment(ctx context.Context, commentID uint) (*model.EntryComment, error)
	ListComments(ctx context.Context, entryID uint) ([]model.EntryComment, error)
	DeleteComment(ctx context.Context, commentID uint) error

	// ConsumedPerEvent returns consumed quota grouped by event for a month.
	ConsumedPerEvent(ctx context.Context, month, year int) ([]EventConsumption, error)
	// ExecutedByDirectorate rolls up AUTHORIZED and HOMOLOGATED entry quotas
	// per directorate for a month.
	ExecutedByDirectorate(ctx context.Context, month, year int) ([]DirectorateConsumption, error)
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo builds the gorm-backed ScheduleEntryRepository.
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleEntryRepo) GetByID(ctx context.Context, id uint) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Comments").
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) ListByOperation(ctx context.Context, operationID uint) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("operation_id = ?", operationID).
		Order("starts_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ListByServiceNumber(ctx context.Context, serviceNumber, month, year int) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Operation").
		Where("service_number = ? AND EXTRACT(MONTH FROM starts_at) = ? AND EXTRACT(YEAR FROM starts_at) = ?",
			serviceNumber, month, year).
		Order("starts_at DESC").
		Find(&entries).Error
	return entries, err
}

// quota is charged against the counter matching the entry's person type, so
// the sums split on person_type rather than on a column pair.
func (r *scheduleEntryRepo) SumByOperation(ctx context.Context, operationID, excludeID uint) (QuotaSum, error) {
	var sum QuotaSum
	q := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select(`COALESCE(SUM(CASE WHEN person_type = 'OFFICER' THEN quota ELSE 0 END), 0) AS officers,
			COALESCE(SUM(CASE WHEN person_type = 'ENLISTED' THEN quota ELSE 0 END), 0) AS enlisted`).
		Where("operation_id = ?", operationID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Scan(&sum).Error
	return sum, err
}

func (r *scheduleEntryRepo) SumByEvent(ctx context.Context, eventID uint) (QuotaSum, error) {
	var sum QuotaSum
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select(`COALESCE(SUM(CASE WHEN person_type = 'OFFICER' THEN quota ELSE 0 END), 0) AS officers,
			COALESCE(SUM(CASE WHEN person_type = 'ENLISTED' THEN quota ELSE 0 END), 0) AS enlisted`).
		Where("event_id = ?", eventID).
		Scan(&sum).Error
	return sum, err
}

func (r *scheduleEntryRepo) SumByServiceNumber(ctx context.Context, serviceNumber, month, year int) (QuotaSum, error) {
	var sum QuotaSum
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select(`COALESCE(SUM(CASE WHEN person_type = 'OFFICER' THEN quota ELSE 0 END), 0) AS officers,
			COALESCE(SUM(CASE WHEN person_type = 'ENLISTED' THEN quota ELSE 0 END), 0) AS enlisted`).
		Where("service_number = ? AND EXTRACT(MONTH FROM starts_at) = ? AND EXTRACT(YEAR FROM starts_at) = ?",
			serviceNumber, month, year).
		Scan(&sum).Error
	return sum, err
}

func (r *scheduleEntryRepo) CountByOperation(ctx context.Context, operationID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("operation_id = ?", operationID).
		Count(&n).Error
	return n, err
}

func (r *scheduleEntryRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleEntryRepo) SetObs(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"obs":            entry.Obs,
			"obs_author_id":  entry.ObsAuthorID,
			"obs_updated_at": entry.ObsUpdatedAt,
		}).Error
}

func (r *scheduleEntryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *scheduleEntryRepo) AddComment(ctx context.Context, comment *model.EntryComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *scheduleEntryRepo) GetComment(ctx context.Context, commentID uint) (*model.EntryComment, error) {
	var comment model.EntryComment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *scheduleEntryRepo) DeleteComment(ctx context.Context, commentID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.EntryComment{}).Error
}

func (r *scheduleEntryRepo) ListComments(ctx context.Context, entryID uint) ([]model.EntryComment, error) {
	var comments []model.EntryComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("entry_id = ?", entryID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *scheduleEntryRepo) ConsumedPerEvent(ctx context.Context, month, year int) ([]EventConsumption, error) {
	var rows []EventConsumption
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select(`event_id,
			COALESCE(SUM(CASE WHEN person_type = 'OFFICER' THEN quota ELSE 0 END), 0) AS officers,
			COALESCE(SUM(CASE WHEN person_type = 'ENLISTED' THEN quota ELSE 0 END), 0) AS enlisted`).
		Joins("JOIN events ON events.id = schedule_entries.event_id").
		Where("events.month = ? AND events.year = ?", month, year).
		Group("event_id").
		Scan(&rows).Error
	return rows, err
}

func (r *scheduleEntryRepo) ExecutedByDirectorate(ctx context.Context, month, year int) ([]DirectorateConsumption, error) {
	var rows []DirectorateConsumption
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select(`org_units.directorate_id,
			COALESCE(SUM(CASE WHEN person_type = 'OFFICER' THEN quota ELSE 0 END), 0) AS officers,
			COALESCE(SUM(CASE WHEN person_type = 'ENLISTED' THEN quota ELSE 0 END), 0) AS enlisted`).
		Joins("JOIN org_units ON org_units.id = schedule_entries.org_unit_id").
		Joins("JOIN events ON events.id = schedule_entries.event_id").
		Where("events.month = ? AND events.year = ? AND schedule_entries.status IN ?",
			month, year, []model.WorkflowStatus{model.StatusAuthorized, model.StatusHomologated}).
		Group("org_units.directorate_id").
		Scan(&rows).Error
	return rows, err
}
