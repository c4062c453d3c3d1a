package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Schedule entry business errors ──

var (
	ErrEntryNotFound   = errors.New("schedule entry not found")
	ErrEntryWindow     = errors.New("entry must end after it starts")
	ErrCommentNotFound = errors.New("comment not found")
)

// ScheduleEntryService manages individual roster entries and their comments.
type ScheduleEntryService interface {
	Create(ctx context.Context, req *dto.CreateEntryRequest, actor model.Actor) (*model.ScheduleEntry, error)
	GetByID(ctx context.Context, id uint) (*model.ScheduleEntry, error)
	ListByOperation(ctx context.Context, operationID uint) ([]model.ScheduleEntry, error)
	ListPersonal(ctx context.Context, req *dto.PersonalScheduleRequest, actor model.Actor) ([]model.ScheduleEntry, error)
	PersonalQuota(ctx context.Context, req *dto.PersonalScheduleRequest, actor model.Actor) (*dto.PersonalQuotaResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateEntryRequest, actor model.Actor) (*model.ScheduleEntry, error)
	TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.ScheduleEntry, error)
	SetObs(ctx context.Context, id uint, obs string, actor model.Actor) (*model.ScheduleEntry, error)
	Delete(ctx context.Context, id uint, actor model.Actor) error

	AddComment(ctx context.Context, entryID uint, text string, actor model.Actor) (*model.EntryComment, error)
	ListComments(ctx context.Context, entryID uint) ([]model.EntryComment, error)
	DeleteComment(ctx context.Context, entryID, commentID uint, actor model.Actor) error
}

type scheduleEntryService struct {
	repo         *repository.Repository
	logger       *zap.Logger
	officerRate  float64
	enlistedRate float64
}

// NewScheduleEntryService creates the ScheduleEntryService with the
// configured valuation rates.
func NewScheduleEntryService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleEntryService {
	return &scheduleEntryService{
		repo:         repo,
		logger:       logger,
		officerRate:  float64(cfg.Quota.OfficerRate),
		enlistedRate: float64(cfg.Quota.EnlistedRate),
	}
}

// entryScope resolves the authorization scope and freeze state of an entry
// by walking up to its distribution.
func (s *scheduleEntryService) entryScope(ctx context.Context, entry *model.ScheduleEntry) (nodeScope, bool, error) {
	op, err := s.repo.Operation.GetByID(ctx, entry.OperationID)
	if err != nil {
		return nodeScope{}, false, err
	}
	event, err := s.repo.Event.GetByID(ctx, op.EventID)
	if err != nil {
		return nodeScope{}, false, err
	}
	dist, err := s.repo.Distribution.GetByID(ctx, event.DistributionID)
	if err != nil {
		return nodeScope{}, false, err
	}
	node := nodeScope{OrgUnitID: entry.OrgUnitID, DirectorateID: dist.DirectorateID}
	frozen := entry.Status == model.StatusHomologated ||
		op.Status == model.StatusHomologated ||
		event.Status == model.StatusHomologated
	return node, frozen, nil
}

// ────────────────────── Create ──────────────────────

// Create puts a person on an operation's roster. The entry's quota is
// charged against the operation counter matching its person type, with the
// operation row locked while the consumption sum is checked.
func (s *scheduleEntryService) Create(ctx context.Context, req *dto.CreateEntryRequest, actor model.Actor) (*model.ScheduleEntry, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrEntryWindow
	}
	personType := model.PersonType(req.PersonType)

	var entry *model.ScheduleEntry
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		op, err := tx.Operation.GetForUpdate(ctx, req.OperationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOperationNotFound
			}
			return err
		}
		event, err := tx.Event.GetForUpdate(ctx, op.EventID)
		if err != nil {
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: op.OrgUnitID, DirectorateID: dist.DirectorateID}
		frozen := op.Status == model.StatusHomologated || event.Status == model.StatusHomologated
		if err := canMutate(actor, levelEntry, node, frozen); err != nil {
			return err
		}

		consumed, err := tx.ScheduleEntry.SumByOperation(ctx, op.ID, 0)
		if err != nil {
			return err
		}
		proposedOfficers, proposedEnlisted := 0, 0
		if personType == model.PersonOfficer {
			proposedOfficers = req.Quota
		} else {
			proposedEnlisted = req.Quota
		}
		if err := checkSiblingSum(levelEntry.String(), consumed,
			proposedOfficers, proposedEnlisted,
			op.OfficersQuota, op.EnlistedQuota); err != nil {
			return err
		}

		entry = &model.ScheduleEntry{
			OperationID:   op.ID,
			EventID:       op.EventID,
			OrgUnitID:     op.OrgUnitID,
			FundCode:      op.FundCode,
			PersonRank:    req.PersonRank,
			ServiceNumber: req.ServiceNumber,
			PersonName:    req.PersonName,
			PersonUnit:    req.PersonUnit,
			PersonType:    personType,
			Quota:         req.Quota,
			StartsAt:      req.StartsAt,
			EndsAt:        req.EndsAt,
			Location:      req.Location,
			Duty:          req.Duty,
			Note:          req.Note,
			Status:        model.StatusPending,
		}
		entry.CreatedBy = &actor.UserID
		entry.UpdatedBy = &actor.UserID
		return tx.ScheduleEntry.Create(ctx, entry)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("entry create failed", zap.Uint("operation_id", req.OperationID), zap.Error(err))
		}
		return nil, err
	}
	return entry, nil
}

// ────────────────────── Reads ──────────────────────

func (s *scheduleEntryService) GetByID(ctx context.Context, id uint) (*model.ScheduleEntry, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("entry lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (s *scheduleEntryService) ListByOperation(ctx context.Context, operationID uint) ([]model.ScheduleEntry, error) {
	entries, err := s.repo.ScheduleEntry.ListByOperation(ctx, operationID)
	if err != nil {
		s.logger.Error("entry list failed", zap.Uint("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// ListPersonal is the "my schedule" view. A common user may only query their
// own service number; everyone above that may look anyone up.
func (s *scheduleEntryService) ListPersonal(ctx context.Context, req *dto.PersonalScheduleRequest, actor model.Actor) ([]model.ScheduleEntry, error) {
	if actor.Role == model.RoleCommon && req.ServiceNumber != actor.ServiceNumber {
		return nil, ErrForbidden
	}
	entries, err := s.repo.ScheduleEntry.ListByServiceNumber(ctx, req.ServiceNumber, req.Month, req.Year)
	if err != nil {
		s.logger.Error("personal schedule query failed",
			zap.Int("service_number", req.ServiceNumber), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// PersonalQuota totals one person's consumed quota for a month and values it
// at the configured rates. Same visibility rule as ListPersonal.
func (s *scheduleEntryService) PersonalQuota(ctx context.Context, req *dto.PersonalScheduleRequest, actor model.Actor) (*dto.PersonalQuotaResponse, error) {
	if actor.Role == model.RoleCommon && req.ServiceNumber != actor.ServiceNumber {
		return nil, ErrForbidden
	}
	sum, err := s.repo.ScheduleEntry.SumByServiceNumber(ctx, req.ServiceNumber, req.Month, req.Year)
	if err != nil {
		s.logger.Error("personal quota query failed",
			zap.Int("service_number", req.ServiceNumber), zap.Error(err))
		return nil, err
	}
	resp := &dto.PersonalQuotaResponse{
		ServiceNumber:    req.ServiceNumber,
		Month:            req.Month,
		Year:             req.Year,
		OfficersConsumed: sum.Officers,
		EnlistedConsumed: sum.Enlisted,
		TotalConsumed:    sum.Officers + sum.Enlisted,
		TotalValue:       float64(sum.Officers)*s.officerRate + float64(sum.Enlisted)*s.enlistedRate,
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleEntryService) Update(ctx context.Context, id uint, req *dto.UpdateEntryRequest, actor model.Actor) (*model.ScheduleEntry, error) {
	var updated *model.ScheduleEntry
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		entry, err := tx.ScheduleEntry.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		op, err := tx.Operation.GetForUpdate(ctx, entry.OperationID)
		if err != nil {
			return err
		}
		event, err := tx.Event.GetByID(ctx, op.EventID)
		if err != nil {
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: op.OrgUnitID, DirectorateID: dist.DirectorateID}
		frozen := entry.Status == model.StatusHomologated ||
			op.Status == model.StatusHomologated ||
			event.Status == model.StatusHomologated
		if err := canMutate(actor, levelEntry, node, frozen); err != nil {
			return err
		}
		if req.OperationID != nil && *req.OperationID != entry.OperationID {
			return ErrParentChange
		}

		startsAt := entry.StartsAt
		endsAt := entry.EndsAt
		if req.StartsAt != nil {
			startsAt = *req.StartsAt
		}
		if req.EndsAt != nil {
			endsAt = *req.EndsAt
		}
		if !endsAt.After(startsAt) {
			return ErrEntryWindow
		}

		if req.Quota != nil && *req.Quota != entry.Quota {
			consumed, err := tx.ScheduleEntry.SumByOperation(ctx, op.ID, entry.ID)
			if err != nil {
				return err
			}
			proposedOfficers, proposedEnlisted := 0, 0
			if entry.PersonType == model.PersonOfficer {
				proposedOfficers = *req.Quota
			} else {
				proposedEnlisted = *req.Quota
			}
			if err := checkSiblingSum(levelEntry.String(), consumed,
				proposedOfficers, proposedEnlisted,
				op.OfficersQuota, op.EnlistedQuota); err != nil {
				return err
			}
			entry.Quota = *req.Quota
		}

		if req.PersonRank != nil {
			entry.PersonRank = *req.PersonRank
		}
		if req.PersonName != nil {
			entry.PersonName = *req.PersonName
		}
		if req.PersonUnit != nil {
			entry.PersonUnit = *req.PersonUnit
		}
		if req.Location != nil {
			entry.Location = *req.Location
		}
		if req.Duty != nil {
			entry.Duty = *req.Duty
		}
		if req.Note != nil {
			entry.Note = *req.Note
		}
		entry.StartsAt = startsAt
		entry.EndsAt = endsAt
		entry.UpdatedBy = &actor.UserID
		updated = entry
		return tx.ScheduleEntry.Update(ctx, entry)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("entry update failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── TransitionStatus ──────────────────────

func (s *scheduleEntryService) TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.ScheduleEntry, error) {
	var updated *model.ScheduleEntry
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		entry, err := tx.ScheduleEntry.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		op, err := tx.Operation.GetByID(ctx, entry.OperationID)
		if err != nil {
			return err
		}
		event, err := tx.Event.GetByID(ctx, op.EventID)
		if err != nil {
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: entry.OrgUnitID, DirectorateID: dist.DirectorateID}
		if err := canTransition(actor, levelEntry, node, entry.Status, next); err != nil {
			return err
		}
		entry.Status = next
		entry.UpdatedBy = &actor.UserID
		updated = entry
		return tx.ScheduleEntry.Update(ctx, entry)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("entry transition failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── SetObs ──────────────────────

// SetObs annotates the entry. An empty obs clears the previous one; author
// and time are always recorded.
func (s *scheduleEntryService) SetObs(ctx context.Context, id uint, obs string, actor model.Actor) (*model.ScheduleEntry, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	node, frozen, err := s.entryScope(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := canMutate(actor, levelEntry, node, frozen); err != nil {
		return nil, err
	}
	now := time.Now()
	entry.Obs = obs
	entry.ObsAuthorID = &actor.UserID
	entry.ObsUpdatedAt = &now
	if err := s.repo.ScheduleEntry.SetObs(ctx, entry); err != nil {
		s.logger.Error("entry obs update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleEntryService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		entry, err := tx.ScheduleEntry.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		op, err := tx.Operation.GetForUpdate(ctx, entry.OperationID)
		if err != nil {
			return err
		}
		event, err := tx.Event.GetByID(ctx, op.EventID)
		if err != nil {
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: entry.OrgUnitID, DirectorateID: dist.DirectorateID}
		frozen := entry.Status == model.StatusHomologated ||
			op.Status == model.StatusHomologated ||
			event.Status == model.StatusHomologated
		if err := canMutate(actor, levelEntry, node, frozen); err != nil {
			return err
		}
		return tx.ScheduleEntry.Delete(ctx, entry.ID)
	})
}

// ────────────────────── Comments ──────────────────────

// AddComment attaches a remark to the entry. Commenting follows the entry's
// scope but stays open after homologation, remarks are part of the review
// trail rather than roster mutations.
func (s *scheduleEntryService) AddComment(ctx context.Context, entryID uint, text string, actor model.Actor) (*model.EntryComment, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	node, _, err := s.entryScope(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := canMutate(actor, levelEntry, node, false); err != nil {
		return nil, err
	}
	comment := &model.EntryComment{
		EntryID:  entryID,
		AuthorID: actor.UserID,
		Text:     text,
	}
	if err := s.repo.ScheduleEntry.AddComment(ctx, comment); err != nil {
		s.logger.Error("comment create failed", zap.Uint("entry_id", entryID), zap.Error(err))
		return nil, err
	}
	return comment, nil
}

func (s *scheduleEntryService) ListComments(ctx context.Context, entryID uint) ([]model.EntryComment, error) {
	comments, err := s.repo.ScheduleEntry.ListComments(ctx, entryID)
	if err != nil {
		s.logger.Error("comment list failed", zap.Uint("entry_id", entryID), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a remark. Only its author or a privileged role may
// do so.
func (s *scheduleEntryService) DeleteComment(ctx context.Context, entryID, commentID uint, actor model.Actor) error {
	comment, err := s.repo.ScheduleEntry.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.EntryID != entryID {
		return ErrCommentNotFound
	}
	if comment.AuthorID != actor.UserID && !actor.Role.Privileged() {
		return ErrForbidden
	}
	if err := s.repo.ScheduleEntry.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("comment delete failed", zap.Uint("comment_id", commentID), zap.Error(err))
		return err
	}
	return nil
}
