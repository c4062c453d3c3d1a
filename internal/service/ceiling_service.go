package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Ceiling business errors ──

var (
	ErrCeilingNotFound = errors.New("ceiling not found")
	ErrCeilingExists   = errors.New("a ceiling already exists for this fund code, month and year")
)

// CeilingService manages the monthly funding-line quota pools.
type CeilingService interface {
	Create(ctx context.Context, req *dto.CreateCeilingRequest, actor model.Actor) (*model.Ceiling, error)
	GetByID(ctx context.Context, id uint) (*dto.CeilingUsageResponse, error)
	List(ctx context.Context, month, year int, actor model.Actor) ([]dto.CeilingUsageResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCeilingRequest, actor model.Actor) (*model.Ceiling, error)
	SetSubmissionStatus(ctx context.Context, id uint, status model.SubmissionStatus, actor model.Actor) (*model.Ceiling, error)
	SetPaymentStatus(ctx context.Context, id uint, status model.PaymentStatus, actor model.Actor) (*model.Ceiling, error)
	Delete(ctx context.Context, id uint, actor model.Actor) error
}

type ceilingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCeilingService creates the CeilingService.
func NewCeilingService(repo *repository.Repository, logger *zap.Logger) CeilingService {
	return &ceilingService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *ceilingService) Create(ctx context.Context, req *dto.CreateCeilingRequest, actor model.Actor) (*model.Ceiling, error) {
	if err := canMutate(actor, levelCeiling, nodeScope{}, false); err != nil {
		return nil, err
	}

	if _, err := s.repo.Ceiling.GetByKey(ctx, req.FundCode, req.Month, req.Year); err == nil {
		return nil, ErrCeilingExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("ceiling lookup failed", zap.Int("fund_code", req.FundCode), zap.Error(err))
		return nil, err
	}

	ceiling := &model.Ceiling{
		FundName:        req.FundName,
		FundCode:        req.FundCode,
		Month:           req.Month,
		Year:            req.Year,
		OfficersCeiling: req.OfficersCeiling,
		EnlistedCeiling: req.EnlistedCeiling,
		Status:          model.SubmissionNotSent,
		PaymentStatus:   model.PaymentPending,
	}
	ceiling.CreatedBy = &actor.UserID
	ceiling.UpdatedBy = &actor.UserID

	if err := s.repo.Ceiling.Create(ctx, ceiling); err != nil {
		// a concurrent insert can slip past the lookup above; the unique
		// index on (fund_code, month, year) still reports it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCeilingExists
		}
		s.logger.Error("ceiling create failed", zap.Int("fund_code", req.FundCode), zap.Error(err))
		return nil, err
	}
	return ceiling, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *ceilingService) GetByID(ctx context.Context, id uint) (*dto.CeilingUsageResponse, error) {
	ceiling, err := s.repo.Ceiling.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCeilingNotFound
		}
		s.logger.Error("ceiling lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.toUsageResponse(ctx, ceiling)
}

// ────────────────────── List ──────────────────────

// List returns the month's ceilings with their allocation rollups. A
// unit-scoped actor only sees the funding lines their unit holds events in.
func (s *ceilingService) List(ctx context.Context, month, year int, actor model.Actor) ([]dto.CeilingUsageResponse, error) {
	var (
		ceilings []model.Ceiling
		err      error
	)
	if actor.Role.Privileged() || actor.Role == model.RoleSuperintendent || actor.Role == model.RoleDirector {
		ceilings, err = s.repo.Ceiling.List(ctx, month, year)
	} else {
		var codes []int
		codes, err = s.repo.Event.DistinctFundCodes(ctx, actor.OrgUnitID, month, year)
		if err == nil {
			ceilings, err = s.repo.Ceiling.ListByFundCodes(ctx, month, year, codes)
		}
	}
	if err != nil {
		s.logger.Error("ceiling list failed", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CeilingUsageResponse, 0, len(ceilings))
	for i := range ceilings {
		resp, err := s.toUsageResponse(ctx, &ceilings[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update resizes the ceiling counters. The new values must cover what the
// distributions below have already been allocated.
func (s *ceilingService) Update(ctx context.Context, id uint, req *dto.UpdateCeilingRequest, actor model.Actor) (*model.Ceiling, error) {
	if err := canMutate(actor, levelCeiling, nodeScope{}, false); err != nil {
		return nil, err
	}

	var updated *model.Ceiling
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		ceiling, err := tx.Ceiling.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCeilingNotFound
			}
			return err
		}

		officers := ceiling.OfficersCeiling
		enlisted := ceiling.EnlistedCeiling
		if req.OfficersCeiling != nil {
			officers = *req.OfficersCeiling
		}
		if req.EnlistedCeiling != nil {
			enlisted = *req.EnlistedCeiling
		}

		allocated, err := tx.Distribution.SumSiblings(ctx, ceiling.ID, 0)
		if err != nil {
			return err
		}
		if err := checkConsumedFloor(levelCeiling.String(), allocated, officers, enlisted); err != nil {
			return err
		}

		ceiling.OfficersCeiling = officers
		ceiling.EnlistedCeiling = enlisted
		ceiling.UpdatedBy = &actor.UserID
		updated = ceiling
		return tx.Ceiling.Update(ctx, ceiling)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("ceiling update failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Status flags ──────────────────────

func (s *ceilingService) SetSubmissionStatus(ctx context.Context, id uint, status model.SubmissionStatus, actor model.Actor) (*model.Ceiling, error) {
	if err := canMutate(actor, levelCeiling, nodeScope{}, false); err != nil {
		return nil, err
	}
	ceiling, err := s.repo.Ceiling.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCeilingNotFound
		}
		return nil, err
	}
	if ceiling.Status != status {
		now := time.Now()
		ceiling.Status = status
		ceiling.StatusChangedAt = &now
		ceiling.UpdatedBy = &actor.UserID
		if err := s.repo.Ceiling.Update(ctx, ceiling); err != nil {
			s.logger.Error("ceiling status update failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
	}
	return ceiling, nil
}

func (s *ceilingService) SetPaymentStatus(ctx context.Context, id uint, status model.PaymentStatus, actor model.Actor) (*model.Ceiling, error) {
	if err := canMutate(actor, levelCeiling, nodeScope{}, false); err != nil {
		return nil, err
	}
	ceiling, err := s.repo.Ceiling.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCeilingNotFound
		}
		return nil, err
	}
	if ceiling.PaymentStatus != status {
		now := time.Now()
		ceiling.PaymentStatus = status
		ceiling.PaymentChangedAt = &now
		ceiling.UpdatedBy = &actor.UserID
		if err := s.repo.Ceiling.Update(ctx, ceiling); err != nil {
			s.logger.Error("ceiling payment status update failed", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
	}
	return ceiling, nil
}

// ────────────────────── Delete ──────────────────────

func (s *ceilingService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	if err := canMutate(actor, levelCeiling, nodeScope{}, false); err != nil {
		return err
	}
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Ceiling.GetForUpdate(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCeilingNotFound
			}
			return err
		}
		n, err := tx.Distribution.CountByCeiling(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrHasChildren
		}
		return tx.Ceiling.Delete(ctx, id)
	})
}

// ────────────────────── helpers ──────────────────────

func (s *ceilingService) toUsageResponse(ctx context.Context, c *model.Ceiling) (*dto.CeilingUsageResponse, error) {
	allocated, err := s.repo.Distribution.SumSiblings(ctx, c.ID, 0)
	if err != nil {
		s.logger.Error("ceiling allocation rollup failed", zap.Uint("id", c.ID), zap.Error(err))
		return nil, err
	}
	return &dto.CeilingUsageResponse{
		ID:                c.ID,
		FundName:          c.FundName,
		FundCode:          c.FundCode,
		Month:             c.Month,
		Year:              c.Year,
		OfficersCeiling:   c.OfficersCeiling,
		EnlistedCeiling:   c.EnlistedCeiling,
		OfficersAllocated: allocated.Officers,
		EnlistedAllocated: allocated.Enlisted,
		OfficersAvailable: c.OfficersCeiling - allocated.Officers,
		EnlistedAvailable: c.EnlistedCeiling - allocated.Enlisted,
		Status:            string(c.Status),
		PaymentStatus:     string(c.PaymentStatus),
	}, nil
}

// isBusinessError tells validation rejections apart from infrastructure
// failures so the latter get logged and the former stay quiet.
func isBusinessError(err error) bool {
	var qe *QuotaExceededError
	var be *BelowConsumedError
	return errors.As(err, &qe) || errors.As(err, &be) ||
		errors.Is(err, ErrForbidden) || errors.Is(err, ErrFrozen) ||
		errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrParentChange) ||
		errors.Is(err, ErrHasChildren) || errors.Is(err, ErrLateEvent) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}
