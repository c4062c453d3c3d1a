package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Distribution business errors ──

var ErrDistributionNotFound = errors.New("distribution not found")

// DistributionService manages the directorate slices of a ceiling.
type DistributionService interface {
	Create(ctx context.Context, req *dto.CreateDistributionRequest, actor model.Actor) (*model.Distribution, error)
	GetByID(ctx context.Context, id uint) (*dto.DistributionUsageResponse, error)
	List(ctx context.Context, req *dto.DistributionListRequest, actor model.Actor) ([]dto.DistributionUsageResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDistributionRequest, actor model.Actor) (*model.Distribution, error)
	Delete(ctx context.Context, id uint, actor model.Actor) error
}

type distributionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDistributionService creates the DistributionService.
func NewDistributionService(repo *repository.Repository, logger *zap.Logger) DistributionService {
	return &distributionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create slices part of a ceiling to a directorate. The sibling sum check
// runs with the ceiling row locked so concurrent creations cannot jointly
// overshoot it. Fund code, month and year are copied down from the ceiling.
func (s *distributionService) Create(ctx context.Context, req *dto.CreateDistributionRequest, actor model.Actor) (*model.Distribution, error) {
	if err := canMutate(actor, levelDistribution, nodeScope{DirectorateID: req.DirectorateID}, false); err != nil {
		return nil, err
	}

	var dist *model.Distribution
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		ceiling, err := tx.Ceiling.GetForUpdate(ctx, req.CeilingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCeilingNotFound
			}
			return err
		}

		siblings, err := tx.Distribution.SumSiblings(ctx, ceiling.ID, 0)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelDistribution.String(), siblings,
			req.OfficersQuota, req.EnlistedQuota,
			ceiling.OfficersCeiling, ceiling.EnlistedCeiling); err != nil {
			return err
		}

		dist = &model.Distribution{
			CeilingID:     ceiling.ID,
			DirectorateID: req.DirectorateID,
			Name:          req.Name,
			FundCode:      ceiling.FundCode,
			Month:         ceiling.Month,
			Year:          ceiling.Year,
			OfficersQuota: req.OfficersQuota,
			EnlistedQuota: req.EnlistedQuota,
		}
		dist.CreatedBy = &actor.UserID
		dist.UpdatedBy = &actor.UserID
		return tx.Distribution.Create(ctx, dist)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("distribution create failed", zap.Uint("ceiling_id", req.CeilingID), zap.Error(err))
		}
		return nil, err
	}
	return dist, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *distributionService) GetByID(ctx context.Context, id uint) (*dto.DistributionUsageResponse, error) {
	dist, err := s.repo.Distribution.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistributionNotFound
		}
		s.logger.Error("distribution lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.toUsageResponse(ctx, dist)
}

// ────────────────────── List ──────────────────────

func (s *distributionService) List(ctx context.Context, req *dto.DistributionListRequest, actor model.Actor) ([]dto.DistributionUsageResponse, error) {
	filter := repository.DistributionFilter{
		Month:         req.Month,
		Year:          req.Year,
		FundCode:      req.FundCode,
		DirectorateID: req.DirectorateID,
	}
	// non-privileged directorate members only see their own slice; an actor
	// without an assignment has no slice at all (DirectorateID 0 would read
	// as "no filter" and leak every directorate)
	if !actor.Role.Privileged() && actor.Role != model.RoleSuperintendent {
		if actor.DirectorateID == 0 {
			return []dto.DistributionUsageResponse{}, nil
		}
		filter.DirectorateID = actor.DirectorateID
	}

	dists, err := s.repo.Distribution.List(ctx, filter)
	if err != nil {
		s.logger.Error("distribution list failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DistributionUsageResponse, 0, len(dists))
	for i := range dists {
		resp, err := s.toUsageResponse(ctx, &dists[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update resizes or renames a distribution. Growing re-checks the ceiling
// with the parent locked; shrinking re-checks against what the events below
// already hold. Overshoot on update is a hard failure, same as on create.
func (s *distributionService) Update(ctx context.Context, id uint, req *dto.UpdateDistributionRequest, actor model.Actor) (*model.Distribution, error) {
	var updated *model.Distribution
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		dist, err := tx.Distribution.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDistributionNotFound
			}
			return err
		}
		if err := canMutate(actor, levelDistribution, nodeScope{DirectorateID: dist.DirectorateID}, false); err != nil {
			return err
		}
		if req.CeilingID != nil && *req.CeilingID != dist.CeilingID {
			return ErrParentChange
		}

		childCount, err := tx.Event.CountByDistribution(ctx, dist.ID)
		if err != nil {
			return err
		}
		if req.DirectorateID != nil && *req.DirectorateID != dist.DirectorateID {
			if childCount > 0 {
				return ErrParentChange
			}
			if err := canMutate(actor, levelDistribution, nodeScope{DirectorateID: *req.DirectorateID}, false); err != nil {
				return err
			}
			dist.DirectorateID = *req.DirectorateID
		}

		officers := dist.OfficersQuota
		enlisted := dist.EnlistedQuota
		if req.OfficersQuota != nil {
			officers = *req.OfficersQuota
		}
		if req.EnlistedQuota != nil {
			enlisted = *req.EnlistedQuota
		}

		ceiling, err := tx.Ceiling.GetForUpdate(ctx, dist.CeilingID)
		if err != nil {
			return err
		}
		siblings, err := tx.Distribution.SumSiblings(ctx, dist.CeilingID, dist.ID)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelDistribution.String(), siblings,
			officers, enlisted, ceiling.OfficersCeiling, ceiling.EnlistedCeiling); err != nil {
			return err
		}
		consumed, err := tx.Event.SumSiblings(ctx, dist.ID, 0)
		if err != nil {
			return err
		}
		if err := checkConsumedFloor(levelDistribution.String(), consumed, officers, enlisted); err != nil {
			return err
		}

		if req.Name != nil {
			dist.Name = *req.Name
		}
		dist.OfficersQuota = officers
		dist.EnlistedQuota = enlisted
		dist.UpdatedBy = &actor.UserID
		updated = dist
		return tx.Distribution.Update(ctx, dist)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("distribution update failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

// Delete requires zero events below, for every role. Privilege bypasses the
// freeze and the scoping, never referential emptiness.
func (s *distributionService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		dist, err := tx.Distribution.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDistributionNotFound
			}
			return err
		}
		if err := canMutate(actor, levelDistribution, nodeScope{DirectorateID: dist.DirectorateID}, false); err != nil {
			return err
		}
		n, err := tx.Event.CountByDistribution(ctx, dist.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrHasChildren
		}
		return tx.Distribution.Delete(ctx, dist.ID)
	})
}

// ────────────────────── helpers ──────────────────────

func (s *distributionService) toUsageResponse(ctx context.Context, d *model.Distribution) (*dto.DistributionUsageResponse, error) {
	used, err := s.repo.Event.SumSiblings(ctx, d.ID, 0)
	if err != nil {
		s.logger.Error("distribution usage rollup failed", zap.Uint("id", d.ID), zap.Error(err))
		return nil, err
	}
	resp := &dto.DistributionUsageResponse{
		ID:            d.ID,
		CeilingID:     d.CeilingID,
		DirectorateID: d.DirectorateID,
		Name:          d.Name,
		FundCode:      d.FundCode,
		Month:         d.Month,
		Year:          d.Year,
		OfficersQuota: d.OfficersQuota,
		EnlistedQuota: d.EnlistedQuota,
		OfficersUsed:  used.Officers,
		EnlistedUsed:  used.Enlisted,
	}
	if d.Directorate != nil {
		resp.DirectorateName = d.Directorate.Name
	}
	return resp, nil
}
