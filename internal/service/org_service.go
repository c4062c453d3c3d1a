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

// ── Org reference-table business errors ──

var (
	ErrDirectorateNotFound = errors.New("directorate not found")
	ErrOrgUnitNotFound     = errors.New("organizational unit not found")
)

// OrgService manages the directorate and unit reference tables. Lookups are
// open to every authenticated role; mutations are privileged.
type OrgService interface {
	CreateDirectorate(ctx context.Context, req *dto.CreateDirectorateRequest, actor model.Actor) (*model.Directorate, error)
	ListDirectorates(ctx context.Context) ([]model.Directorate, error)
	UpdateDirectorate(ctx context.Context, id uint, req *dto.UpdateDirectorateRequest, actor model.Actor) (*model.Directorate, error)
	DeleteDirectorate(ctx context.Context, id uint, actor model.Actor) error

	CreateOrgUnit(ctx context.Context, req *dto.CreateOrgUnitRequest, actor model.Actor) (*model.OrgUnit, error)
	GetOrgUnit(ctx context.Context, id uint) (*model.OrgUnit, error)
	ListOrgUnits(ctx context.Context, directorateID uint) ([]model.OrgUnit, error)
	UpdateOrgUnit(ctx context.Context, id uint, req *dto.UpdateOrgUnitRequest, actor model.Actor) (*model.OrgUnit, error)
	DeleteOrgUnit(ctx context.Context, id uint, actor model.Actor) error
}

type orgService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrgService creates the OrgService.
func NewOrgService(repo *repository.Repository, logger *zap.Logger) OrgService {
	return &orgService{repo: repo, logger: logger}
}

// ────────────────────── Directorates ──────────────────────

func (s *orgService) CreateDirectorate(ctx context.Context, req *dto.CreateDirectorateRequest, actor model.Actor) (*model.Directorate, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	d := &model.Directorate{Name: req.Name}
	d.CreatedBy = &actor.UserID
	d.UpdatedBy = &actor.UserID
	if err := s.repo.Directorate.Create(ctx, d); err != nil {
		s.logger.Error("directorate create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *orgService) ListDirectorates(ctx context.Context) ([]model.Directorate, error) {
	ds, err := s.repo.Directorate.List(ctx)
	if err != nil {
		s.logger.Error("directorate list failed", zap.Error(err))
		return nil, err
	}
	return ds, nil
}

func (s *orgService) UpdateDirectorate(ctx context.Context, id uint, req *dto.UpdateDirectorateRequest, actor model.Actor) (*model.Directorate, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	d, err := s.repo.Directorate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDirectorateNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	d.UpdatedBy = &actor.UserID
	if err := s.repo.Directorate.Update(ctx, d); err != nil {
		s.logger.Error("directorate update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *orgService) DeleteDirectorate(ctx context.Context, id uint, actor model.Actor) error {
	if !actor.Role.Privileged() {
		return ErrForbidden
	}
	d, err := s.repo.Directorate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDirectorateNotFound
		}
		return err
	}
	if len(d.OrgUnits) > 0 {
		return ErrHasChildren
	}
	return s.repo.Directorate.Delete(ctx, id)
}

// ────────────────────── Org units ──────────────────────

func (s *orgService) CreateOrgUnit(ctx context.Context, req *dto.CreateOrgUnitRequest, actor model.Actor) (*model.OrgUnit, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	ou := &model.OrgUnit{Name: req.Name, DirectorateID: req.DirectorateID}
	ou.CreatedBy = &actor.UserID
	ou.UpdatedBy = &actor.UserID
	if err := s.repo.OrgUnit.Create(ctx, ou); err != nil {
		s.logger.Error("org unit create failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return ou, nil
}

func (s *orgService) GetOrgUnit(ctx context.Context, id uint) (*model.OrgUnit, error) {
	ou, err := s.repo.OrgUnit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgUnitNotFound
		}
		s.logger.Error("org unit lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return ou, nil
}

func (s *orgService) ListOrgUnits(ctx context.Context, directorateID uint) ([]model.OrgUnit, error) {
	ous, err := s.repo.OrgUnit.List(ctx, directorateID)
	if err != nil {
		s.logger.Error("org unit list failed", zap.Error(err))
		return nil, err
	}
	return ous, nil
}

func (s *orgService) UpdateOrgUnit(ctx context.Context, id uint, req *dto.UpdateOrgUnitRequest, actor model.Actor) (*model.OrgUnit, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	ou, err := s.repo.OrgUnit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgUnitNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		ou.Name = *req.Name
	}
	if req.DirectorateID != nil {
		ou.DirectorateID = req.DirectorateID
	}
	ou.UpdatedBy = &actor.UserID
	if err := s.repo.OrgUnit.Update(ctx, ou); err != nil {
		s.logger.Error("org unit update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return ou, nil
}

func (s *orgService) DeleteOrgUnit(ctx context.Context, id uint, actor model.Actor) error {
	if !actor.Role.Privileged() {
		return ErrForbidden
	}
	if _, err := s.repo.OrgUnit.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrgUnitNotFound
		}
		return err
	}
	return s.repo.OrgUnit.Delete(ctx, id)
}
