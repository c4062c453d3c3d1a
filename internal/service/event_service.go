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

// ── Event business errors ──

var ErrEventNotFound = errors.New("event not found")

// EventService manages the organizational-unit slices of a distribution.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, actor model.Actor) (*model.Event, error)
	GetByID(ctx context.Context, id uint) (*dto.EventUsageResponse, error)
	List(ctx context.Context, req *dto.EventListRequest, actor model.Actor) ([]dto.EventUsageResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateEventRequest, actor model.Actor) (*model.Event, error)
	TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.Event, error)
	HomologateMonth(ctx context.Context, req *dto.HomologateMonthRequest, actor model.Actor) (int64, error)
	Delete(ctx context.Context, id uint, actor model.Actor) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService creates the EventService.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create grants part of a distribution to a unit, with the distribution row
// locked while the sibling sum is checked. Fund code, month and year are
// copied down.
func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, actor model.Actor) (*model.Event, error) {
	kind := model.ScheduleRegular
	if req.ScheduleKind != "" {
		kind = model.ScheduleKind(req.ScheduleKind)
	}
	if kind == model.ScheduleLate && !actor.Role.Privileged() {
		return nil, ErrLateEvent
	}

	var event *model.Event
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		dist, err := tx.Distribution.GetForUpdate(ctx, req.DistributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDistributionNotFound
			}
			return err
		}
		node := nodeScope{OrgUnitID: req.OrgUnitID, DirectorateID: dist.DirectorateID}
		if err := canMutate(actor, levelEvent, node, false); err != nil {
			return err
		}

		siblings, err := tx.Event.SumSiblings(ctx, dist.ID, 0)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelEvent.String(), siblings,
			req.OfficersQuota, req.EnlistedQuota,
			dist.OfficersQuota, dist.EnlistedQuota); err != nil {
			return err
		}

		event = &model.Event{
			DistributionID: dist.ID,
			OrgUnitID:      req.OrgUnitID,
			Name:           req.Name,
			FundCode:       dist.FundCode,
			Month:          dist.Month,
			Year:           dist.Year,
			OfficersQuota:  req.OfficersQuota,
			EnlistedQuota:  req.EnlistedQuota,
			ScheduleKind:   kind,
			Status:         model.StatusPending,
		}
		event.CreatedBy = &actor.UserID
		event.UpdatedBy = &actor.UserID
		return tx.Event.Create(ctx, event)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("event create failed", zap.Uint("distribution_id", req.DistributionID), zap.Error(err))
		}
		return nil, err
	}
	return event, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *eventService) GetByID(ctx context.Context, id uint) (*dto.EventUsageResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("event lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.toUsageResponse(ctx, event)
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, req *dto.EventListRequest, actor model.Actor) ([]dto.EventUsageResponse, error) {
	filter := repository.EventFilter{
		Month:          req.Month,
		Year:           req.Year,
		FundCode:       req.FundCode,
		DistributionID: req.DistributionID,
		OrgUnitID:      req.OrgUnitID,
		DirectorateID:  req.DirectorateID,
		OrgUnitMin:     req.OrgUnitMin,
		OrgUnitMax:     req.OrgUnitMax,
	}
	// scoping: directors see their directorate, unit roles their own unit;
	// a zero assignment means no visibility, not an unscoped query
	if !actor.Role.Privileged() && actor.Role != model.RoleSuperintendent {
		if actor.Role == model.RoleDirector {
			if actor.DirectorateID == 0 {
				return []dto.EventUsageResponse{}, nil
			}
			filter.DirectorateID = actor.DirectorateID
		} else {
			if actor.OrgUnitID == 0 {
				return []dto.EventUsageResponse{}, nil
			}
			filter.OrgUnitID = actor.OrgUnitID
		}
	}

	events, err := s.repo.Event.List(ctx, filter)
	if err != nil {
		s.logger.Error("event list failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventUsageResponse, 0, len(events))
	for i := range events {
		resp, err := s.toUsageResponse(ctx, &events[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, id uint, req *dto.UpdateEventRequest, actor model.Actor) (*model.Event, error) {
	var updated *model.Event
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		event, err := tx.Event.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		dist, err := tx.Distribution.GetForUpdate(ctx, event.DistributionID)
		if err != nil {
			return err
		}

		node := nodeScope{OrgUnitID: event.OrgUnitID, DirectorateID: dist.DirectorateID}
		frozen := event.Status == model.StatusHomologated
		if err := canMutate(actor, levelEvent, node, frozen); err != nil {
			return err
		}
		if event.ScheduleKind == model.ScheduleLate && !actor.Role.Privileged() {
			return ErrLateEvent
		}
		if req.DistributionID != nil && *req.DistributionID != event.DistributionID {
			return ErrParentChange
		}

		childCount, err := tx.Operation.CountByEvent(ctx, event.ID)
		if err != nil {
			return err
		}
		if req.OrgUnitID != nil && *req.OrgUnitID != event.OrgUnitID {
			if childCount > 0 {
				return ErrParentChange
			}
			if err := canMutate(actor, levelEvent, nodeScope{OrgUnitID: *req.OrgUnitID, DirectorateID: dist.DirectorateID}, frozen); err != nil {
				return err
			}
			event.OrgUnitID = *req.OrgUnitID
		}

		officers := event.OfficersQuota
		enlisted := event.EnlistedQuota
		if req.OfficersQuota != nil {
			officers = *req.OfficersQuota
		}
		if req.EnlistedQuota != nil {
			enlisted = *req.EnlistedQuota
		}

		siblings, err := tx.Event.SumSiblings(ctx, dist.ID, event.ID)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelEvent.String(), siblings,
			officers, enlisted, dist.OfficersQuota, dist.EnlistedQuota); err != nil {
			return err
		}
		consumed, err := tx.Operation.SumSiblings(ctx, event.ID, 0)
		if err != nil {
			return err
		}
		if err := checkConsumedFloor(levelEvent.String(), consumed, officers, enlisted); err != nil {
			return err
		}

		if req.Name != nil {
			event.Name = *req.Name
		}
		event.OfficersQuota = officers
		event.EnlistedQuota = enlisted
		event.UpdatedBy = &actor.UserID
		updated = event
		return tx.Event.Update(ctx, event)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("event update failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── TransitionStatus ──────────────────────

// TransitionStatus moves the event along the workflow. Homologation is
// restricted to privileged roles, except that a unit actor may homologate
// their own unit's event (and can never demote it afterwards).
func (s *eventService) TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.Event, error) {
	var updated *model.Event
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		event, err := tx.Event.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: event.OrgUnitID, DirectorateID: dist.DirectorateID}
		if err := canTransition(actor, levelEvent, node, event.Status, next); err != nil {
			return err
		}
		event.Status = next
		event.UpdatedBy = &actor.UserID
		updated = event
		return tx.Event.Update(ctx, event)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("event transition failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── HomologateMonth ──────────────────────

// HomologateMonth closes every non-homologated event of the month in one
// statement. Privileged roles may close any unit's events (or all units when
// OrgUnitID is zero); everyone else only their own unit.
func (s *eventService) HomologateMonth(ctx context.Context, req *dto.HomologateMonthRequest, actor model.Actor) (int64, error) {
	orgUnitID := req.OrgUnitID
	if !actor.Role.Privileged() {
		if actor.OrgUnitID == 0 || orgUnitID != actor.OrgUnitID {
			return 0, ErrForbidden
		}
	}
	n, err := s.repo.Event.HomologateMonth(ctx, req.Month, req.Year, orgUnitID)
	if err != nil {
		s.logger.Error("bulk homologation failed",
			zap.Int("month", req.Month), zap.Int("year", req.Year),
			zap.Uint("org_unit_id", orgUnitID), zap.Error(err))
		return 0, err
	}
	s.logger.Info("month homologated",
		zap.Int("month", req.Month), zap.Int("year", req.Year),
		zap.Uint("org_unit_id", orgUnitID), zap.Int64("events", n))
	return n, nil
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		event, err := tx.Event.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		dist, err := tx.Distribution.GetByID(ctx, event.DistributionID)
		if err != nil {
			return err
		}
		node := nodeScope{OrgUnitID: event.OrgUnitID, DirectorateID: dist.DirectorateID}
		frozen := event.Status == model.StatusHomologated
		if err := canMutate(actor, levelEvent, node, frozen); err != nil {
			return err
		}
		n, err := tx.Operation.CountByEvent(ctx, event.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrHasChildren
		}
		return tx.Event.Delete(ctx, event.ID)
	})
}

// ────────────────────── helpers ──────────────────────

func (s *eventService) toUsageResponse(ctx context.Context, e *model.Event) (*dto.EventUsageResponse, error) {
	used, err := s.repo.Operation.SumSiblings(ctx, e.ID, 0)
	if err != nil {
		s.logger.Error("event usage rollup failed", zap.Uint("id", e.ID), zap.Error(err))
		return nil, err
	}
	resp := &dto.EventUsageResponse{
		ID:            e.ID,
		Name:          e.Name,
		OrgUnitID:     e.OrgUnitID,
		FundCode:      e.FundCode,
		Month:         e.Month,
		Year:          e.Year,
		ScheduleKind:  string(e.ScheduleKind),
		Status:        string(e.Status),
		OfficersQuota: e.OfficersQuota,
		EnlistedQuota: e.EnlistedQuota,
		OfficersUsed:  used.Officers,
		EnlistedUsed:  used.Enlisted,
	}
	if e.OrgUnit != nil {
		resp.OrgUnitName = e.OrgUnit.Name
	}
	return resp, nil
}
