package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Operation business errors ──

var (
	ErrOperationNotFound = errors.New("operation not found")
	ErrCodeExhausted     = errors.New("could not generate a unique operation code")
)

// codeAttempts bounds the collision-retry loop of the public code generator.
const codeAttempts = 20

// OperationService manages the operations consuming an event's quota.
type OperationService interface {
	Create(ctx context.Context, req *dto.CreateOperationRequest, actor model.Actor) (*model.Operation, error)
	GetByID(ctx context.Context, id uint) (*dto.OperationUsageResponse, error)
	GetByCode(ctx context.Context, publicCode string) (*model.Operation, error)
	ListByEvent(ctx context.Context, eventID uint) ([]dto.OperationUsageResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateOperationRequest, actor model.Actor) (*model.Operation, error)
	TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.Operation, error)
	Delete(ctx context.Context, id uint, actor model.Actor) error
}

type operationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOperationService creates the OperationService.
func NewOperationService(repo *repository.Repository, logger *zap.Logger) OperationService {
	return &operationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create opens an operation under an event, with the event row locked while
// the sibling sum is checked. The public code is generated here: a random
// 5-digit prefix over the zero-padded month and year, re-rolled on collision.
func (s *operationService) Create(ctx context.Context, req *dto.CreateOperationRequest, actor model.Actor) (*model.Operation, error) {
	var op *model.Operation
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		event, err := tx.Event.GetForUpdate(ctx, req.EventID)
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
		if err := canMutate(actor, levelOperation, node, frozen); err != nil {
			return err
		}

		siblings, err := tx.Operation.SumSiblings(ctx, event.ID, 0)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelOperation.String(), siblings,
			req.OfficersQuota, req.EnlistedQuota,
			event.OfficersQuota, event.EnlistedQuota); err != nil {
			return err
		}

		code, err := s.generateCode(ctx, tx, event.Month, event.Year)
		if err != nil {
			return err
		}

		op = &model.Operation{
			EventID:       event.ID,
			OrgUnitID:     event.OrgUnitID,
			PublicCode:    code,
			Name:          req.Name,
			FundCode:      event.FundCode,
			Month:         event.Month,
			Year:          event.Year,
			OfficersQuota: req.OfficersQuota,
			EnlistedQuota: req.EnlistedQuota,
			Status:        model.StatusPending,
		}
		op.CreatedBy = &actor.UserID
		op.UpdatedBy = &actor.UserID
		return tx.Operation.Create(ctx, op)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("operation create failed", zap.Uint("event_id", req.EventID), zap.Error(err))
		}
		return nil, err
	}
	return op, nil
}

// ────────────────────── GetByID / GetByCode ──────────────────────

func (s *operationService) GetByID(ctx context.Context, id uint) (*dto.OperationUsageResponse, error) {
	op, err := s.repo.Operation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		s.logger.Error("operation lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.toUsageResponse(ctx, op)
}

// GetByCode returns the fully materialized operation (entries and comments
// included), the shape the roster exporters consume.
func (s *operationService) GetByCode(ctx context.Context, publicCode string) (*model.Operation, error) {
	op, err := s.repo.Operation.GetByCode(ctx, publicCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		s.logger.Error("operation lookup by code failed", zap.String("code", publicCode), zap.Error(err))
		return nil, err
	}
	return op, nil
}

// ────────────────────── ListByEvent ──────────────────────

func (s *operationService) ListByEvent(ctx context.Context, eventID uint) ([]dto.OperationUsageResponse, error) {
	ops, err := s.repo.Operation.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("operation list failed", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.OperationUsageResponse, 0, len(ops))
	for i := range ops {
		resp, err := s.toUsageResponse(ctx, &ops[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *operationService) Update(ctx context.Context, id uint, req *dto.UpdateOperationRequest, actor model.Actor) (*model.Operation, error) {
	var updated *model.Operation
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		op, err := tx.Operation.GetForUpdate(ctx, id)
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
		if err := canMutate(actor, levelOperation, node, frozen); err != nil {
			return err
		}
		if req.EventID != nil && *req.EventID != op.EventID {
			return ErrParentChange
		}

		officers := op.OfficersQuota
		enlisted := op.EnlistedQuota
		if req.OfficersQuota != nil {
			officers = *req.OfficersQuota
		}
		if req.EnlistedQuota != nil {
			enlisted = *req.EnlistedQuota
		}

		siblings, err := tx.Operation.SumSiblings(ctx, event.ID, op.ID)
		if err != nil {
			return err
		}
		if err := checkSiblingSum(levelOperation.String(), siblings,
			officers, enlisted, event.OfficersQuota, event.EnlistedQuota); err != nil {
			return err
		}
		consumed, err := tx.ScheduleEntry.SumByOperation(ctx, op.ID, 0)
		if err != nil {
			return err
		}
		if err := checkConsumedFloor(levelOperation.String(), consumed, officers, enlisted); err != nil {
			return err
		}

		if req.Name != nil {
			op.Name = *req.Name
		}
		op.OfficersQuota = officers
		op.EnlistedQuota = enlisted
		op.UpdatedBy = &actor.UserID
		updated = op
		return tx.Operation.Update(ctx, op)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("operation update failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── TransitionStatus ──────────────────────

func (s *operationService) TransitionStatus(ctx context.Context, id uint, next model.WorkflowStatus, actor model.Actor) (*model.Operation, error) {
	var updated *model.Operation
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		op, err := tx.Operation.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOperationNotFound
			}
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
		if err := canTransition(actor, levelOperation, node, op.Status, next); err != nil {
			return err
		}
		op.Status = next
		op.UpdatedBy = &actor.UserID
		updated = op
		return tx.Operation.Update(ctx, op)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("operation transition failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

func (s *operationService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		op, err := tx.Operation.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOperationNotFound
			}
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
		frozen := op.Status == model.StatusHomologated || event.Status == model.StatusHomologated
		if err := canMutate(actor, levelOperation, node, frozen); err != nil {
			return err
		}
		n, err := tx.ScheduleEntry.CountByOperation(ctx, op.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrHasChildren
		}
		return tx.Operation.Delete(ctx, op.ID)
	})
}

// ────────────────────── helpers ──────────────────────

// generateCode builds "NNNNN/MMYYYY" and re-rolls the prefix until it does
// not collide with an existing operation.
func (s *operationService) generateCode(ctx context.Context, tx *repository.Repository, month, year int) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		prefix := 10000 + rand.Intn(90000)
		code := fmt.Sprintf("%05d/%02d%d", prefix, month, year)
		exists, err := tx.Operation.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

func (s *operationService) toUsageResponse(ctx context.Context, op *model.Operation) (*dto.OperationUsageResponse, error) {
	used, err := s.repo.ScheduleEntry.SumByOperation(ctx, op.ID, 0)
	if err != nil {
		s.logger.Error("operation usage rollup failed", zap.Uint("id", op.ID), zap.Error(err))
		return nil, err
	}
	return &dto.OperationUsageResponse{
		ID:            op.ID,
		EventID:       op.EventID,
		PublicCode:    op.PublicCode,
		Name:          op.Name,
		FundCode:      op.FundCode,
		Month:         op.Month,
		Year:          op.Year,
		Status:        string(op.Status),
		OfficersQuota: op.OfficersQuota,
		EnlistedQuota: op.EnlistedQuota,
		OfficersUsed:  used.Officers,
		EnlistedUsed:  used.Enlisted,
	}, nil
}
