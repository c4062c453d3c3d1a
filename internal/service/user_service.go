package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── User business errors ──

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLoginTaken   = errors.New("login already in use")
	ErrInvalidRole  = errors.New("unknown role")
)

// UserService manages accounts. Only privileged roles administer users.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, actor model.Actor) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest, actor model.Actor) ([]dto.UserResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, actor model.Actor) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
	Delete(ctx context.Context, id uint, actor model.Actor) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, actor model.Actor) (*dto.UserResponse, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if _, err := s.repo.User.GetByLogin(ctx, req.Login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("user lookup failed", zap.String("login", req.Login), zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:          req.Name,
		Login:         req.Login,
		PasswordHash:  string(hash),
		Role:          role,
		ServiceNumber: req.ServiceNumber,
		OrgUnitID:     req.OrgUnitID,
	}
	user.CreatedBy = &actor.UserID
	user.UpdatedBy = &actor.UserID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.String("login", req.Login), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest, actor model.Actor) ([]dto.UserResponse, error) {
	orgUnitID := req.OrgUnitID
	if !actor.Role.Privileged() {
		orgUnitID = actor.OrgUnitID
	}
	users, err := s.repo.User.List(ctx, orgUnitID)
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, actor model.Actor) (*dto.UserResponse, error) {
	if !actor.Role.Privileged() {
		return nil, ErrForbidden
	}
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if req.ServiceNumber != nil {
		user.ServiceNumber = *req.ServiceNumber
	}
	if req.OrgUnitID != nil {
		user.OrgUnitID = req.OrgUnitID
	}
	user.UpdatedBy = &actor.UserID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("user update failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *userService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedBy = &userID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password change failed", zap.Uint("id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id uint, actor model.Actor) error {
	if !actor.Role.Privileged() {
		return ErrForbidden
	}
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id)
}
