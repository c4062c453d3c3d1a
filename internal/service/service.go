package service

import (
	"go.uber.org/zap"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/repository"
	"github.com/caadpo/genesis-backend/pkg/jwt"
	"github.com/caadpo/genesis-backend/pkg/redis"
)

// Service aggregates the business services.
type Service struct {
	Auth          AuthService
	User          UserService
	Org           OrgService
	Ceiling       CeilingService
	Distribution  DistributionService
	Event         EventService
	Operation     OperationService
	ScheduleEntry ScheduleEntryService
	Summary       SummaryService
	Export        ExportService
}

// NewService wires the service aggregate. cache may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	events := NewEventService(repo, logger)
	operations := NewOperationService(repo, logger)
	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, cache, logger),
		User:          NewUserService(repo, logger),
		Org:           NewOrgService(repo, logger),
		Ceiling:       NewCeilingService(repo, logger),
		Distribution:  NewDistributionService(repo, logger),
		Event:         events,
		Operation:     operations,
		ScheduleEntry: NewScheduleEntryService(cfg, repo, logger),
		Summary:       NewSummaryService(cfg, repo, events, logger),
		Export:        NewExportService(operations, logger),
	}
}
