package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Aggregation engine ──
//
// Pure read side: rolls consumption bottom-up, derives the monetary valuation
// (officer rate × count + enlisted rate × count) and the planned − executed
// balance, and merges events sharing an (org unit, fund code) key. Never
// writes; tolerates units without a directorate by reporting them under a
// nil directorate row.

// SummaryService assembles the monthly rollups.
type SummaryService interface {
	Summarize(ctx context.Context, req *dto.EventListRequest, actor model.Actor) (*dto.MonthSummary, error)
}

type summaryService struct {
	repo         *repository.Repository
	events       EventService
	officerRate  float64
	enlistedRate float64
	logger       *zap.Logger
}

// NewSummaryService creates the SummaryService with the configured rates.
func NewSummaryService(cfg *config.Config, repo *repository.Repository, events EventService, logger *zap.Logger) SummaryService {
	return &summaryService{
		repo:         repo,
		events:       events,
		officerRate:  float64(cfg.Quota.OfficerRate),
		enlistedRate: float64(cfg.Quota.EnlistedRate),
		logger:       logger,
	}
}

// ────────────────────── Summarize ──────────────────────

// Summarize is idempotent: it recomputes everything from committed state on
// every call, nothing is cached.
func (s *summaryService) Summarize(ctx context.Context, req *dto.EventListRequest, actor model.Actor) (*dto.MonthSummary, error) {
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
	// a zero assignment must not fall through as an unscoped query
	if !actor.Role.Privileged() && actor.Role != model.RoleSuperintendent {
		if actor.Role == model.RoleDirector {
			if actor.DirectorateID == 0 {
				return &dto.MonthSummary{Month: req.Month, Year: req.Year,
					Events: []dto.EventSummary{}, Units: []dto.UnitFundSummary{}}, nil
			}
			filter.DirectorateID = actor.DirectorateID
		} else {
			if actor.OrgUnitID == 0 {
				return &dto.MonthSummary{Month: req.Month, Year: req.Year,
					Events: []dto.EventSummary{}, Units: []dto.UnitFundSummary{}}, nil
			}
			filter.OrgUnitID = actor.OrgUnitID
		}
	}

	events, err := s.repo.Event.List(ctx, filter)
	if err != nil {
		s.logger.Error("summary event query failed", zap.Error(err))
		return nil, err
	}
	consumedRows, err := s.repo.ScheduleEntry.ConsumedPerEvent(ctx, req.Month, req.Year)
	if err != nil {
		s.logger.Error("summary consumption query failed", zap.Error(err))
		return nil, err
	}
	consumed := make(map[uint]repository.EventConsumption, len(consumedRows))
	for _, row := range consumedRows {
		consumed[row.EventID] = row
	}

	summary := &dto.MonthSummary{Month: req.Month, Year: req.Year}
	summary.Events = make([]dto.EventSummary, 0, len(events))
	for i := range events {
		summary.Events = append(summary.Events, s.eventSummary(&events[i], consumed[events[i].ID]))
	}
	summary.Units = s.mergeByUnitFund(summary.Events)
	for _, u := range summary.Units {
		summary.TotalValue += u.TotalValue
	}

	dirs, err := s.directorateSummaries(ctx, req.Month, req.Year, actor)
	if err != nil {
		return nil, err
	}
	summary.Directorates = dirs
	return summary, nil
}

// ────────────────────── helpers ──────────────────────

func (s *summaryService) eventSummary(e *model.Event, c repository.EventConsumption) dto.EventSummary {
	es := dto.EventSummary{
		EventID:          e.ID,
		EventName:        e.Name,
		OrgUnitID:        e.OrgUnitID,
		FundCode:         e.FundCode,
		ScheduleKind:     string(e.ScheduleKind),
		Status:           string(e.Status),
		OfficersQuota:    e.OfficersQuota,
		EnlistedQuota:    e.EnlistedQuota,
		OfficersConsumed: c.Officers,
		EnlistedConsumed: c.Enlisted,
		OfficersValue:    float64(c.Officers) * s.officerRate,
		EnlistedValue:    float64(c.Enlisted) * s.enlistedRate,
	}
	es.TotalValue = es.OfficersValue + es.EnlistedValue
	if e.OrgUnit != nil {
		es.OrgUnitName = e.OrgUnit.Name
	}
	return es
}

// mergeByUnitFund folds event summaries onto their (org unit, fund code)
// key, summing every numeric field. The fold is associative and commutative,
// so input order never changes the result.
func (s *summaryService) mergeByUnitFund(events []dto.EventSummary) []dto.UnitFundSummary {
	type key struct {
		unit uint
		fund int
	}
	merged := make(map[key]*dto.UnitFundSummary)
	for _, e := range events {
		k := key{unit: e.OrgUnitID, fund: e.FundCode}
		row, ok := merged[k]
		if !ok {
			row = &dto.UnitFundSummary{
				OrgUnitID:   e.OrgUnitID,
				OrgUnitName: e.OrgUnitName,
				FundCode:    e.FundCode,
			}
			merged[k] = row
		}
		row.Events++
		row.OfficersQuota += e.OfficersQuota
		row.EnlistedQuota += e.EnlistedQuota
		row.OfficersConsumed += e.OfficersConsumed
		row.EnlistedConsumed += e.EnlistedConsumed
		row.TotalValue += e.TotalValue
	}

	result := make([]dto.UnitFundSummary, 0, len(merged))
	for _, row := range merged {
		row.OfficersRemained = row.OfficersQuota - row.OfficersConsumed
		row.EnlistedRemained = row.EnlistedQuota - row.EnlistedConsumed
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OrgUnitID != result[j].OrgUnitID {
			return result[i].OrgUnitID < result[j].OrgUnitID
		}
		return result[i].FundCode < result[j].FundCode
	})
	return result
}

// directorateSummaries compares what each directorate was allocated through
// its distributions with what its units actually executed (AUTHORIZED and
// HOMOLOGATED entries). Unit-scoped and director actors get their own
// directorate only.
func (s *summaryService) directorateSummaries(ctx context.Context, month, year int, actor model.Actor) ([]dto.DirectorateSummary, error) {
	distFilter := repository.DistributionFilter{Month: month, Year: year}
	if !actor.Role.Privileged() && actor.Role != model.RoleSuperintendent {
		if actor.DirectorateID == 0 {
			return nil, nil
		}
		distFilter.DirectorateID = actor.DirectorateID
	}
	dists, err := s.repo.Distribution.List(ctx, distFilter)
	if err != nil {
		s.logger.Error("summary distribution query failed", zap.Error(err))
		return nil, err
	}
	executedRows, err := s.repo.ScheduleEntry.ExecutedByDirectorate(ctx, month, year)
	if err != nil {
		s.logger.Error("summary execution query failed", zap.Error(err))
		return nil, err
	}

	byDir := make(map[uint]*dto.DirectorateSummary)
	ordered := make([]*dto.DirectorateSummary, 0, len(dists))
	for i := range dists {
		d := &dists[i]
		row, ok := byDir[d.DirectorateID]
		if !ok {
			id := d.DirectorateID
			row = &dto.DirectorateSummary{DirectorateID: &id}
			if d.Directorate != nil {
				row.DirectorateName = d.Directorate.Name
			}
			byDir[d.DirectorateID] = row
			ordered = append(ordered, row)
		}
		row.OfficersAllocated += d.OfficersQuota
		row.EnlistedAllocated += d.EnlistedQuota
	}
	for _, ex := range executedRows {
		if ex.DirectorateID == nil {
			// unit without a directorate: report it, don't fail
			row := &dto.DirectorateSummary{
				OfficersExecuted: ex.Officers,
				EnlistedExecuted: ex.Enlisted,
				ExecutedValue:    float64(ex.Officers)*s.officerRate + float64(ex.Enlisted)*s.enlistedRate,
			}
			if distFilter.DirectorateID == 0 {
				ordered = append(ordered, row)
			}
			continue
		}
		row, ok := byDir[*ex.DirectorateID]
		if !ok {
			if distFilter.DirectorateID != 0 && *ex.DirectorateID != distFilter.DirectorateID {
				continue
			}
			id := *ex.DirectorateID
			row = &dto.DirectorateSummary{DirectorateID: &id}
			byDir[id] = row
			ordered = append(ordered, row)
		}
		row.OfficersExecuted = ex.Officers
		row.EnlistedExecuted = ex.Enlisted
		row.ExecutedValue = float64(ex.Officers)*s.officerRate + float64(ex.Enlisted)*s.enlistedRate
	}

	result := make([]dto.DirectorateSummary, 0, len(ordered))
	for _, row := range ordered {
		result = append(result, *row)
	}
	return result, nil
}
