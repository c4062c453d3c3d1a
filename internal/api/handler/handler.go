package handler

import "github.com/caadpo/genesis-backend/internal/service"

// Handler aggregates the HTTP handlers.
type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Org           *OrgHandler
	Ceiling       *CeilingHandler
	Distribution  *DistributionHandler
	Event         *EventHandler
	Operation     *OperationHandler
	ScheduleEntry *ScheduleEntryHandler
	Summary       *SummaryHandler
	Export        *ExportHandler
}

// NewHandler builds the handler aggregate from the service aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth, svc.User),
		User:          NewUserHandler(svc.User),
		Org:           NewOrgHandler(svc.Org),
		Ceiling:       NewCeilingHandler(svc.Ceiling),
		Distribution:  NewDistributionHandler(svc.Distribution),
		Event:         NewEventHandler(svc.Event),
		Operation:     NewOperationHandler(svc.Operation),
		ScheduleEntry: NewScheduleEntryHandler(svc.ScheduleEntry),
		Summary:       NewSummaryHandler(svc.Summary),
		Export:        NewExportHandler(svc.Export),
	}
}
