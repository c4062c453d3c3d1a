package dto

// ── Read-side summaries ──

// EventSummary is one event's planned-versus-consumed rollup with its
// monetary valuation.
type EventSummary struct {
	EventID          uint    `json:"event_id"`
	EventName        string  `json:"event_name"`
	OrgUnitID        uint    `json:"org_unit_id"`
	OrgUnitName      string  `json:"org_unit_name,omitempty"`
	FundCode         int     `json:"fund_code"`
	ScheduleKind     string  `json:"schedule_kind"`
	Status           string  `json:"status"`
	OfficersQuota    int     `json:"officers_quota"`
	EnlistedQuota    int     `json:"enlisted_quota"`
	OfficersConsumed int     `json:"officers_consumed"`
	EnlistedConsumed int     `json:"enlisted_consumed"`
	OfficersValue    float64 `json:"officers_value"`
	EnlistedValue    float64 `json:"enlisted_value"`
	TotalValue       float64 `json:"total_value"`
}

// UnitFundSummary merges every event a unit has under one fund code for the
// month.
type UnitFundSummary struct {
	OrgUnitID        uint    `json:"org_unit_id"`
	OrgUnitName      string  `json:"org_unit_name,omitempty"`
	FundCode         int     `json:"fund_code"`
	Events           int     `json:"events"`
	OfficersQuota    int     `json:"officers_quota"`
	EnlistedQuota    int     `json:"enlisted_quota"`
	OfficersConsumed int     `json:"officers_consumed"`
	EnlistedConsumed int     `json:"enlisted_consumed"`
	OfficersRemained int     `json:"officers_remained"`
	EnlistedRemained int     `json:"enlisted_remained"`
	TotalValue       float64 `json:"total_value"`
}

// DirectorateSummary compares what a directorate was allocated with what its
// units actually executed.
type DirectorateSummary struct {
	DirectorateID     *uint   `json:"directorate_id"`
	DirectorateName   string  `json:"directorate_name,omitempty"`
	OfficersAllocated int     `json:"officers_allocated"`
	EnlistedAllocated int     `json:"enlisted_allocated"`
	OfficersExecuted  int     `json:"officers_executed"`
	EnlistedExecuted  int     `json:"enlisted_executed"`
	ExecutedValue     float64 `json:"executed_value"`
}

// MonthSummary is the full monthly read-side aggregate.
type MonthSummary struct {
	Month        int                  `json:"month"`
	Year         int                  `json:"year"`
	Events       []EventSummary       `json:"events"`
	Units        []UnitFundSummary    `json:"units"`
	Directorates []DirectorateSummary `json:"directorates"`
	TotalValue   float64              `json:"total_value"`
}
