package dto

// ── Event requests ──

// CreateEventRequest grants part of a distribution to an organizational
// unit. ScheduleKind defaults to REGULAR; LATE events are reserved to
// privileged roles.
type CreateEventRequest struct {
	DistributionID uint   `json:"distribution_id" binding:"required"`
	OrgUnitID      uint   `json:"org_unit_id"     binding:"required"`
	Name           string `json:"name"            binding:"required,min=2,max=160"`
	OfficersQuota  int    `json:"officers_quota"  binding:"min=0"`
	EnlistedQuota  int    `json:"enlisted_quota"  binding:"min=0"`
	ScheduleKind   string `json:"schedule_kind"   binding:"omitempty,oneof=REGULAR LATE"`
}

// UpdateEventRequest changes an event's mutable fields. DistributionID, when
// present, must match the stored parent.
type UpdateEventRequest struct {
	DistributionID *uint   `json:"distribution_id"`
	OrgUnitID      *uint   `json:"org_unit_id"`
	Name           *string `json:"name"           binding:"omitempty,min=2,max=160"`
	OfficersQuota  *int    `json:"officers_quota" binding:"omitempty,min=0"`
	EnlistedQuota  *int    `json:"enlisted_quota" binding:"omitempty,min=0"`
}

// EventListRequest filters the event list.
type EventListRequest struct {
	Month          int  `form:"month"           binding:"omitempty,min=1,max=12"`
	Year           int  `form:"year"            binding:"omitempty,min=2000,max=2100"`
	FundCode       int  `form:"fund_code"`
	DistributionID uint `form:"distribution_id"`
	OrgUnitID      uint `form:"org_unit_id"`
	DirectorateID  uint `form:"directorate_id"`
	OrgUnitMin     uint `form:"org_unit_min"`
	OrgUnitMax     uint `form:"org_unit_max"`
}

// HomologateMonthRequest closes every non-homologated event of a month in
// one step. OrgUnitID zero means all units (privileged roles only).
type HomologateMonthRequest struct {
	Month     int  `json:"month"       binding:"required,min=1,max=12"`
	Year      int  `json:"year"        binding:"required,min=2000,max=2100"`
	OrgUnitID uint `json:"org_unit_id"`
}

// ── Event responses ──

// EventUsageResponse is an event with its consumption rollup.
type EventUsageResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	OrgUnitID     uint   `json:"org_unit_id"`
	OrgUnitName   string `json:"org_unit_name,omitempty"`
	FundCode      int    `json:"fund_code"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	ScheduleKind  string `json:"schedule_kind"`
	Status        string `json:"status"`
	OfficersQuota int    `json:"officers_quota"`
	EnlistedQuota int    `json:"enlisted_quota"`
	OfficersUsed  int    `json:"officers_used"`
	EnlistedUsed  int    `json:"enlisted_used"`
}

// HomologateMonthResponse reports how many events the bulk close touched.
type HomologateMonthResponse struct {
	Homologated int64 `json:"homologated"`
}
