package dto

import "time"

// ── Schedule entry requests ──

// CreateEntryRequest puts one person on an operation's roster for a shift.
type CreateEntryRequest struct {
	OperationID   uint      `json:"operation_id"   binding:"required"`
	PersonRank    string    `json:"person_rank"    binding:"max=30"`
	ServiceNumber int       `json:"service_number" binding:"required,min=1"`
	PersonName    string    `json:"person_name"    binding:"required,min=2,max=120"`
	PersonUnit    string    `json:"person_unit"    binding:"max=120"`
	PersonType    string    `json:"person_type"    binding:"required,oneof=OFFICER ENLISTED"`
	Quota         int       `json:"quota"          binding:"required,min=1"`
	StartsAt      time.Time `json:"starts_at"      binding:"required"`
	EndsAt        time.Time `json:"ends_at"        binding:"required"`
	Location      string    `json:"location"       binding:"max=200"`
	Duty          string    `json:"duty"           binding:"max=60"`
	Note          string    `json:"note"           binding:"max=300"`
}

// UpdateEntryRequest changes an entry's mutable fields. OperationID, when
// present, must match the stored parent. Person type is fixed at creation:
// switching it would silently move consumption between counters.
type UpdateEntryRequest struct {
	OperationID *uint      `json:"operation_id"`
	PersonRank  *string    `json:"person_rank" binding:"omitempty,max=30"`
	PersonName  *string    `json:"person_name" binding:"omitempty,min=2,max=120"`
	PersonUnit  *string    `json:"person_unit" binding:"omitempty,max=120"`
	Quota       *int       `json:"quota"       binding:"omitempty,min=1"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    *string    `json:"location"    binding:"omitempty,max=200"`
	Duty        *string    `json:"duty"        binding:"omitempty,max=60"`
	Note        *string    `json:"note"        binding:"omitempty,max=300"`
}

// SetObsRequest records an observation on an entry. An empty string clears
// the previous one.
type SetObsRequest struct {
	Obs string `json:"obs" binding:"max=300"`
}

// AddCommentRequest appends a remark to an entry's comment thread.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,min=2,max=500"`
}

// PersonalScheduleRequest lists a person's entries across operations.
type PersonalScheduleRequest struct {
	ServiceNumber int `form:"service_number" binding:"required,min=1"`
	Month         int `form:"month"          binding:"required,min=1,max=12"`
	Year          int `form:"year"           binding:"required,min=2000,max=2100"`
}

// PersonalQuotaResponse is one person's consumed quota for a month, valued
// at the configured rates.
type PersonalQuotaResponse struct {
	ServiceNumber    int     `json:"service_number"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	OfficersConsumed int     `json:"officers_consumed"`
	EnlistedConsumed int     `json:"enlisted_consumed"`
	TotalConsumed    int     `json:"total_consumed"`
	TotalValue       float64 `json:"total_value"`
}
