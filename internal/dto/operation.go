package dto

// ── Operation requests ──

// CreateOperationRequest opens an operation under an event. The public code
// is generated server-side; fund code, month, year and unit are copied down
// from the event.
type CreateOperationRequest struct {
	EventID       uint   `json:"event_id"       binding:"required"`
	Name          string `json:"name"           binding:"required,min=2,max=160"`
	OfficersQuota int    `json:"officers_quota" binding:"min=0"`
	EnlistedQuota int    `json:"enlisted_quota" binding:"min=0"`
}

// UpdateOperationRequest changes an operation's mutable fields. EventID,
// when present, must match the stored parent.
type UpdateOperationRequest struct {
	EventID       *uint   `json:"event_id"`
	Name          *string `json:"name"           binding:"omitempty,min=2,max=160"`
	OfficersQuota *int    `json:"officers_quota" binding:"omitempty,min=0"`
	EnlistedQuota *int    `json:"enlisted_quota" binding:"omitempty,min=0"`
}

// ── Operation responses ──

// OperationUsageResponse is an operation with its consumption rollup.
type OperationUsageResponse struct {
	ID            uint   `json:"id"`
	EventID       uint   `json:"event_id"`
	PublicCode    string `json:"public_code"`
	Name          string `json:"name"`
	FundCode      int    `json:"fund_code"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	Status        string `json:"status"`
	OfficersQuota int    `json:"officers_quota"`
	EnlistedQuota int    `json:"enlisted_quota"`
	OfficersUsed  int    `json:"officers_used"`
	EnlistedUsed  int    `json:"enlisted_used"`
}
