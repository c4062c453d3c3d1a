package dto

// ── Ceiling requests ──

// CreateCeilingRequest opens a monthly budget for a fund code.
type CreateCeilingRequest struct {
	FundName        string `json:"fund_name"     binding:"required,min=2,max=120"`
	FundCode        int `json:"fund_code"        binding:"required,min=1"`
	Month           int `json:"month"            binding:"required,min=1,max=12"`
	Year            int `json:"year"             binding:"required,min=2000,max=2100"`
	OfficersCeiling int `json:"officers_ceiling" binding:"min=0"`
	EnlistedCeiling int `json:"enlisted_ceiling" binding:"min=0"`
}

// UpdateCeilingRequest changes ceiling counters. Fund code, month and year
// identify the row and cannot be changed.
type UpdateCeilingRequest struct {
	OfficersCeiling *int `json:"officers_ceiling" binding:"omitempty,min=0"`
	EnlistedCeiling *int `json:"enlisted_ceiling" binding:"omitempty,min=0"`
}

// SetSubmissionStatusRequest flags the ceiling as sent upstream (or not).
type SetSubmissionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NOT_SENT SENT"`
}

// SetPaymentStatusRequest flags the ceiling's payment state.
type SetPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=PENDING PAID"`
}

// ── Ceiling responses ──

// CeilingUsageResponse is a ceiling with its allocation rollup.
type CeilingUsageResponse struct {
	ID                uint   `json:"id"`
	FundName          string `json:"fund_name"`
	FundCode          int    `json:"fund_code"`
	Month             int    `json:"month"`
	Year              int    `json:"year"`
	OfficersCeiling   int    `json:"officers_ceiling"`
	EnlistedCeiling   int    `json:"enlisted_ceiling"`
	OfficersAllocated int    `json:"officers_allocated"`
	EnlistedAllocated int    `json:"enlisted_allocated"`
	OfficersAvailable int    `json:"officers_available"`
	EnlistedAvailable int    `json:"enlisted_available"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
}
