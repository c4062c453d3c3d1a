package dto

// ── Distribution requests ──

// CreateDistributionRequest slices part of a ceiling to a directorate. Fund
// code, month and year are copied down from the ceiling, never supplied.
type CreateDistributionRequest struct {
	CeilingID     uint   `json:"ceiling_id"     binding:"required"`
	DirectorateID uint   `json:"directorate_id" binding:"required"`
	Name          string `json:"name"           binding:"required,min=2,max=160"`
	OfficersQuota int    `json:"officers_quota" binding:"min=0"`
	EnlistedQuota int    `json:"enlisted_quota" binding:"min=0"`
}

// UpdateDistributionRequest changes a distribution's mutable fields. A
// CeilingID, when present, must match the stored parent; moving a
// distribution between ceilings is not supported.
type UpdateDistributionRequest struct {
	CeilingID     *uint   `json:"ceiling_id"`
	DirectorateID *uint   `json:"directorate_id"`
	Name          *string `json:"name"           binding:"omitempty,min=2,max=160"`
	OfficersQuota *int    `json:"officers_quota" binding:"omitempty,min=0"`
	EnlistedQuota *int    `json:"enlisted_quota" binding:"omitempty,min=0"`
}

// DistributionListRequest filters the distribution list.
type DistributionListRequest struct {
	Month         int `form:"month"          binding:"omitempty,min=1,max=12"`
	Year          int `form:"year"           binding:"omitempty,min=2000,max=2100"`
	FundCode      int `form:"fund_code"`
	DirectorateID uint `form:"directorate_id"`
}

// ── Distribution responses ──

// DistributionUsageResponse is a distribution with its consumption rollup.
type DistributionUsageResponse struct {
	ID              uint   `json:"id"`
	CeilingID       uint   `json:"ceiling_id"`
	DirectorateID   uint   `json:"directorate_id"`
	DirectorateName string `json:"directorate_name,omitempty"`
	Name            string `json:"name"`
	FundCode        int    `json:"fund_code"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	OfficersQuota   int    `json:"officers_quota"`
	EnlistedQuota   int    `json:"enlisted_quota"`
	OfficersUsed    int    `json:"officers_used"`
	EnlistedUsed    int    `json:"enlisted_used"`
}
