package dto

// MonthQuery selects a reference month for list and summary endpoints.
type MonthQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
}

// SetStatusRequest moves an entity along the workflow.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING AUTHORIZED HOMOLOGATED"`
}
