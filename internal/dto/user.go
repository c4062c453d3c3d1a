package dto

// ── User requests ──

// CreateUserRequest registers an account.
type CreateUserRequest struct {
	Name          string `json:"name"           binding:"required,min=2,max=120"`
	Login         string `json:"login"          binding:"required,min=3,max=60"`
	Password      string `json:"password"       binding:"required,min=8,max=64"`
	Role          int    `json:"role"           binding:"omitempty,oneof=0 1 3 4 5 10"`
	ServiceNumber int    `json:"service_number" binding:"omitempty,min=1"`
	OrgUnitID     *uint  `json:"org_unit_id"`
}

// UpdateUserRequest changes an account's mutable fields.
type UpdateUserRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=120"`
	Role          *int    `json:"role"           binding:"omitempty,oneof=0 1 3 4 5 10"`
	ServiceNumber *int    `json:"service_number" binding:"omitempty,min=1"`
	OrgUnitID     *uint   `json:"org_unit_id"`
}

// UserListRequest filters the user list.
type UserListRequest struct {
	OrgUnitID uint `form:"org_unit_id"`
}
