package dto

// ── Auth requests ──

// LoginRequest authenticates by login and password.
type LoginRequest struct {
	Login    string `json:"login"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// ── Auth responses ──

// TokenResponse is the token pair handed out on login and refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime, seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the sanitized user view (no credentials).
type UserResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Login         string `json:"login"`
	Role          int    `json:"role"`
	ServiceNumber int    `json:"service_number"`
	OrgUnitID     *uint  `json:"org_unit_id,omitempty"`
	OrgUnitName   string `json:"org_unit_name,omitempty"`
	DirectorateID *uint  `json:"directorate_id,omitempty"`
}
