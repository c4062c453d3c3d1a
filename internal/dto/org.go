package dto

// ── Directorate / unit requests ──

// CreateDirectorateRequest registers a directorate.
type CreateDirectorateRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// UpdateDirectorateRequest renames a directorate.
type UpdateDirectorateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=120"`
}

// CreateOrgUnitRequest registers a unit, optionally under a directorate.
type CreateOrgUnitRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=120"`
	DirectorateID *uint  `json:"directorate_id"`
}

// UpdateOrgUnitRequest changes a unit's name or directorate attachment.
type UpdateOrgUnitRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=120"`
	DirectorateID *uint   `json:"directorate_id"`
}
