package model

// User is an account that can authenticate and act on the hierarchy.
// Credential handling lives in the auth service; the core only consumes the
// Actor descriptor derived from this row.
type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name          string `gorm:"type:varchar(120);not null"       json:"name"`
	Login         string `gorm:"type:varchar(60);not null;unique" json:"login"`
	PasswordHash  string `gorm:"type:varchar(100);not null"       json:"-"`
	Role          Role   `gorm:"not null;default:0"               json:"role"`
	ServiceNumber int    `gorm:"not null;default:0"               json:"service_number"`
	OrgUnitID     *uint  `json:"org_unit_id,omitempty"`
	BaseModel

	OrgUnit *OrgUnit `gorm:"foreignKey:OrgUnitID" json:"org_unit,omitempty"`
}

func (User) TableName() string { return "users" }

// ToActor derives the authorization descriptor from the user row.
func (u *User) ToActor() Actor {
	a := Actor{
		UserID:        u.ID,
		Role:          u.Role,
		ServiceNumber: u.ServiceNumber,
	}
	if u.OrgUnitID != nil {
		a.OrgUnitID = *u.OrgUnitID
	}
	if u.OrgUnit != nil && u.OrgUnit.DirectorateID != nil {
		a.DirectorateID = *u.OrgUnit.DirectorateID
	}
	return a
}
