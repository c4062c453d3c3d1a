package model

// Directorate groups organizational units; distributions are sliced per
// directorate.
type Directorate struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name string `gorm:"type:varchar(120);not null;unique" json:"name"`
	BaseModel

	OrgUnits []OrgUnit `gorm:"foreignKey:DirectorateID" json:"org_units,omitempty"`
}

func (Directorate) TableName() string { return "directorates" }

// OrgUnit is an organizational unit (OME). The directorate link is optional:
// some units are created before being attached to a directorate, and the
// read-side rollups must tolerate that.
type OrgUnit struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name          string `gorm:"type:varchar(120);not null;unique" json:"name"`
	DirectorateID *uint  `json:"directorate_id,omitempty"`
	BaseModel

	Directorate *Directorate `gorm:"foreignKey:DirectorateID" json:"directorate,omitempty"`
}

func (OrgUnit) TableName() string { return "org_units" }
