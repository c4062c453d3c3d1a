package model

// Distribution is a directorate's slice of a ceiling. The fund code is copied
// from the ceiling at creation time and never changes afterwards; moving a
// distribution to another funding line means deleting and recreating it.
type Distribution struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	CeilingID     uint   `gorm:"not null;index"             json:"ceiling_id"`
	DirectorateID uint   `gorm:"not null;index"             json:"directorate_id"`
	Name          string `gorm:"type:varchar(120);not null" json:"name"`
	FundCode      int    `gorm:"not null"                   json:"fund_code"`
	Month         int    `gorm:"not null"                   json:"month"`
	Year          int    `gorm:"not null"                   json:"year"`
	OfficersQuota int    `gorm:"not null;default:0"         json:"officers_quota"`
	EnlistedQuota int    `gorm:"not null;default:0"         json:"enlisted_quota"`
	BaseModel

	Ceiling     *Ceiling     `gorm:"foreignKey:CeilingID"     json:"ceiling,omitempty"`
	Directorate *Directorate `gorm:"foreignKey:DirectorateID" json:"directorate,omitempty"`
	Events      []Event      `gorm:"foreignKey:DistributionID" json:"events,omitempty"`
}

func (Distribution) TableName() string { return "distributions" }
