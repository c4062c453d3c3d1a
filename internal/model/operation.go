package model

// Operation is a named activity consuming part of an event's quota. The
// public code is generated at creation (5-digit prefix / zero-padded month +
// year) and is the external identifier printed on rosters.
type Operation struct {
	ID            uint           `gorm:"primaryKey;autoIncrement"                     json:"id"`
	EventID       uint           `gorm:"not null;index"                               json:"event_id"`
	OrgUnitID     uint           `gorm:"not null;index"                               json:"org_unit_id"`
	PublicCode    string         `gorm:"type:varchar(20);not null;unique"             json:"public_code"`
	Name          string         `gorm:"type:varchar(160);not null"                   json:"name"`
	FundCode      int            `gorm:"not null"                                     json:"fund_code"`
	Month         int            `gorm:"not null"                                     json:"month"`
	Year          int            `gorm:"not null"                                     json:"year"`
	OfficersQuota int            `gorm:"not null;default:0"                           json:"officers_quota"`
	EnlistedQuota int            `gorm:"not null;default:0"                           json:"enlisted_quota"`
	Status        WorkflowStatus `gorm:"type:varchar(20);not null;default:'PENDING'"  json:"status"`
	BaseModel

	Event   *Event          `gorm:"foreignKey:EventID"     json:"event,omitempty"`
	OrgUnit *OrgUnit        `gorm:"foreignKey:OrgUnitID"   json:"org_unit,omitempty"`
	Entries []ScheduleEntry `gorm:"foreignKey:OperationID" json:"entries,omitempty"`
}

func (Operation) TableName() string { return "operations" }
