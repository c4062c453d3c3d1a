package model

// ScheduleKind flags events created after the regular planning window. Only
// privileged roles may create or edit late events.
type ScheduleKind string

const (
	ScheduleRegular ScheduleKind = "REGULAR"
	ScheduleLate    ScheduleKind = "LATE"
)

// Event is an organizational unit's slice of a distribution. Its counters
// bound the sum of its operations and the consumption of the schedule entries
// below it.
type Event struct {
	ID             uint           `gorm:"primaryKey;autoIncrement"                    json:"id"`
	DistributionID uint           `gorm:"not null;index"                              json:"distribution_id"`
	OrgUnitID      uint           `gorm:"not null;index"                              json:"org_unit_id"`
	Name           string         `gorm:"type:varchar(160);not null"                  json:"name"`
	FundCode       int            `gorm:"not null"                                    json:"fund_code"`
	Month          int            `gorm:"not null"                                    json:"month"`
	Year           int            `gorm:"not null"                                    json:"year"`
	OfficersQuota  int            `gorm:"not null;default:0"                          json:"officers_quota"`
	EnlistedQuota  int            `gorm:"not null;default:0"                          json:"enlisted_quota"`
	ScheduleKind   ScheduleKind   `gorm:"type:varchar(10);not null;default:'REGULAR'" json:"schedule_kind"`
	Status         WorkflowStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	BaseModel

	Distribution *Distribution `gorm:"foreignKey:DistributionID" json:"distribution,omitempty"`
	OrgUnit      *OrgUnit      `gorm:"foreignKey:OrgUnitID"      json:"org_unit,omitempty"`
	Operations   []Operation   `gorm:"foreignKey:EventID"        json:"operations,omitempty"`
}

func (Event) TableName() string { return "events" }
