package model

import "time"

// ScheduleEntry is one person's quota consumption inside an operation for a
// concrete date/time window. PersonType decides which operation counter the
// entry's quota is charged against. EventID and OrgUnitID are denormalized
// from the operation to keep the rollup queries join-free.
type ScheduleEntry struct {
	ID            uint           `gorm:"primaryKey;autoIncrement"                     json:"id"`
	OperationID   uint           `gorm:"not null;index"                               json:"operation_id"`
	EventID       uint           `gorm:"not null;index"                               json:"event_id"`
	OrgUnitID     uint           `gorm:"not null;index"                               json:"org_unit_id"`
	FundCode      int            `gorm:"not null"                                     json:"fund_code"`
	PersonRank    string         `gorm:"type:varchar(30)"                             json:"person_rank"`
	ServiceNumber int            `gorm:"not null;index"                               json:"service_number"`
	PersonName    string         `gorm:"type:varchar(120);not null"                   json:"person_name"`
	PersonUnit    string         `gorm:"type:varchar(120)"                            json:"person_unit"`
	PersonType    PersonType     `gorm:"type:varchar(10);not null"                    json:"person_type"`
	Quota         int            `gorm:"not null;default:1"                           json:"quota"`
	StartsAt      time.Time      `gorm:"not null"                                     json:"starts_at"`
	EndsAt        time.Time      `gorm:"not null"                                     json:"ends_at"`
	Location      string         `gorm:"type:varchar(200)"                            json:"location"`
	Duty          string         `gorm:"type:varchar(60)"                             json:"duty"`
	Note          string         `gorm:"type:varchar(300)"                            json:"note"`
	Status        WorkflowStatus `gorm:"type:varchar(20);not null;default:'PENDING'"  json:"status"`
	Obs           string         `gorm:"type:varchar(300)"                            json:"obs,omitempty"`
	ObsAuthorID   *uint          `json:"obs_author_id,omitempty"`
	ObsUpdatedAt  *time.Time     `json:"obs_updated_at,omitempty"`
	BaseModel

	Operation *Operation     `gorm:"foreignKey:OperationID" json:"operation,omitempty"`
	Comments  []EntryComment `gorm:"foreignKey:EntryID"     json:"comments,omitempty"`
}

func (ScheduleEntry) TableName() string { return "schedule_entries" }

// EntryComment is a remark attached to a schedule entry (audit trail of the
// back-and-forth between units and the planning directorate).
type EntryComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	EntryID   uint      `gorm:"not null;index"             json:"entry_id"`
	AuthorID  uint      `gorm:"not null"                   json:"author_id"`
	Text      string    `gorm:"type:varchar(500);not null" json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (EntryComment) TableName() string { return "entry_comments" }
