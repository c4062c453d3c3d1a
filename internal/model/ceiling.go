package model

import "time"

// Ceiling submission / payment flags. Unlike the workflow automaton these are
// independent pairs; only the timestamp of the last change is kept.
type SubmissionStatus string

type PaymentStatus string

const (
	SubmissionNotSent SubmissionStatus = "NOT_SENT"
	SubmissionSent    SubmissionStatus = "SENT"

	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Ceiling is the funding-line quota pool at the top of the hierarchy, unique
// per (fund code, month, year). Its two counters bound the sum of all
// distributions below it.
type Ceiling struct {
	ID               uint             `gorm:"primaryKey;autoIncrement"                       json:"id"`
	FundName         string           `gorm:"type:varchar(120);not null"                     json:"fund_name"`
	FundCode         int              `gorm:"not null;uniqueIndex:ux_ceilings_fund_month"    json:"fund_code"`
	Month            int              `gorm:"not null;uniqueIndex:ux_ceilings_fund_month"    json:"month"`
	Year             int              `gorm:"not null;uniqueIndex:ux_ceilings_fund_month"    json:"year"`
	OfficersCeiling  int              `gorm:"not null;default:0"                             json:"officers_ceiling"`
	EnlistedCeiling  int              `gorm:"not null;default:0"                             json:"enlisted_ceiling"`
	Status           SubmissionStatus `gorm:"type:varchar(20);not null;default:'NOT_SENT'"   json:"status"`
	StatusChangedAt  *time.Time       `json:"status_changed_at,omitempty"`
	PaymentStatus    PaymentStatus    `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"payment_status"`
	PaymentChangedAt *time.Time       `json:"payment_changed_at,omitempty"`
	BaseModel

	Distributions []Distribution `gorm:"foreignKey:CeilingID" json:"distributions,omitempty"`
}

func (Ceiling) TableName() string { return "ceilings" }
