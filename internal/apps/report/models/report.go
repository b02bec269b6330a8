package models

import "time"

// SpamReport counts how many times a phone number was reported as spam
type SpamReport struct {
	Phone       string    `gorm:"primaryKey;size:20" json:"phone" bson:"_id" yaml:"phone"`
	ReportCount int64     `gorm:"not null" json:"report_count" bson:"report_count" yaml:"report_count"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}

// TableName sets the table name to 'spam_reports'
func (SpamReport) TableName() string { return "spam_reports" }

// CreateReportRequest payload to report a number as spam
type CreateReportRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ReportResponse is returned after a report was recorded
type ReportResponse struct {
	Phone       string `json:"phone"`
	ReportCount int64  `json:"report_count"`
}

// ReportCountResponse is returned by the count lookup
type ReportCountResponse struct {
	Phone       string `json:"phone"`
	ReportCount int64  `json:"report_count"`
}
