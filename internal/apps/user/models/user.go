package models

import "time"

// VerifiedUser is a phone number that completed OTP verification, with the name given at the time
type VerifiedUser struct {
	Phone     string    `gorm:"primaryKey;size:20" json:"phone" bson:"_id" yaml:"phone"`
	Name      string    `gorm:"not null;size:255" json:"name" bson:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}

// TableName sets the table name to 'verified_users'
func (VerifiedUser) TableName() string { return "verified_users" }

// UserResponse represents the response payload for directory lookups
type UserResponse struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}
