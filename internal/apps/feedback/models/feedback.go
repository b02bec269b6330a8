package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxEntryLength bounds a single feedback entry
const MaxEntryLength = 2000

// Feedback is a free text note left by a user
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" yaml:"id"`
	Entry     string    `gorm:"type:text;not null" json:"entry" yaml:"entry"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TableName pins the table name
func (Feedback) TableName() string {
	return "feedback"
}

// BeforeCreate hook to generate UUID before creating record
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// CreateFeedbackRequest represents the request body for submitting feedback
type CreateFeedbackRequest struct {
	Entry string `json:"entry" binding:"required"`
}

// FeedbackResponse represents the response payload for feedback operations
type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Feedback model to FeedbackResponse
func (f *Feedback) ToResponse() FeedbackResponse {
	return FeedbackResponse{ID: f.ID, CreatedAt: f.CreatedAt}
}
