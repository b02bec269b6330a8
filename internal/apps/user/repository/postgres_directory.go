package repository

import (
	"context"
	"errors"
	"time"

	"spam-shield/internal/apps/user/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresDirectory implements Directory with gorm
type postgresDirectory struct {
	db *gorm.DB
}

// NewPostgresDirectory creates a gorm backed Directory
func NewPostgresDirectory(db *gorm.DB) Directory {
	return &postgresDirectory{db: db}
}

// Upsert creates or updates the name for a phone number
func (r *postgresDirectory) Upsert(ctx context.Context, phone, name string) error {
	now := time.Now().UTC()
	user := models.VerifiedUser{
		Phone:     phone,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&user).Error
}

// Get retrieves the name stored for a phone number
func (r *postgresDirectory) Get(ctx context.Context, phone string) (string, bool, error) {
	var user models.VerifiedUser
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.Name, true, nil
}
