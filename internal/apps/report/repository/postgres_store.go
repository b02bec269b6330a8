package repository

import (
	"context"
	"errors"
	"time"

	"spam-shield/internal/apps/report/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresReportStore implements ReportStore with gorm
type postgresReportStore struct {
	db *gorm.DB
}

// NewPostgresReportStore creates a gorm backed ReportStore
func NewPostgresReportStore(db *gorm.DB) ReportStore {
	return &postgresReportStore{db: db}
}

// Increment upserts the row and reads the new count back inside one transaction.
// The upsert takes the row lock, so concurrent reports are serialized by postgres.
func (r *postgresReportStore) Increment(ctx context.Context, phone string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		report := models.SpamReport{
			Phone:       phone,
			ReportCount: 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "phone"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"report_count": gorm.Expr("spam_reports.report_count + 1"),
				"updated_at":   now,
			}),
		}).Create(&report).Error
		if err != nil {
			return err
		}

		var current models.SpamReport
		if err := tx.Where("phone = ?", phone).First(&current).Error; err != nil {
			return err
		}
		count = current.ReportCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Get returns 0 when the number has no row
func (r *postgresReportStore) Get(ctx context.Context, phone string) (int64, error) {
	var report models.SpamReport
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return report.ReportCount, nil
}
