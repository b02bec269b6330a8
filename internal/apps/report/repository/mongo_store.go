package repository

import (
	"context"
	"errors"
	"time"

	"spam-shield/internal/apps/report/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoReportsCollection = "spam_numbers"

// mongoReportStore stores one document per number, keyed by the E.164 string
type mongoReportStore struct {
	coll *mongo.Collection
}

// NewMongoReportStore creates a mongo backed ReportStore
func NewMongoReportStore(db *mongo.Database) ReportStore {
	return &mongoReportStore{coll: db.Collection(mongoReportsCollection)}
}

// Increment relies on findAndModify with upsert, which mongo applies atomically per document
func (s *mongoReportStore) Increment(ctx context.Context, phone string) (int64, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$inc":         bson.M{"report_count": 1},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var report models.SpamReport
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": phone}, update, opts).Decode(&report); err != nil {
		return 0, err
	}
	return report.ReportCount, nil
}

func (s *mongoReportStore) Get(ctx context.Context, phone string) (int64, error) {
	var report models.SpamReport
	err := s.coll.FindOne(ctx, bson.M{"_id": phone}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return report.ReportCount, nil
}
