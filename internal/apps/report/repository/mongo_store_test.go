package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoReportStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increment returns count after update", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: testPhone},
				{Key: "report_count", Value: int64(5)},
			}},
		))

		count, err := store.Increment(context.Background(), testPhone)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	mt.Run("increment surfaces server errors", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
		}))

		_, err := store.Increment(context.Background(), testPhone)
		assert.Error(t, err)
	})

	mt.Run("get existing", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		ns := mt.DB.Name() + "." + mongoReportsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: testPhone},
			{Key: "report_count", Value: int64(2)},
		}))

		count, err := store.Get(context.Background(), testPhone)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	mt.Run("get missing is zero", func(mt *mtest.T) {
		store := NewMongoReportStore(mt.DB)
		ns := mt.DB.Name() + "." + mongoReportsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		count, err := store.Get(context.Background(), testPhone)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
