package repository

import (
	"context"
	"errors"
	"time"

	"spam-shield/internal/apps/user/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoUsersCollection = "userdata"

type mongoDirectory struct {
	coll *mongo.Collection
}

// NewMongoDirectory creates a mongo backed Directory keyed by phone
func NewMongoDirectory(db *mongo.Database) Directory {
	return &mongoDirectory{coll: db.Collection(mongoUsersCollection)}
}

func (d *mongoDirectory) Upsert(ctx context.Context, phone, name string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"name": name, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := d.coll.UpdateByID(ctx, phone, update, options.Update().SetUpsert(true))
	return err
}

func (d *mongoDirectory) Get(ctx context.Context, phone string) (string, bool, error) {
	var user models.VerifiedUser
	err := d.coll.FindOne(ctx, bson.M{"_id": phone}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.Name, true, nil
}
