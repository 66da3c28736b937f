package repository

import (
	"context"
	"time"

	"secadmin/internal/admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertUser provisions a directory user, keyed on email so repeated
// seed runs stay idempotent.
func (r *MongoRepository) UpsertUser(ctx context.Context, user *model.User, passwordHash string) error {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"password_hash": passwordHash,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id":        user.ID,
			"email":      user.Email,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.Users.UpdateOne(ctx, bson.M{"email": user.Email}, update, opts)
	return err
}
