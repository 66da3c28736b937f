package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	Permissions    *mongo.Collection
	Establishments *mongo.Collection
	Users          *mongo.Collection
	Client         *mongo.Client
}

func NewMongoRepository(db *mongo.Database, permissionsCollection, establishmentsCollection, usersCollection string) *MongoRepository {
	return &MongoRepository{
		Permissions:    db.Collection(permissionsCollection),
		Establishments: db.Collection(establishmentsCollection),
		Users:          db.Collection(usersCollection),
		Client:         db.Client(),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// Permission natural key: at most one record per (user_id, page_path).
	idxPermissionKey := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "page_path", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_user_page"),
	}

	_, err := r.Permissions.Indexes().CreateMany(ctx, []mongo.IndexModel{idxPermissionKey})
	if err != nil {
		return err
	}

	idxUserEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_email"),
	}

	_, err = r.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{idxUserEmail})
	return err
}
