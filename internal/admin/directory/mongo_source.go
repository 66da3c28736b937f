package directory

import (
	"context"
	"fmt"

	"secadmin/internal/admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads principals from the users collection the auth
// provider syncs into.
type MongoSource struct {
	Users *mongo.Collection
}

func NewMongoSource(db *mongo.Database, collectionName string) *MongoSource {
	return &MongoSource{Users: db.Collection(collectionName)}
}

func (s *MongoSource) ListPrincipals(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "email", Value: 1}})
	cursor, err := s.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return users, nil
}
