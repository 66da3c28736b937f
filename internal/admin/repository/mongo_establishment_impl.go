package repository

import (
	"context"
	"errors"
	"time"

	"secadmin/internal/admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepository) List(ctx context.Context) ([]*model.Establishment, error) {
	cursor, err := r.Establishments.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*model.Establishment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*model.Establishment, error) {
	var e model.Establishment
	err := r.Establishments.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoRepository) Create(ctx context.Context, e *model.Establishment) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.Establishments.InsertOne(ctx, e)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, e *model.Establishment) error {
	e.UpdatedAt = time.Now()

	set := bson.M{
		"name":          e.Name,
		"street_number": e.StreetNumber,
		"street_name":   e.StreetName,
		"postal_code":   e.PostalCode,
		"city":          e.City,
		"phone":         e.Phone,
		"updated_at":    e.UpdatedAt,
	}
	// A nil logo means "keep the stored image".
	if e.Logo != nil {
		set["logo"] = e.Logo
	}

	res, err := r.Establishments.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Establishments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
