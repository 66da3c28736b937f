package repository

import (
	"context"
	"fmt"
	"time"

	"secadmin/internal/admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) ListAll(ctx context.Context) ([]*model.Permission, error) {
	cursor, err := r.Permissions.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var perms []*model.Permission
	if err := cursor.All(ctx, &perms); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return perms, nil
}

// Upsert overwrites the record for (user_id, page_path) in full. The
// engine always sends all five flags, so $set covers the whole grant.
func (r *MongoRepository) Upsert(ctx context.Context, perm *model.Permission) error {
	filter := bson.M{
		"user_id":   perm.UserID,
		"page_path": perm.PagePath,
	}

	now := time.Now()
	perm.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"access":     perm.Access,
			"can_create": perm.Create,
			"can_read":   perm.Read,
			"can_update": perm.Update,
			"can_delete": perm.Delete,
			"updated_at": now,
			"updated_by": perm.UpdatedBy,
		},
		"$setOnInsert": bson.M{
			"user_id":    perm.UserID,
			"page_path":  perm.PagePath,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.Permissions.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteRejected, err)
	}
	return nil
}
