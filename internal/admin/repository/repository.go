package repository

import (
	"context"
	"errors"

	"secadmin/internal/admin/model"
)

var (
	// ErrStoreUnavailable wraps transport-level failures reading the store.
	ErrStoreUnavailable = errors.New("permission store unavailable")
	// ErrWriteRejected wraps a refused or failed upsert.
	ErrWriteRejected = errors.New("store write rejected")
	// ErrNotFound is returned when a keyed lookup matches nothing.
	ErrNotFound = errors.New("not found")
)

// PermissionRepository is the durable keyed store for grant records.
// Upsert overwrites the full record for its (user_id, page_path) key;
// partial patches are never sent at this layer.
type PermissionRepository interface {
	ListAll(ctx context.Context) ([]*model.Permission, error)
	Upsert(ctx context.Context, perm *model.Permission) error
	EnsureIndexes(ctx context.Context) error
}

// EstablishmentRepository manages the site referential.
type EstablishmentRepository interface {
	List(ctx context.Context) ([]*model.Establishment, error)
	Get(ctx context.Context, id string) (*model.Establishment, error)
	Create(ctx context.Context, e *model.Establishment) error
	Update(ctx context.Context, e *model.Establishment) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is used by the seed tool to provision directory users.
type UserRepository interface {
	UpsertUser(ctx context.Context, user *model.User, passwordHash string) error
}
