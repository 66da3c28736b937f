package tests

import (
	"context"

	"secadmin/internal/admin/model"

	"github.com/stretchr/testify/mock"
)

// MockPermissionRepository is a shared mock for repository.PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) ListAll(ctx context.Context) ([]*model.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Permission), args.Error(1)
}

func (m *MockPermissionRepository) Upsert(ctx context.Context, perm *model.Permission) error {
	args := m.Called(ctx, perm)
	return args.Error(0)
}

func (m *MockPermissionRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEstablishmentRepository is a shared mock for repository.EstablishmentRepository.
type MockEstablishmentRepository struct {
	mock.Mock
}

func (m *MockEstablishmentRepository) List(ctx context.Context) ([]*model.Establishment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) Get(ctx context.Context, id string) (*model.Establishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Establishment), args.Error(1)
}

func (m *MockEstablishmentRepository) Create(ctx context.Context, e *model.Establishment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstablishmentRepository) Update(ctx context.Context, e *model.Establishment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEstablishmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDirectorySource is a shared mock for directory.Source.
type MockDirectorySource struct {
	mock.Mock
}

func (m *MockDirectorySource) ListPrincipals(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
