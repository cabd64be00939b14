package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"lexapi/internal/model"
	"lexapi/internal/service"
	"lexapi/internal/storage"
)

type MockFilingService struct {
	mock.Mock
}

func (m *MockFilingService) Create(ctx context.Context, in service.FilingInput) (*model.Filing, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Filing), args.Error(1)
}

func (m *MockFilingService) Update(ctx context.Context, id int64, in service.FilingInput) (*model.Filing, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Filing), args.Error(1)
}

func (m *MockFilingService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFilingService) Get(ctx context.Context, id int64) (*model.Filing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Filing), args.Error(1)
}

func (m *MockFilingService) List(ctx context.Context) ([]model.Filing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Filing), args.Error(1)
}

func (m *MockFilingService) Upload(ctx context.Context, r io.Reader, backend storage.Backend, categoria, filename string) (*storage.StoredFile, error) {
	args := m.Called(ctx, r, backend, categoria, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}

func (m *MockFilingService) ReplaceFile(ctx context.Context, r io.Reader, backendNew, backendOld storage.Backend, categoria, oldFilename, newFilename string) (*storage.StoredFile, error) {
	args := m.Called(ctx, r, backendNew, backendOld, categoria, oldFilename, newFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}

func (m *MockFilingService) RemoveFile(ctx context.Context, backend storage.Backend, categoria, filename string) error {
	args := m.Called(ctx, backend, categoria, filename)
	return args.Error(0)
}
