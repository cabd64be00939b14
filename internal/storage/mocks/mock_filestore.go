package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"lexapi/internal/storage"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Upload(ctx context.Context, r io.Reader, backend storage.Backend, bucket, filename string) (*storage.StoredFile, error) {
	args := m.Called(ctx, r, backend, bucket, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, backend storage.Backend, bucket, filename string) error {
	args := m.Called(ctx, backend, bucket, filename)
	return args.Error(0)
}

func (m *MockFileStore) Replace(ctx context.Context, r io.Reader, backendNew, backendOld storage.Backend, bucket, oldFilename, newFilename string) (*storage.StoredFile, error) {
	args := m.Called(ctx, r, backendNew, backendOld, bucket, oldFilename, newFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}
