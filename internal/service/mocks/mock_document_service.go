package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"lexapi/internal/model"
	"lexapi/internal/service"
	"lexapi/internal/storage"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, in service.DocumentInput) (*model.Document, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id int64, in service.DocumentInput) (*model.Document, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, backend storage.Backend, clienteNome, filename string) (*storage.StoredFile, error) {
	args := m.Called(ctx, r, backend, clienteNome, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}

func (m *MockDocumentService) FileDocument(ctx context.Context, in service.DocumentInput, stored *storage.StoredFile) (*model.Document, error) {
	args := m.Called(ctx, in, stored)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Refile(ctx context.Context, id int64, r io.Reader, backendNew, backendOld storage.Backend, oldFilename, newFilename string) (*model.Document, error) {
	args := m.Called(ctx, id, r, backendNew, backendOld, oldFilename, newFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) RemoveFile(ctx context.Context, backend storage.Backend, clienteNome, filename string) error {
	args := m.Called(ctx, backend, clienteNome, filename)
	return args.Error(0)
}
