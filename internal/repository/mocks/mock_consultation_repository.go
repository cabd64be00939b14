package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexapi/internal/model"
	"lexapi/internal/repository"
)

type MockConsultationRepository struct {
	mock.Mock
}

func (m *MockConsultationRepository) Create(ctx context.Context, c *model.Consultation) (*model.Consultation, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) FindByID(ctx context.Context, id int64) (*model.Consultation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) FindForDay(ctx context.Context, cpf string, data model.Date, excludeID int64) (*model.Consultation, error) {
	args := m.Called(ctx, cpf, data, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) List(ctx context.Context, f repository.ConsultationFilter) ([]model.Consultation, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) FindBySlot(ctx context.Context, data model.Date, horario model.TimeOfDay) ([]model.Consultation, error) {
	args := m.Called(ctx, data, horario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) Update(ctx context.Context, c *model.Consultation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsultationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConsultationRepository) SyncClientCopies(ctx context.Context, clientID int64, nome, cpf string) error {
	args := m.Called(ctx, clientID, nome, cpf)
	return args.Error(0)
}
