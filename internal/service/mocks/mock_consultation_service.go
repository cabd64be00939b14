package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexapi/internal/model"
	"lexapi/internal/service"
)

type MockConsultationService struct {
	mock.Mock
}

func (m *MockConsultationService) Schedule(ctx context.Context, in service.ScheduleInput) (*model.Consultation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) Reschedule(ctx context.Context, id int64, in service.RescheduleInput) (*model.Consultation, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) Cancel(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConsultationService) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) Find(ctx context.Context, f service.FindFilter) ([]model.Consultation, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consultation), args.Error(1)
}

func (m *MockConsultationService) FindToday(ctx context.Context) ([]model.Consultation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consultation), args.Error(1)
}

func (m *MockConsultationService) FindBySlot(ctx context.Context, data, horario string) ([]model.Consultation, error) {
	args := m.Called(ctx, data, horario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consultation), args.Error(1)
}
