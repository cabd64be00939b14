package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexapi/internal/clock"
	"lexapi/internal/model"
	"lexapi/internal/repository"
	repoMocks "lexapi/internal/repository/mocks"
)

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("missing params", func(t *testing.T) {
		svc := NewClientService(new(repoMocks.MockClientRepository), new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		_, err := svc.Create(ctx, "Maria Silva", "")
		assert.ErrorIs(t, err, ErrMissingParams)
	})

	t.Run("invalid cpf", func(t *testing.T) {
		svc := NewClientService(new(repoMocks.MockClientRepository), new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		_, err := svc.Create(ctx, "Maria Silva", "123456789012345")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate cpf", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("FindByCPF", ctx, "12345678901").
			Return(&model.Client{ID: 2, CPFCliente: "12345678901"}, nil).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		_, err := svc.Create(ctx, "Maria Silva", "12345678901")
		assert.ErrorIs(t, err, ErrDuplicateCPF)
		clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("success stamps registration time", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("FindByCPF", ctx, "12345678901").Return(nil, nil).Once()
		clients.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
			return c.NomeCliente == "Maria Silva" && c.DataCadastro.Time.Equal(now)
		})).Return(&model.Client{ID: 1, NomeCliente: "Maria Silva", CPFCliente: "12345678901"}, nil).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		created, err := svc.Create(ctx, "Maria Silva", "12345678901")
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		clients.AssertExpectations(t)
	})
}

func TestClientService_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		_, err := svc.Update(ctx, 9, "Maria Silva", "12345678901")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("cpf held by another client", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("FindByID", ctx, int64(1)).
			Return(&model.Client{ID: 1, CPFCliente: "11111111111"}, nil).Once()
		clients.On("FindByCPF", ctx, "12345678901").
			Return(&model.Client{ID: 2, CPFCliente: "12345678901"}, nil).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		_, err := svc.Update(ctx, 1, "Maria Silva", "12345678901")
		assert.ErrorIs(t, err, ErrDuplicateCPF)
	})

	t.Run("keeping own cpf is not a duplicate", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		consultations := new(repoMocks.MockConsultationRepository)
		clients.On("FindByID", ctx, int64(1)).
			Return(&model.Client{ID: 1, NomeCliente: "Maria", CPFCliente: "12345678901"}, nil).Once()
		clients.On("FindByCPF", ctx, "12345678901").
			Return(&model.Client{ID: 1, CPFCliente: "12345678901"}, nil).Once()
		clients.On("Update", ctx, mock.MatchedBy(func(c *model.Client) bool {
			return c.ID == 1 && c.NomeCliente == "Maria Silva Santos" &&
				c.DataAtualizacao != nil && c.DataAtualizacao.Time.Equal(now)
		})).Return(nil).Once()
		consultations.On("SyncClientCopies", ctx, int64(1), "Maria Silva Santos", "12345678901").
			Return(nil).Once()
		svc := NewClientService(clients, consultations, clock.Fixed(now))

		updated, err := svc.Update(ctx, 1, "Maria Silva Santos", "12345678901")
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva Santos", updated.NomeCliente)
		clients.AssertExpectations(t)
		consultations.AssertExpectations(t)
	})
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("Delete", ctx, int64(3)).Return(sql.ErrNoRows).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		assert.ErrorIs(t, svc.Delete(ctx, 3), ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		clients.On("Delete", ctx, int64(3)).Return(nil).Once()
		svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

		assert.NoError(t, svc.Delete(ctx, 3))
	})
}

func TestClientService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	clients := new(repoMocks.MockClientRepository)
	clients.On("List", ctx, repository.ClientFilter{Nome: "Maria", CPF: ""}).
		Return([]model.Client{{ID: 1}}, nil).Once()
	svc := NewClientService(clients, new(repoMocks.MockConsultationRepository), clock.Fixed(now))

	res, err := svc.List(ctx, "Maria", "")
	require.NoError(t, err)
	assert.Len(t, res, 1)
	clients.AssertExpectations(t)
}
