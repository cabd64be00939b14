package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lexapi/internal/clock"
	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// ClientService covers client registration and maintenance. Updates keep
// the denormalized name/CPF copies on the client's consultations in sync.
type ClientService interface {
	Create(ctx context.Context, nome, cpf string) (*model.Client, error)
	Update(ctx context.Context, id int64, nome, cpf string) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context, nome, cpf string) ([]model.Client, error)
}

type clientService struct {
	clients       repository.ClientRepository
	consultations repository.ConsultationRepository
	clk           clock.Clock
}

// NewClientService constructs a ClientService.
func NewClientService(clients repository.ClientRepository, consultations repository.ConsultationRepository, clk clock.Clock) ClientService {
	return &clientService{clients: clients, consultations: consultations, clk: clk}
}

func (s *clientService) Create(ctx context.Context, nome, cpf string) (*model.Client, error) {
	if nome == "" || cpf == "" {
		return nil, ErrMissingParams
	}
	if !validCPF(cpf) {
		return nil, ErrInvalidCPF
	}
	existing, err := s.clients.FindByCPF(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("check cpf: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateCPF
	}
	created, err := s.clients.Create(ctx, &model.Client{
		NomeCliente:  nome,
		CPFCliente:   cpf,
		DataCadastro: model.Timestamp{Time: s.clk.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

func (s *clientService) Update(ctx context.Context, id int64, nome, cpf string) (*model.Client, error) {
	if nome == "" || cpf == "" {
		return nil, ErrMissingParams
	}
	if !validCPF(cpf) {
		return nil, ErrInvalidCPF
	}
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	holder, err := s.clients.FindByCPF(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("check cpf: %w", err)
	}
	if holder != nil && holder.ID != id {
		return nil, ErrDuplicateCPF
	}

	client.NomeCliente = nome
	client.CPFCliente = cpf
	client.DataAtualizacao = &model.Timestamp{Time: s.clk.Now()}
	if err := s.clients.Update(ctx, client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	// Denormalized copies on consultations follow the client row.
	if err := s.consultations.SyncClientCopies(ctx, id, nome, cpf); err != nil {
		return nil, fmt.Errorf("sync client copies: %w", err)
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, nome, cpf string) ([]model.Client, error) {
	return s.clients.List(ctx, repository.ClientFilter{Nome: nome, CPF: cpf})
}
